package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// Client is one live WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   string
	send chan []byte
}

// enqueue hands a frame to the write pump. A client whose buffer is
// full is dropped rather than allowed to stall everyone else.
func (c *Client) enqueue(payload []byte) {
	select {
	case c.send <- payload:
	default:
		go c.hub.removeClient(c)
	}
}

// readPump pumps messages from the WebSocket connection to the game
// service. One per connection; dispatch runs on this goroutine so a
// client's operations apply in the order it sent them.
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.hub.service.Disconnect(c.id)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error on %s: %v", c.id, err)
			}
			break
		}

		var req Request
		if err := json.Unmarshal(raw, &req); err != nil {
			log.Printf("Bad message from %s: %v", c.id, err)
			continue
		}
		c.dispatch(&req)
	}
}

// dispatch routes one decoded request to the game service. Unknown ops
// are logged and skipped; the connection stays up.
func (c *Client) dispatch(req *Request) {
	svc := c.hub.service
	switch req.Op {
	case "register":
		svc.Register(c.id, req.Name)
	case "chat":
		svc.Chat(c.id, req.Message)
	case "offer":
		svc.Offer(c.id, req.To)
	case "answer":
		// From carries the original offerer's connection id.
		svc.Answer(req.From, c.id, req.Accepted)
	case "fleet":
		svc.SubmitFleet(req.SessionID, c.id, req.Ships)
	case "move":
		svc.Move(req.SessionID, c.id, req.X, req.Y)
	case "resolve":
		svc.ResolveTurn(req.SessionID, c.id, req.X, req.Y)
	case "abort":
		svc.Abort(c.id)
	default:
		log.Printf("Unknown op %q from %s", req.Op, c.id)
	}
}

// writePump pumps frames from the hub to the WebSocket connection. One
// per connection; each frame is a standalone JSON event.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
