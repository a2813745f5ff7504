package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/seafight/server/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Fleet payloads are the
	// largest inbound message.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Event is the outgoing message envelope.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Request is the incoming message envelope. Fields beyond Op are
// populated per operation.
type Request struct {
	Op        string                  `json:"op"`
	Name      string                  `json:"name,omitempty"`
	Message   string                  `json:"message,omitempty"`
	To        string                  `json:"to,omitempty"`
	From      string                  `json:"from,omitempty"`
	Accepted  bool                    `json:"accepted,omitempty"`
	SessionID string                  `json:"session_id,omitempty"`
	X         int                     `json:"x,omitempty"`
	Y         int                     `json:"y,omitempty"`
	Ships     []service.ShipPlacement `json:"ships,omitempty"`
}

// Hub maintains the set of active clients keyed by connection id and
// implements the service Notifier boundary.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	service service.GameService
}

// NewHub creates an empty hub. SetService must be called before the
// first connection is served.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// SetService wires the game service in after construction. The hub and
// the service reference each other, so one of the two links has to be
// set late.
func (h *Hub) SetService(svc service.GameService) {
	h.service = svc
}

// ServeWS upgrades the request, assigns a connection id, and starts
// the client's pumps.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		id:   uuid.NewString(),
		send: make(chan []byte, 256),
	}
	h.addClient(client)

	go client.writePump()
	go client.readPump()

	h.service.Connected(client.id)
}

// Send delivers one event to one connection. Unknown ids are dropped.
func (h *Hub) Send(connID, event string, data any) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	// Enqueue under the read lock so removeClient cannot close the
	// channel mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()
	client, ok := h.clients[connID]
	if !ok {
		return
	}
	client.enqueue(payload)
}

// SendMany delivers one event to each listed connection.
func (h *Hub) SendMany(connIDs []string, event string, data any) {
	for _, id := range connIDs {
		h.Send(id, event, data)
	}
}

// Broadcast delivers one event to every live connection.
func (h *Hub) Broadcast(event string, data any) {
	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s broadcast: %v", event, err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		client.enqueue(payload)
	}
}

// Count returns the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.id] = client
	n := len(h.clients)
	h.mu.Unlock()

	log.Printf("Client %s connected (total clients: %d)", client.id, n)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.id)
	close(client.send)
	n := len(h.clients)
	h.mu.Unlock()

	log.Printf("Client %s disconnected (remaining clients: %d)", client.id, n)
}
