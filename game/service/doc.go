// Package service wires the matchmaking handshake, the session
// directory and the player registry to the transport layer. It owns no
// sockets: inbound operations arrive as method calls from the
// transport, outbound events leave through the Notifier boundary.
package service
