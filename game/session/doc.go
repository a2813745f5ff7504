// Package session holds the directory of live game sessions. Sessions
// are indexed both by session id and by the connection ids of their
// participants, so disconnect handling can find a player's match
// without scanning.
package session
