// Package engine implements the authoritative state of a single match:
// ships, per-player occupancy boards, the turn pointer, and hit/miss,
// destruction and victory resolution.
//
// Sessions do not talk to the network. Every operation returns a tagged
// outcome value describing what happened; the service layer matches on
// the outcome and forwards events to the right connections.
package engine
