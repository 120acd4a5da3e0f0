package model

import "time"

// Board is the singleton ownership marker for a deployment.
// It is created once and never mutated afterward.
type Board struct {
	// Authority is the identity that initialized the board
	Authority Identity
	CreatedAt time.Time
}
