package model

import "errors"

// Common errors used across the application
var (
	// Authorization errors
	ErrUnauthorized = errors.New("signer is not authorized for this player")

	// Creation errors (duplicate create at a deterministic address)
	ErrBoardExists  = errors.New("board already initialized")
	ErrPlayerExists = errors.New("player already joined")

	// Lookup errors
	ErrBoardNotFound  = errors.New("board not initialized")
	ErrPlayerNotFound = errors.New("player not found")

	// Delegation errors
	ErrInvalidDelegation = errors.New("delegation operation not valid in current state")
	ErrStaleCommit       = errors.New("commit is older than the last checkpoint")
	ErrWriteRejected     = errors.New("write rejected: record is delegated")
	ErrUnknownVenue      = errors.New("unknown delegation venue")

	// Store errors
	ErrStoreUnavailable = errors.New("store operation failed")
)
