package request

// MoveRequest is the body for POST /players/{authority}/move
type MoveRequest struct {
	DX int8 `json:"dx"`
	DY int8 `json:"dy"`
}

// RegisterSessionKeyRequest is the body for PUT /players/{authority}/session-key
type RegisterSessionKeyRequest struct {
	SessionKey string `json:"session_key"`
}

// DelegateRequest is the body for POST /players/{authority}/delegation.
// Venue optionally names the target venue; empty selects the default.
type DelegateRequest struct {
	Venue string `json:"venue,omitempty"`
}
