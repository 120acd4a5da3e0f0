package response

import (
	"time"

	"github.com/mfreeman/gridledger/internal/model"
)

// Board represents the board record in API responses
type Board struct {
	Authority string    `json:"authority"`
	CreatedAt time.Time `json:"created_at"`
}

// BoardFromModel converts a model.Board to a response Board
func BoardFromModel(b *model.Board) Board {
	return Board{
		Authority: b.Authority.String(),
		CreatedAt: b.CreatedAt,
	}
}

// Player represents a player record in API responses
type Player struct {
	Authority       string    `json:"authority"`
	X               uint8     `json:"x"`
	Y               uint8     `json:"y"`
	SessionKey      *string   `json:"session_key"`
	DelegationState string    `json:"delegation_state"`
	CreatedAt       time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	var sessionKey *string
	if p.SessionKey != nil {
		k := p.SessionKey.String()
		sessionKey = &k
	}
	return Player{
		Authority:       p.Authority.String(),
		X:               p.Position.X,
		Y:               p.Position.Y,
		SessionKey:      sessionKey,
		DelegationState: string(p.Delegation),
		CreatedAt:       p.CreatedAt,
	}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
