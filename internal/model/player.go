package model

import "time"

// DelegationState records where write-authority for a player currently lives
type DelegationState string

const (
	// DelegationResident means the durable ledger holds write-authority
	DelegationResident DelegationState = "resident"
	// DelegationDelegating is the transient state during handoff to the venue
	DelegationDelegating DelegationState = "delegating"
	// DelegationDelegated means the auxiliary venue holds write-authority
	// and the ledger copy is frozen
	DelegationDelegated DelegationState = "delegated"
	// DelegationUndelegating is the transient state during handoff back
	DelegationUndelegating DelegationState = "undelegating"
)

// Player is the authoritative per-participant state entity
type Player struct {
	// Authority is the immutable owning identity, set at creation
	Authority Identity
	Position  Position
	// SessionKey is the current movement delegate, if any. Registering a
	// new one replaces the previous; nil means no delegate.
	SessionKey *Identity
	Delegation DelegationState
	CreatedAt  time.Time
}

// NewPlayer creates a player at the spawn position with no session key,
// resident in the durable ledger
func NewPlayer(authority Identity, now time.Time) *Player {
	return &Player{
		Authority:  authority,
		Position:   SpawnPosition(),
		Delegation: DelegationResident,
		CreatedAt:  now,
	}
}

// IsDelegated reports whether the auxiliary venue holds write-authority
func (p *Player) IsDelegated() bool {
	return p.Delegation == DelegationDelegated
}

// Clone returns a deep copy so stored and in-flight copies never alias
func (p *Player) Clone() *Player {
	c := *p
	if p.SessionKey != nil {
		key := *p.SessionKey
		c.SessionKey = &key
	}
	return &c
}
