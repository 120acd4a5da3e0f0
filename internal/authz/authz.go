// Package authz decides whether a verified signer identity may act on a
// player record. It compares the signer against the record's stored keys;
// it never trusts a caller-supplied role claim.
package authz

import "github.com/mfreeman/gridledger/internal/model"

// Role identifies which of a player's keys authorized a request
type Role string

const (
	// RolePrimary means the signer is the player's owning authority
	RolePrimary Role = "primary"
	// RoleSession means the signer is the registered session key; it is a
	// bounded capability good for movement only
	RoleSession Role = "session"
)

// Authorize resolves the signer against the player's keys. It approves the
// request iff the signer is the authority or the currently registered
// session key, returning which. Rejection has no side effects.
func Authorize(player *model.Player, signer model.Identity) (Role, error) {
	if signer == player.Authority {
		return RolePrimary, nil
	}
	if player.SessionKey != nil && signer == *player.SessionKey {
		return RoleSession, nil
	}
	return "", model.ErrUnauthorized
}

// AuthorizeOwner admits the primary authority only. Session-key management
// is gated here, so a session key can never re-delegate or revoke itself.
func AuthorizeOwner(player *model.Player, signer model.Identity) error {
	if signer != player.Authority {
		return model.ErrUnauthorized
	}
	return nil
}
