package model

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// IdentitySize is the byte length of an identity value (an ed25519 public key)
const IdentitySize = ed25519.PublicKeySize

// Identity is an opaque fixed-size public key identifying an account.
// It is equality-comparable and otherwise uninterpreted by the core.
type Identity [IdentitySize]byte

// IdentityFromBytes builds an Identity from a raw public key
func IdentityFromBytes(b []byte) (Identity, error) {
	if len(b) != IdentitySize {
		return Identity{}, fmt.Errorf("identity must be %d bytes, got %d", IdentitySize, len(b))
	}
	var id Identity
	copy(id[:], b)
	return id, nil
}

// ParseIdentity parses the hex text form of an Identity
func ParseIdentity(s string) (Identity, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid identity encoding: %w", err)
	}
	return IdentityFromBytes(b)
}

// Bytes returns the identity as a raw public key slice
func (id Identity) Bytes() []byte {
	return id[:]
}

// String returns the hex text form
func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText implements encoding.TextMarshaler
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
