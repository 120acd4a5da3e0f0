// Package verifier is the signature-verification boundary. The rest of the
// system trusts the Identity a Verifier returns and never re-checks
// cryptographic material itself.
package verifier

import (
	"crypto/ed25519"
	"errors"

	"github.com/mfreeman/gridledger/internal/model"
)

// ErrBadSignature is returned when a signature does not verify
var ErrBadSignature = errors.New("signature verification failed")

// Verifier authenticates a request signer and yields the verified identity
type Verifier interface {
	Verify(pub model.Identity, message, signature []byte) (model.Identity, error)
}

// Ed25519 verifies ed25519 signatures over the raw request payload
type Ed25519 struct{}

// New creates an Ed25519 verifier
func New() *Ed25519 {
	return &Ed25519{}
}

// Ensure Ed25519 implements the interface
var _ Verifier = (*Ed25519)(nil)

// Verify checks the signature against the public key and returns the
// signer's identity on success
func (v *Ed25519) Verify(pub model.Identity, message, signature []byte) (model.Identity, error) {
	if len(signature) != ed25519.SignatureSize {
		return model.Identity{}, ErrBadSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(pub.Bytes()), message, signature) {
		return model.Identity{}, ErrBadSignature
	}
	return pub, nil
}
