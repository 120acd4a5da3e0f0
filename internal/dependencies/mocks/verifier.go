package mocks

import (
	"github.com/mfreeman/gridledger/internal/dependencies/verifier"
	"github.com/mfreeman/gridledger/internal/model"
)

// StaticVerifier accepts any signature and returns the presented public key
// as the verified identity. For tests only.
type StaticVerifier struct{}

// Ensure StaticVerifier implements Verifier
var _ verifier.Verifier = (*StaticVerifier)(nil)

// Verify trusts the presented key unconditionally
func (v *StaticVerifier) Verify(pub model.Identity, message, signature []byte) (model.Identity, error) {
	return pub, nil
}
