package verifier

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/gridledger/internal/model"
)

type VerifierSuite struct {
	suite.Suite
	verifier *Ed25519
	pub      model.Identity
	priv     ed25519.PrivateKey
}

func TestVerifierSuite(t *testing.T) {
	suite.Run(t, new(VerifierSuite))
}

func (s *VerifierSuite) SetupTest() {
	s.verifier = New()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err)
	s.priv = priv

	id, err := model.IdentityFromBytes(pub)
	s.Require().NoError(err)
	s.pub = id
}

func (s *VerifierSuite) TestValidSignature() {
	message := []byte(`{"dx":1,"dy":0}`)
	sig := ed25519.Sign(s.priv, message)

	identity, err := s.verifier.Verify(s.pub, message, sig)
	s.Require().NoError(err)
	s.Equal(s.pub, identity)
}

func (s *VerifierSuite) TestTamperedMessage() {
	sig := ed25519.Sign(s.priv, []byte("original"))

	_, err := s.verifier.Verify(s.pub, []byte("tampered"), sig)
	s.ErrorIs(err, ErrBadSignature)
}

func (s *VerifierSuite) TestWrongKey() {
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err)
	otherID, err := model.IdentityFromBytes(otherPub)
	s.Require().NoError(err)

	message := []byte("hello")
	sig := ed25519.Sign(s.priv, message)

	_, err = s.verifier.Verify(otherID, message, sig)
	s.ErrorIs(err, ErrBadSignature)
}

func (s *VerifierSuite) TestMalformedSignature() {
	_, err := s.verifier.Verify(s.pub, []byte("hello"), []byte("too short"))
	s.ErrorIs(err, ErrBadSignature)
}
