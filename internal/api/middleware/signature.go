package middleware

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/mfreeman/gridledger/internal/api/apierr"
	"github.com/mfreeman/gridledger/internal/dependencies/verifier"
	"github.com/mfreeman/gridledger/internal/model"
)

// Request headers carrying the signer's public key and the ed25519
// signature over the raw request body, both hex encoded.
const (
	HeaderSigner    = "X-Gridledger-Signer"
	HeaderSignature = "X-Gridledger-Signature"
)

type contextKey string

const signerContextKey contextKey = "signer"

// Signature creates middleware that verifies the request signature and puts
// the verified signer Identity in the request context. Downstream code
// trusts that identity; it never re-verifies.
func Signature(v verifier.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			signerHex := r.Header.Get(HeaderSigner)
			sigHex := r.Header.Get(HeaderSignature)
			if signerHex == "" || sigHex == "" {
				apierr.WriteError(w, apierr.NewMissingSignatureError())
				return
			}

			pub, err := model.ParseIdentity(signerHex)
			if err != nil {
				apierr.WriteError(w, apierr.NewInvalidRequestError("malformed signer header"))
				return
			}

			sig, err := hex.DecodeString(sigHex)
			if err != nil {
				apierr.WriteError(w, apierr.NewInvalidRequestError("malformed signature header"))
				return
			}

			// The signature covers the raw body; read it once and hand the
			// handler a replayable copy.
			body, err := io.ReadAll(r.Body)
			if err != nil {
				apierr.WriteError(w, apierr.NewInvalidRequestError("unreadable request body"))
				return
			}
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))

			identity, err := v.Verify(pub, body, sig)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), signerContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSigner returns the verified signer from the request context
func GetSigner(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(signerContextKey).(model.Identity)
	return identity, ok
}

// MustGetSigner returns the verified signer or panics
func MustGetSigner(ctx context.Context) model.Identity {
	identity, ok := GetSigner(ctx)
	if !ok {
		panic("no signer in context - signature middleware not applied?")
	}
	return identity
}
