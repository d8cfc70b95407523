// Package signature authenticates an untrusted token against a resolved
// algorithm handle. Every failure is reported as the same TokenValidation
// error so callers cannot distinguish why a signature was rejected.
package signature

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/oidcguard/errors"
	"github.com/kbukum/oidcguard/internal/algorithm"
	"github.com/kbukum/oidcguard/internal/untrusted"
)

// VerifiedPayload holds payload bytes whose signature has been checked. It
// can only be produced by Verify.
type VerifiedPayload struct {
	b []byte
}

// Bytes returns the authenticated payload.
func (p VerifiedPayload) Bytes() []byte {
	return p.b
}

var sigParser = jwt.NewParser(jwt.WithStrictDecoding())

// Verify checks tok's signature over its original signing input. The header
// must declare the handle's algorithm.
func Verify(tok *untrusted.Token, h algorithm.Handle) (VerifiedPayload, error) {
	if tok == nil || h.Method == nil || tok.Header.Algorithm != h.Name {
		return VerifiedPayload{}, errors.TokenValidation()
	}
	sig, err := sigParser.DecodeSegment(tok.Signature)
	if err != nil || len(sig) == 0 {
		return VerifiedPayload{}, errors.TokenValidation()
	}
	if err := h.Method.Verify(tok.SigningInput, sig, h.Key); err != nil {
		return VerifiedPayload{}, errors.TokenValidation()
	}
	return VerifiedPayload{b: tok.Payload}, nil
}
