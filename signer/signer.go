// Package signer issues RS256 tokens that the provider package can verify.
// It backs the mint command and test fixtures; it is not used on the
// verification path.
package signer

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v4"
	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/oidcguard/errors"
)

// MinKeyBits is the smallest RSA modulus the signer accepts.
const MinKeyBits = 2048

// Signer signs claims with one RSA private key.
type Signer struct {
	key *rsa.PrivateKey
	kid string
}

// New creates a Signer. kid is written to every token header; an empty kid
// produces tokens without one.
func New(key *rsa.PrivateKey, kid string) (*Signer, error) {
	if key == nil {
		return nil, errors.TokenGeneration(fmt.Errorf("signer: private key is required"))
	}
	if err := key.Validate(); err != nil {
		return nil, errors.TokenGeneration(fmt.Errorf("signer: %w", err))
	}
	if bits := key.N.BitLen(); bits < MinKeyBits {
		return nil, errors.TokenGeneration(fmt.Errorf("signer: %d-bit key is below %d bits", bits, MinKeyBits))
	}
	return &Signer{key: key, kid: kid}, nil
}

// Sign serializes claims into a compact RS256 token.
func (s *Signer) Sign(claims gojwt.Claims) (string, error) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodRS256, claims)
	if s.kid != "" {
		token.Header["kid"] = s.kid
	}
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", errors.TokenGeneration(fmt.Errorf("signer: sign token: %w", err))
	}
	return signed, nil
}

// KeyID returns the kid written to token headers.
func (s *Signer) KeyID() string {
	return s.kid
}

// PublicKeySet returns a JWK-set document trusting this signer's key.
func (s *Signer) PublicKeySet() ([]byte, error) {
	return PublicKeySet(&s.key.PublicKey, s.kid)
}

// PublicKeySet renders pub as a one-key JWK-set document usable as a
// provider trust anchor.
func PublicKeySet(pub *rsa.PublicKey, kid string) ([]byte, error) {
	if pub == nil {
		return nil, errors.InvalidInput("key", "public key is required")
	}
	if kid == "" {
		return nil, errors.InvalidInput("kid", "key id is required")
	}
	set := jose.JSONWebKeySet{Keys: []jose.JSONWebKey{{
		Key:       pub,
		KeyID:     kid,
		Algorithm: string(jose.RS256),
		Use:       "sig",
	}}}
	b, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("marshal key set: %w", err))
	}
	return b, nil
}

// ParsePrivateKey reads a PEM-encoded RSA private key (PKCS#1 or PKCS#8).
func ParsePrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	key, err := gojwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, errors.InvalidInput("key", "not a PEM-encoded RSA private key").WithCause(err)
	}
	return key, nil
}

// ParsePublicKey reads a PEM-encoded RSA public key, certificate or private
// key and returns its public half.
func ParsePublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	if pub, err := gojwt.ParseRSAPublicKeyFromPEM(pemBytes); err == nil {
		return pub, nil
	}
	key, err := gojwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, errors.InvalidInput("key", "not a PEM-encoded RSA key or certificate").WithCause(err)
	}
	return &key.PublicKey, nil
}
