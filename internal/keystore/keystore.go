// Package keystore holds the trusted public signing keys of an identity
// provider. A KeySet is parsed once from a JWK-set document (RFC 7517) and is
// never mutated afterwards, so it can be shared by any number of readers.
package keystore

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/kbukum/oidcguard/errors"
)

// KeyType is the JWK "kty" value of a signing key.
type KeyType string

const (
	KeyTypeRSA KeyType = "RSA"
	KeyTypeEC  KeyType = "EC"
	KeyTypeOKP KeyType = "OKP"
	KeyTypeOct KeyType = "oct"
)

// SigningKey is one trusted public key. Key-type-specific material is only
// populated for the types the store understands; for RSA keys Modulus and
// Exponent are always set.
type SigningKey struct {
	KeyID     string
	Type      KeyType
	Use       string
	Algorithm string

	// RSA
	Modulus  *big.Int
	Exponent int

	// EC / OKP, kept as published
	Curve string
	X     string
	Y     string
}

// KeySet is the ordered, read-only collection of one provider's keys.
type KeySet struct {
	keys []SigningKey
}

// jwk is the wire form of a single key in a JWK-set document.
type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	Use string `json:"use"`

	// RSA fields
	N string `json:"n"`
	E string `json:"e"`

	// EC / OKP fields
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

type jwksDoc struct {
	Keys []jwk `json:"keys"`
}

// Load parses a JWK-set document. Every failure is a CertificateParse error:
// malformed JSON, an empty key list, a key without kid or kty, or RSA key
// material that is not a valid base64url big-endian integer.
func Load(raw []byte) (*KeySet, error) {
	var doc jwksDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.CertificateParse(fmt.Errorf("decode jwk set: %w", err))
	}
	if len(doc.Keys) == 0 {
		return nil, errors.CertificateParse(fmt.Errorf("jwk set has no keys"))
	}

	keys := make([]SigningKey, 0, len(doc.Keys))
	for i := range doc.Keys {
		k, err := doc.Keys[i].signingKey()
		if err != nil {
			return nil, errors.CertificateParse(fmt.Errorf("key %d: %w", i, err))
		}
		keys = append(keys, k)
	}
	return &KeySet{keys: keys}, nil
}

// Find returns the first key whose id equals kid exactly.
func (s *KeySet) Find(kid string) (SigningKey, error) {
	for _, k := range s.keys {
		if k.KeyID == kid {
			return k, nil
		}
	}
	return SigningKey{}, errors.CertificateNotFound(kid)
}

// Len returns the number of keys in the set.
func (s *KeySet) Len() int {
	return len(s.keys)
}

// KeyIDs returns the key ids in document order.
func (s *KeySet) KeyIDs() []string {
	ids := make([]string, len(s.keys))
	for i, k := range s.keys {
		ids[i] = k.KeyID
	}
	return ids
}

func (k *jwk) signingKey() (SigningKey, error) {
	if k.Kid == "" {
		return SigningKey{}, fmt.Errorf("missing kid")
	}
	if k.Kty == "" {
		return SigningKey{}, fmt.Errorf("kid %q: missing kty", k.Kid)
	}

	key := SigningKey{
		KeyID:     k.Kid,
		Type:      KeyType(k.Kty),
		Use:       k.Use,
		Algorithm: k.Alg,
		Curve:     k.Crv,
		X:         k.X,
		Y:         k.Y,
	}
	if key.Type != KeyTypeRSA {
		return key, nil
	}

	n, err := decodeUint(k.N)
	if err != nil {
		return SigningKey{}, fmt.Errorf("kid %q: modulus: %w", k.Kid, err)
	}
	e, err := decodeUint(k.E)
	if err != nil {
		return SigningKey{}, fmt.Errorf("kid %q: exponent: %w", k.Kid, err)
	}
	if !e.IsInt64() || e.Int64() < 2 || e.Int64() > 1<<31-1 {
		return SigningKey{}, fmt.Errorf("kid %q: exponent out of range", k.Kid)
	}
	key.Modulus = n
	key.Exponent = int(e.Int64())
	return key, nil
}

// decodeUint decodes a base64url (unpadded) big-endian unsigned integer.
func decodeUint(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("missing value")
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).SetBytes(b)
	if v.Sign() == 0 {
		return nil, fmt.Errorf("zero value")
	}
	return v, nil
}
