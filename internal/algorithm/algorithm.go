// Package algorithm maps a trusted signing key to the one verification
// algorithm it may be used with. The choice depends only on the key's
// declared type and never on the token header.
package algorithm

import (
	"crypto/rsa"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/oidcguard/errors"
	"github.com/kbukum/oidcguard/internal/keystore"
)

// RS256 is the only supported algorithm.
const RS256 = "RS256"

// Handle binds an algorithm to the public key material it verifies with.
type Handle struct {
	Name   string
	Method jwt.SigningMethod
	Key    any
}

// Resolve returns the algorithm handle for key. RSA keys resolve to RS256;
// an RSA key pinned to a different alg, and every other key type, fail with
// AlgorithmNotFound.
func Resolve(key keystore.SigningKey) (Handle, error) {
	switch key.Type {
	case keystore.KeyTypeRSA:
		if key.Algorithm != "" && key.Algorithm != RS256 {
			return Handle{}, errors.AlgorithmNotFound(string(key.Type)).WithDetail("alg", key.Algorithm)
		}
		if key.Modulus == nil || key.Exponent == 0 {
			return Handle{}, errors.AlgorithmNotFound(string(key.Type))
		}
		return Handle{
			Name:   RS256,
			Method: jwt.SigningMethodRS256,
			Key:    &rsa.PublicKey{N: key.Modulus, E: key.Exponent},
		}, nil
	default:
		return Handle{}, errors.AlgorithmNotFound(string(key.Type))
	}
}
