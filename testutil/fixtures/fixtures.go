// Package fixtures holds fixed key material and tokens shared by test suites.
// Nothing here is a secret: the RSA key exists only to sign test tokens.
package fixtures

import (
	"crypto/rsa"
	_ "embed"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Key ids published by TestKeySet.
const (
	RSAKeyID = "KID1"
	ECKeyID  = "KID-EC"
)

// GoldenToken is an RS256 token signed by the fixture key under RSAKeyID,
// carrying {"email":"a@b.com","nonce":"N1"}.
const GoldenToken = "eyJhbGciOiJSUzI1NiIsImtpZCI6IktJRDEifQ" +
	".eyJlbWFpbCI6ImFAYi5jb20iLCJub25jZSI6Ik4xIn0" +
	".g7tr2EY8WKNN4zBHoN0OC3KuJiO4DFOPysmjrZbiXmBVL_6ervBRSi0JB0h2kIPW5hewc2rsIEj6xIfEw16cI-ALGj4pZ4NS2T0im5Ipk0Cmy75VQfSXc1UdBwWZcQy-JDZrsljM1O7e3rcFTg9xWd6vrHFkhCCTiT6dXZUf4iasFkB03lS4hA_Mm9tBdNz3HziVgPHsxWRGpMSWQhSleZgcY23em04tognOjIWo4ZadGUtZHlPifrEJUtb0sKKAI6PxM9TwEksa13LL76PWKBEsNgpF5j_jWu8hlq6bE1fi4jCISIkv7j7dW98ug8q5ElsjX_d4gQYxMS3l-t9Jkw"

// Golden token claim values.
const (
	GoldenEmail = "a@b.com"
	GoldenNonce = "N1"
)

//go:embed test_rsa.pem
var rsaPEM []byte

//go:embed test_keys.json
var testKeys []byte

var (
	keyOnce sync.Once
	key     *rsa.PrivateKey
)

// TestKeySet returns a JWK-set document trusting the fixture key under
// RSAKeyID plus an EC key under ECKeyID. Install it with
// provider.WithKeySet(provider.Test, fixtures.TestKeySet()); the Test
// provider's embedded set never trusts the fixture key.
func TestKeySet() []byte {
	return testKeys
}

// RSAPrivateKeyPEM returns the PEM encoding of the fixture key.
func RSAPrivateKeyPEM() []byte {
	return rsaPEM
}

// RSAPrivateKey returns the fixture signing key. It panics if the embedded
// PEM is unreadable.
func RSAPrivateKey() *rsa.PrivateKey {
	keyOnce.Do(func() {
		k, err := jwt.ParseRSAPrivateKeyFromPEM(rsaPEM)
		if err != nil {
			panic("fixtures: " + err.Error())
		}
		key = k
	})
	return key
}
