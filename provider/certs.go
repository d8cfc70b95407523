package provider

import (
	_ "embed"

	"github.com/kbukum/oidcguard/internal/keystore"
)

//go:embed certs/google.json
var googleKeys []byte

//go:embed certs/test.json
var testKeys []byte

// EmbeddedKeySet returns the built-in JWK-set document for p, or nil if p
// is unknown.
func EmbeddedKeySet(p IdentityProvider) []byte {
	switch p {
	case Google:
		return googleKeys
	case Test:
		return testKeys
	default:
		return nil
	}
}

func embeddedSource(p IdentityProvider) keystore.Source {
	return keystore.Bytes(EmbeddedKeySet(p))
}
