package testutil

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/oidcguard/testutil/fixtures"
)

// THelper binds token and key-set helpers to a testing.T.
type THelper struct {
	t   *testing.T
	key *rsa.PrivateKey
}

// T wraps a testing.T. Helpers sign with the fixture RSA key unless
// WithKey replaces it.
//
// Example:
//
//	func TestValidate(t *testing.T) {
//	    tok := testutil.T(t).Sign(fixtures.RSAKeyID, map[string]any{"email": "a@b.com", "nonce": "n"})
//	    ...
//	}
func T(t *testing.T) *THelper {
	t.Helper()
	return &THelper{t: t, key: fixtures.RSAPrivateKey()}
}

// WithKey replaces the signing key.
func (h *THelper) WithKey(key *rsa.PrivateKey) *THelper {
	h.key = key
	return h
}

// Key returns the current signing key.
func (h *THelper) Key() *rsa.PrivateKey {
	return h.key
}

// NewRSAKey generates a fresh 2048-bit key, unknown to any embedded key set.
func (h *THelper) NewRSAKey() *rsa.PrivateKey {
	h.t.Helper()
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		h.t.Fatalf("generate rsa key: %v", err)
	}
	return k
}

// Sign issues an RS256 token over claims. An empty kid omits the header.
func (h *THelper) Sign(kid string, claims jwt.Claims) string {
	h.t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		tok.Header["kid"] = kid
	}
	s, err := tok.SignedString(h.key)
	if err != nil {
		h.t.Fatalf("sign token: %v", err)
	}
	return s
}

// SignRaw signs arbitrary header and payload JSON with RS256 regardless of
// what the header claims. Used to build tokens a well-behaved signer would
// never produce.
func (h *THelper) SignRaw(header, payload string) string {
	h.t.Helper()
	input := segment([]byte(header)) + "." + segment([]byte(payload))
	sig, err := jwt.SigningMethodRS256.Sign(input, h.key)
	if err != nil {
		h.t.Fatalf("sign raw token: %v", err)
	}
	return input + "." + segment(sig)
}

// Tamper flips one character of the given token segment (0, 1 or 2).
func (h *THelper) Tamper(token string, seg int) string {
	h.t.Helper()
	parts := strings.Split(token, ".")
	if len(parts) != 3 || seg < 0 || seg > 2 || parts[seg] == "" {
		h.t.Fatalf("cannot tamper segment %d of %q", seg, token)
	}
	b := []byte(parts[seg])
	mid := len(b) / 2
	if b[mid] == 'A' {
		b[mid] = 'B'
	} else {
		b[mid] = 'A'
	}
	parts[seg] = string(b)
	return strings.Join(parts, ".")
}

// RSAJWK describes the public half of key as a JWK.
func (h *THelper) RSAJWK(kid string, key *rsa.PrivateKey) jose.JSONWebKey {
	return jose.JSONWebKey{Key: &key.PublicKey, KeyID: kid, Algorithm: "RS256", Use: "sig"}
}

// ECJWK describes a freshly generated P-256 public key as a JWK.
func (h *THelper) ECJWK(kid string) jose.JSONWebKey {
	h.t.Helper()
	k, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		h.t.Fatalf("generate ec key: %v", err)
	}
	return jose.JSONWebKey{Key: &k.PublicKey, KeyID: kid, Algorithm: "ES256", Use: "sig"}
}

// KeySet marshals keys into a JWK-set document.
func (h *THelper) KeySet(keys ...jose.JSONWebKey) []byte {
	h.t.Helper()
	b, err := json.Marshal(jose.JSONWebKeySet{Keys: keys})
	if err != nil {
		h.t.Fatalf("marshal key set: %v", err)
	}
	return b
}

// WriteFile writes data under the test's temp dir and returns the path.
func (h *THelper) WriteFile(name string, data []byte) string {
	h.t.Helper()
	path := filepath.Join(h.t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		h.t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func segment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}
