package keystore_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-jose/go-jose/v4"

	"github.com/kbukum/oidcguard/errors"
	"github.com/kbukum/oidcguard/internal/keystore"
	"github.com/kbukum/oidcguard/testutil"
)

const twoKeys = `{"keys":[
 {"kty":"RSA","kid":"a","alg":"RS256","use":"sig","n":"sXch","e":"AQAB"},
 {"kty":"RSA","kid":"b","n":"AQAB","e":"Aw"}
]}`

func TestLoad_Success(t *testing.T) {
	set, err := keystore.Load([]byte(twoKeys))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", set.Len())
	}
	ids := set.KeyIDs()
	if ids[0] != "a" || ids[1] != "b" {
		t.Errorf("expected document order [a b], got %v", ids)
	}

	k, err := set.Find("a")
	if err != nil {
		t.Fatalf("Find(a) error = %v", err)
	}
	if k.Type != keystore.KeyTypeRSA {
		t.Errorf("expected kty RSA, got %q", k.Type)
	}
	if k.Exponent != 65537 {
		t.Errorf("expected exponent 65537, got %d", k.Exponent)
	}
	if k.Modulus.Int64() != 0xb17721 {
		t.Errorf("unexpected modulus %x", k.Modulus)
	}
	if k.Algorithm != "RS256" || k.Use != "sig" {
		t.Errorf("expected alg/use RS256/sig, got %q/%q", k.Algorithm, k.Use)
	}

	b, _ := set.Find("b")
	if b.Exponent != 3 {
		t.Errorf("expected exponent 3, got %d", b.Exponent)
	}
}

func TestLoad_GeneratedKeySet(t *testing.T) {
	h := testutil.T(t)
	raw := h.KeySet(h.RSAJWK("rsa-1", h.Key()), h.ECJWK("ec-1"), jose.JSONWebKey{Key: []byte("secret"), KeyID: "hmac-1"})

	set, err := keystore.Load(raw)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rsaKey, err := set.Find("rsa-1")
	if err != nil {
		t.Fatal(err)
	}
	if rsaKey.Modulus.Cmp(h.Key().N) != 0 || rsaKey.Exponent != h.Key().E {
		t.Error("expected RSA material to match the generating key")
	}

	ecKey, _ := set.Find("ec-1")
	if ecKey.Type != keystore.KeyTypeEC || ecKey.Curve != "P-256" || ecKey.X == "" || ecKey.Y == "" {
		t.Errorf("unexpected EC key %+v", ecKey)
	}
	if ecKey.Modulus != nil {
		t.Error("EC key must not carry RSA material")
	}

	octKey, _ := set.Find("hmac-1")
	if octKey.Type != keystore.KeyTypeOct {
		t.Errorf("expected kty oct, got %q", octKey.Type)
	}
}

func TestLoad_UnknownKeyTypeIsKept(t *testing.T) {
	set, err := keystore.Load([]byte(`{"keys":[{"kty":"PQC","kid":"future"}]}`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	k, err := set.Find("future")
	if err != nil {
		t.Fatal(err)
	}
	if k.Type != keystore.KeyType("PQC") {
		t.Errorf("expected raw kty PQC, got %q", k.Type)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `not json`},
		{"wrong shape", `{"keys":"nope"}`},
		{"no keys", `{"keys":[]}`},
		{"keys absent", `{}`},
		{"missing kid", `{"keys":[{"kty":"RSA","n":"sXch","e":"AQAB"}]}`},
		{"missing kty", `{"keys":[{"kid":"a","n":"sXch","e":"AQAB"}]}`},
		{"missing modulus", `{"keys":[{"kty":"RSA","kid":"a","e":"AQAB"}]}`},
		{"missing exponent", `{"keys":[{"kty":"RSA","kid":"a","n":"sXch"}]}`},
		{"padded modulus", `{"keys":[{"kty":"RSA","kid":"a","n":"sXch==","e":"AQAB"}]}`},
		{"std alphabet", `{"keys":[{"kty":"RSA","kid":"a","n":"sX+/","e":"AQAB"}]}`},
		{"zero exponent", `{"keys":[{"kty":"RSA","kid":"a","n":"sXch","e":"AA"}]}`},
		{"exponent one", `{"keys":[{"kty":"RSA","kid":"a","n":"sXch","e":"AQ"}]}`},
		{"huge exponent", `{"keys":[{"kty":"RSA","kid":"a","n":"sXch","e":"AQAAAAAA"}]}`},
		{"one bad key spoils the set", `{"keys":[{"kty":"RSA","kid":"a","n":"sXch","e":"AQAB"},{"kty":"RSA","kid":"b","n":"!","e":"AQAB"}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set, err := keystore.Load([]byte(tc.raw))
			if err == nil {
				t.Fatalf("expected error, got set with %d keys", set.Len())
			}
			if !errors.HasCode(err, errors.ErrCodeCertificateParse) {
				t.Errorf("expected CERTIFICATE_PARSE_ERROR, got %v", err)
			}
		})
	}
}

func TestFind(t *testing.T) {
	dup := `{"keys":[
	 {"kty":"RSA","kid":"same","n":"sXch","e":"AQAB"},
	 {"kty":"RSA","kid":"same","n":"AQAB","e":"AQAB"}
	]}`
	set, err := keystore.Load([]byte(dup))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("first match wins", func(t *testing.T) {
		k, err := set.Find("same")
		if err != nil {
			t.Fatal(err)
		}
		if k.Modulus.Int64() != 0xb17721 {
			t.Errorf("expected the first key, got modulus %x", k.Modulus)
		}
	})

	for _, kid := range []string{"missing", "", "SAME", "same "} {
		t.Run(fmt.Sprintf("not found %q", kid), func(t *testing.T) {
			_, err := set.Find(kid)
			if !errors.HasCode(err, errors.ErrCodeCertificateNotFound) {
				t.Errorf("expected CERTIFICATE_NOT_FOUND, got %v", err)
			}
		})
	}
}

func TestLazy_LoadsOnce(t *testing.T) {
	var calls atomic.Int32
	src := func() ([]byte, error) {
		calls.Add(1)
		return []byte(twoKeys), nil
	}
	l := keystore.NewLazy(src)
	if calls.Load() != 0 {
		t.Fatal("expected no load before first use")
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Find("a"); err != nil {
				t.Errorf("Find() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected exactly one load, got %d", calls.Load())
	}
}

func TestLazy_ErrorIsSticky(t *testing.T) {
	var calls atomic.Int32
	l := keystore.NewLazy(func() ([]byte, error) {
		calls.Add(1)
		return []byte(`{"keys":[]}`), nil
	})
	for i := 0; i < 3; i++ {
		if _, err := l.Find("a"); !errors.HasCode(err, errors.ErrCodeCertificateParse) {
			t.Fatalf("expected CERTIFICATE_PARSE_ERROR, got %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("expected one load attempt, got %d", calls.Load())
	}
}

func TestLazy_SourceError(t *testing.T) {
	l := keystore.NewLazy(keystore.File("/nonexistent/keys.json"))
	_, err := l.Get()
	if !errors.HasCode(err, errors.ErrCodeCertificateParse) {
		t.Errorf("expected CERTIFICATE_PARSE_ERROR, got %v", err)
	}
}

func TestFileSource(t *testing.T) {
	h := testutil.T(t)
	path := h.WriteFile("keys.json", h.KeySet(h.RSAJWK("file-kid", h.Key())))

	l := keystore.NewLazy(keystore.File(path))
	if _, err := l.Find("file-kid"); err != nil {
		t.Errorf("Find() error = %v", err)
	}
}

func TestBytesSource(t *testing.T) {
	set, err := keystore.NewLazy(keystore.Bytes([]byte(twoKeys))).Get()
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 2 {
		t.Errorf("expected 2 keys, got %d", set.Len())
	}
}
