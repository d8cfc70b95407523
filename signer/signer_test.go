package signer_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/oidcguard/claims"
	"github.com/kbukum/oidcguard/errors"
	"github.com/kbukum/oidcguard/internal/keystore"
	"github.com/kbukum/oidcguard/provider"
	"github.com/kbukum/oidcguard/signer"
	"github.com/kbukum/oidcguard/testutil/fixtures"
)

func TestSign_VerifiesUnderTestProvider(t *testing.T) {
	s, err := signer.New(fixtures.RSAPrivateKey(), fixtures.RSAKeyID)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tok, err := s.Sign(claims.Minimal{Email: fixtures.GoldenEmail, Nonce: fixtures.GoldenNonce})
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	d := provider.NewDispatcher(provider.WithKeySet(provider.Test, fixtures.TestKeySet()))
	id, err := d.Validate(provider.Test, tok)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if id.Email != fixtures.GoldenEmail || id.Nonce != fixtures.GoldenNonce {
		t.Errorf("unexpected identity %+v", id)
	}
}

func TestSign_EmptyKIDOmitsHeader(t *testing.T) {
	s, err := signer.New(fixtures.RSAPrivateKey(), "")
	if err != nil {
		t.Fatal(err)
	}
	tok, err := s.Sign(jwt.MapClaims{"email": "a@b.com", "nonce": "N1"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = provider.Validate(provider.Test, tok)
	if !errors.HasCode(err, errors.ErrCodeKeyIDMissing) {
		t.Errorf("expected KEY_ID_MISSING, got %v", err)
	}
}

func TestSign_UnencodableClaims(t *testing.T) {
	s, err := signer.New(fixtures.RSAPrivateKey(), "k")
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Sign(jwt.MapClaims{"bad": make(chan int)})
	if !errors.HasCode(err, errors.ErrCodeTokenGeneration) {
		t.Errorf("expected TOKEN_GENERATION_ERROR, got %v", err)
	}
}

func TestNew_RejectsKeys(t *testing.T) {
	small, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		key  *rsa.PrivateKey
	}{
		{"nil", nil},
		{"too small", small},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := signer.New(tc.key, "k")
			if !errors.HasCode(err, errors.ErrCodeTokenGeneration) {
				t.Errorf("expected TOKEN_GENERATION_ERROR, got %v", err)
			}
		})
	}
}

func TestPublicKeySet_RoundTrip(t *testing.T) {
	s, err := signer.New(fixtures.RSAPrivateKey(), "minted")
	if err != nil {
		t.Fatal(err)
	}
	raw, err := s.PublicKeySet()
	if err != nil {
		t.Fatalf("PublicKeySet() error = %v", err)
	}
	if !strings.Contains(string(raw), `"alg": "RS256"`) {
		t.Errorf("expected RS256 alg in %s", raw)
	}

	set, err := keystore.Load(raw)
	if err != nil {
		t.Fatalf("keystore.Load() error = %v", err)
	}
	key, err := set.Find("minted")
	if err != nil {
		t.Fatal(err)
	}
	if key.Modulus.Cmp(fixtures.RSAPrivateKey().N) != 0 {
		t.Error("expected published modulus to match the signing key")
	}

	d := provider.NewDispatcher(provider.WithKeySet(provider.Test, raw))
	tok, err := s.Sign(claims.Minimal{Email: "m@x.io", Nonce: "n"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Validate(provider.Test, tok); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestPublicKeySet_Errors(t *testing.T) {
	if _, err := signer.PublicKeySet(nil, "k"); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for nil key, got %v", err)
	}
	if _, err := signer.PublicKeySet(&fixtures.RSAPrivateKey().PublicKey, ""); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for empty kid, got %v", err)
	}
}

func TestParseKeys(t *testing.T) {
	priv, err := signer.ParsePrivateKey(fixtures.RSAPrivateKeyPEM())
	if err != nil {
		t.Fatalf("ParsePrivateKey() error = %v", err)
	}
	if priv.N.Cmp(fixtures.RSAPrivateKey().N) != 0 {
		t.Error("unexpected private key")
	}

	pub, err := signer.ParsePublicKey(fixtures.RSAPrivateKeyPEM())
	if err != nil || pub.N.Cmp(priv.N) != 0 {
		t.Errorf("ParsePublicKey(private pem) = %v, %v", pub, err)
	}

	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	pub, err = signer.ParsePublicKey(pubPEM)
	if err != nil || pub.E != priv.E {
		t.Errorf("ParsePublicKey(public pem) = %v, %v", pub, err)
	}

	if _, err := signer.ParsePrivateKey([]byte("nope")); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	if _, err := signer.ParsePublicKey([]byte("nope")); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
