package signature

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/oidcguard/errors"
	"github.com/kbukum/oidcguard/internal/algorithm"
	"github.com/kbukum/oidcguard/internal/untrusted"
	"github.com/kbukum/oidcguard/testutil"
	"github.com/kbukum/oidcguard/testutil/fixtures"
)

func fixtureHandle() algorithm.Handle {
	pub := &fixtures.RSAPrivateKey().PublicKey
	return algorithm.Handle{Name: algorithm.RS256, Method: jwt.SigningMethodRS256, Key: pub}
}

func mustParse(t *testing.T, raw string) *untrusted.Token {
	t.Helper()
	tok, err := untrusted.Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return tok
}

func TestVerify_GoldenToken(t *testing.T) {
	p, err := Verify(mustParse(t, fixtures.GoldenToken), fixtureHandle())
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if string(p.Bytes()) != `{"email":"a@b.com","nonce":"N1"}` {
		t.Errorf("unexpected payload %q", p.Bytes())
	}
}

func TestVerify_SignedAtRuntime(t *testing.T) {
	h := testutil.T(t)
	raw := h.Sign("k", jwt.MapClaims{"email": "x@y.z", "nonce": "n"})
	if _, err := Verify(mustParse(t, raw), fixtureHandle()); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
}

func TestVerify_Failures(t *testing.T) {
	h := testutil.T(t)
	golden := fixtures.GoldenToken
	parts := strings.Split(golden, ".")
	typHeader := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256","kid":"KID1","typ":"JWT"}`))

	other := testutil.T(t).WithKey(h.NewRSAKey())
	otherHandle := algorithm.Handle{Name: algorithm.RS256, Method: jwt.SigningMethodRS256, Key: &other.Key().PublicKey}

	tests := []struct {
		name   string
		raw    string
		handle algorithm.Handle
	}{
		{"tampered signature", h.Tamper(golden, 2), fixtureHandle()},
		{"tampered payload", h.Tamper(golden, 1), fixtureHandle()},
		{"swapped header", typHeader + "." + parts[1] + "." + parts[2], fixtureHandle()},
		{"empty signature", parts[0] + "." + parts[1] + ".", fixtureHandle()},
		{"signature not base64", parts[0] + "." + parts[1] + ".***", fixtureHandle()},
		{"signature padded", golden + "==", fixtureHandle()},
		{"truncated signature", golden[:len(golden)-4], fixtureHandle()},
		{"wrong key", golden, otherHandle},
		{"header alg HS256", h.SignRaw(`{"alg":"HS256","kid":"KID1"}`, `{"email":"a@b.com","nonce":"N1"}`), fixtureHandle()},
		{"header alg none", h.SignRaw(`{"alg":"none","kid":"KID1"}`, `{"email":"a@b.com","nonce":"N1"}`), fixtureHandle()},
		{"header alg missing", h.SignRaw(`{"kid":"KID1"}`, `{"email":"a@b.com","nonce":"N1"}`), fixtureHandle()},
		{"key of wrong type", golden, algorithm.Handle{Name: algorithm.RS256, Method: jwt.SigningMethodRS256, Key: []byte("secret")}},
		{"no method", golden, algorithm.Handle{Name: algorithm.RS256}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Verify(mustParse(t, tc.raw), tc.handle)
			assertUniform(t, err)
		})
	}
}

func TestVerify_NilToken(t *testing.T) {
	_, err := Verify(nil, fixtureHandle())
	assertUniform(t, err)
}

// assertUniform checks that err is the bare TokenValidation error.
func assertUniform(t *testing.T, err error) {
	t.Helper()
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != errors.ErrCodeTokenValidation {
		t.Fatalf("expected TOKEN_VALIDATION_ERROR, got %s", appErr.Code)
	}
	if appErr.Cause != nil || len(appErr.Details) != 0 {
		t.Errorf("validation error must carry nothing, got cause=%v details=%v", appErr.Cause, appErr.Details)
	}
	if appErr.Error() != errors.TokenValidation().Error() {
		t.Errorf("expected uniform message, got %q", appErr.Error())
	}
}
