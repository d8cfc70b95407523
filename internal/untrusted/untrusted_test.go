package untrusted

import (
	"encoding/base64"
	"testing"

	"github.com/kbukum/oidcguard/errors"
	"github.com/kbukum/oidcguard/testutil/fixtures"
)

func seg(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestParse_GoldenToken(t *testing.T) {
	tok, err := Parse(fixtures.GoldenToken)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tok.Header.Algorithm != "RS256" {
		t.Errorf("expected alg RS256, got %q", tok.Header.Algorithm)
	}
	if tok.Header.KeyID != fixtures.RSAKeyID {
		t.Errorf("expected kid %q, got %q", fixtures.RSAKeyID, tok.Header.KeyID)
	}
	if string(tok.Payload) != `{"email":"a@b.com","nonce":"N1"}` {
		t.Errorf("unexpected payload %q", tok.Payload)
	}
	wantInput := "eyJhbGciOiJSUzI1NiIsImtpZCI6IktJRDEifQ.eyJlbWFpbCI6ImFAYi5jb20iLCJub25jZSI6Ik4xIn0"
	if tok.SigningInput != wantInput {
		t.Errorf("signing input = %q, want %q", tok.SigningInput, wantInput)
	}
	if tok.Signature == "" {
		t.Error("expected signature segment")
	}

	kid, err := tok.KeyID()
	if err != nil || kid != fixtures.RSAKeyID {
		t.Errorf("KeyID() = %q, %v", kid, err)
	}
}

func TestParse_PayloadNotInterpreted(t *testing.T) {
	raw := seg(`{"alg":"RS256","kid":"k"}`) + "." + seg("not json at all") + ".c2ln"
	tok, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if string(tok.Payload) != "not json at all" {
		t.Errorf("unexpected payload %q", tok.Payload)
	}
}

func TestParse_SignatureLeftEncoded(t *testing.T) {
	raw := seg(`{"alg":"RS256","kid":"k"}`) + "." + seg("{}") + ".!!not-base64!!"
	tok, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tok.Signature != "!!not-base64!!" {
		t.Errorf("unexpected signature %q", tok.Signature)
	}
}

func TestParse_Errors(t *testing.T) {
	header := seg(`{"alg":"RS256","kid":"k"}`)
	payload := seg(`{"email":"a@b.com"}`)

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"two segments", "x.y"},
		{"one segment", header},
		{"four segments", header + "." + payload + ".sig.extra"},
		{"header not base64", "!!!." + payload + ".sig"},
		{"header padded", seg(`{"alg":"RS256"}`) + "==." + payload + ".sig"},
		{"header not json", seg("nope") + "." + payload + ".sig"},
		{"header json array", seg(`["RS256"]`) + "." + payload + ".sig"},
		{"header json null", seg("null") + "." + payload + ".sig"},
		{"header json string", seg(`"RS256"`) + "." + payload + ".sig"},
		{"header json number", seg("7") + "." + payload + ".sig"},
		{"header kid wrong type", seg(`{"alg":"RS256","kid":7}`) + "." + payload + ".sig"},
		{"empty header", "." + payload + ".sig"},
		{"payload not base64", header + ".@@@.sig"},
		{"payload std alphabet", header + ".ab+/.sig"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.raw)
			if !errors.HasCode(err, errors.ErrCodeTokenDecode) {
				t.Errorf("expected TOKEN_DECODE_ERROR, got %v", err)
			}
		})
	}
}

func TestKeyID_Missing(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"absent", `{"alg":"RS256"}`},
		{"empty", `{"alg":"RS256","kid":""}`},
		{"null", `{"alg":"RS256","kid":null}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tok, err := Parse(seg(tc.header) + "." + seg(`{}`) + ".c2ln")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if _, err := tok.KeyID(); !errors.HasCode(err, errors.ErrCodeKeyIDMissing) {
				t.Errorf("expected KEY_ID_MISSING, got %v", err)
			}
		})
	}
}
