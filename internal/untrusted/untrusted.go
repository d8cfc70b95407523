// Package untrusted splits a compact-serialized token into its parts without
// trusting any of them. Nothing returned here has been authenticated.
package untrusted

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/oidcguard/errors"
)

// Header is the token's self-declared JOSE header.
type Header struct {
	Algorithm string `json:"alg"`
	KeyID     string `json:"kid"`
	Type      string `json:"typ"`
}

// Token is a parsed but unverified token.
type Token struct {
	Header Header

	// SigningInput is header.payload exactly as it appeared on the wire.
	SigningInput string
	// Payload is the decoded payload. It is never interpreted here.
	Payload []byte
	// Signature is the still-encoded signature segment.
	Signature string
}

var segmentParser = jwt.NewParser(jwt.WithStrictDecoding())

// Parse splits raw into exactly three segments and decodes the header and
// payload. Any structural problem is a TokenDecode error.
func Parse(raw string) (*Token, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, errors.TokenDecode(fmt.Errorf("token has %d segments, want 3", len(parts)))
	}

	headerJSON, err := segmentParser.DecodeSegment(parts[0])
	if err != nil {
		return nil, errors.TokenDecode(fmt.Errorf("header: %w", err))
	}
	// A JSON null would unmarshal into an empty Header without error.
	if trimmed := bytes.TrimSpace(headerJSON); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.TokenDecode(fmt.Errorf("header is not a JSON object"))
	}
	var h Header
	if err := json.Unmarshal(headerJSON, &h); err != nil {
		return nil, errors.TokenDecode(fmt.Errorf("header json: %w", err))
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, errors.TokenDecode(fmt.Errorf("payload: %w", err))
	}

	return &Token{
		Header:       h,
		SigningInput: raw[:len(parts[0])+1+len(parts[1])],
		Payload:      payload,
		Signature:    parts[2],
	}, nil
}

// KeyID returns the header's key id. A token without one is rejected; there
// is no fallback to trying every trusted key.
func (t *Token) KeyID() (string, error) {
	if t.Header.KeyID == "" {
		return "", errors.KeyIDMissing()
	}
	return t.Header.KeyID, nil
}
