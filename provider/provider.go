package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/kbukum/oidcguard/errors"
)

// IdentityProvider names a token issuer whose key set and claims schema are
// built in.
type IdentityProvider int

const (
	// Google verifies Google-issued ID tokens into claims.Google.
	Google IdentityProvider = iota
	// Test verifies tokens signed by the fixture keys into claims.Minimal.
	Test
)

// String returns the provider's lowercase name.
func (p IdentityProvider) String() string {
	switch p {
	case Google:
		return "google"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("IdentityProvider(%d)", int(p))
	}
}

// Selector returns the canonical 256-bit selector for p: 0 for Google, 1 for
// Test.
func (p IdentityProvider) Selector() *uint256.Int {
	if p == Google {
		return uint256.NewInt(0)
	}
	return uint256.NewInt(1)
}

// FromSelector maps an external 256-bit selector to a provider. Zero (or nil)
// selects Google; every nonzero value selects Test.
func FromSelector(sel *uint256.Int) IdentityProvider {
	if sel == nil || sel.IsZero() {
		return Google
	}
	return Test
}

// ParseSelector parses a selector written as a decimal or 0x-prefixed hex
// 256-bit unsigned integer.
func ParseSelector(s string) (IdentityProvider, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.InvalidInput("provider", "empty selector")
	}

	var (
		sel *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		// FromHex rejects leading zero digits; padded selectors are common.
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" && len(s) > 2 {
			digits = "0"
		}
		sel, err = uint256.FromHex("0x" + digits)
	} else {
		sel, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return 0, errors.InvalidInput("provider", fmt.Sprintf("invalid selector %q", s)).WithCause(err)
	}
	return FromSelector(sel), nil
}

// Parse accepts a provider name ("google", "test") or a selector.
func Parse(s string) (IdentityProvider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "google":
		return Google, nil
	case "test":
		return Test, nil
	}
	return ParseSelector(s)
}

// MarshalJSON encodes p by name.
func (p IdentityProvider) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts a JSON number of any size or a string understood by
// Parse.
func (p *IdentityProvider) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return errors.InvalidInput("provider", "null selector")
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errors.InvalidInput("provider", "invalid selector").WithCause(err)
		}
		v, err := Parse(s)
		if err != nil {
			return err
		}
		*p = v
		return nil
	}
	v, err := ParseSelector(raw)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
