// Package policy applies registered-claim rules to claims that have already
// passed signature verification: expiry, not-before, issued-at, audience and
// issuer. It is opt-in and never runs inside provider.Validate.
package policy

import (
	stderrors "errors"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/oidcguard/claims"
	"github.com/kbukum/oidcguard/errors"
)

// Checker evaluates one Config.
type Checker struct {
	cfg Config
}

// New creates a Checker. The config is defaulted and validated.
func New(cfg Config) (*Checker, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Checker{cfg: cfg}, nil
}

// Enabled reports whether the policy is switched on.
func (c *Checker) Enabled() bool {
	return c != nil && c.cfg.Enabled
}

// AppliesTo reports whether claims from the named provider are checked.
func (c *Checker) AppliesTo(provider string) bool {
	if !c.Enabled() {
		return false
	}
	return slices.ContainsFunc(c.cfg.Providers, func(p string) bool {
		return strings.EqualFold(p, provider)
	})
}

// Check evaluates the rules against verified claims at time now. Time
// failures are TOKEN_EXPIRED; audience and issuer failures are
// POLICY_VIOLATION.
func (c *Checker) Check(cl claims.Schema, now time.Time) error {
	opts := []jwt.ParserOption{
		jwt.WithLeeway(c.cfg.Leeway),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithIssuedAt(),
	}
	if c.cfg.RequireExpiry {
		opts = append(opts, jwt.WithExpirationRequired())
	}
	if err := jwt.NewValidator(opts...).Validate(cl); err != nil {
		return timeError(err)
	}

	if len(c.cfg.Issuers) > 0 {
		iss, _ := cl.GetIssuer()
		if !slices.Contains(c.cfg.Issuers, iss) {
			return errors.PolicyViolation("iss", "issuer not allowed")
		}
	}
	if len(c.cfg.Audiences) > 0 {
		aud, _ := cl.GetAudience()
		if !slices.ContainsFunc(aud, func(a string) bool { return slices.Contains(c.cfg.Audiences, a) }) {
			return errors.PolicyViolation("aud", "audience not allowed")
		}
	}
	return nil
}

func timeError(err error) error {
	switch {
	case stderrors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return errors.TokenExpired("token has no expiry")
	case stderrors.Is(err, jwt.ErrTokenExpired):
		return errors.TokenExpired("token expired")
	case stderrors.Is(err, jwt.ErrTokenNotValidYet):
		return errors.TokenExpired("token not valid yet")
	case stderrors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return errors.TokenExpired("token used before issued")
	default:
		return errors.PolicyViolation("", "registered claims rejected").WithCause(err)
	}
}
