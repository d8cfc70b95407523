package policy

import (
	"fmt"
	"time"
)

// Config selects the registered-claim checks applied after verification.
type Config struct {
	// Enabled turns the policy layer on. Off by default.
	Enabled bool `mapstructure:"enabled"`

	// Providers lists provider names the policy applies to (default: google).
	Providers []string `mapstructure:"providers"`

	// Audiences allow-lists the aud claim. Empty accepts any audience.
	Audiences []string `mapstructure:"audiences"`

	// Issuers allow-lists the iss claim. Empty accepts any issuer.
	Issuers []string `mapstructure:"issuers"`

	// Leeway tolerates clock skew on exp, nbf and iat (default: 30s).
	Leeway time.Duration `mapstructure:"leeway"`

	// RequireExpiry rejects tokens without an exp claim.
	RequireExpiry bool `mapstructure:"require_expiry"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if len(c.Providers) == 0 {
		c.Providers = []string{"google"}
	}
	if c.Leeway == 0 {
		c.Leeway = 30 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Leeway < 0 {
		return fmt.Errorf("policy: leeway must not be negative, got %s", c.Leeway)
	}
	if c.Leeway > time.Hour {
		return fmt.Errorf("policy: leeway must be at most 1h, got %s", c.Leeway)
	}
	for _, a := range c.Audiences {
		if a == "" {
			return fmt.Errorf("policy: empty audience")
		}
	}
	for _, i := range c.Issuers {
		if i == "" {
			return fmt.Errorf("policy: empty issuer")
		}
	}
	return nil
}
