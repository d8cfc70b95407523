package config

import (
	"fmt"

	"github.com/kbukum/oidcguard/observability"
	"github.com/kbukum/oidcguard/policy"
	"github.com/kbukum/oidcguard/provider"
	"github.com/kbukum/oidcguard/server"
)

// Config is the full oidcguard configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Trust         TrustConfig          `yaml:"trust" mapstructure:"trust"`
	Policy        policy.Config        `yaml:"policy" mapstructure:"policy"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Policy.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Trust.Validate(); err != nil {
		return err
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("config.policy: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	return nil
}

// TrustConfig overrides the embedded trust anchors per deployment. Empty
// paths keep the key sets compiled into the binary.
type TrustConfig struct {
	GoogleKeysFile string `yaml:"google_keys_file" mapstructure:"google_keys_file"`
	TestKeysFile   string `yaml:"test_keys_file" mapstructure:"test_keys_file"`
}

// Validate checks that configured key files exist.
func (c *TrustConfig) Validate() error {
	fs := &RealFileSystem{}
	if c.GoogleKeysFile != "" && !fs.Exists(c.GoogleKeysFile) {
		return fmt.Errorf("trust.google_keys_file: %s not found", c.GoogleKeysFile)
	}
	if c.TestKeysFile != "" && !fs.Exists(c.TestKeysFile) {
		return fmt.Errorf("trust.test_keys_file: %s not found", c.TestKeysFile)
	}
	return nil
}

// DispatcherOptions returns the provider options for the configured key files.
func (c *TrustConfig) DispatcherOptions() []provider.Option {
	var opts []provider.Option
	if c.GoogleKeysFile != "" {
		opts = append(opts, provider.WithKeyFile(provider.Google, c.GoogleKeysFile))
	}
	if c.TestKeysFile != "" {
		opts = append(opts, provider.WithKeyFile(provider.Test, c.TestKeysFile))
	}
	return opts
}
