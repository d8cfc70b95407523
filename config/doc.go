// Package config loads oidcguard configuration.
//
// It uses Viper to read a YAML config file and godotenv to pull a .env file
// into the environment. Environment variables prefixed with OIDCGUARD_
// override file values using underscore-separated paths
// (e.g. OIDCGUARD_SERVER_PORT, OIDCGUARD_TRUST_GOOGLE_KEYS_FILE).
//
// # Usage
//
//	var cfg config.Config
//	if err := config.LoadConfig("oidcguard", &cfg); err != nil {
//		return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
package config
