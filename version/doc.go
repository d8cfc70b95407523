// Package version reports build information for the oidcguard binary.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/oidcguard/version.Version=1.0.0" ./cmd/oidcguard
package version
