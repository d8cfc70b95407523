package provider

import (
	"fmt"
	"sort"

	"github.com/kbukum/oidcguard/claims"
	"github.com/kbukum/oidcguard/errors"
	"github.com/kbukum/oidcguard/internal/algorithm"
	"github.com/kbukum/oidcguard/internal/decode"
	"github.com/kbukum/oidcguard/internal/keystore"
	"github.com/kbukum/oidcguard/internal/signature"
	"github.com/kbukum/oidcguard/internal/untrusted"
	"github.com/kbukum/oidcguard/logger"
)

// Identity is the email and nonce taken from a verified token.
type Identity = claims.Identity

// binding ties a provider to its trust anchor and claims schema.
type binding struct {
	keys   *keystore.Lazy
	decode func(signature.VerifiedPayload) (claims.Schema, error)
}

// Dispatcher routes tokens to the key set and schema of the requested
// provider. Bindings are fixed at construction and key sets load at most once,
// so a Dispatcher is safe for concurrent use.
type Dispatcher struct {
	bindings map[IdentityProvider]binding
	log      *logger.Logger
}

// Option configures a Dispatcher.
type Option func(*options)

type options struct {
	sources map[IdentityProvider]keystore.Source
	log     *logger.Logger
}

// WithKeySource replaces the embedded key set of p.
func WithKeySource(p IdentityProvider, src keystore.Source) Option {
	return func(o *options) { o.sources[p] = src }
}

// WithKeyFile replaces the embedded key set of p with the JWK-set document
// at path. The file is read on first use.
func WithKeyFile(p IdentityProvider, path string) Option {
	return WithKeySource(p, keystore.File(path))
}

// WithKeySet replaces the embedded key set of p with doc.
func WithKeySet(p IdentityProvider, doc []byte) Option {
	return WithKeySource(p, keystore.Bytes(doc))
}

// WithLogger sets the logger used for debug tracing of each validation.
// Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewDispatcher creates a Dispatcher over the embedded key sets. Nothing is
// parsed until first use or Preload.
func NewDispatcher(opts ...Option) *Dispatcher {
	o := &options{sources: map[IdentityProvider]keystore.Source{
		Google: embeddedSource(Google),
		Test:   embeddedSource(Test),
	}}
	for _, opt := range opts {
		opt(o)
	}

	d := &Dispatcher{
		bindings: map[IdentityProvider]binding{
			Google: {keys: keystore.NewLazy(o.sources[Google]), decode: decodeAs[claims.Google]},
			Test:   {keys: keystore.NewLazy(o.sources[Test]), decode: decodeAs[claims.Minimal]},
		},
		log: o.log,
	}
	return d
}

// Validate verifies token against p's key set and returns its identity.
func (d *Dispatcher) Validate(p IdentityProvider, token string) (Identity, error) {
	c, err := d.ValidateClaims(p, token)
	if err != nil {
		return Identity{}, err
	}
	return c.Identity(), nil
}

// ValidateClaims verifies token against p's key set and returns the full
// typed claims: claims.Google for Google, claims.Minimal for Test. Expiry,
// audience and issuer are not checked.
func (d *Dispatcher) ValidateClaims(p IdentityProvider, token string) (claims.Schema, error) {
	b, ok := d.bindings[p]
	if !ok {
		return nil, errors.InvalidInput("provider", fmt.Sprintf("unknown identity provider %s", p))
	}
	log := d.logger().WithFields(logger.Fields(logger.FieldProvider, p.String()))

	c, kid, err := b.validate(token)
	if err != nil {
		log.Debug("token rejected", logger.Fields(
			logger.FieldKeyID, kid,
			logger.FieldErrorCode, string(errors.CodeOf(err)),
		))
		return nil, err
	}
	log.Debug("token verified", logger.Fields(logger.FieldKeyID, kid))
	return c, nil
}

func (b binding) validate(token string) (claims.Schema, string, error) {
	tok, err := untrusted.Parse(token)
	if err != nil {
		return nil, "", err
	}
	kid, err := tok.KeyID()
	if err != nil {
		return nil, "", err
	}
	key, err := b.keys.Find(kid)
	if err != nil {
		return nil, kid, err
	}
	h, err := algorithm.Resolve(key)
	if err != nil {
		return nil, kid, err
	}
	payload, err := signature.Verify(tok, h)
	if err != nil {
		return nil, kid, err
	}
	c, err := b.decode(payload)
	if err != nil {
		return nil, kid, err
	}
	return c, kid, nil
}

// Preload parses every provider's key set now, returning the first failure.
func (d *Dispatcher) Preload() error {
	for _, p := range d.Providers() {
		set, err := d.bindings[p].keys.Get()
		if err != nil {
			return fmt.Errorf("provider %s: %w", p, err)
		}
		d.logger().Debug("key set loaded", logger.Fields(logger.FieldProvider, p.String(), "keys", set.Len()))
	}
	return nil
}

// KeyIDs lists the key ids trusted for p, loading its key set if needed.
func (d *Dispatcher) KeyIDs(p IdentityProvider) ([]string, error) {
	b, ok := d.bindings[p]
	if !ok {
		return nil, errors.InvalidInput("provider", fmt.Sprintf("unknown identity provider %s", p))
	}
	set, err := b.keys.Get()
	if err != nil {
		return nil, err
	}
	return set.KeyIDs(), nil
}

// Providers returns the bound providers in selector order.
func (d *Dispatcher) Providers() []IdentityProvider {
	ps := make([]IdentityProvider, 0, len(d.bindings))
	for p := range d.bindings {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i] < ps[j] })
	return ps
}

func (d *Dispatcher) logger() *logger.Logger {
	if d.log != nil {
		return d.log
	}
	return logger.WithComponent("provider")
}

func decodeAs[T claims.Schema](p signature.VerifiedPayload) (claims.Schema, error) {
	c, err := decode.Claims[T](p)
	if err != nil {
		return nil, err
	}
	return c, nil
}

var defaultDispatcher = NewDispatcher()

// Validate verifies token with the built-in key sets.
func Validate(p IdentityProvider, token string) (Identity, error) {
	return defaultDispatcher.Validate(p, token)
}

// ValidateClaims verifies token with the built-in key sets and returns the
// typed claims.
func ValidateClaims(p IdentityProvider, token string) (claims.Schema, error) {
	return defaultDispatcher.ValidateClaims(p, token)
}
