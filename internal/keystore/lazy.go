package keystore

import (
	"fmt"
	"os"
	"sync"

	"github.com/kbukum/oidcguard/errors"
)

// Source produces the raw JWK-set document for a key set.
type Source func() ([]byte, error)

// Bytes returns a Source serving a fixed document.
func Bytes(b []byte) Source {
	return func() ([]byte, error) { return b, nil }
}

// File returns a Source reading the document from path on first use.
func File(path string) Source {
	return func() ([]byte, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return b, nil
	}
}

// Lazy parses its key set on first use and serves the same result, set or
// error, to every later caller. Safe for concurrent use.
type Lazy struct {
	source Source

	once sync.Once
	set  *KeySet
	err  error
}

// NewLazy creates a Lazy key set backed by src.
func NewLazy(src Source) *Lazy {
	return &Lazy{source: src}
}

// Get returns the parsed key set, loading it on the first call.
func (l *Lazy) Get() (*KeySet, error) {
	l.once.Do(func() {
		raw, err := l.source()
		if err != nil {
			l.err = errors.CertificateParse(err)
			return
		}
		l.set, l.err = Load(raw)
	})
	return l.set, l.err
}

// Find loads the set if needed and looks up kid.
func (l *Lazy) Find(kid string) (SigningKey, error) {
	set, err := l.Get()
	if err != nil {
		return SigningKey{}, err
	}
	return set.Find(kid)
}
