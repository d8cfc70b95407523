// Package claims defines the typed payload schemas a provider's tokens are
// decoded into. A schema value only ever exists after the payload's signature
// has been verified.
package claims

import (
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller-facing pair extracted from verified claims.
type Identity struct {
	Email string `json:"email"`
	Nonce string `json:"nonce"`
}

// Schema is a decodable claims type. Every schema implements jwt.Claims so
// registered time and audience claims can be checked by a policy layer;
// schemas without those claims report them as absent.
type Schema interface {
	jwt.Claims
	Identity() Identity
}

// Google is the ID-token payload issued by Google.
type Google struct {
	Audience string `json:"aud" validate:"required"`
	Issuer   string `json:"iss" validate:"required"`
	Subject  string `json:"sub" validate:"required"`
	Nonce    string `json:"nonce" validate:"required"`
	Email    string `json:"email" validate:"required"`

	ExpiresAt     *jwt.NumericDate `json:"exp,omitempty"`
	IssuedAt      *jwt.NumericDate `json:"iat,omitempty"`
	NotBefore     *jwt.NumericDate `json:"nbf,omitempty"`
	AtHash        *string          `json:"at_hash,omitempty"`
	AuthorizedBy  *string          `json:"azp,omitempty"`
	EmailVerified *bool            `json:"email_verified,omitempty"`
	FamilyName    *string          `json:"family_name,omitempty"`
	GivenName     *string          `json:"given_name,omitempty"`
	HostedDomain  *string          `json:"hd,omitempty"`
	Locale        *string          `json:"locale,omitempty"`
	Name          *string          `json:"name,omitempty"`
	Picture       *string          `json:"picture,omitempty"`
	ID            *string          `json:"jti,omitempty"`
}

// Identity implements Schema.
func (c Google) Identity() Identity {
	return Identity{Email: c.Email, Nonce: c.Nonce}
}

func (c Google) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }
func (c Google) GetIssuedAt() (*jwt.NumericDate, error)       { return c.IssuedAt, nil }
func (c Google) GetNotBefore() (*jwt.NumericDate, error)      { return c.NotBefore, nil }
func (c Google) GetIssuer() (string, error)                   { return c.Issuer, nil }
func (c Google) GetSubject() (string, error)                  { return c.Subject, nil }

func (c Google) GetAudience() (jwt.ClaimStrings, error) {
	return jwt.ClaimStrings{c.Audience}, nil
}

// Minimal carries only the identity pair. Used by the Test provider.
type Minimal struct {
	Email string `json:"email" validate:"required"`
	Nonce string `json:"nonce" validate:"required"`
}

// Identity implements Schema.
func (c Minimal) Identity() Identity {
	return Identity{Email: c.Email, Nonce: c.Nonce}
}

func (Minimal) GetExpirationTime() (*jwt.NumericDate, error) { return nil, nil }
func (Minimal) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (Minimal) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (Minimal) GetIssuer() (string, error)                   { return "", nil }
func (Minimal) GetSubject() (string, error)                  { return "", nil }
func (Minimal) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }
