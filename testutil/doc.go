// Package testutil provides helpers for tests that need signed tokens and
// trusted key sets.
//
// Tokens are signed with the fixture RSA key from the fixtures package.
// fixtures.TestKeySet publishes it under fixtures.RSAKeyID and has to be
// installed explicitly:
//
//	func TestValidate(t *testing.T) {
//	    h := testutil.T(t)
//	    d := provider.NewDispatcher(provider.WithKeySet(provider.Test, fixtures.TestKeySet()))
//	    tok := h.Sign(fixtures.RSAKeyID, jwt.MapClaims{"email": "a@b.com", "nonce": "n"})
//	    id, err := d.Validate(provider.Test, tok)
//	}
//
// Key sets for isolated tests are built with go-jose:
//
//	raw := h.KeySet(h.RSAJWK("k1", h.Key()), h.ECJWK("k2"))
package testutil
