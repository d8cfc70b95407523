// Package provider is the entry point for verifying OpenID Connect ID tokens.
//
// Each IdentityProvider is bound to a trusted key set and a claims schema.
// Validate runs the full pipeline: parse the untrusted token, look up its key
// id in the provider's key set, pick the algorithm from the trusted key's
// type, verify the signature and decode the signed payload.
//
//	id, err := provider.Validate(provider.Google, rawIDToken)
//	if err != nil {
//	    // errors.CodeOf(err) names the failure kind
//	}
//	fmt.Println(id.Email, id.Nonce)
//
// External callers that identify providers by a 256-bit selector use
// FromSelector or ParseSelector: zero selects Google, any other value selects
// Test.
//
// Verification proves only that a trusted key signed the payload. Expiry,
// audience and issuer are left to the policy package.
package provider
