// Package errors provides the error type returned by every oidcguard
// component. Each failure class of the verifier maps to exactly one
// ErrorCode, and each code carries a recommended HTTP status so outer
// surfaces can render RFC 7807 style responses without re-classifying.
package errors
