package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Trust anchor errors
const (
	// ErrCodeCertificateParse indicates a trusted key-set document could not be parsed.
	ErrCodeCertificateParse ErrorCode = "CERTIFICATE_PARSE_ERROR"
	// ErrCodeCertificateNotFound indicates no trusted key matches the token's key id.
	ErrCodeCertificateNotFound ErrorCode = "CERTIFICATE_NOT_FOUND"
	// ErrCodeAlgorithmNotFound indicates the matched key's type has no supported algorithm.
	ErrCodeAlgorithmNotFound ErrorCode = "ALGORITHM_NOT_FOUND"
)

// Token errors
const (
	// ErrCodeTokenDecode indicates the token is not a well-formed compact serialization.
	ErrCodeTokenDecode ErrorCode = "TOKEN_DECODE_ERROR"
	// ErrCodeKeyIDMissing indicates the token header carries no key id.
	ErrCodeKeyIDMissing ErrorCode = "KEY_ID_MISSING"
	// ErrCodeTokenValidation indicates the signature or the signed claims did not verify.
	ErrCodeTokenValidation ErrorCode = "TOKEN_VALIDATION_ERROR"
	// ErrCodeTokenGeneration indicates a token could not be issued.
	ErrCodeTokenGeneration ErrorCode = "TOKEN_GENERATION_ERROR"
)

// Policy errors
const (
	// ErrCodeTokenExpired indicates the token is outside its validity window.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodePolicyViolation indicates a verified token failed an audience or issuer rule.
	ErrCodePolicyViolation ErrorCode = "POLICY_VIOLATION"
)

// Request and internal errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeRateLimited indicates the client exceeded the HTTP request rate.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Verification is pure computation over the caller's input, so repeating a
// failed call with the same token cannot succeed. Only the HTTP rate limit
// clears on its own.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeRateLimited: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
