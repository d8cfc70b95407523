package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Verifier error constructors ---

// CertificateParse creates a new AppError for a trusted key-set document that
// failed to parse. Outside of tests this is a startup-fatal condition.
func CertificateParse(cause error) *AppError {
	return &AppError{
		Code: ErrCodeCertificateParse, Message: "Failed to parse certificate",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// TokenDecode creates a new AppError for a token that is not a well-formed
// compact serialization.
func TokenDecode(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTokenDecode, Message: "Failed to decode token",
		HTTPStatus: http.StatusBadRequest, Cause: cause,
	}
}

// KeyIDMissing creates a new AppError for a token header without a key id.
func KeyIDMissing() *AppError {
	return &AppError{
		Code: ErrCodeKeyIDMissing, Message: "Key id missing",
		HTTPStatus: http.StatusBadRequest,
	}
}

// CertificateNotFound creates a new AppError for a key id that matches no
// trusted key of the selected provider.
func CertificateNotFound(kid string) *AppError {
	return &AppError{
		Code: ErrCodeCertificateNotFound, Message: "Certificate not found",
		HTTPStatus: http.StatusUnauthorized,
		Details:    map[string]any{"kid": kid},
	}
}

// AlgorithmNotFound creates a new AppError for a trusted key whose type has
// no supported verification algorithm.
func AlgorithmNotFound(keyType string) *AppError {
	return &AppError{
		Code: ErrCodeAlgorithmNotFound, Message: "Algorithm not found",
		HTTPStatus: http.StatusUnauthorized,
		Details:    map[string]any{"kty": keyType},
	}
}

// TokenValidation creates a new AppError for a failed signature check or a
// verified payload that does not decode into the provider's claims.
// It deliberately carries no cause and no details.
func TokenValidation() *AppError {
	return &AppError{
		Code: ErrCodeTokenValidation, Message: "Failed to validate token",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenGeneration creates a new AppError for a token that could not be issued.
func TokenGeneration(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTokenGeneration, Message: "Failed to generate token",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// --- Policy error constructors ---

// TokenExpired creates a new AppError for a token outside its validity window.
func TokenExpired(reason string) *AppError {
	return &AppError{
		Code: ErrCodeTokenExpired, Message: reason,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// PolicyViolation creates a new AppError for a verified token that a policy rejected.
func PolicyViolation(claim, reason string) *AppError {
	return &AppError{
		Code: ErrCodePolicyViolation, Message: reason,
		HTTPStatus: http.StatusForbidden,
		Details:    map[string]any{"claim": claim},
	}
}

// --- Common error constructors ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Internal creates a new AppError for an internal server error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again or contact support.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// RateLimited creates a new AppError for a client over its request budget.
func RateLimited() *AppError {
	return New(ErrCodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}
