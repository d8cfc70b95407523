package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeTokenDecode, "bad token", http.StatusBadRequest)
	if err.Code != ErrCodeTokenDecode {
		t.Errorf("expected code %s, got %s", ErrCodeTokenDecode, err.Code)
	}
	if err.Message != "bad token" {
		t.Errorf("expected message 'bad token', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("TOKEN_DECODE_ERROR should not be retryable")
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		code    ErrorCode
		status  int
		message string
	}{
		{"CertificateParse", CertificateParse(nil), ErrCodeCertificateParse, http.StatusInternalServerError, "Failed to parse certificate"},
		{"TokenDecode", TokenDecode(nil), ErrCodeTokenDecode, http.StatusBadRequest, "Failed to decode token"},
		{"KeyIDMissing", KeyIDMissing(), ErrCodeKeyIDMissing, http.StatusBadRequest, "Key id missing"},
		{"CertificateNotFound", CertificateNotFound("kid-1"), ErrCodeCertificateNotFound, http.StatusUnauthorized, "Certificate not found"},
		{"AlgorithmNotFound", AlgorithmNotFound("EC"), ErrCodeAlgorithmNotFound, http.StatusUnauthorized, "Algorithm not found"},
		{"TokenValidation", TokenValidation(), ErrCodeTokenValidation, http.StatusUnauthorized, "Failed to validate token"},
		{"TokenGeneration", TokenGeneration(nil), ErrCodeTokenGeneration, http.StatusInternalServerError, "Failed to generate token"},
		{"TokenExpired", TokenExpired("token expired"), ErrCodeTokenExpired, http.StatusUnauthorized, "token expired"},
		{"PolicyViolation", PolicyViolation("aud", "audience not allowed"), ErrCodePolicyViolation, http.StatusForbidden, "audience not allowed"},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput, http.StatusBadRequest, "bad input"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.Message != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, tc.err.Message)
			}
			if tc.err.Retryable {
				t.Errorf("expected %s to not be retryable", tc.code)
			}
		})
	}
}

func TestAppError_TokenValidation_CarriesNothing(t *testing.T) {
	err := TokenValidation()
	if err.Cause != nil {
		t.Error("TokenValidation must not carry a cause")
	}
	if len(err.Details) != 0 {
		t.Errorf("TokenValidation must not carry details, got %v", err.Details)
	}
	if err.Error() != "TOKEN_VALIDATION_ERROR: Failed to validate token" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}

func TestAppError_CertificateNotFound_Details(t *testing.T) {
	err := CertificateNotFound("abc")
	if err.Details["kid"] != "abc" {
		t.Errorf("expected kid=abc, got %v", err.Details["kid"])
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("provider", "not a number")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "provider" {
		t.Errorf("expected field=provider, got %v", err.Details["field"])
	}

	err2 := InvalidInput("", "x")
	if _, ok := err2.Details["field"]; ok {
		t.Error("expected no 'field' key in details when field is empty")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := TokenDecode(nil).WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}

	err.WithDetail("key", "other")
	if err.Details["key"] != "other" {
		t.Errorf("expected key=other after overwrite, got %v", err.Details["key"])
	}
}

func TestAppError_Unwrap_Success(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Internal(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
	if KeyIDMissing().Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestAppError_ToResponse_OmitsCause(t *testing.T) {
	err := CertificateParse(fmt.Errorf("bad modulus"))
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeCertificateParse {
		t.Errorf("expected CERTIFICATE_PARSE_ERROR in response, got %s", resp.Error.Code)
	}
	if strings.Contains(resp.Error.Message, "modulus") {
		t.Errorf("response must not leak the cause, got %q", resp.Error.Message)
	}
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", KeyIDMissing())
	if !HasCode(wrapped, ErrCodeKeyIDMissing) {
		t.Error("expected HasCode to see through wrapping")
	}
	if HasCode(wrapped, ErrCodeTokenDecode) {
		t.Error("expected HasCode to reject a different code")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeKeyIDMissing) {
		t.Error("expected HasCode to be false for plain errors")
	}
	if HasCode(nil, ErrCodeKeyIDMissing) {
		t.Error("expected HasCode to be false for nil")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(TokenValidation()); got != ErrCodeTokenValidation {
		t.Errorf("expected TOKEN_VALIDATION_ERROR, got %s", got)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR for plain errors, got %s", got)
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	appErr := Internal(nil)
	wrapped := fmt.Errorf("wrap: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}

	if IsAppError(fmt.Errorf("not an app error")) {
		t.Error("expected IsAppError to return false for non-AppError")
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var err error = AlgorithmNotFound("oct")
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}

	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		t.Error("stderrors.As should work with AppError")
	}
}

func TestRateLimited_Retryable(t *testing.T) {
	err := RateLimited()
	if !err.Retryable {
		t.Error("RATE_LIMITED should be retryable")
	}
	if err.HTTPStatus != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", err.HTTPStatus)
	}
}
