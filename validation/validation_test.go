package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/oidcguard/errors"
)

type sample struct {
	Email    string  `json:"email" validate:"required,email"`
	Nonce    string  `json:"nonce" validate:"required"`
	Locale   *string `json:"locale,omitempty"`
	HostPort string  `validate:"omitempty,hostname_port"`
}

func TestValidate_Valid(t *testing.T) {
	s := sample{Email: "a@b.com", Nonce: "N1"}
	if err := Validate(s); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_UsesJSONNames(t *testing.T) {
	err := Validate(sample{Email: "a@b.com"})
	if err == nil {
		t.Fatal("expected error for missing nonce")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	if !strings.Contains(err.Error(), "nonce: is required") {
		t.Errorf("expected message to name the json field, got %q", err.Error())
	}
}

func TestValidate_CollectsAllFields(t *testing.T) {
	err := Validate(sample{Email: "not-an-email", HostPort: "nope"})
	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok {
		t.Fatalf("expected []FieldError details, got %T", appErr.Details["fields"])
	}
	if len(fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %v", len(fields), fields)
	}
	if fields[2].Field != "host_port" {
		t.Errorf("expected snake_case fallback 'host_port', got %q", fields[2].Field)
	}
}

func TestValidate_NonStruct(t *testing.T) {
	err := Validate("not a struct")
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for non-struct input, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Email":          "email",
		"HostPort":       "host_port",
		"GoogleKeysFile": "google_keys_file",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
