// Package decode turns a verified payload into a typed claims schema.
package decode

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/kbukum/oidcguard/claims"
	"github.com/kbukum/oidcguard/errors"
	"github.com/kbukum/oidcguard/internal/signature"
	"github.com/kbukum/oidcguard/validation"
)

// Claims decodes p into T. A type mismatch or a missing or empty required
// claim fails the whole decode with TokenValidation; no partial value is
// returned.
//
// Claim names are matched exactly. A key that equals a schema claim only
// when case is ignored ("EMAIL" for "email") is rejected rather than folded
// into the claim.
func Claims[T claims.Schema](p signature.VerifiedPayload) (T, error) {
	var zero T
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(p.Bytes(), &keys); err != nil {
		return zero, errors.TokenValidation()
	}
	names := claimNames(reflect.TypeFor[T]())
	for k := range keys {
		if foldsOnto(k, names) {
			return zero, errors.TokenValidation()
		}
	}

	var out T
	if err := json.Unmarshal(p.Bytes(), &out); err != nil {
		return zero, errors.TokenValidation()
	}
	if err := validation.Validate(out); err != nil {
		return zero, errors.TokenValidation()
	}
	return out, nil
}

// claimNames lists the json names of t's fields.
func claimNames(t reflect.Type) []string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			names = append(names, name)
		}
	}
	return names
}

// foldsOnto reports whether key differs from one of names by case only.
func foldsOnto(key string, names []string) bool {
	for _, n := range names {
		if key != n && strings.EqualFold(key, n) {
			return true
		}
	}
	return false
}
