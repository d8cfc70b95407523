// Package validation runs struct-tag validation with go-playground/validator.
//
// Field names in error messages follow the struct's json tags, so a claims
// struct reports the claim name that was missing:
//
//	type Claims struct {
//	    Email string `json:"email" validate:"required"`
//	}
//	err := validation.Validate(c) // INVALID_INPUT: email: is required
package validation
