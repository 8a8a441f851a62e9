// Package validation holds the pure input checks shared by the API server
// and the dashboard: email and password rules, job field normalization and
// list query normalization. Nothing here touches storage or the network.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is built once at init and only read afterwards.
var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError reports a single failed rule on a single input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return e.Message }

// FieldErrors lists every failed rule in evaluation order.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	return fe[0].Message
}

// First returns the first failing rule.
func (fe FieldErrors) First() FieldError {
	if len(fe) == 0 {
		return FieldError{}
	}
	return fe[0]
}

func check(v any, tag string) bool {
	return validate.Var(v, tag) == nil
}

// NormalizeEmail trims and lower-cases an address before validation,
// storage or lookup.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
