package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by mutations that reference a stable ID no live
// record carries.
var ErrNotFound = errors.New("record not found")

// LoadError reports a structural failure while loading a ledger file. The
// store is guaranteed unchanged when one is returned.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError reports a user-supplied field value that failed type
// coercion during add or update. It is raised before any mutation is
// applied.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// ParseUserDate validates a date entered by the user. Unlike bulk loading,
// a malformed value is an error here, not a silent empty date.
func ParseUserDate(s string) (Date, error) {
	d, ok := ParseDate(s)
	if !ok {
		return Date{}, &ValidationError{Field: "date", Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return d, nil
}

// ParseUserAmount validates an amount entered by the user. Blank means
// zero; negative and non-numeric values are rejected.
func ParseUserAmount(field, s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Value: s, Reason: "not a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: field, Value: s, Reason: "must not be negative"}
	}
	return d, nil
}
