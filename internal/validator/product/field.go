package product

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags the outcome of coercing a single field.
type Kind int

const (
	FieldOK Kind = iota
	FieldWarning
	FieldError
)

func (k Kind) String() string {
	switch k {
	case FieldWarning:
		return "warning"
	case FieldError:
		return "error"
	default:
		return "ok"
	}
}

// Field is a coerced value together with how the coercion went. On
// FieldError, Value is the zero value and must not be trusted.
type Field[T any] struct {
	Value  T
	Kind   Kind
	Reason string
}

func ok[T any](v T) Field[T] { return Field[T]{Value: v, Kind: FieldOK} }

func warn[T any](v T, reason string) Field[T] {
	return Field[T]{Value: v, Kind: FieldWarning, Reason: reason}
}

func fail[T any](reason string) Field[T] { return Field[T]{Kind: FieldError, Reason: reason} }

// Result drops the value, keeping the tag.
func (f Field[T]) Result() Result { return Result{Kind: f.Kind, Reason: f.Reason} }

// Result is the value-less outcome of one rule.
type Result struct {
	Kind   Kind
	Reason string
}

var pass = Result{Kind: FieldOK}

// maxWhole is the largest count the products table stores (INTEGER).
var maxWhole = decimal.NewFromInt(math.MaxInt32)

// ParseWhole parses a non-negative whole number no larger than maxWhole.
func ParseWhole(field, raw string) Field[int] {
	s := strings.TrimSpace(raw)
	n, err := decimal.NewFromString(s)
	if err != nil {
		return fail[int](fmt.Sprintf("Invalid %s: %q is not a number", field, raw))
	}
	if !n.IsInteger() {
		return fail[int](fmt.Sprintf("Invalid %s: %q is not a whole number", field, raw))
	}
	if n.IsNegative() {
		return fail[int](fmt.Sprintf("Invalid %s: %q must not be negative", field, raw))
	}
	if n.GreaterThan(maxWhole) {
		return fail[int](fmt.Sprintf("Invalid %s: %q is out of range", field, raw))
	}
	return ok(int(n.IntPart()))
}

// ParseAmount parses a non-negative decimal amount.
func ParseAmount(field, raw string) Field[decimal.Decimal] {
	s := strings.TrimSpace(raw)
	n, err := decimal.NewFromString(s)
	if err != nil {
		return fail[decimal.Decimal](fmt.Sprintf("Invalid %s: %q is not a number", field, raw))
	}
	if n.IsNegative() {
		return fail[decimal.Decimal](fmt.Sprintf("Invalid %s: %q must not be negative", field, raw))
	}
	return ok(n)
}

// ParseEnum matches raw case-insensitively against allowed. An empty value
// yields the default silently; an unknown one yields the default with a
// warning.
func ParseEnum(field, raw string, allowed []string, def string) Field[string] {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ok(def)
	}
	for _, a := range allowed {
		if s == a {
			return ok(a)
		}
	}
	return warn(def, fmt.Sprintf("Unrecognized %s %q, defaulting to %q", field, raw, def))
}

// ParseBool accepts "true" and "false" in any case. Empty yields def; any
// other literal yields def with a warning.
func ParseBool(field, raw string, def bool) Field[bool] {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return ok(def)
	case "true":
		return ok(true)
	case "false":
		return ok(false)
	}
	return warn(def, fmt.Sprintf("Invalid boolean for %s: %q, defaulting to %t", field, raw, def))
}
