// Package fieldresolve extracts named fields from loosely shaped JSON records
// by trying an ordered list of key paths and coercing the first usable value.
package fieldresolve

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// Coercer converts a raw JSON value to T. ok is false when the value is
// absent, empty, or cannot be converted.
type Coercer[T any] func(v gjson.Result) (T, bool)

// Resolve returns the coerced value of the first path in paths that yields a
// usable value, or def when none does. Paths use gjson syntax, so
// "product.name" reaches one level into a nested product record.
func Resolve[T any](record gjson.Result, paths []string, coerce Coercer[T], def T) T {
	if out, ok := lookup(record, paths, coerce); ok {
		return out
	}
	return def
}

// First chains coercers over the same path list. The first coercer that
// resolves anything wins; later coercers are only consulted on a full miss.
func First[T any](record gjson.Result, def T, steps ...Step[T]) T {
	for _, s := range steps {
		if out, ok := lookup(record, s.Paths, s.Coerce); ok {
			return out
		}
	}
	return def
}

// Step pairs a set of paths with the coercer applied to them.
type Step[T any] struct {
	Paths  []string
	Coerce Coercer[T]
}

func lookup[T any](record gjson.Result, paths []string, coerce Coercer[T]) (T, bool) {
	var zero T
	if !record.IsObject() {
		return zero, false
	}
	for _, p := range paths {
		v := record.Get(p)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if out, ok := coerce(v); ok {
			return out, true
		}
	}
	return zero, false
}

// String accepts any scalar and returns it trimmed. Blank strings miss.
func String(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String, gjson.Number:
		s := strings.TrimSpace(v.String())
		return s, s != ""
	case gjson.True, gjson.False:
		return v.String(), true
	}
	return "", false
}

// Bounds on price literals. Exponents outside the window make later
// division and rounding rescale to huge coefficients.
const (
	maxAmountLen      = 32
	minAmountExponent = -6
	maxAmountExponent = 12
)

// Amount parses a strictly positive decimal from a JSON number or a numeric
// string. Thousands separators, surrounding whitespace and a leading rupee
// sign are tolerated. Zero and negative prices miss so that a later path may
// still supply one, as do literals longer than 32 characters or with an
// exponent outside [-6, 12].
func Amount(v gjson.Result) (decimal.Decimal, bool) {
	var raw string
	switch v.Type {
	case gjson.Number:
		raw = v.Raw
	case gjson.String:
		raw = strings.TrimSpace(v.Str)
		raw = strings.TrimPrefix(raw, "₹")
		raw = strings.TrimPrefix(raw, "Rs.")
		raw = strings.ReplaceAll(raw, ",", "")
		raw = strings.TrimSpace(raw)
	default:
		return decimal.Zero, false
	}
	if len(raw) > maxAmountLen {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, false
	}
	return d, true
}

// PositiveInt coerces numbers and numeric strings to an int greater than zero.
func PositiveInt(v gjson.Result) (int, bool) {
	var in any
	switch v.Type {
	case gjson.Number:
		in = v.Num
	case gjson.String:
		in = strings.TrimSpace(v.Str)
	default:
		return 0, false
	}
	n, err := cast.ToIntE(in)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// StringList accepts an array and keeps its non-blank string members.
// An array with no usable members misses.
func StringList(v gjson.Result) ([]string, bool) {
	if !v.IsArray() {
		return nil, false
	}
	var out []string
	v.ForEach(func(_, el gjson.Result) bool {
		if el.Type == gjson.String {
			if s := strings.TrimSpace(el.Str); s != "" {
				out = append(out, s)
			}
		}
		return true
	})
	return out, len(out) > 0
}

// SingleAsList wraps a single non-blank string in a one-element list.
func SingleAsList(v gjson.Result) ([]string, bool) {
	if v.Type != gjson.String {
		return nil, false
	}
	s := strings.TrimSpace(v.Str)
	if s == "" {
		return nil, false
	}
	return []string{s}, true
}

// OptionalString is String lifted to a pointer so callers can tell absence
// from an empty value.
func OptionalString(v gjson.Result) (*string, bool) {
	s, ok := String(v)
	if !ok {
		return nil, false
	}
	return &s, true
}
