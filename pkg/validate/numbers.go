package validate

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
)

// ParseFloat reads the longest numeric prefix of s after leading whitespace,
// the way a browser number field is read: "12kg" is 12, "abc" does not parse.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := floatPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		// Only range errors remain; ParseFloat already returned ±Inf.
		return v, !math.IsNaN(v)
	}
	return v, true
}

// ParseInt reads the leading base-10 integer of s. "12.7" is 12.
func ParseInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := intPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		if strings.HasPrefix(m, "-") {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return v, true
}

// Number converts a raw input value to a float64.
// Strings use ParseFloat semantics; NaN never parses.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), !math.IsNaN(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		return ParseFloat(n.String())
	case string:
		return ParseFloat(n)
	default:
		return 0, false
	}
}

// Integer converts a raw input value to an int, truncating fractions.
// Floats beyond the int range saturate at math.MaxInt or math.MinInt.
func Integer(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		return ParseInt(n)
	case json.Number:
		return ParseInt(n.String())
	}
	f, ok := Number(v)
	switch {
	case !ok || math.IsInf(f, 0):
		return 0, false
	case f >= math.MaxInt:
		return math.MaxInt, true
	case f <= math.MinInt:
		return math.MinInt, true
	}
	return int(f), true
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Flag reads a checkbox-like value. Missing values are false.
func Flag(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "1", "t", "true", "on", "yes", "y":
			return true
		}
		return false
	}
	f, ok := Number(v)
	return ok && f != 0
}

// FormatFixed renders v with a fixed number of decimals.
func FormatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
