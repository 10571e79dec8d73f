package validate

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/workbench/pkg/domain"
)

var (
	// DefaultMaxInputSize is 1MB, enough for a pasted JSON document.
	DefaultMaxInputSize = 1 << 20
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "WORKBENCH_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// CheckInput enforces the size limit and UTF-8 validity on text arriving
// from a front end.
func CheckInput(input string) error {
	return CheckInputLimit(input, MaxInputSize())
}

// CheckInputLimit is CheckInput with an explicit byte limit. The text itself
// is never altered: control characters are legitimate tool input.
func CheckInputLimit(input string, limit int) error {
	if len(input) > limit {
		// Rejected rather than truncated: a truncated JSON document is a different document.
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}
	return nil
}

// StripControl removes control characters other than newline, tab and
// carriage return. It is meant for log attributes, not tool input.
func StripControl(s string) string {
	clean := true
	for _, r := range s {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizeFields applies CheckInputLimit to every string field of in and
// returns a copy. Values are passed through unchanged; non-string values
// (numbers, flags, uploaded bytes) are not checked.
func SanitizeFields(in domain.Input, limit int) (domain.Input, error) {
	out := make(domain.Input, len(in))
	for k, v := range in {
		if s, ok := v.(string); ok {
			if err := CheckInputLimit(s, limit); err != nil {
				return nil, fmt.Errorf("field %q: %w", k, err)
			}
		}
		out[k] = v
	}
	return out, nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

// MaxInputSize returns the configured limit, honouring EnvMaxInputSize.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
