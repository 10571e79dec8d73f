package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/workbench/pkg/domain"
)

// DateLayout is the layout of date inputs (an HTML date field value).
const DateLayout = "2006-01-02"

// Text returns the string form of a raw value. Missing values are empty.
func Text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return fmt.Sprint(s)
	}
}

// RequireText trims s and fails with msg when nothing is left.
func RequireText(s, msg string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", domain.Validation("%s", msg)
	}
	return trimmed, nil
}

// ParseDate reads a YYYY-MM-DD value as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}
