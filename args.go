package workbench

import (
	"fmt"
	"strings"

	"github.com/aretw0/workbench/pkg/domain"
)

// ParseArgs turns key=value pairs into tool input. Values stay strings; the
// tools parse them leniently. A repeated key keeps the last value.
func ParseArgs(pairs []string) (domain.Input, error) {
	in := domain.Input{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", pair)
		}
		in[key] = value
	}
	return in, nil
}

// SplitLine splits a shell line on whitespace. Double quotes group words and
// a backslash escapes the next character.
func SplitLine(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inWord  bool
		quoted  bool
		escaped bool
	)
	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case r == '"':
			quoted = !quoted
			inWord = true
		case !quoted && (r == ' ' || r == '\t'):
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated quote")
	}
	if escaped {
		current.WriteRune('\\')
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}
