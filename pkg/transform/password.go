package transform

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/registry"
	"github.com/aretw0/workbench/pkg/validate"
)

// Character classes of the password generator.
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Digits    = "0123456789"
	Symbols   = "!@#$%^&*()_-+=[]{};:,.<>?"
)

const (
	MinPasswordLength     = 4
	MaxPasswordLength     = 64
	DefaultPasswordLength = 12
)

// PasswordOptions selects the length and character classes of a password.
type PasswordOptions struct {
	Length  int  `mapstructure:"-"`
	Upper   bool `mapstructure:"upper"`
	Lower   bool `mapstructure:"lower"`
	Numbers bool `mapstructure:"numbers"`
	Symbols bool `mapstructure:"symbols"`
}

// Alphabet concatenates the enabled character classes.
func (o PasswordOptions) Alphabet() string {
	var b strings.Builder
	if o.Upper {
		b.WriteString(Uppercase)
	}
	if o.Lower {
		b.WriteString(Lowercase)
	}
	if o.Numbers {
		b.WriteString(Digits)
	}
	if o.Symbols {
		b.WriteString(Symbols)
	}
	return b.String()
}

// PasswordLength reads a length field leniently: unparseable or short values
// become MinPasswordLength, long ones MaxPasswordLength.
func PasswordLength(v any) int {
	n, ok := validate.Integer(v)
	if !ok {
		return MinPasswordLength
	}
	return validate.Clamp(n, MinPasswordLength, MaxPasswordLength)
}

// GeneratePassword draws o.Length characters uniformly from the enabled classes.
func GeneratePassword(random io.Reader, o PasswordOptions) (string, error) {
	alphabet := o.Alphabet()
	if alphabet == "" {
		return "", domain.Validation("Please select at least one character set (ABC/abc/123/@#$).")
	}
	if random == nil {
		random = rand.Reader
	}

	size := big.NewInt(int64(len(alphabet)))
	out := make([]byte, o.Length)
	for i := range out {
		idx, err := rand.Int(random, size)
		if err != nil {
			return "", fmt.Errorf("read random source: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}

// Password returns a password transform drawing from random.
// A nil random uses crypto/rand.
func Password(random io.Reader) registry.Transform {
	return func(_ context.Context, in domain.Input) (domain.Output, error) {
		var o PasswordOptions
		if err := validate.Decode(in, &o); err != nil {
			return domain.Output{}, err
		}
		o.Length = DefaultPasswordLength
		if raw, ok := in["length"]; ok {
			o.Length = PasswordLength(raw)
		}

		pw, err := GeneratePassword(random, o)
		if err != nil {
			return domain.Output{}, err
		}
		return domain.Output{
			Text:   pw,
			Fields: map[string]string{"length": strconv.Itoa(len(pw))},
		}, nil
	}
}
