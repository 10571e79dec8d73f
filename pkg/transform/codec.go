package transform

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/aretw0/workbench/pkg/registry"
	"github.com/aretw0/workbench/pkg/validate"
	"golang.org/x/text/encoding/charmap"
)

// Codec failure messages.
const (
	MsgURLEncode    = "Error encoding URL."
	MsgURLDecode    = "Error decoding URL – invalid format."
	MsgBase64Encode = "Error encoding Base64 (non-ASCII characters?)."
	MsgBase64Decode = "Error decoding Base64 – invalid input."
)

const upperhex = "0123456789ABCDEF"

// uriUnreserved reports whether c is left alone by EncodeURIComponent.
func uriUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// EncodeURIComponent percent-encodes the UTF-8 bytes of s, leaving letters,
// digits and -_.!~*'() untouched.
func EncodeURIComponent(s string) (string, error) {
	if !utf8.ValidString(s) {
		return "", domain.Malformed(nil, MsgURLEncode)
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if uriUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String(), nil
}

// DecodeURIComponent reverses EncodeURIComponent. '+' is not a space.
// Malformed escapes and escapes that do not form UTF-8 fail.
func DecodeURIComponent(s string) (string, error) {
	out, err := url.PathUnescape(s)
	if err != nil {
		return "", domain.Malformed(err, MsgURLDecode)
	}
	if !utf8.ValidString(out) {
		return "", domain.Malformed(nil, MsgURLDecode)
	}
	return out, nil
}

// EncodeBase64 encodes the Latin-1 bytes of s. Characters above U+00FF fail.
func EncodeBase64(s string) (string, error) {
	raw, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return "", domain.Malformed(err, MsgBase64Encode)
	}
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// DecodeBase64 decodes s leniently: ASCII whitespace is ignored, padding is
// optional and unused trailing bits are dropped. The bytes are read as Latin-1.
func DecodeBase64(s string) (string, error) {
	data := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, s)

	if len(data)%4 == 0 {
		data = strings.TrimSuffix(data, "=")
		data = strings.TrimSuffix(data, "=")
	}
	if len(data)%4 == 1 || strings.ContainsRune(data, '=') {
		return "", domain.Malformed(nil, MsgBase64Decode)
	}

	raw, err := base64.RawStdEncoding.DecodeString(data)
	if err != nil {
		return "", domain.Malformed(err, MsgBase64Decode)
	}
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", domain.Malformed(err, MsgBase64Decode)
	}
	return string(text), nil
}

func textCodec(fn func(string) (string, error)) registry.Transform {
	return func(_ context.Context, in domain.Input) (domain.Output, error) {
		out, err := fn(validate.Text(in["text"]))
		if err != nil {
			return domain.Output{}, err
		}
		return domain.Output{Text: out}, nil
	}
}

var (
	// URLEncode percent-encodes the "text" field.
	URLEncode = textCodec(EncodeURIComponent)
	// URLDecode decodes the percent-encoded "text" field.
	URLDecode = textCodec(DecodeURIComponent)
	// Base64Encode encodes the "text" field as Base64.
	Base64Encode = textCodec(EncodeBase64)
	// Base64Decode decodes the Base64 "text" field.
	Base64Decode = textCodec(DecodeBase64)
)
