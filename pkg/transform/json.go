package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/tidwall/pretty"
)

var indentOptions = &pretty.Options{Width: 0, Indent: "  "}

// jsonObject keeps members in first-seen order. A repeated key replaces the
// earlier value in place, the way JSON.parse assigns properties.
type jsonObject struct {
	members []jsonMember
	index   map[string]int
}

type jsonMember struct {
	key   string
	value any
}

func (o *jsonObject) set(key string, value any) {
	if i, ok := o.index[key]; ok {
		o.members[i].value = value
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, jsonMember{key: key, value: value})
}

// checkJSON reports the parser error of a document, prefixed for display.
func checkJSON(doc []byte) error {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return domain.Malformed(err, "Invalid JSON: %s", err.Error())
	}
	return nil
}

// canonicalJSON parses doc and serialises the parsed value compactly:
// duplicate keys collapse to the last value and numbers are rewritten in
// their shortest form (1.50 becomes 1.5, 1e2 becomes 100).
func canonicalJSON(doc []byte) ([]byte, error) {
	if err := checkJSON(doc); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, domain.Malformed(err, "Invalid JSON: %s", err.Error())
	}
	var buf bytes.Buffer
	writeJSONValue(&buf, v)
	return buf.Bytes(), nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := &jsonObject{index: map[string]int{}}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			value, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, value)
		}
		_, err = dec.Token()
		return obj, err
	case '[':
		arr := []any{}
		for dec.More() {
			value, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, value)
		}
		_, err = dec.Token()
		return arr, err
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

func writeJSONValue(buf *bytes.Buffer, v any) {
	switch t := v.(type) {
	case *jsonObject:
		buf.WriteByte('{')
		for i, m := range t.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, m.key)
			buf.WriteByte(':')
			writeJSONValue(buf, m.value)
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONValue(buf, e)
		}
		buf.WriteByte(']')
	case json.Number:
		buf.WriteString(formatJSONNumber(t))
	case string:
		writeJSONString(buf, t)
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	default:
		buf.WriteString("null")
	}
}

// formatJSONNumber renders a number the way JSON.stringify does: shortest
// round-trip digits, exponent form below 1e-6 and from 1e21, no negative
// zero, and null for values beyond float64 range.
func formatJSONNumber(n json.Number) string {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil && !math.IsInf(f, 0) {
		return string(n)
	}
	switch {
	case math.IsInf(f, 0):
		return "null"
	case f == 0:
		return "0"
	}
	format := byte('f')
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, f, format, -1, 64)
	if format == 'e' {
		// e-07 becomes e-7
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}

const lowerhex = "0123456789abcdef"

// writeJSONString quotes s escaping only what JSON.stringify escapes.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(lowerhex[r>>4])
				buf.WriteByte(lowerhex[r&0xF])
				continue
			}
			var tmp [utf8.UTFMax]byte
			n := utf8.EncodeRune(tmp[:], r)
			buf.Write(tmp[:n])
		}
	}
	buf.WriteByte('"')
}

// FormatJSON re-serialises doc with two-space indentation. Key order is kept.
func FormatJSON(doc string) (string, error) {
	compact, err := canonicalJSON([]byte(doc))
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(pretty.PrettyOptions(compact, indentOptions), "\n")), nil
}

// MinifyJSON re-serialises doc without insignificant whitespace.
func MinifyJSON(doc string) (string, error) {
	compact, err := canonicalJSON([]byte(doc))
	if err != nil {
		return "", err
	}
	return string(compact), nil
}

var (
	// JSONFormat pretty-prints the "text" field.
	JSONFormat = textCodec(FormatJSON)
	// JSONMinify compacts the "text" field.
	JSONMinify = textCodec(MinifyJSON)
)
