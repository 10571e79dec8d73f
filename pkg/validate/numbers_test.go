package validate

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"2.54", 2.54, true},
		{"  70", 70, true},
		{"12kg", 12, true},
		{".5", 0.5, true},
		{"-3.", -3, true},
		{"1e3", 1000, true},
		{"1e", 1, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFloat(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}

	inf, ok := ParseFloat("-Infinity")
	assert.True(t, ok)
	assert.True(t, math.IsInf(inf, -1))
}

func TestParseInt(t *testing.T) {
	v, ok := ParseInt("12.7")
	assert.True(t, ok)
	assert.Equal(t, 12, v)

	v, ok = ParseInt(" -4x")
	assert.True(t, ok)
	assert.Equal(t, -4, v)

	_, ok = ParseInt("x4")
	assert.False(t, ok)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"Float", 175.0, 175, true},
		{"Int", 70, 70, true},
		{"String", "70", 70, true},
		{"JSON Number", json.Number("1.5"), 1.5, true},
		{"NaN", math.NaN(), 0, false},
		{"Nil", nil, 0, false},
		{"Bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestInteger(t *testing.T) {
	v, ok := Integer(12.9)
	assert.True(t, ok)
	assert.Equal(t, 12, v)

	_, ok = Integer("abc")
	assert.False(t, ok)

	_, ok = Integer(math.Inf(1))
	assert.False(t, ok)

	// JSON numbers arrive as float64 and must not wrap around.
	v, ok = Integer(1e20)
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt, v)

	v, ok = Integer(-1e20)
	assert.True(t, ok)
	assert.Equal(t, math.MinInt, v)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 4, Clamp(3, 4, 64))
	assert.Equal(t, 64, Clamp(100, 4, 64))
	assert.Equal(t, 12, Clamp(12, 4, 64))
}

func TestFlag(t *testing.T) {
	for _, v := range []any{true, "on", "TRUE", "1", "yes", 1.0} {
		assert.True(t, Flag(v), "%v", v)
	}
	for _, v := range []any{nil, false, "", "off", "0", 0} {
		assert.False(t, Flag(v), "%v", v)
	}
}

func TestRequireText(t *testing.T) {
	got, err := RequireText("  hi  ", "Please enter some text.")
	require.NoError(t, err)
	assert.Equal(t, "hi", got)

	_, err = RequireText(" \n\t", "Please enter some text.")
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Equal(t, "Please enter some text.", err.Error())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2000-02-29", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("29/02/2000", time.UTC)
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	type params struct {
		Text   string `mapstructure:"text"`
		Cm     string `mapstructure:"cm"`
		Upper  bool   `mapstructure:"upper"`
		Lower  bool   `mapstructure:"lower"`
		Data   []byte `mapstructure:"data"`
		Absent string `mapstructure:"absent"`
	}

	var p params
	err := Decode(domain.Input{
		"text":  "hello",
		"cm":    2.54,
		"upper": "on",
		"lower": true,
		"data":  "aGk=",
	}, &p)
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Text)
	assert.Equal(t, "2.54", p.Cm)
	assert.True(t, p.Upper)
	assert.True(t, p.Lower)
	assert.Equal(t, []byte("hi"), p.Data)
	assert.Empty(t, p.Absent)

	var raw params
	require.NoError(t, Decode(domain.Input{"data": []byte{1, 2}}, &raw))
	assert.Equal(t, []byte{1, 2}, raw.Data)
}
