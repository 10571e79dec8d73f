package transform

import (
	"context"
	"testing"

	"github.com/aretw0/workbench/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"a b&c/é", "a%20b%26c%2F%C3%A9"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"https://x.io/?q=1+2#f", "https%3A%2F%2Fx.io%2F%3Fq%3D1%2B2%23f"},
		{"日本", "%E6%97%A5%E6%9C%AC"},
	}
	for _, tt := range tests {
		got, err := EncodeURIComponent(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)

		back, err := DecodeURIComponent(got)
		require.NoError(t, err)
		assert.Equal(t, tt.in, back)
	}
}

func TestEncodeURIComponent_InvalidUTF8(t *testing.T) {
	_, err := EncodeURIComponent("bad \xff")
	require.Error(t, err)
	assert.Equal(t, MsgURLEncode, err.Error())
}

func TestDecodeURIComponent(t *testing.T) {
	got, err := DecodeURIComponent("a+b%20c")
	require.NoError(t, err)
	assert.Equal(t, "a+b c", got)

	for _, bad := range []string{"%", "%E0%A4%A", "%zz", "%FF"} {
		_, err := DecodeURIComponent(bad)
		require.Error(t, err, bad)
		assert.Equal(t, MsgURLDecode, err.Error())
		assert.Equal(t, domain.KindFormat, domain.KindOf(err))
	}
}

func TestBase64(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"hello", "aGVsbG8="},
		{"é", "6Q=="},
		{"Ünïcödé ÿ", "3G7vY/Zk6SD/"},
	}
	for _, tt := range tests {
		got, err := EncodeBase64(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)

		back, err := DecodeBase64(got)
		require.NoError(t, err)
		assert.Equal(t, tt.in, back)
	}
}

func TestEncodeBase64_OutsideLatin1(t *testing.T) {
	_, err := EncodeBase64("price: €5")
	require.Error(t, err)
	assert.Equal(t, MsgBase64Encode, err.Error())
	assert.Equal(t, domain.KindFormat, domain.KindOf(err))
}

func TestDecodeBase64_Forgiving(t *testing.T) {
	for _, in := range []string{"aGVsbG8=", "aGVsbG8", " aGVs\nbG8= ", "aGVs\tbG8"} {
		got, err := DecodeBase64(in)
		require.NoError(t, err, in)
		assert.Equal(t, "hello", got)
	}

	for _, bad := range []string{"a", "abc=d", "aGVsbG8===", "aGVs*bG8", "=="} {
		_, err := DecodeBase64(bad)
		require.Error(t, err, bad)
		assert.Equal(t, MsgBase64Decode, err.Error())
	}
}

func TestTextCodecs_Input(t *testing.T) {
	out, err := URLEncode(context.Background(), domain.Input{"text": "a b"})
	require.NoError(t, err)
	assert.Equal(t, "a%20b", out.Text)

	out, err = Base64Decode(context.Background(), domain.Input{})
	require.NoError(t, err)
	assert.Equal(t, "", out.Text)
}
