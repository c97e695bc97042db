package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObscureReveal_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"ascii", "hello world"},
		{"json", `{"userId":"user_1","email":"a@x.com"}`},
		{"unicode", "olá, coração ❤"},
		{"long", string(make([]byte, 4096))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.input, Reveal(Obscure(tt.input)))
		})
	}
}

func TestObscure_ProducesBase64(t *testing.T) {
	out := Obscure("some data")
	_, err := base64.StdEncoding.DecodeString(out)
	require.NoError(t, err)
	require.NotEqual(t, "some data", out)
}

func TestReveal_InvalidBase64_ReturnsInput(t *testing.T) {
	require.Equal(t, "not base64!!!", Reveal("not base64!!!"))
}

func TestReveal_ValidBase64Garbage_DoesNotPanic(t *testing.T) {
	garbage := base64.StdEncoding.EncodeToString([]byte{0x00, 0xff, 0x10})
	require.NotPanics(t, func() { _ = Reveal(garbage) })
}
