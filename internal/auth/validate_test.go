package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"a.b+c@sub.example.co", true},
		{"alice@example", false},
		{"@example.com", false},
		{"alice@", false},
		{"alice example@x.co", false},
		{"alice@@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ValidEmail(tt.email), "email %q", tt.email)
	}
}

func TestPasswordErrors(t *testing.T) {
	// all four classes at the minimum length
	require.Empty(t, PasswordErrors("Aa1!aaaa"))

	tests := []struct {
		name     string
		password string
		message  string
	}{
		{"too short", "Aa1!", "password must be at least 8 characters"},
		{"no uppercase", "aa1!aaaa", "password must contain an uppercase letter"},
		{"no lowercase", "AA1!AAAA", "password must contain a lowercase letter"},
		{"no digit", "Aa!aaaaa", "password must contain a digit"},
		{"no symbol", "Aa1aaaaa", "password must contain a special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := PasswordErrors(tt.password)
			require.Contains(t, errs, tt.message)
		})
	}

	require.Len(t, PasswordErrors(""), 5)
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims", "  hello  ", "hello"},
		{"strips angle brackets", "<script>alert(1)</script>", "scriptalert(1)/script"},
		{"strips js scheme", "javascript:alert(1)", "alert(1)"},
		{"strips event handlers", "x onclick=evil y", "x evil y"},
		{"plain text untouched", "just a bio", "just a bio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}

	long := strings.Repeat("x", 2000)
	require.Len(t, SanitizeInput(long), 1000)
}

func TestValidateProfile(t *testing.T) {
	require.Empty(t, ValidateProfile(ProfileUpdate{Name: "Alice", Age: 29, Bio: "hi"}))

	// zero values mean the field is not being updated
	require.Empty(t, ValidateProfile(ProfileUpdate{}))

	require.Contains(t, ValidateProfile(ProfileUpdate{Name: "A"}), "name must be between 2 and 50 characters")
	require.Contains(t, ValidateProfile(ProfileUpdate{Name: strings.Repeat("x", 51)}), "name must be between 2 and 50 characters")
	require.Contains(t, ValidateProfile(ProfileUpdate{Age: 17}), "age must be between 18 and 100")
	require.Contains(t, ValidateProfile(ProfileUpdate{Age: 101}), "age must be between 18 and 100")
	require.Empty(t, ValidateProfile(ProfileUpdate{Age: 18}))
	require.Empty(t, ValidateProfile(ProfileUpdate{Age: 100}))
	require.Contains(t, ValidateProfile(ProfileUpdate{Bio: strings.Repeat("x", 501)}), "bio must be at most 500 characters")
}
