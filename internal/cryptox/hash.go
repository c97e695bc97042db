package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/crypto/argon2"
)

// SaltLength is the number of random bytes in a freshly generated salt.
const SaltLength = 32

// GenerateSalt returns a hex string of n random bytes, so the final string
// length is 2*n. It returns an error if the random source fails.
func GenerateSalt(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashPassword derives a hex-encoded password digest from (password, salt)
// using Argon2id. The salt must be persisted alongside the user record and
// reused at verification time.
func HashPassword(password, salt string) string {
	digest := argon2.IDKey([]byte(password), []byte(salt), 1, 64*1024, 4, 32)
	return hex.EncodeToString(digest)
}

// LegacyHash reproduces the 32-bit rolling hash the first client generation
// used as a password digest. It is kept only to verify digests written by
// that client; new digests always come from HashPassword.
//
// The input is processed as UTF-16 code units to match the original
// charCodeAt-based loop. The result is the absolute value in lowercase hex.
func LegacyHash(s string) string {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(u)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 16)
}

// MaskSensitive redacts the middle of a string for log output, keeping at
// most `visible` characters on each end.
func MaskSensitive(s string, visible int) string {
	if len(s) <= visible*2 {
		return strings.Repeat("*", len(s))
	}
	return s[:visible] + strings.Repeat("*", len(s)-visible*2) + s[len(s)-visible:]
}
