// Package cryptox implements the data-obfuscation and password-digest
// primitives of the local storage layer.
//
// Obscure/Reveal are NOT encryption: they XOR the input with a fixed,
// hardcoded key and base64-encode the result. They exist only so data
// written by earlier clients stays readable. Anything that needs real
// confidentiality must use an authenticated cipher with a provisioned key.
package cryptox

import "encoding/base64"

// legacyKey is the fixed obfuscation key inherited from the first client
// generation. Changing it makes every previously written blob unreadable.
const legacyKey = "lib-match-secure-key-2024"

func xorWithKey(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ legacyKey[i%len(legacyKey)]
	}
	return out
}

// Obscure masks plaintext with the legacy XOR key and base64-encodes it.
func Obscure(plaintext string) string {
	return base64.StdEncoding.EncodeToString(xorWithKey([]byte(plaintext)))
}

// Reveal is the inverse of Obscure. It never fails: if the input is not
// valid base64 it is returned unchanged, so callers downstream surface the
// problem as a deserialization error instead of a panic.
func Reveal(ciphertext string) string {
	decoded, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return ciphertext
	}
	return string(xorWithKey(decoded))
}
