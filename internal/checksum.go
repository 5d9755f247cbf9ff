package internal

import (
	"crypto/subtle"
	"strings"

	"gitee.com/golang-module/dongle"
)

// Sign renders the wire-format integrity code for a canonical string:
// SHA-256 over its UTF-8 bytes, uppercase hexadecimal.
func Sign(canonical string) string {
	return strings.ToUpper(dongle.Encrypt.FromString(canonical).BySha256().ToHexString())
}

// VerifySignature reports whether received is the integrity code of
// canonical. The comparison is case-sensitive and constant-time; a
// mismatch is a boolean outcome, never an error.
func VerifySignature(received, canonical string) bool {
	expected := Sign(canonical)
	if len(received) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(received), []byte(expected)) == 1
}
