package internal

import (
	"fmt"
	"sort"
	"strings"
)

// checkMacField carries the integrity code on the wire and is always
// excluded from its own computation.
const checkMacField = "CheckMacValue"

// gatewayFixups maps generic percent-encoded sequences back to the literal
// characters the gateway's own encoder leaves untouched. All eight must be
// applied; they do not collide with each other.
var gatewayFixups = strings.NewReplacer(
	"%20", "+",
	"%2d", "-",
	"%5f", "_",
	"%2e", ".",
	"%21", "!",
	"%2a", "*",
	"%28", "(",
	"%29", ")",
)

// Canonicalize builds the exact digest input the gateway computes on its
// side: drop the check mac field, sort the remaining keys bytewise, bracket
// the k=v pairs with the signing key and IV, then apply the gateway's
// encoding table. Empty values are kept.
func Canonicalize(params map[string]string, signingKey, signingIV string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == checkMacField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var raw strings.Builder
	raw.WriteString("SigningKey=")
	raw.WriteString(signingKey)
	for _, k := range keys {
		raw.WriteString("&")
		raw.WriteString(k)
		raw.WriteString("=")
		raw.WriteString(params[k])
	}
	raw.WriteString("&SigningIV=")
	raw.WriteString(signingIV)

	return gatewayEncode(raw.String())
}

// gatewayEncode mirrors the gateway's non-standard urlencode bit for bit:
// percent-encode every byte outside [A-Za-z0-9], lowercase the whole
// string, then substitute the eight sequences the gateway keeps literal.
// url.QueryEscape is close but not exact (it leaves '~' unescaped where
// the gateway expects %7e), so the loop is spelled out here.
func gatewayEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return gatewayFixups.Replace(strings.ToLower(b.String()))
}
