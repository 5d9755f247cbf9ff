package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	goldenCanonical = "signingkey%3d5294y06jbispm5x9%26merchanttradeno%3dtest001%26totalamount%3d1000%26signingiv%3dv77hokgq4kwxnnis"
	goldenSignature = "2F0EC57941D4A9DE1CC3B8568F72A26714F16C239DDBA2B65524A733024ACE28"
)

func TestSignGoldenVector(t *testing.T) {
	assert.Equal(t, goldenSignature, Sign(goldenCanonical))
}

func TestSignFormat(t *testing.T) {
	signature := Sign("anything")
	assert.Len(t, signature, 64)
	assert.Equal(t, strings.ToUpper(signature), signature)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	inputs := []map[string]string{
		{"MerchantTradeNo": "TEST001", "TotalAmount": "1000"},
		{"A": "", "B": "x y z", "C": "(!*)"},
		{"Single": "value"},
	}
	for _, params := range inputs {
		canonical := Canonicalize(params, testSigningKey, testSigningIV)
		assert.True(t, VerifySignature(Sign(canonical), canonical))
	}
}

func TestSignNearMiss(t *testing.T) {
	// flipping any single character must change the signature
	for i := 0; i < len(goldenCanonical); i += 7 {
		altered := goldenCanonical[:i] + "#" + goldenCanonical[i+1:]
		assert.NotEqual(t, goldenSignature, Sign(altered), "position %d", i)
		assert.False(t, VerifySignature(goldenSignature, altered))
	}
}

func TestVerifySignatureCaseSensitive(t *testing.T) {
	assert.True(t, VerifySignature(goldenSignature, goldenCanonical))
	assert.False(t, VerifySignature(strings.ToLower(goldenSignature), goldenCanonical))
}

func TestVerifySignatureLengthMismatch(t *testing.T) {
	assert.False(t, VerifySignature("", goldenCanonical))
	assert.False(t, VerifySignature(goldenSignature[:63], goldenCanonical))
	assert.False(t, VerifySignature(goldenSignature+"0", goldenCanonical))
}
