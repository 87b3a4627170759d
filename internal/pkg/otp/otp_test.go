package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHOTP_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	h := NewHOTP("TalentFlow")

	secret, err := h.NewSecret("ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	for _, digits := range []int{5, 6} {
		code, err := h.Generate(secret, 7, digits)
		require.NoError(t, err)
		assert.Len(t, code, digits)

		assert.True(t, h.Validate(code, secret, 7, digits))
		assert.False(t, h.Validate(code, secret, 8, digits))
	}
}

func TestHOTP_RFC4226Vectors(t *testing.T) {
	t.Parallel()

	// "12345678901234567890" in base32.
	const secret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	want := []string{"755224", "287082", "359152", "969429", "338314"}

	h := NewHOTP("TalentFlow")
	for counter, code := range want {
		got, err := h.Generate(secret, uint64(counter), 6)
		require.NoError(t, err)
		assert.Equal(t, code, got)
	}
}

func TestHOTP_InvalidDigits(t *testing.T) {
	t.Parallel()

	h := NewHOTP("TalentFlow")

	_, err := h.Generate("GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", 0, 3)
	assert.ErrorIs(t, err, ErrInvalidDigits)
	assert.False(t, h.Validate("755224", "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", 0, 11))
	assert.False(t, h.Validate("75522", "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ", 0, 6))
}
