package crypto

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
)

// 32 bytes of zeros, hex encoded. Fine for tests.
const testHexKey = "0000000000000000000000000000000000000000000000000000000000000000"

func newTestCipher(t *testing.T) *FieldCipher {
	t.Helper()
	c, err := NewFieldCipher(testHexKey)
	require.NoError(t, err)
	return c
}

func TestNewFieldCipherKeyValidation(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		c, err := NewFieldCipher(testHexKey)
		assert.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("non-hex key", func(t *testing.T) {
		_, err := NewFieldCipher("not hex at all")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not valid hex")
	})

	t.Run("wrong length key", func(t *testing.T) {
		_, err := NewFieldCipher("abcd")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be 32 bytes")
	})
}

func TestEncryptDecryptDecimal(t *testing.T) {
	c := newTestCipher(t)

	values := []string{"0", "1234.5678", "-42.01", "520.506", "99999999999999.9999"}
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		require.NoError(t, err)

		ciphertext, err := c.EncryptDecimal(d)
		require.NoError(t, err)
		assert.NotEqual(t, v, ciphertext)

		got, err := c.DecryptDecimal(ciphertext)
		require.NoError(t, err)
		assert.True(t, d.Equal(got), "value %s should round-trip exactly", v)
	}
}

func TestEncryptionIsNonDeterministic(t *testing.T) {
	c := newTestCipher(t)

	first, err := c.EncryptString("1000.00")
	require.NoError(t, err)
	second, err := c.EncryptString("1000.00")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "fresh nonce per encryption")
}

func TestDecryptErrors(t *testing.T) {
	c := newTestCipher(t)

	t.Run("invalid base64", func(t *testing.T) {
		_, err := c.DecryptString("!!! not base64 !!!")
		assert.ErrorIs(t, err, apperrors.ErrEncryption)
	})

	t.Run("too short", func(t *testing.T) {
		short := base64.StdEncoding.EncodeToString([]byte("tiny"))
		_, err := c.DecryptString(short)
		assert.ErrorIs(t, err, apperrors.ErrEncryption)
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		ciphertext, err := c.EncryptString("secret")
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(ciphertext)
		require.NoError(t, err)
		raw[len(raw)-1] ^= 0xFF
		tampered := base64.StdEncoding.EncodeToString(raw)

		_, err = c.DecryptString(tampered)
		assert.ErrorIs(t, err, apperrors.ErrEncryption)
	})

	t.Run("wrong key", func(t *testing.T) {
		other, err := NewFieldCipher(strings.Repeat("ab", 32))
		require.NoError(t, err)

		ciphertext, err := c.EncryptString("secret")
		require.NoError(t, err)

		_, err = other.DecryptString(ciphertext)
		assert.ErrorIs(t, err, apperrors.ErrEncryption)
	})

	t.Run("decrypted value not a decimal", func(t *testing.T) {
		ciphertext, err := c.EncryptString("not-a-number")
		require.NoError(t, err)

		_, err = c.DecryptDecimal(ciphertext)
		assert.ErrorIs(t, err, apperrors.ErrEncryption)
	})
}
