package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/slimatic/zakapp-sub006/internal/apperrors"
)

// FieldCipher encrypts individual monetary fields for at-rest storage.
// It is an opaque reversible transform over decimal strings with a single
// shared key; ciphertexts are base64(nonce || sealed).
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher builds a FieldCipher from a hex-encoded 32-byte key.
func NewFieldCipher(hexKey string) (*FieldCipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("field encryption key is not valid hex: %w", err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("field encryption key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise field cipher: %w", err)
	}
	return &FieldCipher{aead: aead}, nil
}

// EncryptDecimal encrypts the exact string form of the decimal, so the value
// round-trips through encrypt/store/decrypt/parse without precision loss.
func (c *FieldCipher) EncryptDecimal(d decimal.Decimal) (string, error) {
	return c.EncryptString(d.String())
}

// DecryptDecimal decrypts a ciphertext produced by EncryptDecimal. Any
// failure wraps apperrors.ErrEncryption: a financial value is never silently
// substituted.
func (c *FieldCipher) DecryptDecimal(ciphertext string) (decimal.Decimal, error) {
	plaintext, err := c.DecryptString(ciphertext)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(plaintext)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: decrypted value is not a decimal: %v", apperrors.ErrEncryption, err)
	}
	return d, nil
}

// EncryptString seals an arbitrary plaintext field with a fresh random nonce.
func (c *FieldCipher) EncryptString(plaintext string) (string, error) {
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptString opens a ciphertext produced by EncryptString.
func (c *FieldCipher) DecryptString(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext is not valid base64: %v", apperrors.ErrEncryption, err)
	}
	if len(raw) < chacha20poly1305.NonceSizeX {
		return "", fmt.Errorf("%w: ciphertext too short", apperrors.ErrEncryption)
	}
	nonce, sealed := raw[:chacha20poly1305.NonceSizeX], raw[chacha20poly1305.NonceSizeX:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrEncryption, err)
	}
	return string(plaintext), nil
}
