package secret

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f"

func TestRoundTrip(t *testing.T) {
	s, err := NewAESStore(testKey)
	require.NoError(t, err)

	sealed, err := s.Encrypt("123456:bot-token", "webhook", "bot_token")
	require.NoError(t, err)
	assert.NotEqual(t, "123456:bot-token", sealed)

	plain, err := s.Decrypt(sealed, "webhook", "bot_token")
	require.NoError(t, err)
	assert.Equal(t, "123456:bot-token", plain)
}

func TestScopeBinding(t *testing.T) {
	s, err := NewAESStore(testKey)
	require.NoError(t, err)

	sealed, err := s.Encrypt("hunter2", "webhook", "bot_token")
	require.NoError(t, err)

	// A ciphertext copied into another field must not decrypt.
	if _, err := s.Decrypt(sealed, "webhook", "target"); err == nil {
		t.Fatal("decrypt under a different field should fail")
	}
	if _, err := s.Decrypt(sealed, "site", "bot_token"); err == nil {
		t.Fatal("decrypt under a different scope should fail")
	}
}

func TestTamperedCiphertext(t *testing.T) {
	s, err := NewAESStore(testKey)
	require.NoError(t, err)

	_, err = s.Decrypt("not base64!!", "webhook", "bot_token")
	assert.ErrorIs(t, err, ErrBadCiphertext)

	_, err = s.Decrypt("c2hvcnQ=", "webhook", "bot_token")
	assert.ErrorIs(t, err, ErrBadCiphertext)
}

func TestNoKey(t *testing.T) {
	s, err := NewAESStore("")
	require.NoError(t, err)
	_, err = s.Decrypt("whatever", "webhook", "bot_token")
	assert.True(t, errors.Is(err, ErrNoKey))
}

func TestBadKeys(t *testing.T) {
	if _, err := NewAESStore("zz"); err == nil {
		t.Error("non-hex key should be rejected")
	}
	if _, err := NewAESStore("abcd"); err == nil {
		t.Error("2 byte key should be rejected")
	}
}

func TestNonceVariesPerSeal(t *testing.T) {
	s, err := NewAESStore(testKey)
	require.NoError(t, err)

	a, err := s.Encrypt("same", "webhook", "bot_token")
	require.NoError(t, err)
	b, err := s.Encrypt("same", "webhook", "bot_token")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
