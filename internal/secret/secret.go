package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

var (
	ErrNoKey         = errors.New("secret: no key configured")
	ErrBadCiphertext = errors.New("secret: malformed ciphertext")
)

// Store decrypts secrets held at rest, such as webhook bot tokens. The
// (scope, field) pair is bound into the ciphertext so a value copied
// between config fields fails to decrypt.
type Store interface {
	Decrypt(ciphertext, scope, field string) (string, error)
}

// AESStore is an AES-GCM Store keyed from configuration.
type AESStore struct {
	key []byte
}

// NewAESStore takes a hex-encoded 16, 24 or 32 byte key.
func NewAESStore(hexKey string) (*AESStore, error) {
	if hexKey == "" {
		return &AESStore{}, nil
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("secret key: %w", err)
	}
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("secret key: invalid length %d", len(key))
	}
	return &AESStore{key: key}, nil
}

func (s *AESStore) gcm() (cipher.AEAD, error) {
	if len(s.key) == 0 {
		return nil, ErrNoKey
	}
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt seals a plaintext for (scope, field). Used by provisioning
// tooling and tests; the serving path only ever decrypts.
func (s *AESStore) Encrypt(plaintext, scope, field string) (string, error) {
	aead, err := s.gcm()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), aad(scope, field))
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *AESStore) Decrypt(ciphertext, scope, field string) (string, error) {
	aead, err := s.gcm()
	if err != nil {
		return "", err
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", ErrBadCiphertext
	}
	ns := aead.NonceSize()
	if len(raw) < ns {
		return "", ErrBadCiphertext
	}
	plain, err := aead.Open(nil, raw[:ns], raw[ns:], aad(scope, field))
	if err != nil {
		return "", fmt.Errorf("secret %s/%s: %w", scope, field, err)
	}
	return string(plain), nil
}

func aad(scope, field string) []byte {
	return []byte(scope + "/" + field)
}
