package secret

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the length of every derived key.
const KeySize = 32

// Purposes keep derived keys independent of each other.
const (
	PurposeAccessToken      = "yamdb access token v1"
	PurposeConfirmationCode = "yamdb confirmation code v1"
)

// DeriveKey expands the master secret into a subkey bound to purpose.
func DeriveKey(master, purpose string) ([]byte, error) {
	if master == "" {
		return nil, fmt.Errorf("derive %q: empty master secret", purpose)
	}
	key := make([]byte, KeySize)
	r := hkdf.New(sha256.New, []byte(master), nil, []byte(purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive %q: %w", purpose, err)
	}
	return key, nil
}
