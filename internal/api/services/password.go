package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// PasswordHasher derives and checks password verifiers.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify never fails loudly: a malformed verifier is simply a mismatch.
	Verify(password, verifier string) bool
}

// ScryptHasher stores verifiers as "<hex digest>.<hex salt>". The hex salt
// string itself is the scrypt salt.
type ScryptHasher struct {
	N, R, P int
	KeyLen  int
	SaltLen int
}

func NewScryptHasher() *ScryptHasher {
	return &ScryptHasher{N: 16384, R: 8, P: 1, KeyLen: 64, SaltLen: 16}
}

func (h *ScryptHasher) Hash(password string) (string, error) {
	raw := make([]byte, h.SaltLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	digest, err := h.derive(password, salt)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(digest) + "." + salt, nil
}

func (h *ScryptHasher) Verify(password, verifier string) bool {
	hashed, salt, ok := strings.Cut(verifier, ".")
	if !ok || hashed == "" || salt == "" {
		return false
	}
	want, err := hex.DecodeString(hashed)
	if err != nil || len(want) != h.KeyLen {
		return false
	}
	got, err := h.derive(password, salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(want, got) == 1
}

func (h *ScryptHasher) derive(password, salt string) ([]byte, error) {
	digest, err := scrypt.Key([]byte(password), []byte(salt), h.N, h.R, h.P, h.KeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return digest, nil
}
