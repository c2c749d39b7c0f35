package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// SessionIDBytes is the entropy behind every session id (256 bits).
const SessionIDBytes = 32

// NewSessionID returns a random base64url session id.
func NewSessionID() (string, error) {
	b := make([]byte, SessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidSessionID reports whether id has the shape NewSessionID produces.
func ValidSessionID(id string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(id)
	return err == nil && len(raw) == SessionIDBytes
}
