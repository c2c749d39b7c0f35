package models

import "time"

type Session struct {
	ID        string    `json:"-" gorm:"primaryKey;size:64"` // random, base64url
	UserID    int64     `json:"userId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"index;not null"`
}

// Expired reports whether the session is no longer valid at t.
func (s *Session) Expired(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}
