package models

import (
	"time"
)

type User struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null;default:''"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// Public returns a copy of the user with the password verifier stripped.
func (u User) Public() *User {
	u.PasswordHash = ""
	return &u
}
