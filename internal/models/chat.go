package models

import "time"

type ChatMode string

const (
	ModeGeneral        ChatMode = "general"
	ModeDailyPlanning  ChatMode = "daily-planning"
	ModeEveningCheckin ChatMode = "evening-checkin"
)

// ParseChatMode maps unknown or empty values to ModeGeneral.
func ParseChatMode(s string) ChatMode {
	switch m := ChatMode(s); m {
	case ModeDailyPlanning, ModeEveningCheckin:
		return m
	default:
		return ModeGeneral
	}
}

type ChatMessage struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      int64     `json:"-" gorm:"index;not null"`
	UserMessage string    `json:"userMessage" gorm:"type:text;not null"`
	AIResponse  string    `json:"aiResponse" gorm:"type:text;not null"`
	Mode        ChatMode  `json:"type" gorm:"size:32;not null"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null"`
}

// ProgressAnalysis is the structured result of a daily progress review.
type ProgressAnalysis struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	Suggestions string `json:"suggestions"`
	Motivation  string `json:"motivation"`
}
