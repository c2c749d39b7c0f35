package models

import (
	"encoding/json"
	"maps"
	"time"
)

// Fields is a free-form set of attributes submitted by the front end
// (exam type, target year, study hours, strong/weak subjects, ...).
type Fields map[string]any

// Merge returns a new map holding base overwritten by update.
func (f Fields) Merge(update Fields) Fields {
	out := make(Fields, len(f)+len(update))
	maps.Copy(out, f)
	maps.Copy(out, update)
	return out
}

// String returns the value under key when it is a non-empty string.
func (f Fields) String(key string) string {
	s, _ := f[key].(string)
	return s
}

type Onboarding struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false"`
	Fields    Fields    `gorm:"serializer:json;type:jsonb"`
	Completed bool      `gorm:"not null;default:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (Onboarding) TableName() string { return "onboarding" }

// MarshalJSON flattens the submitted fields next to the completion markers.
func (o Onboarding) MarshalJSON() ([]byte, error) {
	out := o.Fields.Merge(Fields{
		"completed":   o.Completed,
		"completedAt": o.UpdatedAt,
	})
	return json.Marshal(out)
}

type Profile struct {
	UserID    int64     `gorm:"primaryKey;autoIncrement:false"`
	Fields    Fields    `gorm:"serializer:json;type:jsonb"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields.Merge(Fields{"updatedAt": p.UpdatedAt}))
}
