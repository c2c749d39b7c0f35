package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_Merge(t *testing.T) {
	base := Fields{"examType": "JEE", "studyHours": 6}
	merged := base.Merge(Fields{"studyHours": 8, "targetYear": 2026})

	assert.Equal(t, Fields{"examType": "JEE", "studyHours": 8, "targetYear": 2026}, merged)
	assert.Equal(t, 6, base["studyHours"], "base must not change")

	var empty Fields
	assert.Equal(t, Fields{"a": 1}, empty.Merge(Fields{"a": 1}))
	assert.NotNil(t, empty.Merge(nil))
}

func TestOnboarding_MarshalJSON(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(Onboarding{UserID: 3, Fields: Fields{"examType": "NEET"}, Completed: true, UpdatedAt: at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"examType":"NEET","completed":true,"completedAt":"2025-03-14T09:00:00Z"}`, string(raw))

	raw, err = json.Marshal(Profile{UserID: 3, Fields: Fields{"city": "Pune"}, UpdatedAt: at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"Pune","updatedAt":"2025-03-14T09:00:00Z"}`, string(raw))
}

func TestUser_PublicHidesVerifier(t *testing.T) {
	u := User{ID: 1, Email: "a@x.io", Name: "Asha", PasswordHash: "d.s"}
	pub := u.Public()
	assert.Empty(t, pub.PasswordHash)
	assert.Equal(t, "d.s", u.PasswordHash)

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "d.s")
}

func TestParseChatMode(t *testing.T) {
	assert.Equal(t, ModeDailyPlanning, ParseChatMode("daily-planning"))
	assert.Equal(t, ModeEveningCheckin, ParseChatMode("evening-checkin"))
	assert.Equal(t, ModeGeneral, ParseChatMode(""))
	assert.Equal(t, ModeGeneral, ParseChatMode("poetry"))
}

func TestSession_Expired(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: at}
	assert.False(t, s.Expired(at.Add(-time.Second)))
	assert.True(t, s.Expired(at))
	assert.True(t, s.Expired(at.Add(time.Second)))
}
