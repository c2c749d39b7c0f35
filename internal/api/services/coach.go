package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rohits-web03/goalai/internal/models"
)

var ErrOnboardingIncomplete = errors.New("onboarding not completed")

// Coach answers the AI-backed endpoints using the student's onboarding
// profile as context.
type Coach struct {
	assistant Assistant
	records   *RecordService
	now       func() time.Time
	plans     singleflight.Group
}

func NewCoach(assistant Assistant, records *RecordService, now func() time.Time) *Coach {
	if now == nil {
		now = time.Now
	}
	return &Coach{assistant: assistant, records: records, now: now}
}

// Chat asks the assistant and stores the exchange in the user's history.
func (c *Coach) Chat(ctx context.Context, userID int64, message string, mode models.ChatMode) (string, error) {
	if message == "" {
		return "", ErrValidation
	}
	profile, err := c.profile(ctx, userID)
	if err != nil {
		return "", err
	}

	reply := c.assistant.Chat(ctx, message, profile, mode)
	if err := c.records.AppendChat(ctx, userID, message, reply, mode, c.now()); err != nil {
		return "", err
	}
	return reply, nil
}

// DailyPlan needs a completed onboarding profile. Concurrent requests for the
// same user share a single generation.
func (c *Coach) DailyPlan(ctx context.Context, userID int64) (string, error) {
	o, err := c.records.GetOnboarding(ctx, userID)
	if err != nil {
		return "", err
	}
	if o == nil || !o.Completed {
		return "", ErrOnboardingIncomplete
	}

	v, err, _ := c.plans.Do(strconv.FormatInt(userID, 10), func() (any, error) {
		// Detach from the first caller so its disconnect does not fail the others.
		return c.assistant.DailyPlan(context.WithoutCancel(ctx), o.Fields), nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Coach) AnalyzeProgress(ctx context.Context, userID int64, planned, actual string) (models.ProgressAnalysis, error) {
	profile, err := c.profile(ctx, userID)
	if err != nil {
		return models.ProgressAnalysis{}, err
	}
	return c.assistant.AnalyzeProgress(ctx, profile, planned, actual), nil
}

func (c *Coach) profile(ctx context.Context, userID int64) (models.Fields, error) {
	o, err := c.records.GetOnboarding(ctx, userID)
	if err != nil || o == nil {
		return nil, err
	}
	return o.Fields, nil
}
