package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/goalai/internal/models"
	"github.com/rohits-web03/goalai/internal/repositories"
)

// scriptedAssistant returns fixed answers and remembers what it was given.
type scriptedAssistant struct {
	plans       atomic.Int32
	planGate    chan struct{}
	lastProfile models.Fields
	lastMode    models.ChatMode
}

func (s *scriptedAssistant) Chat(_ context.Context, message string, profile models.Fields, mode models.ChatMode) string {
	s.lastProfile = profile
	s.lastMode = mode
	return "echo: " + message
}

func (s *scriptedAssistant) DailyPlan(_ context.Context, profile models.Fields) string {
	s.plans.Add(1)
	if s.planGate != nil {
		<-s.planGate
	}
	return "plan for " + profile.String("examType")
}

func (s *scriptedAssistant) AnalyzeProgress(_ context.Context, profile models.Fields, planned, actual string) models.ProgressAnalysis {
	s.lastProfile = profile
	return models.ProgressAnalysis{Score: 50, Feedback: planned + "/" + actual}
}

func TestCoach_ChatStoresExchange(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	records := newTestRecords(repositories.NewMemoryStore(), 0, nil)
	assistant := &scriptedAssistant{}
	coach := NewCoach(assistant, records, clock.Now)

	require.NoError(t, records.SaveOnboarding(ctx, 1, models.Fields{"examType": "JEE"}))

	reply, err := coach.Chat(ctx, 1, "help", models.ModeDailyPlanning)
	require.NoError(t, err)
	assert.Equal(t, "echo: help", reply)
	assert.Equal(t, "JEE", assistant.lastProfile.String("examType"))
	assert.Equal(t, models.ModeDailyPlanning, assistant.lastMode)

	msgs, err := records.ListChats(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "help", msgs[0].UserMessage)
	assert.Equal(t, "echo: help", msgs[0].AIResponse)
	assert.Equal(t, models.ModeDailyPlanning, msgs[0].Mode)
	assert.Equal(t, clock.Now(), msgs[0].Timestamp)
}

func TestCoach_ChatRequiresMessage(t *testing.T) {
	coach := NewCoach(&scriptedAssistant{}, newTestRecords(repositories.NewMemoryStore(), 0, nil), nil)

	_, err := coach.Chat(context.Background(), 1, "", models.ModeGeneral)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCoach_ChatWithoutOnboarding(t *testing.T) {
	assistant := &scriptedAssistant{}
	coach := NewCoach(assistant, newTestRecords(repositories.NewMemoryStore(), 0, nil), nil)

	_, err := coach.Chat(context.Background(), 1, "hi", models.ModeGeneral)
	require.NoError(t, err)
	assert.Nil(t, assistant.lastProfile)
}

func TestCoach_DailyPlanNeedsOnboarding(t *testing.T) {
	ctx := context.Background()
	records := newTestRecords(repositories.NewMemoryStore(), 0, nil)
	coach := NewCoach(&scriptedAssistant{}, records, nil)

	_, err := coach.DailyPlan(ctx, 1)
	assert.ErrorIs(t, err, ErrOnboardingIncomplete)

	require.NoError(t, records.SaveOnboarding(ctx, 1, models.Fields{"examType": "NEET"}))
	plan, err := coach.DailyPlan(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "plan for NEET", plan)
}

func TestCoach_DailyPlanSharesConcurrentRequests(t *testing.T) {
	ctx := context.Background()
	records := newTestRecords(repositories.NewMemoryStore(), 0, nil)
	assistant := &scriptedAssistant{planGate: make(chan struct{})}
	coach := NewCoach(assistant, records, nil)
	require.NoError(t, records.SaveOnboarding(ctx, 1, models.Fields{"examType": "JEE"}))

	const callers = 5
	var wg sync.WaitGroup
	plans := make([]string, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			plans[i], _ = coach.DailyPlan(ctx, 1)
		}()
	}

	// let the first generation start, then give the others time to join it
	require.Eventually(t, func() bool { return assistant.plans.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(assistant.planGate)
	wg.Wait()

	assert.Equal(t, int32(1), assistant.plans.Load())
	for _, p := range plans {
		assert.Equal(t, "plan for JEE", p)
	}
}

func TestCoach_AnalyzeProgress(t *testing.T) {
	ctx := context.Background()
	records := newTestRecords(repositories.NewMemoryStore(), 0, nil)
	assistant := &scriptedAssistant{}
	coach := NewCoach(assistant, records, nil)

	got, err := coach.AnalyzeProgress(ctx, 1, "plan", "done")
	require.NoError(t, err)
	assert.Equal(t, models.ProgressAnalysis{Score: 50, Feedback: "plan/done"}, got)
}
