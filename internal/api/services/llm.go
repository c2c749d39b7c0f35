package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rohits-web03/goalai/internal/config"
	"github.com/rohits-web03/goalai/internal/logging"
	"github.com/rohits-web03/goalai/internal/models"
)

const (
	FallbackChatReply = "I'm sorry, I'm having trouble connecting right now. Please try again later."
	FallbackDailyPlan = "Unable to generate daily plan at the moment. Please try again later."
)

// FallbackAnalysis is returned whenever a progress analysis cannot be produced.
var FallbackAnalysis = models.ProgressAnalysis{
	Score:       0,
	Feedback:    "Unable to analyze progress at the moment.",
	Suggestions: "Please try again later.",
	Motivation:  "Keep working hard towards your goal!",
}

var errEmptyCompletion = errors.New("completion has no choices")

// Assistant produces study guidance. Implementations degrade to the
// fallback values instead of returning errors.
type Assistant interface {
	Chat(ctx context.Context, message string, profile models.Fields, mode models.ChatMode) string
	DailyPlan(ctx context.Context, profile models.Fields) string
	AnalyzeProgress(ctx context.Context, profile models.Fields, planned, actual string) models.ProgressAnalysis
}

// NewAssistant returns the OpenAI-backed assistant, or an offline one when
// no API key is configured.
func NewAssistant(cfg config.OpenAIConfig, log logging.Logger) Assistant {
	if cfg.APIKey == "" {
		log.Warn(context.Background(), "OPENAI_API_KEY not set, AI responses will use fallbacks")
		return OfflineAssistant{}
	}
	return NewOpenAIAssistant(cfg, log)
}

type OfflineAssistant struct{}

func (OfflineAssistant) Chat(context.Context, string, models.Fields, models.ChatMode) string {
	return FallbackChatReply
}

func (OfflineAssistant) DailyPlan(context.Context, models.Fields) string {
	return FallbackDailyPlan
}

func (OfflineAssistant) AnalyzeProgress(context.Context, models.Fields, string, string) models.ProgressAnalysis {
	return FallbackAnalysis
}

type OpenAIAssistant struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	log     logging.Logger
}

func NewOpenAIAssistant(cfg config.OpenAIConfig, log logging.Logger) *OpenAIAssistant {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIAssistant{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
		log:     log,
	}
}

func (a *OpenAIAssistant) Chat(ctx context.Context, message string, profile models.Fields, mode models.ChatMode) string {
	system := chatSystemPrompt(mode)
	if profile != nil {
		system += studentContext(profile)
	}
	reply, err := a.complete(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		logging.FromContext(ctx, a.log).Error(ctx, "chat completion failed", "mode", mode, "error", err)
		return FallbackChatReply
	}
	return reply
}

func (a *OpenAIAssistant) DailyPlan(ctx context.Context, profile models.Fields) string {
	prompt := "Based on the student's profile, generate a detailed daily study plan. " +
		"Focus on JEE/NEET preparation with specific subjects and time allocations. " +
		"Return only the plan content, be specific and actionable.\n\nStudent Profile:\n" +
		profileLines(profile,
			"Exam", "examType",
			"Target Year", "targetYear",
			"Preparation Duration (years)", "preparationYears",
			"Current Class", "currentClass",
			"Daily Study Hours", "studyHours",
			"Weak Subjects", "weakSubjects",
			"Strong Subjects", "strongSubjects",
		)
	plan, err := a.complete(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are Goal AI, an expert in JEE/NEET preparation planning. Create detailed, time-specific daily study plans."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   600,
		Temperature: 0.6,
	})
	if err != nil {
		logging.FromContext(ctx, a.log).Error(ctx, "daily plan completion failed", "error", err)
		return FallbackDailyPlan
	}
	return plan
}

func (a *OpenAIAssistant) AnalyzeProgress(ctx context.Context, profile models.Fields, planned, actual string) models.ProgressAnalysis {
	prompt := "Analyze the student's progress for today and provide a score out of 100, " +
		"along with specific feedback and suggestions for improvement.\n\nStudent Profile:\n" +
		profileLines(profile, "Exam", "examType", "Target Year", "targetYear") +
		fmt.Sprintf("\nPlanned Work: %s\nActual Work Done: %s\n\n", planned, actual) +
		`Respond with a JSON object: {"score": number 0-100, "feedback": string, "suggestions": string, "motivation": string}`

	raw, err := a.complete(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are Goal AI, analyzing student progress. Be honest but encouraging. Provide actionable feedback."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxTokens:   400,
		Temperature: 0.5,
	})
	if err != nil {
		logging.FromContext(ctx, a.log).Error(ctx, "progress analysis completion failed", "error", err)
		return FallbackAnalysis
	}
	analysis, err := parseAnalysis(raw)
	if err != nil {
		logging.FromContext(ctx, a.log).Error(ctx, "progress analysis unparsable", "error", err)
		return FallbackAnalysis
	}
	return analysis
}

func (a *OpenAIAssistant) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func parseAnalysis(raw string) (models.ProgressAnalysis, error) {
	var out struct {
		Score       *float64 `json:"score"`
		Feedback    string   `json:"feedback"`
		Suggestions string   `json:"suggestions"`
		Motivation  string   `json:"motivation"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return models.ProgressAnalysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	if out.Score == nil {
		return models.ProgressAnalysis{}, errors.New("analysis has no score")
	}
	score := int(math.Round(*out.Score))
	score = min(max(score, 0), 100)
	return models.ProgressAnalysis{
		Score:       score,
		Feedback:    out.Feedback,
		Suggestions: out.Suggestions,
		Motivation:  out.Motivation,
	}, nil
}

func chatSystemPrompt(mode models.ChatMode) string {
	switch mode {
	case models.ModeDailyPlanning:
		return "You are Goal AI, a specialized assistant for JEE/NEET preparation. " +
			"Help the student plan their day effectively based on their goals and current preparation status. " +
			"Be motivational and specific."
	case models.ModeEveningCheckin:
		return "You are Goal AI, helping a JEE/NEET student reflect on their day's progress. " +
			"Ask specific questions about what they accomplished and provide constructive feedback and motivation for tomorrow."
	default:
		return "You are Goal AI, a specialized AI assistant for JEE/NEET preparation. " +
			"You help students track their goals, plan their studies, and stay motivated. " +
			"Be encouraging, specific, and focus on actionable advice."
	}
}

func studentContext(profile models.Fields) string {
	return "\n\nStudent Context:\n" + profileLines(profile,
		"Exam", "examType",
		"Target Year", "targetYear",
		"Preparation Duration (years)", "preparationYears",
		"Current Class", "currentClass",
		"Study Hours per day", "studyHours",
	)
}

// profileLines renders label/key pairs as "- label: value" lines.
func profileLines(profile models.Fields, labelKeys ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(labelKeys); i += 2 {
		fmt.Fprintf(&b, "- %s: %s\n", labelKeys[i], fieldText(profile, labelKeys[i+1]))
	}
	return b.String()
}

func fieldText(profile models.Fields, key string) string {
	v, ok := profile[key]
	if !ok || v == nil {
		return "Not specified"
	}
	if s := strings.TrimSpace(fmt.Sprint(v)); s != "" {
		return s
	}
	return "Not specified"
}
