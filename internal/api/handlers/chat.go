package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rohits-web03/goalai/internal/api/services"
	"github.com/rohits-web03/goalai/internal/models"
	"github.com/rohits-web03/goalai/internal/utils"
)

type chatInput struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type progressInput struct {
	TodayPlan  string `json:"todayPlan"`
	ActualWork string `json:"actualWork"`
}

// POST /api/chat
// Chat godoc
// @Summary Chat with the assistant
// @Description type is one of general, daily-planning, evening-checkin (default general).
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body chatInput true "Message"
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorPayload "Message is required"
// @Failure 500 {object} utils.ErrorPayload
// @Router /api/chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input chatInput
	if !h.decodeJSON(w, r, &input) {
		return
	}
	if input.Message == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := h.coach.Chat(r.Context(), userID, input.Message, models.ParseChatMode(input.Type))
	if err != nil {
		h.serverError(w, r, err, "Failed to get AI response")
		return
	}
	utils.JSONResponse(w, http.StatusOK, map[string]string{"response": reply})
}

// GET /api/chats
// ListChats godoc
// @Summary Chat history
// @Tags Chat
// @Produce json
// @Param limit query int false "Only the newest N messages"
// @Success 200 {array} models.ChatMessage
// @Failure 400 {object} utils.ErrorPayload
// @Failure 500 {object} utils.ErrorPayload
// @Router /api/chats [get]
func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.ErrorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	chats, err := h.records.ListChats(r.Context(), userID, limit)
	if err != nil {
		h.serverError(w, r, err, "Failed to get chat history")
		return
	}
	utils.JSONResponse(w, http.StatusOK, chats)
}

// GET /api/chats/archives
// ChatArchives godoc
// @Summary Archived chat history
// @Description Presigned download links for history moved out by the retention policy.
// @Tags Chat
// @Produce json
// @Success 200 {object} map[string][]repositories.ArchiveLink
// @Failure 500 {object} utils.ErrorPayload
// @Router /api/chats/archives [get]
func (h *Handler) ChatArchives(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	links, err := h.records.ChatArchives(r.Context(), userID)
	if err != nil {
		h.serverError(w, r, err, "Failed to list chat archives")
		return
	}
	utils.JSONResponse(w, http.StatusOK, map[string]any{"archives": links})
}

// POST /api/daily-plan
// DailyPlan godoc
// @Summary Generate today's study plan
// @Tags Planning
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} utils.ErrorPayload "Onboarding not completed"
// @Failure 500 {object} utils.ErrorPayload
// @Router /api/daily-plan [post]
func (h *Handler) DailyPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	plan, err := h.coach.DailyPlan(r.Context(), userID)
	if errors.Is(err, services.ErrOnboardingIncomplete) {
		utils.ErrorResponse(w, http.StatusBadRequest, "Onboarding not completed")
		return
	}
	if err != nil {
		h.serverError(w, r, err, "Failed to generate daily plan")
		return
	}
	utils.JSONResponse(w, http.StatusOK, map[string]string{"plan": plan})
}

// POST /api/analyze-progress
// AnalyzeProgress godoc
// @Summary Score today's work against the plan
// @Tags Planning
// @Accept json
// @Produce json
// @Param body body progressInput true "Planned and actual work"
// @Success 200 {object} map[string]models.ProgressAnalysis
// @Failure 400 {object} utils.ErrorPayload
// @Failure 500 {object} utils.ErrorPayload
// @Router /api/analyze-progress [post]
func (h *Handler) AnalyzeProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var input progressInput
	if !h.decodeJSON(w, r, &input) {
		return
	}

	analysis, err := h.coach.AnalyzeProgress(r.Context(), userID, input.TodayPlan, input.ActualWork)
	if err != nil {
		h.serverError(w, r, err, "Failed to analyze progress")
		return
	}
	utils.JSONResponse(w, http.StatusOK, map[string]any{"analysis": analysis})
}
