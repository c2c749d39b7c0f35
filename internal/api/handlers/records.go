package handlers

import (
	"net/http"

	"github.com/rohits-web03/goalai/internal/models"
	"github.com/rohits-web03/goalai/internal/utils"
)

// POST /api/onboarding
// SaveOnboarding godoc
// @Summary Save onboarding answers
// @Description Merges the submitted fields into the stored profile and marks onboarding completed.
// @Tags Onboarding
// @Accept json
// @Produce json
// @Param body body object true "Free-form onboarding fields"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.ErrorPayload
// @Failure 500 {object} utils.ErrorPayload
// @Router /api/onboarding [post]
func (h *Handler) SaveOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var fields models.Fields
	if !h.decodeJSON(w, r, &fields) {
		return
	}

	if err := h.records.SaveOnboarding(r.Context(), userID, fields); err != nil {
		h.serverError(w, r, err, "Failed to save onboarding data")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{Success: true})
}

// GET /api/onboarding
// GetOnboarding godoc
// @Summary Get onboarding answers
// @Tags Onboarding
// @Produce json
// @Success 200 {object} object "Stored fields plus completed/completedAt, or {}"
// @Failure 500 {object} utils.ErrorPayload
// @Router /api/onboarding [get]
func (h *Handler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	o, err := h.records.GetOnboarding(r.Context(), userID)
	if err != nil {
		h.serverError(w, r, err, "Failed to get onboarding data")
		return
	}
	if o == nil {
		utils.JSONResponse(w, http.StatusOK, struct{}{})
		return
	}
	utils.JSONResponse(w, http.StatusOK, o)
}

// PUT /api/profile
// UpdateProfile godoc
// @Summary Update profile
// @Description Merges the submitted fields into the profile. A "name" field also renames the user.
// @Tags Profile
// @Accept json
// @Produce json
// @Param body body object true "Free-form profile fields"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.ErrorPayload
// @Failure 500 {object} utils.ErrorPayload
// @Router /api/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var fields models.Fields
	if !h.decodeJSON(w, r, &fields) {
		return
	}

	if err := h.records.UpdateProfile(r.Context(), userID, fields); err != nil {
		h.serverError(w, r, err, "Failed to update profile")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{Success: true})
}

// GET /api/profile
// GetProfile godoc
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Success 200 {object} object "Stored fields plus updatedAt, or {}"
// @Failure 500 {object} utils.ErrorPayload
// @Router /api/profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	p, err := h.records.GetProfile(r.Context(), userID)
	if err != nil {
		h.serverError(w, r, err, "Failed to get profile")
		return
	}
	if p == nil {
		utils.JSONResponse(w, http.StatusOK, struct{}{})
		return
	}
	utils.JSONResponse(w, http.StatusOK, p)
}
