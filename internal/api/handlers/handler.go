package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rohits-web03/goalai/internal/api/middleware"
	"github.com/rohits-web03/goalai/internal/api/services"
	"github.com/rohits-web03/goalai/internal/logging"
	"github.com/rohits-web03/goalai/internal/utils"
)

type Options struct {
	// Production makes cookies Secure and SameSite=None.
	Production bool
	// FrontendURL is where OAuth callbacks send the browser afterwards.
	FrontendURL string
}

type Handler struct {
	auth     *services.AuthService
	records  *services.RecordService
	coach    *services.Coach
	google   *services.GoogleOAuth
	opts     Options
	log      logging.Logger
	validate *validator.Validate
}

// New wires the HTTP handlers. google may be nil to disable Google sign-in.
func New(auth *services.AuthService, records *services.RecordService, coach *services.Coach, google *services.GoogleOAuth, opts Options, log logging.Logger) *Handler {
	return &Handler{
		auth:     auth,
		records:  records,
		coach:    coach,
		google:   google,
		opts:     opts,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// decodeJSON reads the body into dst. It answers 400 itself and reports
// false when the body is not valid JSON.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// serverError logs err with the request logger and hides it from the client.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logging.FromContext(r.Context(), h.log).Error(r.Context(), message, "error", err)
	utils.ErrorResponse(w, http.StatusInternalServerError, message)
}

// userID reads the id AuthMiddleware stored. Routes without the middleware
// answer 401.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		utils.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
	}
	return id, ok
}

// GET /api/test
// Status godoc
// @Summary Backend status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/test [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	utils.JSONResponse(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Goal AI backend is running",
	})
}
