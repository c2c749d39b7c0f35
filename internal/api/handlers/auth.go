package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/rohits-web03/goalai/internal/api/middleware"
	"github.com/rohits-web03/goalai/internal/api/services"
	"github.com/rohits-web03/goalai/internal/utils"
)

const oauthStateCookie = "oauth_state"

type registerInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /api/register
// Register godoc
// @Summary Create an account
// @Description Registers a user and starts a session (cookie "token").
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body registerInput true "Credentials"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorPayload "Missing fields or user already exists"
// @Router /api/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if !h.decodeJSON(w, r, &input) {
		return
	}
	if err := h.validate.Struct(input); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Email, password, and name are required")
		return
	}

	res, err := h.auth.Register(r.Context(), input.Email, input.Password, input.Name)
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.ErrorResponse(w, http.StatusBadRequest, "Email, password, and name are required")
		return
	case errors.Is(err, services.ErrDuplicateEmail):
		utils.ErrorResponse(w, http.StatusBadRequest, "User already exists")
		return
	case err != nil:
		h.serverError(w, r, err, "Internal server error")
		return
	}

	h.setSessionCookie(w, res.Token)
	utils.JSONResponse(w, http.StatusCreated, res.User)
}

// POST /api/login
// Login godoc
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body loginInput true "Credentials"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorPayload "Missing fields"
// @Failure 401 {object} utils.ErrorPayload "Invalid credentials"
// @Router /api/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if !h.decodeJSON(w, r, &input) {
		return
	}
	if err := h.validate.Struct(input); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	res, err := h.auth.Login(r.Context(), input.Email, input.Password)
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.ErrorResponse(w, http.StatusBadRequest, "Email and password are required")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		h.serverError(w, r, err, "Internal server error")
		return
	}

	h.setSessionCookie(w, res.Token)
	utils.JSONResponse(w, http.StatusOK, res.User)
}

// POST /api/logout
// Logout godoc
// @Summary Log out
// @Description Destroys the current session, if any, and clears the cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 500 {object} utils.ErrorPayload
// @Router /api/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(middleware.SessionCookie); err == nil {
		token = c.Value
	}
	if err := h.auth.Logout(r.Context(), token); err != nil {
		h.serverError(w, r, err, "Could not log out")
		return
	}

	h.clearCookie(w, middleware.SessionCookie)
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

// GET /api/user
// CurrentUser godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorPayload
// @Router /api/user [get]
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(middleware.SessionCookie); err == nil {
		token = c.Value
	}

	user, err := h.auth.CurrentUser(r.Context(), token)
	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		utils.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	case errors.Is(err, services.ErrUserNotFound):
		utils.ErrorResponse(w, http.StatusUnauthorized, "User not found")
		return
	case err != nil:
		h.serverError(w, r, err, "Internal server error")
		return
	}
	utils.JSONResponse(w, http.StatusOK, user)
}

// GET /api/auth/google/login?redirect=login|register
// GoogleLogin godoc
// @Summary Start Google sign-in
// @Tags Auth
// @Param redirect query string false "login or register"
// @Success 307
// @Failure 404 {object} utils.ErrorPayload "Google sign-in not configured"
// @Router /api/auth/google/login [get]
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		utils.ErrorResponse(w, http.StatusNotFound, "Google sign-in is not configured")
		return
	}

	flow := r.URL.Query().Get("redirect")
	if flow != "register" {
		flow = "login"
	}
	state, err := oauthState{Flow: flow}.encode()
	if err != nil {
		h.serverError(w, r, err, "Failed to generate OAuth state")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.opts.Production,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GET /api/auth/google/callback
// GoogleCallback godoc
// @Summary Finish Google sign-in
// @Tags Auth
// @Success 307
// @Failure 400 {object} utils.ErrorPayload "Invalid OAuth state"
// @Router /api/auth/google/callback [get]
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		utils.ErrorResponse(w, http.StatusNotFound, "Google sign-in is not configured")
		return
	}

	state := r.FormValue("state")
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	h.clearCookie(w, oauthStateCookie)

	decoded, err := decodeState(state)
	if err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	register := decoded.Flow == "register"

	googleUser, err := h.google.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		h.serverError(w, r, err, "Google sign-in failed")
		return
	}

	res, err := h.auth.LoginWithProvider(r.Context(), googleUser.Email, googleUser.Name, register)
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		http.Redirect(w, r, h.opts.FrontendURL+"/login?error=user_already_exists", http.StatusTemporaryRedirect)
		return
	case errors.Is(err, services.ErrUserNotFound):
		http.Redirect(w, r, h.opts.FrontendURL+"/register?error=user_not_found", http.StatusTemporaryRedirect)
		return
	case err != nil:
		h.serverError(w, r, err, "Google sign-in failed")
		return
	}

	h.setSessionCookie(w, res.Token)
	status := "success_login"
	if register {
		status = "success_register"
	}
	http.Redirect(w, r, h.opts.FrontendURL+"/?status="+status, http.StatusTemporaryRedirect)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	// SameSite cookie policy
	sameSite := http.SameSiteLaxMode
	if h.opts.Production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.auth.SessionTTL().Seconds()),
		Secure:   h.opts.Production,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	path := "/"
	if name == oauthStateCookie {
		path = "/api/auth/google"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1, // maxAge < 0 deletes the cookie
		Secure:   h.opts.Production,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
