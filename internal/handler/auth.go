package handler

import (
	"net/http"
	"time"

	"github.com/templui/nocturne/internal/ctxkeys"
	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/render"
	"github.com/templui/nocturne/internal/service"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// SessionResponse is returned by signup, login and session. Token is only
// set when a new session was issued.
type SessionResponse struct {
	Token     string         `json:"token,omitempty"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	User      *model.User    `json:"user"`
	Profile   *model.Profile `json:"profile"`
}

type authHandler struct {
	authService    *service.AuthService
	profileService *service.ProfileService
}

func NewAuthHandler(authService *service.AuthService, profileService *service.ProfileService) *authHandler {
	return &authHandler{
		authService:    authService,
		profileService: profileService,
	}
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.startSession(w, r, user, http.StatusCreated)
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.startSession(w, r, user, http.StatusOK)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	render.NoContent(w)
}

// Session reports the signed-in user and profile.
func (h *authHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.profileService.Profile(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, SessionResponse{User: user, Profile: profile})
}

// startSession issues a token, sets it as a cookie for browsers and returns
// it in the body for API clients.
func (h *authHandler) startSession(w http.ResponseWriter, r *http.Request, user *model.User, status int) {
	token, expiresAt, err := h.authService.GenerateJWT(user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	profile, err := h.profileService.Profile(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.authService.SetJWTCookie(w, token, expiresAt)

	render.JSON(w, status, SessionResponse{
		Token:     token,
		ExpiresAt: &expiresAt,
		User:      user,
		Profile:   profile,
	})
}
