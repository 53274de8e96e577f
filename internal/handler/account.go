package handler

import (
	"net/http"

	"github.com/templui/nocturne/internal/ctxkeys"
	"github.com/templui/nocturne/internal/render"
	"github.com/templui/nocturne/internal/service"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type accountHandler struct {
	accountService *service.AccountService
	authService    *service.AuthService
}

func NewAccountHandler(accountService *service.AccountService, authService *service.AuthService) *accountHandler {
	return &accountHandler{
		accountService: accountService,
		authService:    authService,
	}
}

func (h *accountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req changePasswordRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	err = h.accountService.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.NoContent(w)
}

// Delete removes the account and ends the cookie session.
func (h *accountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.accountService.DeleteAccount(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.authService.ClearJWTCookie(w)
	render.NoContent(w)
}
