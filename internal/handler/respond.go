package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/templui/nocturne/internal/ctxkeys"
	"github.com/templui/nocturne/internal/render"
	"github.com/templui/nocturne/internal/repository"
	"github.com/templui/nocturne/internal/service"
	"github.com/templui/nocturne/internal/validation"
)

const maxBodyBytes = 1 << 20 // 1MB

// errorStatus maps service and repository errors to HTTP status codes.
// Their messages are safe to show to the client.
var errorStatus = []struct {
	err    error
	status int
}{
	{repository.ErrSleepLogNotFound, http.StatusNotFound},
	{repository.ErrNoteNotFound, http.StatusNotFound},
	{repository.ErrProfileNotFound, http.StatusNotFound},
	{repository.ErrUserNotFound, http.StatusNotFound},

	{service.ErrEmptyUpdate, http.StatusBadRequest},
	{service.ErrInvalidEmail, http.StatusBadRequest},
	{service.ErrInvalidWakeTime, http.StatusBadRequest},
	{service.ErrInvalidAvatarURL, http.StatusBadRequest},
	{service.ErrInvalidFrontmatter, http.StatusBadRequest},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrPasswordlessAccount, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrInvalidCurrentPassword, http.StatusForbidden},

	{service.ErrEmailAlreadyExists, http.StatusConflict},
	{service.ErrSleepInProgress, http.StatusConflict},
	{service.ErrSleepAlreadyStopped, http.StatusConflict},
	{service.ErrNoActiveSleep, http.StatusConflict},

	{service.ErrStorageUnavailable, http.StatusServiceUnavailable},
}

// writeServiceError renders err with its mapped status. Unknown errors are
// logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		render.Error(w, http.StatusBadRequest, verr.Message)
		return
	}

	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			render.Error(w, e.status, err.Error())
			return
		}
	}

	attrs := []any{"error", err, "method", r.Method, "path", r.URL.Path}
	if user := ctxkeys.User(r.Context()); user != nil {
		attrs = append(attrs, "user_id", user.ID)
	}
	slog.Error("request failed", attrs...)
	render.Error(w, http.StatusInternalServerError, "internal server error")
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(v)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &validation.Error{Message: "request body is empty"}
		}
		return &validation.Error{Message: fmt.Sprintf("invalid request body: %v", err)}
	}

	if decoder.More() {
		return &validation.Error{Message: "request body must contain a single JSON object"}
	}

	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints where every field is
// optional and an empty body is allowed.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}

	err := decodeJSON(w, r, v)
	var verr *validation.Error
	if errors.As(err, &verr) && verr.Message == "request body is empty" {
		return nil
	}
	return err
}
