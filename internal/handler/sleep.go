package handler

import (
	"net/http"
	"time"

	"github.com/templui/nocturne/internal/ctxkeys"
	"github.com/templui/nocturne/internal/model"
	"github.com/templui/nocturne/internal/render"
	"github.com/templui/nocturne/internal/service"
)

type startSleepRequest struct {
	SleepStart *time.Time `json:"sleep_start,omitempty"`
}

type sleepHandler struct {
	sleepService *service.SleepService
}

func NewSleepHandler(sleepService *service.SleepService) *sleepHandler {
	return &sleepHandler{
		sleepService: sleepService,
	}
}

func (h *sleepHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	logs, err := h.sleepService.SleepLogs(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, logs)
}

func (h *sleepHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req startSleepRequest
	err := decodeOptionalJSON(w, r, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log, err := h.sleepService.Start(r.Context(), user.ID, req.SleepStart)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, log)
}

func (h *sleepHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var update model.SleepLogUpdate
	err := decodeJSON(w, r, &update)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log, err := h.sleepService.Update(r.Context(), user.ID, r.PathValue("id"), update)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, log)
}

// Stop ends the active session now.
func (h *sleepHandler) Stop(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	log, err := h.sleepService.Stop(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, log)
}

func (h *sleepHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.sleepService.Delete(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.NoContent(w)
}
