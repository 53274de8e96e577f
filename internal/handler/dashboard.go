package handler

import (
	"net/http"
	"time"

	"github.com/templui/nocturne/internal/ctxkeys"
	"github.com/templui/nocturne/internal/render"
	"github.com/templui/nocturne/internal/service"
)

type dashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *dashboardHandler {
	return &dashboardHandler{
		dashboardService: dashboardService,
	}
}

// Dashboard accepts an optional IANA "tz" query parameter for the greeting.
func (h *dashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	loc := time.UTC
	if tz := r.URL.Query().Get("tz"); tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			render.Error(w, http.StatusBadRequest, "unknown time zone: "+tz)
			return
		}
	}

	dashboard, err := h.dashboardService.Dashboard(r.Context(), user.ID, loc)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, dashboard)
}
