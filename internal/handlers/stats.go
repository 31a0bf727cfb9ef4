package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avolkov/webshop/internal/session"
	"github.com/avolkov/webshop/internal/visits"
)

type StatsHandler struct {
	Store *session.Store
}

// SessionStats reports every tracked page's visit counter for the current
// session, absent pages as zero. Start times are informational.
func (h *StatsHandler) SessionStats(c echo.Context) error {
	state, err := h.Store.Load(session.SID(c))
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	stats := make(map[string]any, len(visits.Pages)*2)
	for _, page := range visits.Pages {
		stats[page+"_visits"] = state.Visits[page]
		if t, ok := state.StartTimes[page]; ok {
			stats[page+"_start_time"] = t
		}
	}
	return c.JSON(http.StatusOK, stats)
}
