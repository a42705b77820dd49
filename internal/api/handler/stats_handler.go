package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/traveldesk/travel-requests/internal/core/ports"
)

type StatsHandler struct {
	stats ports.StatsService
}

func NewStatsHandler(stats ports.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get returns the aggregate statistics snapshot. Staff only.
//
// @Summary      Travel request statistics
// @Description  Served from a short-lived cache; may lag recent writes.
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      403  {object}  map[string]string
// @Router       /stats/ [get]
func (h *StatsHandler) Get(c echo.Context) error {
	stats, err := h.stats.Snapshot(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatsResponse(stats))
}
