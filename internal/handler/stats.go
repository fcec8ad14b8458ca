package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/service"
)

type StatsHandler struct {
	stats *service.StatsAggregator
	log   *zap.Logger
}

func NewStatsHandler(stats *service.StatsAggregator, log *zap.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, log: log}
}

// Get handles GET /stats.
func (h *StatsHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	st, err := h.stats.Compute(ctx)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, st)
}
