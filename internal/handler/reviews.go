package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

type ReviewHandler struct {
	reviews *service.ReviewIntake
	log     *zap.Logger
}

func NewReviewHandler(reviews *service.ReviewIntake, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, log: log}
}

// Create handles POST /reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	var rev model.Review
	if err := c.Bind(&rev); err != nil {
		return badBody(c)
	}
	if rev.CampID != "" {
		id, err := model.ParseID(string(rev.CampID))
		if err != nil {
			return fail(c, h.log, err)
		}
		rev.CampID = id
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.reviews.Create(ctx, rev)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
