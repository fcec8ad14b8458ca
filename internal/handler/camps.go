package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

type CampHandler struct {
	camps *service.CampCatalog
	log   *zap.Logger
}

func NewCampHandler(camps *service.CampCatalog, log *zap.Logger) *CampHandler {
	return &CampHandler{camps: camps, log: log}
}

func (h *CampHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	camps, err := h.camps.List(ctx)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, camps)
}

func (h *CampHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	camp, err := h.camps.Get(ctx, id)
	return nullable(c, h.log, camp, err)
}

func (h *CampHandler) Create(c echo.Context) error {
	var camp model.Camp
	if err := c.Bind(&camp); err != nil {
		return badBody(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.camps.Create(ctx, camp)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CampHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	var upd model.CampUpdate
	if err := c.Bind(&upd); err != nil {
		return badBody(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.camps.Update(ctx, id, upd)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CampHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.camps.Delete(ctx, id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
