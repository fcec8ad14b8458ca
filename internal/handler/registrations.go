package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

// RegistrationHandler serves the pending registrations (the cart).
type RegistrationHandler struct {
	ledger *service.RegistrationLedger
	log    *zap.Logger
}

func NewRegistrationHandler(ledger *service.RegistrationLedger, log *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{ledger: ledger, log: log}
}

// Add handles POST /register.
func (h *RegistrationHandler) Add(c echo.Context) error {
	var r model.Registration
	if err := c.Bind(&r); err != nil {
		return badBody(c)
	}
	if r.CampID != "" {
		id, err := model.ParseID(string(r.CampID))
		if err != nil {
			return fail(c, h.log, err)
		}
		r.CampID = id
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.ledger.Add(ctx, r)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ListByParticipant handles GET /register?email=.
func (h *RegistrationHandler) ListByParticipant(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	regs, err := h.ledger.ListByParticipant(ctx, c.QueryParam("email"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, regs)
}

// ListAll handles GET /registers.
func (h *RegistrationHandler) ListAll(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	regs, err := h.ledger.ListAll(ctx)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, regs)
}

// Get handles GET /register/:id.
func (h *RegistrationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	reg, err := h.ledger.Get(ctx, id)
	return nullable(c, h.log, reg, err)
}

// Remove handles DELETE /register/:id.
func (h *RegistrationHandler) Remove(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.ledger.Remove(ctx, id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
