package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

// UserHandler serves the user directory.
type UserHandler struct {
	users *service.UserDirectory
	log   *zap.Logger
}

func NewUserHandler(users *service.UserDirectory, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// Create handles POST /users. Creating an existing email is not an error;
// the response says so and carries no id.
func (h *UserHandler) Create(c echo.Context) error {
	var u model.User
	if err := c.Bind(&u); err != nil {
		return badBody(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	res, err := h.users.Create(ctx, u)
	if err != nil {
		return fail(c, h.log, err)
	}
	if !res.Created {
		return c.JSON(http.StatusOK, echo.Map{"message": "user already exists!", "insertedId": nil})
	}
	return c.JSON(http.StatusOK, res.Insert)
}

// Get handles GET /user/:email.
func (h *UserHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.users.Get(ctx, pathValue(c, "email"))
	return nullable(c, h.log, u, err)
}

// List handles GET /users (admin).
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	users, err := h.users.List(ctx)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateProfile handles PATCH /user/:email.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var upd model.ProfileUpdate
	if err := c.Bind(&upd); err != nil {
		return badBody(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.users.UpdateProfile(ctx, pathValue(c, "email"), upd)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// IsAdmin handles GET /users/admin/:email (self only).
func (h *UserHandler) IsAdmin(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	return c.JSON(http.StatusOK, echo.Map{"admin": h.users.IsAdmin(ctx, pathValue(c, "email"))})
}

// Promote handles PATCH /users/admin/:id (admin).
func (h *UserHandler) Promote(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.users.PromoteToAdmin(ctx, id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /users/:id (admin).
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.users.Delete(ctx, id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
