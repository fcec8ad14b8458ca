package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/token"
)

// Issuer issues bearer tokens.
type Issuer interface {
	IssueToken(c token.Claims) (string, error)
}

// AuthHandler exchanges a signed-in identity for a bearer token. The web
// client signs users in with its identity provider and then calls POST
// /jwt with the user's email; every other body field becomes a claim.
type AuthHandler struct {
	tokens Issuer
	log    *zap.Logger
}

func NewAuthHandler(tokens Issuer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{tokens: tokens, log: log}
}

// IssueToken handles POST /jwt.
func (h *AuthHandler) IssueToken(c echo.Context) error {
	body := map[string]any{}
	if err := c.Bind(&body); err != nil {
		return badBody(c)
	}
	email, _ := body["email"].(string)
	delete(body, "email")

	raw, err := h.tokens.IssueToken(token.Claims{Email: strings.TrimSpace(email), Extra: body})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"token": raw})
}
