package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

// PaymentHandler serves intents, settlements and the payment history.
type PaymentHandler struct {
	settlement *service.SettlementService
	log        *zap.Logger
}

func NewPaymentHandler(settlement *service.SettlementService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{settlement: settlement, log: log}
}

type intentReq struct {
	Price float64 `json:"price"`
}

// CreateIntent handles POST /create-payment-intent.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req intentReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	secret, err := h.settlement.CreateIntent(ctx, req.Price)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}

// paymentReq is the checkout body. Cart ids arrive as strings and are
// parsed before anything is written.
type paymentReq struct {
	Email         string   `json:"email"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	TransactionID string   `json:"transactionId"`
	CartIDs       []string `json:"cartIds"`
	Status        string   `json:"status"`
}

type settlementResp struct {
	PaymentResult model.InsertResult  `json:"paymentResult"`
	DeleteResult  *model.DeleteResult `json:"deleteResult"`
	Outcome       service.Outcome     `json:"outcome"`
	Error         string              `json:"error,omitempty"`
}

// Record handles POST /payments. All three settlement outcomes answer 200;
// the outcome field tells the client whether its cart was cleared.
func (h *PaymentHandler) Record(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	cart, err := model.ParseIDs(req.CartIDs)
	if err != nil {
		return fail(c, h.log, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	st, err := h.settlement.RecordPayment(ctx, model.Payment{
		Email:         req.Email,
		Price:         req.Price,
		Currency:      req.Currency,
		TransactionID: req.TransactionID,
		CartIDs:       cart,
		Status:        req.Status,
	})
	if err != nil {
		return fail(c, h.log, err)
	}

	resp := settlementResp{PaymentResult: st.PaymentResult, Outcome: st.Outcome}
	if st.Err != nil {
		resp.Error = "registrations could not be removed"
	} else {
		del := st.DeleteResult
		resp.DeleteResult = &del
	}
	return c.JSON(http.StatusOK, resp)
}

// ListAll handles GET /payments (admin).
func (h *PaymentHandler) ListAll(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	payments, err := h.settlement.ListAll(ctx)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, payments)
}

// ListByParticipant handles GET /payments/:email (self only).
func (h *PaymentHandler) ListByParticipant(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	payments, err := h.settlement.ListByParticipant(ctx, pathValue(c, "email"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, payments)
}

// Confirm handles PATCH /payments/:id (admin).
func (h *PaymentHandler) Confirm(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.settlement.ConfirmPayment(ctx, id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /payments/:id (admin).
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, h.log, err)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.settlement.Delete(ctx, id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, res)
}
