package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/queue"
)

// publishTimeout bounds the settlement event publish that follows a
// recorded payment.
const publishTimeout = 2 * time.Second

// Outcome tags the result of a settlement that got past its first step.
type Outcome string

const (
	// BothSucceeded: the payment was recorded and every settled
	// registration was removed.
	BothSucceeded Outcome = queue.OutcomeBothSucceeded
	// RecordedOnly: the payment was recorded but removing the
	// registrations failed. Settlement.Err holds the cause.
	RecordedOnly Outcome = "recorded_only"
	// Inconsistent: both steps ran but fewer registrations were removed
	// than the payment names (some were already gone or never existed).
	Inconsistent Outcome = "inconsistent"
)

// Settlement is the outcome of RecordPayment. Nothing is rolled back; a
// RecordedOnly or Inconsistent settlement is left for an operator.
type Settlement struct {
	Outcome       Outcome
	Payment       model.Payment
	PaymentResult model.InsertResult
	DeleteResult  model.DeleteResult
	Requested     int
	Err           error
}

// SettlementService creates payment intents and records payments against
// the registration ledger.
type SettlementService struct {
	payments PaymentStore
	ledger   *RegistrationLedger
	provider PaymentProvider
	events   EventPublisher
	currency string
	log      *zap.Logger
	now      func() time.Time
}

// NewSettlementService wires the settlement collaborators. currency is
// used for intents and for payments that name none.
func NewSettlementService(payments PaymentStore, ledger *RegistrationLedger, provider PaymentProvider, events EventPublisher, currency string, log *zap.Logger) *SettlementService {
	if currency == "" {
		currency = model.DefaultCurrency
	}
	return &SettlementService{
		payments: payments,
		ledger:   ledger,
		provider: provider,
		events:   events,
		currency: strings.ToLower(currency),
		log:      log,
		now:      time.Now,
	}
}

// MinorUnits converts a decimal price to the provider's integer amount.
// The fractional part below one minor unit is truncated, not rounded.
func MinorUnits(price float64) int64 {
	return int64(math.Trunc(price * 100))
}

// CreateIntent asks the provider for a card payment intent for price and
// returns its client secret. No local state changes.
func (s *SettlementService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return "", fmt.Errorf("%w: price must be a positive number", ErrValidation)
	}
	amount := MinorUnits(price)
	if amount <= 0 {
		return "", fmt.Errorf("%w: price is below the smallest currency unit", ErrValidation)
	}
	secret, err := s.provider.CreateIntent(ctx, amount, s.currency)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	return secret, nil
}

// RecordPayment stores p and then removes the registrations it settles.
// The second step is attempted only when the first succeeds; a failure of
// the first step is returned as an error and nothing else happens.
func (s *SettlementService) RecordPayment(ctx context.Context, p model.Payment) (Settlement, error) {
	if strings.TrimSpace(p.Email) == "" {
		return Settlement{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0 {
		return Settlement{}, fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	}

	p.ID = model.NewID()
	p.CartIDs = dedupeIDs(p.CartIDs)
	p.Status = model.PaymentPending
	if p.Currency == "" {
		p.Currency = s.currency
	}
	p.Currency = strings.ToLower(p.Currency)
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}

	ins, err := s.payments.Insert(ctx, p)
	if err != nil {
		return Settlement{}, fmt.Errorf("insert payment: %w", err)
	}

	out := Settlement{
		Outcome:       BothSucceeded,
		Payment:       p,
		PaymentResult: ins,
		Requested:     len(p.CartIDs),
	}
	del, err := s.ledger.RemoveMany(ctx, p.CartIDs)
	switch {
	case err != nil:
		out.Outcome = RecordedOnly
		out.Err = fmt.Errorf("remove settled registrations: %w", err)
		s.log.Error("payment recorded but cart cleanup failed",
			zap.String("payment_id", p.ID.String()), zap.Int("requested", out.Requested), zap.Error(err))
	case del.DeletedCount < int64(out.Requested):
		out.DeleteResult = del
		out.Outcome = Inconsistent
		s.log.Warn("payment settled fewer registrations than requested",
			zap.String("payment_id", p.ID.String()), zap.Int("requested", out.Requested), zap.Int64("deleted", del.DeletedCount))
	default:
		out.DeleteResult = del
	}

	s.publish(ctx, out)
	return out, nil
}

// ConfirmPayment marks a payment confirmed. Re-confirming is harmless.
func (s *SettlementService) ConfirmPayment(ctx context.Context, id model.ID) (model.UpdateResult, error) {
	return s.payments.SetStatus(ctx, id, model.PaymentConfirmed)
}

// ListAll returns every payment.
func (s *SettlementService) ListAll(ctx context.Context) ([]model.Payment, error) {
	return s.payments.List(ctx)
}

// ListByParticipant returns the payments made by email.
func (s *SettlementService) ListByParticipant(ctx context.Context, email string) ([]model.Payment, error) {
	return s.payments.ListByEmail(ctx, email)
}

// Delete removes a payment record.
func (s *SettlementService) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	return s.payments.Delete(ctx, id)
}

func (s *SettlementService) publish(ctx context.Context, st Settlement) {
	if s.events == nil {
		return
	}
	ids := make([]string, len(st.Payment.CartIDs))
	for i, id := range st.Payment.CartIDs {
		ids[i] = id.String()
	}
	ev := queue.PaymentSettledEvent{
		PaymentID: st.Payment.ID.String(),
		Email:     st.Payment.Email,
		Price:     st.Payment.Price,
		Currency:  st.Payment.Currency,
		CartIDs:   ids,
		Requested: st.Requested,
		Deleted:   st.DeleteResult.DeletedCount,
		Outcome:   string(st.Outcome),
		SettledAt: s.now().UTC().Format(time.RFC3339),
	}
	if st.Err != nil {
		ev.Error = st.Err.Error()
	}
	// the payment is already stored; a slow broker must not hold the response
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.events.PublishPaymentSettled(pctx, ev); err != nil {
		s.log.Warn("publish payment.settled failed", zap.String("payment_id", ev.PaymentID), zap.Error(err))
	}
}

func dedupeIDs(ids []model.ID) []model.ID {
	out := make([]model.ID, 0, len(ids))
	seen := make(map[model.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
