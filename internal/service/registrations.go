package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/medicamp-server/internal/model"
)

// RegistrationLedger tracks pending (unpaid) camp registrations. The same
// participant may register for the same camp more than once; each call
// produces its own row.
type RegistrationLedger struct {
	store RegistrationStore
	now   func() time.Time
}

// NewRegistrationLedger returns a ledger backed by store.
func NewRegistrationLedger(store RegistrationStore) *RegistrationLedger {
	return &RegistrationLedger{store: store, now: time.Now}
}

// Add records a new pending registration.
func (l *RegistrationLedger) Add(ctx context.Context, r model.Registration) (model.InsertResult, error) {
	if strings.TrimSpace(r.Email) == "" {
		return model.InsertResult{}, fmt.Errorf("%w: email is required", ErrValidation)
	}
	if r.CampID.IsZero() {
		return model.InsertResult{}, fmt.Errorf("%w: campId is required", ErrValidation)
	}
	if r.CampFees < 0 {
		return model.InsertResult{}, fmt.Errorf("%w: campFees must not be negative", ErrValidation)
	}
	r.ID = model.NewID()
	r.CreatedAt = l.now().UTC()
	return l.store.Insert(ctx, r)
}

// ListByParticipant returns the pending registrations of email.
func (l *RegistrationLedger) ListByParticipant(ctx context.Context, email string) ([]model.Registration, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	return l.store.ListByEmail(ctx, email)
}

// ListAll returns every pending registration.
func (l *RegistrationLedger) ListAll(ctx context.Context) ([]model.Registration, error) {
	return l.store.List(ctx)
}

// Get returns one registration or model.ErrNotFound.
func (l *RegistrationLedger) Get(ctx context.Context, id model.ID) (model.Registration, error) {
	return l.store.Get(ctx, id)
}

// Remove deletes one registration (cart removal).
func (l *RegistrationLedger) Remove(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	return l.store.Delete(ctx, id)
}

// RemoveMany deletes exactly the registrations in ids.
func (l *RegistrationLedger) RemoveMany(ctx context.Context, ids []model.ID) (model.DeleteResult, error) {
	if len(ids) == 0 {
		return model.DeleteResult{Acknowledged: true}, nil
	}
	return l.store.DeleteMany(ctx, ids)
}
