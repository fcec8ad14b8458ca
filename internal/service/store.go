package service

import (
	"context"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/queue"
)

// The store interfaces below are satisfied by every backend under
// internal/repository. Lookups of a single record return model.ErrNotFound
// when nothing matches; deletes of missing records return a zero count.

// UserStore persists users keyed by email.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Insert(ctx context.Context, u model.User) (model.InsertResult, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, email string, upd model.ProfileUpdate) (model.UpdateResult, error)
	SetRole(ctx context.Context, id model.ID, role string) (model.UpdateResult, error)
	Delete(ctx context.Context, id model.ID) (model.DeleteResult, error)
}

// CampStore persists camps.
type CampStore interface {
	List(ctx context.Context) ([]model.Camp, error)
	Get(ctx context.Context, id model.ID) (model.Camp, error)
	Insert(ctx context.Context, c model.Camp) (model.InsertResult, error)
	Update(ctx context.Context, id model.ID, upd model.CampUpdate) (model.UpdateResult, error)
	Delete(ctx context.Context, id model.ID) (model.DeleteResult, error)
}

// RegistrationStore persists pending registrations.
type RegistrationStore interface {
	Insert(ctx context.Context, r model.Registration) (model.InsertResult, error)
	List(ctx context.Context) ([]model.Registration, error)
	ListByEmail(ctx context.Context, email string) ([]model.Registration, error)
	Get(ctx context.Context, id model.ID) (model.Registration, error)
	Delete(ctx context.Context, id model.ID) (model.DeleteResult, error)
	// DeleteMany removes every registration whose id is in ids and nothing else.
	DeleteMany(ctx context.Context, ids []model.ID) (model.DeleteResult, error)
}

// PaymentStore persists payments.
type PaymentStore interface {
	Insert(ctx context.Context, p model.Payment) (model.InsertResult, error)
	List(ctx context.Context) ([]model.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]model.Payment, error)
	SetStatus(ctx context.Context, id model.ID, status string) (model.UpdateResult, error)
	Delete(ctx context.Context, id model.ID) (model.DeleteResult, error)
}

// ReviewStore persists reviews.
type ReviewStore interface {
	Insert(ctx context.Context, r model.Review) (model.InsertResult, error)
}

// StatsStore answers the aggregate questions behind /stats. Counts may be
// approximate; the revenue sum must be exact and zero on an empty store.
type StatsStore interface {
	CountUsers(ctx context.Context) (int64, error)
	CountCamps(ctx context.Context) (int64, error)
	CountPayments(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (float64, error)
}

// PaymentProvider creates payment intents with the card processor.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (clientSecret string, err error)
}

// EventPublisher announces completed settlements.
type EventPublisher interface {
	PublishPaymentSettled(ctx context.Context, ev queue.PaymentSettledEvent) error
}
