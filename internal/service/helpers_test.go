package service_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/queue"
	"github.com/iliyamo/medicamp-server/internal/repository/memstore"
)

type mockProvider struct{ mock.Mock }

func (m *mockProvider) CreateIntent(ctx context.Context, amountMinor int64, currency string) (string, error) {
	args := m.Called(ctx, amountMinor, currency)
	return args.String(0), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishPaymentSettled(ctx context.Context, ev queue.PaymentSettledEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// recordingPublisher keeps every event it is handed.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.PaymentSettledEvent
}

func (r *recordingPublisher) PublishPaymentSettled(_ context.Context, ev queue.PaymentSettledEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingPublisher) all() []queue.PaymentSettledEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]queue.PaymentSettledEvent(nil), r.events...)
}

// failingDeletes is a registration store whose bulk delete always fails.
type failingDeletes struct {
	*memstore.RegistrationRepo
	err error
}

func (f failingDeletes) DeleteMany(context.Context, []model.ID) (model.DeleteResult, error) {
	return model.DeleteResult{}, f.err
}

// failingPayments is a payment store whose inserts always fail.
type failingPayments struct {
	*memstore.PaymentRepo
	err error
}

func (f failingPayments) Insert(context.Context, model.Payment) (model.InsertResult, error) {
	return model.InsertResult{}, f.err
}

// flakyUsers is a user store whose email lookups always fail.
type flakyUsers struct {
	*memstore.UserRepo
	err error
}

func (f flakyUsers) GetByEmail(context.Context, string) (model.User, error) {
	return model.User{}, f.err
}

// racingUsers hides existing users from lookups so Create reaches Insert.
type racingUsers struct {
	*memstore.UserRepo
}

func (racingUsers) GetByEmail(context.Context, string) (model.User, error) {
	return model.User{}, model.ErrNotFound
}

// failingStats fails the revenue sum.
type failingStats struct {
	*memstore.StatsRepo
	err error
}

func (f failingStats) SumRevenue(context.Context) (float64, error) {
	return 0, f.err
}
