package memstore

import (
	"context"

	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.StatsStore = (*StatsRepo)(nil)

type StatsRepo struct{ db *DB }

func NewStatsRepo(db *DB) *StatsRepo { return &StatsRepo{db: db} }

func (r *StatsRepo) count(n func() int) int64 {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return int64(n())
}

func (r *StatsRepo) CountUsers(_ context.Context) (int64, error) {
	return r.count(func() int { return len(r.db.users) }), nil
}

func (r *StatsRepo) CountCamps(_ context.Context) (int64, error) {
	return r.count(func() int { return len(r.db.camps) }), nil
}

func (r *StatsRepo) CountPayments(_ context.Context) (int64, error) {
	return r.count(func() int { return len(r.db.payments) }), nil
}

func (r *StatsRepo) SumRevenue(_ context.Context) (float64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var sum float64
	for _, p := range r.db.payments {
		sum += p.Price
	}
	return sum, nil
}
