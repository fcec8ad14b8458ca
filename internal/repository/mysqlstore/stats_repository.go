package mysqlstore

import (
	"context"
	"database/sql"

	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.StatsStore = (*StatsRepo)(nil)

type StatsRepo struct{ db *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

func (r *StatsRepo) count(ctx context.Context, table string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

func (r *StatsRepo) CountUsers(ctx context.Context) (int64, error) { return r.count(ctx, "users") }

func (r *StatsRepo) CountCamps(ctx context.Context) (int64, error) { return r.count(ctx, "camps") }

func (r *StatsRepo) CountPayments(ctx context.Context) (int64, error) {
	return r.count(ctx, "payments")
}

// SumRevenue is exact; COALESCE turns the empty-table NULL into 0.
func (r *StatsRepo) SumRevenue(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(price),0) FROM payments").Scan(&sum)
	return sum, err
}
