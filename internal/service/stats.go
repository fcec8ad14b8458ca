package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/medicamp-server/internal/model"
)

// StatsAggregator computes the platform-wide counts and revenue on demand.
type StatsAggregator struct {
	store StatsStore
}

// NewStatsAggregator returns an aggregator reading from store.
func NewStatsAggregator(store StatsStore) *StatsAggregator {
	return &StatsAggregator{store: store}
}

// Compute runs the four reads concurrently. Any failure fails the whole
// computation; an empty payment store yields zero revenue.
func (a *StatsAggregator) Compute(ctx context.Context) (model.Stats, error) {
	var out model.Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := a.store.CountUsers(gctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		out.Users = n
		return nil
	})
	g.Go(func() error {
		n, err := a.store.CountCamps(gctx)
		if err != nil {
			return fmt.Errorf("count camps: %w", err)
		}
		out.TotalCamp = n
		return nil
	})
	g.Go(func() error {
		n, err := a.store.CountPayments(gctx)
		if err != nil {
			return fmt.Errorf("count payments: %w", err)
		}
		out.Join = n
		return nil
	})
	g.Go(func() error {
		sum, err := a.store.SumRevenue(gctx)
		if err != nil {
			return fmt.Errorf("sum revenue: %w", err)
		}
		out.Revenue = sum
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.Stats{}, err
	}
	return out, nil
}
