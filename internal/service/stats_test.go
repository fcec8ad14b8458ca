package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/repository/memstore"
	"github.com/iliyamo/medicamp-server/internal/service"
)

func TestStats_EmptyStore(t *testing.T) {
	agg := service.NewStatsAggregator(memstore.NewStatsRepo(memstore.New()))

	st, err := agg.Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Stats{}, st)
}

func TestStats_CountsAndRevenue(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	users := memstore.NewUserRepo(db)
	camps := memstore.NewCampRepo(db)
	payments := memstore.NewPaymentRepo(db)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := users.Insert(ctx, model.User{ID: model.NewID(), Email: email})
		require.NoError(t, err)
	}
	_, err := camps.Insert(ctx, model.Camp{ID: model.NewID(), CampName: "Dental"})
	require.NoError(t, err)
	for _, price := range []float64{10.5, 20} {
		_, err := payments.Insert(ctx, model.Payment{ID: model.NewID(), Email: "a@example.com", Price: price})
		require.NoError(t, err)
	}

	st, err := service.NewStatsAggregator(memstore.NewStatsRepo(db)).Compute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.Users)
	assert.EqualValues(t, 1, st.TotalCamp)
	assert.EqualValues(t, 2, st.Join)
	assert.InDelta(t, 30.5, st.Revenue, 1e-9)
}

func TestStats_AnyFailureFailsAll(t *testing.T) {
	boom := errors.New("aggregate failed")
	agg := service.NewStatsAggregator(failingStats{StatsRepo: memstore.NewStatsRepo(memstore.New()), err: boom})

	_, err := agg.Compute(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "sum revenue")
}
