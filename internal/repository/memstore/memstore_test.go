package memstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/repository/memstore"
)

func TestRegistrationRepo_DeleteManyRemovesExactlyTheGivenIDs(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewRegistrationRepo(memstore.New())

	ids := make([]model.ID, 4)
	for i := range ids {
		ids[i] = model.NewID()
		_, err := repo.Insert(ctx, model.Registration{ID: ids[i], Email: "pat@example.com", CampID: model.NewID()})
		require.NoError(t, err)
	}

	res, err := repo.DeleteMany(ctx, []model.ID{ids[0], ids[2], model.NewID()})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.DeletedCount)

	left, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, left, 2)
	got := []model.ID{left[0].ID, left[1].ID}
	assert.ElementsMatch(t, []model.ID{ids[1], ids[3]}, got)
}

func TestUserRepo_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewUserRepo(memstore.New())

	_, err := repo.Insert(ctx, model.User{ID: model.NewID(), Email: "pat@example.com"})
	require.NoError(t, err)
	_, err = repo.Insert(ctx, model.User{ID: model.NewID(), Email: "pat@example.com"})
	require.ErrorIs(t, err, model.ErrDuplicateEmail)

	// emails are case-sensitive as stored
	_, err = repo.Insert(ctx, model.User{ID: model.NewID(), Email: "Pat@example.com"})
	require.NoError(t, err)
}

func TestUserRepo_SetRoleReportsModification(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewUserRepo(memstore.New())
	id := model.NewID()
	_, err := repo.Insert(ctx, model.User{ID: id, Email: "pat@example.com"})
	require.NoError(t, err)

	res, err := repo.SetRole(ctx, id, model.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ModifiedCount)

	res, err = repo.SetRole(ctx, id, model.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.Zero(t, res.ModifiedCount)

	res, err = repo.SetRole(ctx, model.NewID(), model.RoleAdmin)
	require.NoError(t, err)
	assert.Zero(t, res.MatchedCount)
}

func TestPaymentRepo_ListIsolatedFromCallerMutation(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewPaymentRepo(memstore.New())
	cart := []model.ID{model.NewID()}
	_, err := repo.Insert(ctx, model.Payment{ID: model.NewID(), Email: "pat@example.com", CartIDs: cart})
	require.NoError(t, err)
	cart[0] = "mutated"

	list, err := repo.ListByEmail(ctx, "pat@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEqual(t, model.ID("mutated"), list[0].CartIDs[0])
}
