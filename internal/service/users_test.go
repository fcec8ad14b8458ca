package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/repository/memstore"
	"github.com/iliyamo/medicamp-server/internal/service"
)

func newDirectory(t *testing.T) (*service.UserDirectory, *memstore.UserRepo) {
	t.Helper()
	repo := memstore.NewUserRepo(memstore.New())
	return service.NewUserDirectory(repo, zap.NewNop()), repo
}

func TestUserDirectory_CreateIsIdempotentByEmail(t *testing.T) {
	ctx := context.Background()
	dir, _ := newDirectory(t)

	first, err := dir.Create(ctx, model.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.False(t, first.Insert.InsertedID.IsZero())

	second, err := dir.Create(ctx, model.User{Name: "Alice again", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.True(t, second.Insert.InsertedID.IsZero())

	users, err := dir.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
}

func TestUserDirectory_EmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	dir, _ := newDirectory(t)

	_, err := dir.Create(ctx, model.User{Email: "bob@example.com"})
	require.NoError(t, err)
	res, err := dir.Create(ctx, model.User{Email: "Bob@example.com"})
	require.NoError(t, err)
	assert.True(t, res.Created)
}

func TestUserDirectory_CreateCannotGrantRole(t *testing.T) {
	ctx := context.Background()
	dir, _ := newDirectory(t)

	_, err := dir.Create(ctx, model.User{Email: "eve@example.com", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.False(t, dir.IsAdmin(ctx, "eve@example.com"))
}

func TestUserDirectory_CreateRequiresEmail(t *testing.T) {
	dir, _ := newDirectory(t)

	_, err := dir.Create(context.Background(), model.User{Name: "nobody"})
	require.ErrorIs(t, err, service.ErrValidation)
}

func TestUserDirectory_CreateLosingRaceReportsExisting(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewUserRepo(memstore.New())
	_, err := repo.Insert(ctx, model.User{ID: model.NewID(), Email: "race@example.com"})
	require.NoError(t, err)

	dir := service.NewUserDirectory(racingUsers{repo}, zap.NewNop())
	res, err := dir.Create(ctx, model.User{Email: "race@example.com"})
	require.NoError(t, err)
	assert.False(t, res.Created)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserDirectory_PromoteAndIsAdmin(t *testing.T) {
	ctx := context.Background()
	dir, _ := newDirectory(t)

	res, err := dir.Create(ctx, model.User{Email: "carol@example.com"})
	require.NoError(t, err)
	assert.False(t, dir.IsAdmin(ctx, "carol@example.com"))

	upd, err := dir.PromoteToAdmin(ctx, res.Insert.InsertedID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, upd.MatchedCount)
	assert.True(t, dir.IsAdmin(ctx, "carol@example.com"))

	assert.False(t, dir.IsAdmin(ctx, "ghost@example.com"))
}

func TestUserDirectory_IsAdminSwallowsStoreErrors(t *testing.T) {
	repo := memstore.NewUserRepo(memstore.New())
	dir := service.NewUserDirectory(flakyUsers{UserRepo: repo, err: errors.New("connection reset")}, zap.NewNop())

	assert.False(t, dir.IsAdmin(context.Background(), "carol@example.com"))
}

func TestUserDirectory_DeleteMissingUser(t *testing.T) {
	dir, _ := newDirectory(t)

	res, err := dir.Delete(context.Background(), model.NewID())
	require.NoError(t, err)
	assert.Zero(t, res.DeletedCount)
}

func TestUserDirectory_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	dir, _ := newDirectory(t)

	created, err := dir.Create(ctx, model.User{Name: "Dan", Email: "dan@example.com"})
	require.NoError(t, err)
	_, err = dir.PromoteToAdmin(ctx, created.Insert.InsertedID)
	require.NoError(t, err)
	_, err = dir.Create(ctx, model.User{Name: "Erin", Email: "erin@example.com"})
	require.NoError(t, err)

	res, err := dir.UpdateProfile(ctx, "dan@example.com", model.ProfileUpdate{Name: "Daniel", PhoneNumber: "555"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ModifiedCount)

	u, err := dir.Get(ctx, "dan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Daniel", u.Name)
	assert.Equal(t, "555", u.PhoneNumber)
	assert.True(t, u.IsAdmin(), "profile updates must not touch the role")

	_, err = dir.UpdateProfile(ctx, "dan@example.com", model.ProfileUpdate{Email: "erin@example.com"})
	require.ErrorIs(t, err, model.ErrDuplicateEmail)

	res, err = dir.UpdateProfile(ctx, "nobody@example.com", model.ProfileUpdate{Name: "x"})
	require.NoError(t, err)
	assert.Zero(t, res.MatchedCount)
}

func TestUserDirectory_GetMissing(t *testing.T) {
	dir, _ := newDirectory(t)

	_, err := dir.Get(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}
