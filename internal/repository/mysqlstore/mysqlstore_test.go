package mysqlstore

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/medicamp-server/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func TestUserRepo_InsertDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	u := model.User{ID: model.NewID(), Email: "pat@example.com", CreatedAt: time.Now().UTC()}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := NewUserRepo(db).Insert(context.Background(), u)
	require.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestUserRepo_GetByEmailNotFound(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewUserRepo(db).GetByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock := newMock(t)
	id := model.NewID()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WithArgs("pat@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone_number", "contact", "image", "role", "created_at"}).
			AddRow(string(id), "Pat", "pat@example.com", "", "", "", "admin", at))

	u, err := NewUserRepo(db).GetByEmail(context.Background(), "pat@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.True(t, u.IsAdmin())
	assert.Equal(t, at, u.CreatedAt)
}

func TestUserRepo_SetRoleReportsMatchedAndModified(t *testing.T) {
	db, mock := newMock(t)
	id := model.NewID()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE id=? FOR UPDATE")).
		WithArgs(string(id)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role=? WHERE id=?")).
		WithArgs("admin", string(id)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	res, err := NewUserRepo(db).SetRole(context.Background(), id, model.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.Zero(t, res.ModifiedCount)
}

func TestUserRepo_SetRoleMissingUser(t *testing.T) {
	db, mock := newMock(t)
	id := model.NewID()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WithArgs(string(id)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))
	mock.ExpectCommit()

	res, err := NewUserRepo(db).SetRole(context.Background(), id, model.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
	assert.Zero(t, res.MatchedCount)
}

func TestUserRepo_UpdateProfileDuplicateRollsBack(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE email=?")).
		WithArgs("pat@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET name=?")).
		WillReturnError(&mysql.MySQLError{Number: 1062})
	mock.ExpectRollback()

	_, err := NewUserRepo(db).UpdateProfile(context.Background(), "pat@example.com",
		model.ProfileUpdate{Name: "Pat", Email: "taken@example.com"})
	require.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestRegistrationRepo_DeleteManyUsesOneStatement(t *testing.T) {
	db, mock := newMock(t)
	a, b := model.NewID(), model.NewID()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM registrations WHERE id IN (?,?)")).
		WithArgs(string(a), string(b)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := NewRegistrationRepo(db).DeleteMany(context.Background(), []model.ID{a, b})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.DeletedCount)
}

func TestRegistrationRepo_DeleteManyEmpty(t *testing.T) {
	db, _ := newMock(t)

	res, err := NewRegistrationRepo(db).DeleteMany(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)
}

func TestPaymentRepo_InsertEncodesCart(t *testing.T) {
	db, mock := newMock(t)
	r1 := model.NewID()
	p := model.Payment{
		ID:      model.NewID(),
		Email:   "pat@example.com",
		Price:   25,
		CartIDs: []model.ID{r1},
		Status:  model.PaymentPending,
		Date:    time.Now().UTC(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs(string(p.ID), p.Email, p.Price, "", "", []byte(`["`+string(r1)+`"]`), p.Status, p.Date).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := NewPaymentRepo(db).Insert(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, p.ID, res.InsertedID)
}

func TestPaymentRepo_ListByEmailDecodesCart(t *testing.T) {
	db, mock := newMock(t)
	id, r1, r2 := model.NewID(), model.NewID(), model.NewID()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE email=?")).
		WithArgs("pat@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "price", "currency", "transaction_id", "cart_ids", "status", "paid_at"}).
			AddRow(string(id), "pat@example.com", 50.0, "usd", "pi_1", []byte(`["`+string(r1)+`","`+string(r2)+`"]`), "pending", at))

	list, err := NewPaymentRepo(db).ListByEmail(context.Background(), "pat@example.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []model.ID{r1, r2}, list[0].CartIDs)
	assert.Equal(t, "pi_1", list[0].TransactionID)
}

func TestStatsRepo_SumRevenue(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(price),0) FROM payments")).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(30.5))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(2))

	repo := NewStatsRepo(db)
	sum, err := repo.SumRevenue(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 30.5, sum, 1e-9)

	n, err := repo.CountUsers(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
