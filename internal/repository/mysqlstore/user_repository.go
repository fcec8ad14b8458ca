package mysqlstore

import (
	"context"
	"database/sql"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.UserStore = (*UserRepo)(nil)

const userColumns = "id,name,email,phone_number,contact,image,role,created_at"

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber, &u.Contact, &u.Image, &u.Role, &u.CreatedAt)
	return u, err
}

// GetByEmail matches the stored email exactly (the column is utf8mb4_bin).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if err != nil {
		return model.User{}, notFound(err)
	}
	return u, nil
}

func (r *UserRepo) Insert(ctx context.Context, u model.User) (model.InsertResult, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?,?,?,?,?,?,?,?)",
		u.ID, u.Name, u.Email, u.PhoneNumber, u.Contact, u.Image, u.Role, u.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return model.InsertResult{}, model.ErrDuplicateEmail
		}
		return model.InsertResult{}, err
	}
	return inserted(u.ID), nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) UpdateProfile(ctx context.Context, email string, upd model.ProfileUpdate) (model.UpdateResult, error) {
	res, err := updateOne(ctx, r.db,
		"SELECT COUNT(*) FROM users WHERE email=? FOR UPDATE", []any{email},
		"UPDATE users SET name=?, email=?, phone_number=?, contact=?, image=? WHERE email=?",
		upd.Name, upd.Email, upd.PhoneNumber, upd.Contact, upd.Image, email)
	if err != nil {
		if isDuplicate(err) {
			return model.UpdateResult{}, model.ErrDuplicateEmail
		}
		return model.UpdateResult{}, err
	}
	return res, nil
}

func (r *UserRepo) SetRole(ctx context.Context, id model.ID, role string) (model.UpdateResult, error) {
	return updateOne(ctx, r.db,
		"SELECT COUNT(*) FROM users WHERE id=? FOR UPDATE", []any{id},
		"UPDATE users SET role=? WHERE id=?", role, id)
}

func (r *UserRepo) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	return deleteWhere(ctx, r.db, "DELETE FROM users WHERE id=?", id)
}
