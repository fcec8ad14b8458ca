package memstore

import (
	"context"
	"time"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.UserStore = (*UserRepo)(nil)

type UserRepo struct{ db *DB }

func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// findByEmail must be called with the lock held.
func (r *UserRepo) findByEmail(email string) (model.User, bool) {
	for _, u := range r.db.users {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	u, ok := r.findByEmail(email)
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (r *UserRepo) Insert(_ context.Context, u model.User) (model.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.findByEmail(u.Email); ok {
		return model.InsertResult{}, model.ErrDuplicateEmail
	}
	r.db.users[u.ID] = u
	return inserted(u.ID), nil
}

func (r *UserRepo) List(_ context.Context) ([]model.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]model.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		out = append(out, u)
	}
	sortByTime(out, func(u model.User) time.Time { return u.CreatedAt }, func(u model.User) model.ID { return u.ID })
	return out, nil
}

func (r *UserRepo) UpdateProfile(_ context.Context, email string, upd model.ProfileUpdate) (model.UpdateResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.findByEmail(email)
	if !ok {
		return model.UpdateResult{Acknowledged: true}, nil
	}
	if upd.Email != email {
		if _, taken := r.findByEmail(upd.Email); taken {
			return model.UpdateResult{}, model.ErrDuplicateEmail
		}
	}
	next := u
	next.Name = upd.Name
	next.Email = upd.Email
	next.PhoneNumber = upd.PhoneNumber
	next.Contact = upd.Contact
	next.Image = upd.Image
	res := model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if next != u {
		r.db.users[u.ID] = next
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *UserRepo) SetRole(_ context.Context, id model.ID, role string) (model.UpdateResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return model.UpdateResult{Acknowledged: true}, nil
	}
	res := model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if u.Role != role {
		u.Role = role
		r.db.users[id] = u
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *UserRepo) Delete(_ context.Context, id model.ID) (model.DeleteResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return model.DeleteResult{Acknowledged: true}, nil
	}
	delete(r.db.users, id)
	return model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}
