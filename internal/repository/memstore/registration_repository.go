package memstore

import (
	"context"
	"time"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.RegistrationStore = (*RegistrationRepo)(nil)

type RegistrationRepo struct{ db *DB }

func NewRegistrationRepo(db *DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

func (r *RegistrationRepo) Insert(_ context.Context, reg model.Registration) (model.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.registrations[reg.ID] = reg
	return inserted(reg.ID), nil
}

func (r *RegistrationRepo) list(keep func(model.Registration) bool) []model.Registration {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]model.Registration, 0)
	for _, reg := range r.db.registrations {
		if keep(reg) {
			out = append(out, reg)
		}
	}
	sortByTime(out, func(g model.Registration) time.Time { return g.CreatedAt }, func(g model.Registration) model.ID { return g.ID })
	return out
}

func (r *RegistrationRepo) List(_ context.Context) ([]model.Registration, error) {
	return r.list(func(model.Registration) bool { return true }), nil
}

func (r *RegistrationRepo) ListByEmail(_ context.Context, email string) ([]model.Registration, error) {
	return r.list(func(g model.Registration) bool { return g.Email == email }), nil
}

func (r *RegistrationRepo) Get(_ context.Context, id model.ID) (model.Registration, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	reg, ok := r.db.registrations[id]
	if !ok {
		return model.Registration{}, model.ErrNotFound
	}
	return reg, nil
}

func (r *RegistrationRepo) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	return r.DeleteMany(ctx, []model.ID{id})
}

func (r *RegistrationRepo) DeleteMany(_ context.Context, ids []model.ID) (model.DeleteResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.db.registrations[id]; ok {
			delete(r.db.registrations, id)
			n++
		}
	}
	return model.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}
