package memstore

import (
	"context"
	"time"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.CampStore = (*CampRepo)(nil)

type CampRepo struct{ db *DB }

func NewCampRepo(db *DB) *CampRepo { return &CampRepo{db: db} }

func (r *CampRepo) List(_ context.Context) ([]model.Camp, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]model.Camp, 0, len(r.db.camps))
	for _, c := range r.db.camps {
		out = append(out, c)
	}
	sortByTime(out, func(c model.Camp) time.Time { return c.CreatedAt }, func(c model.Camp) model.ID { return c.ID })
	return out, nil
}

func (r *CampRepo) Get(_ context.Context, id model.ID) (model.Camp, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	c, ok := r.db.camps[id]
	if !ok {
		return model.Camp{}, model.ErrNotFound
	}
	return c, nil
}

func (r *CampRepo) Insert(_ context.Context, c model.Camp) (model.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.camps[c.ID] = c
	return inserted(c.ID), nil
}

func (r *CampRepo) Update(_ context.Context, id model.ID, upd model.CampUpdate) (model.UpdateResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.camps[id]
	if !ok {
		return model.UpdateResult{Acknowledged: true}, nil
	}
	next := c
	next.CampName = upd.CampName
	next.CampFees = upd.CampFees
	next.DateTime = upd.DateTime
	next.Location = upd.Location
	next.HealthcareProfessional = upd.HealthcareProfessional
	next.Description = upd.Description
	next.Image = upd.Image
	res := model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if next != c {
		r.db.camps[id] = next
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *CampRepo) Delete(_ context.Context, id model.ID) (model.DeleteResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.camps[id]; !ok {
		return model.DeleteResult{Acknowledged: true}, nil
	}
	delete(r.db.camps, id)
	return model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}
