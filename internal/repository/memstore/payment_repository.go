package memstore

import (
	"context"
	"time"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.PaymentStore = (*PaymentRepo)(nil)

type PaymentRepo struct{ db *DB }

func NewPaymentRepo(db *DB) *PaymentRepo { return &PaymentRepo{db: db} }

// clonePayment detaches the CartIDs slice from the caller's copy.
func clonePayment(p model.Payment) model.Payment {
	p.CartIDs = append([]model.ID(nil), p.CartIDs...)
	return p
}

func (r *PaymentRepo) Insert(_ context.Context, p model.Payment) (model.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.payments[p.ID] = clonePayment(p)
	return inserted(p.ID), nil
}

func (r *PaymentRepo) list(keep func(model.Payment) bool) []model.Payment {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]model.Payment, 0)
	for _, p := range r.db.payments {
		if keep(p) {
			out = append(out, clonePayment(p))
		}
	}
	sortByTime(out, func(p model.Payment) time.Time { return p.Date }, func(p model.Payment) model.ID { return p.ID })
	return out
}

func (r *PaymentRepo) List(_ context.Context) ([]model.Payment, error) {
	return r.list(func(model.Payment) bool { return true }), nil
}

func (r *PaymentRepo) ListByEmail(_ context.Context, email string) ([]model.Payment, error) {
	return r.list(func(p model.Payment) bool { return p.Email == email }), nil
}

func (r *PaymentRepo) SetStatus(_ context.Context, id model.ID, status string) (model.UpdateResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.payments[id]
	if !ok {
		return model.UpdateResult{Acknowledged: true}, nil
	}
	res := model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if p.Status != status {
		p.Status = status
		r.db.payments[id] = p
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *PaymentRepo) Delete(_ context.Context, id model.ID) (model.DeleteResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.payments[id]; !ok {
		return model.DeleteResult{Acknowledged: true}, nil
	}
	delete(r.db.payments, id)
	return model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}
