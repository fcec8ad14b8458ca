package memstore

import (
	"context"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.ReviewStore = (*ReviewRepo)(nil)

type ReviewRepo struct{ db *DB }

func NewReviewRepo(db *DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Insert(_ context.Context, rev model.Review) (model.InsertResult, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.reviews[rev.ID] = rev
	return inserted(rev.ID), nil
}
