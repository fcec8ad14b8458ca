package mysqlstore

import (
	"context"
	"database/sql"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.ReviewStore = (*ReviewRepo)(nil)

type ReviewRepo struct{ db *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

func (r *ReviewRepo) Insert(ctx context.Context, rev model.Review) (model.InsertResult, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO reviews (id,name,email,camp_id,feedback,rating,created_at) VALUES (?,?,?,?,?,?,?)",
		rev.ID, rev.Name, rev.Email, rev.CampID, rev.Feedback, rev.Rating, rev.CreatedAt)
	if err != nil {
		return model.InsertResult{}, err
	}
	return inserted(rev.ID), nil
}
