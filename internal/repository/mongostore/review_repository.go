package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.ReviewStore = (*ReviewRepo)(nil)

type ReviewRepo struct {
	c *mongo.Collection
}

func NewReviewRepo(db *mongo.Database) *ReviewRepo {
	return &ReviewRepo{c: db.Collection(reviewsCollection)}
}

func (r *ReviewRepo) Insert(ctx context.Context, rev model.Review) (model.InsertResult, error) {
	if _, err := r.c.InsertOne(ctx, rev); err != nil {
		return model.InsertResult{}, err
	}
	return insertResult(rev.ID), nil
}
