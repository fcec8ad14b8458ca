package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/medicamp-server/internal/model"
)

// ReviewIntake accepts participant feedback.
type ReviewIntake struct {
	store ReviewStore
	now   func() time.Time
}

func NewReviewIntake(store ReviewStore) *ReviewIntake {
	return &ReviewIntake{store: store, now: time.Now}
}

// Create stores a review with a rating between 1 and 5.
func (r *ReviewIntake) Create(ctx context.Context, rev model.Review) (model.InsertResult, error) {
	if strings.TrimSpace(rev.Feedback) == "" {
		return model.InsertResult{}, fmt.Errorf("%w: feedback is required", ErrValidation)
	}
	if rev.Rating < 1 || rev.Rating > 5 {
		return model.InsertResult{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	rev.ID = model.NewID()
	rev.CreatedAt = r.now().UTC()
	return r.store.Insert(ctx, rev)
}
