package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/iliyamo/medicamp-server/internal/model"
)

// CampCatalog manages the camps participants can register for.
type CampCatalog struct {
	store CampStore
	now   func() time.Time
}

// NewCampCatalog returns a catalog backed by store.
func NewCampCatalog(store CampStore) *CampCatalog {
	return &CampCatalog{store: store, now: time.Now}
}

func validFee(fee float64) bool {
	return !math.IsNaN(fee) && !math.IsInf(fee, 0) && fee >= 0
}

func (c *CampCatalog) List(ctx context.Context) ([]model.Camp, error) {
	return c.store.List(ctx)
}

func (c *CampCatalog) Get(ctx context.Context, id model.ID) (model.Camp, error) {
	return c.store.Get(ctx, id)
}

// Create validates and inserts a new camp.
func (c *CampCatalog) Create(ctx context.Context, camp model.Camp) (model.InsertResult, error) {
	if strings.TrimSpace(camp.CampName) == "" {
		return model.InsertResult{}, fmt.Errorf("%w: campName is required", ErrValidation)
	}
	if !validFee(camp.CampFees) {
		return model.InsertResult{}, fmt.Errorf("%w: campFees must be a non-negative number", ErrValidation)
	}
	camp.ID = model.NewID()
	camp.CreatedAt = c.now().UTC()
	return c.store.Insert(ctx, camp)
}

// Update overwrites the editable fields of the camp with id.
func (c *CampCatalog) Update(ctx context.Context, id model.ID, upd model.CampUpdate) (model.UpdateResult, error) {
	if !validFee(upd.CampFees) {
		return model.UpdateResult{}, fmt.Errorf("%w: campFees must be a non-negative number", ErrValidation)
	}
	return c.store.Update(ctx, id, upd)
}

func (c *CampCatalog) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	return c.store.Delete(ctx, id)
}
