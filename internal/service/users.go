package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/model"
)

// CreateUserResult reports what Create did. When the email was already
// registered Created is false and Insert is the zero value.
type CreateUserResult struct {
	Created bool
	Insert  model.InsertResult
}

// UserDirectory owns user records. It guarantees at most one user per
// email and is the role source for the admin gate.
type UserDirectory struct {
	store UserStore
	log   *zap.Logger
	now   func() time.Time
}

// NewUserDirectory returns a directory backed by store.
func NewUserDirectory(store UserStore, log *zap.Logger) *UserDirectory {
	return &UserDirectory{store: store, log: log, now: time.Now}
}

// Create inserts u unless a user with the same email already exists, in
// which case nothing is written. Roles cannot be granted through Create.
func (d *UserDirectory) Create(ctx context.Context, u model.User) (CreateUserResult, error) {
	if strings.TrimSpace(u.Email) == "" {
		return CreateUserResult{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	_, err := d.store.GetByEmail(ctx, u.Email)
	switch {
	case err == nil:
		return CreateUserResult{}, nil
	case !errors.Is(err, model.ErrNotFound):
		return CreateUserResult{}, fmt.Errorf("lookup user: %w", err)
	}

	u.ID = model.NewID()
	u.Role = ""
	u.CreatedAt = d.now().UTC()
	res, err := d.store.Insert(ctx, u)
	if err != nil {
		// a concurrent Create won the race on the unique email index
		if errors.Is(err, model.ErrDuplicateEmail) {
			return CreateUserResult{}, nil
		}
		return CreateUserResult{}, fmt.Errorf("insert user: %w", err)
	}
	return CreateUserResult{Created: true, Insert: res}, nil
}

// Get returns the user registered under email.
func (d *UserDirectory) Get(ctx context.Context, email string) (model.User, error) {
	return d.store.GetByEmail(ctx, email)
}

// List returns every user.
func (d *UserDirectory) List(ctx context.Context) ([]model.User, error) {
	return d.store.List(ctx)
}

// UpdateProfile overwrites the profile whitelist of the user registered
// under email. An empty email in upd keeps the current one; moving to an
// email held by someone else fails with model.ErrDuplicateEmail.
func (d *UserDirectory) UpdateProfile(ctx context.Context, email string, upd model.ProfileUpdate) (model.UpdateResult, error) {
	if strings.TrimSpace(upd.Email) == "" {
		upd.Email = email
	}
	if upd.Email != email {
		_, err := d.store.GetByEmail(ctx, upd.Email)
		switch {
		case err == nil:
			return model.UpdateResult{}, model.ErrDuplicateEmail
		case !errors.Is(err, model.ErrNotFound):
			return model.UpdateResult{}, fmt.Errorf("lookup user: %w", err)
		}
	}
	return d.store.UpdateProfile(ctx, email, upd)
}

// PromoteToAdmin grants the admin role to the user with id.
func (d *UserDirectory) PromoteToAdmin(ctx context.Context, id model.ID) (model.UpdateResult, error) {
	res, err := d.store.SetRole(ctx, id, model.RoleAdmin)
	if err != nil {
		return model.UpdateResult{}, err
	}
	d.log.Info("user promoted to admin", zap.String("user_id", id.String()), zap.Int64("matched", res.MatchedCount))
	return res, nil
}

// Delete removes the user with id. A missing user yields a zero count.
func (d *UserDirectory) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	return d.store.Delete(ctx, id)
}

// IsAdmin implements access.RoleLookup. It never fails: unknown users and
// store errors both count as "not admin".
func (d *UserDirectory) IsAdmin(ctx context.Context, email string) bool {
	u, err := d.store.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			d.log.Warn("admin lookup failed", zap.String("email", email), zap.Error(err))
		}
		return false
	}
	return u.IsAdmin()
}
