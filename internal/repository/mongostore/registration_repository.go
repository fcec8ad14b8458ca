package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.RegistrationStore = (*RegistrationRepo)(nil)

type RegistrationRepo struct {
	c *mongo.Collection
}

func NewRegistrationRepo(db *mongo.Database) *RegistrationRepo {
	return &RegistrationRepo{c: db.Collection(registrationsCollection)}
}

func (r *RegistrationRepo) Insert(ctx context.Context, reg model.Registration) (model.InsertResult, error) {
	if _, err := r.c.InsertOne(ctx, reg); err != nil {
		return model.InsertResult{}, err
	}
	return insertResult(reg.ID), nil
}

func (r *RegistrationRepo) List(ctx context.Context) ([]model.Registration, error) {
	return findAll[model.Registration](ctx, r.c, bson.M{}, byCreatedAt)
}

func (r *RegistrationRepo) ListByEmail(ctx context.Context, email string) ([]model.Registration, error) {
	return findAll[model.Registration](ctx, r.c, bson.M{"email": email}, byCreatedAt)
}

func (r *RegistrationRepo) Get(ctx context.Context, id model.ID) (model.Registration, error) {
	var reg model.Registration
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&reg); err != nil {
		return model.Registration{}, notFound(err)
	}
	return reg, nil
}

func (r *RegistrationRepo) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return model.DeleteResult{}, err
	}
	return deleteResult(res), nil
}

// DeleteMany removes exactly the documents whose _id is in ids.
func (r *RegistrationRepo) DeleteMany(ctx context.Context, ids []model.ID) (model.DeleteResult, error) {
	if len(ids) == 0 {
		return model.DeleteResult{Acknowledged: true}, nil
	}
	res, err := r.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return model.DeleteResult{}, err
	}
	return deleteResult(res), nil
}
