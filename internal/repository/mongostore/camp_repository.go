package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.CampStore = (*CampRepo)(nil)

type CampRepo struct {
	c *mongo.Collection
}

func NewCampRepo(db *mongo.Database) *CampRepo {
	return &CampRepo{c: db.Collection(campsCollection)}
}

func (r *CampRepo) List(ctx context.Context) ([]model.Camp, error) {
	return findAll[model.Camp](ctx, r.c, bson.M{}, byCreatedAt)
}

func (r *CampRepo) Get(ctx context.Context, id model.ID) (model.Camp, error) {
	var c model.Camp
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return model.Camp{}, notFound(err)
	}
	return c, nil
}

func (r *CampRepo) Insert(ctx context.Context, c model.Camp) (model.InsertResult, error) {
	if _, err := r.c.InsertOne(ctx, c); err != nil {
		return model.InsertResult{}, err
	}
	return insertResult(c.ID), nil
}

func (r *CampRepo) Update(ctx context.Context, id model.ID, upd model.CampUpdate) (model.UpdateResult, error) {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"campName":               upd.CampName,
		"campFees":               upd.CampFees,
		"dateTime":               upd.DateTime,
		"location":               upd.Location,
		"healthcareProfessional": upd.HealthcareProfessional,
		"description":            upd.Description,
		"image":                  upd.Image,
	}})
	if err != nil {
		return model.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (r *CampRepo) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return model.DeleteResult{}, err
	}
	return deleteResult(res), nil
}
