package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.PaymentStore = (*PaymentRepo)(nil)

var byDate = bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}

type PaymentRepo struct {
	c *mongo.Collection
}

func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{c: db.Collection(paymentsCollection)}
}

func (r *PaymentRepo) Insert(ctx context.Context, p model.Payment) (model.InsertResult, error) {
	if p.CartIDs == nil {
		p.CartIDs = []model.ID{}
	}
	if _, err := r.c.InsertOne(ctx, p); err != nil {
		return model.InsertResult{}, err
	}
	return insertResult(p.ID), nil
}

func (r *PaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
	return findAll[model.Payment](ctx, r.c, bson.M{}, byDate)
}

func (r *PaymentRepo) ListByEmail(ctx context.Context, email string) ([]model.Payment, error) {
	return findAll[model.Payment](ctx, r.c, bson.M{"email": email}, byDate)
}

func (r *PaymentRepo) SetStatus(ctx context.Context, id model.ID, status string) (model.UpdateResult, error) {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return model.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (r *PaymentRepo) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return model.DeleteResult{}, err
	}
	return deleteResult(res), nil
}
