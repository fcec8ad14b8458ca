// Package mongostore is the MongoDB store backend. Collection names match
// the ones the web client's current deployment uses, but every _id here is
// a UUID string (see model.ID). Documents keyed by ObjectId are neither
// addressable through the API nor matched by cart-id filters, so older
// data has to be migrated to string ids before this backend can serve it.
package mongostore

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/medicamp-server/internal/model"
)

const (
	usersCollection         = "users"
	campsCollection         = "camps"
	registrationsCollection = "participant"
	paymentsCollection      = "payments"
	reviewsCollection       = "reviews"
)

var byCreatedAt = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

/*
EnsureIndexes is called at startup and is idempotent. The unique email
index is what makes concurrent user creation safe; the others back the
per-participant listings.
*/
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if _, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_users_email"),
		},
	}); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if _, err := db.Collection(registrationsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("idx_participant_email"),
		},
	}); err != nil {
		problems = append(problems, "participant: "+err.Error())
	}
	if _, err := db.Collection(paymentsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("idx_payments_email"),
		},
	}); err != nil {
		problems = append(problems, "payments: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.ErrNotFound
	}
	return err
}

func insertResult(id model.ID) model.InsertResult {
	return model.InsertResult{Acknowledged: true, InsertedID: id}
}

func updateResult(res *mongo.UpdateResult) model.UpdateResult {
	return model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
}

func deleteResult(res *mongo.DeleteResult) model.DeleteResult {
	return model.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}

// findAll runs filter against c in creation order and decodes every document.
func findAll[T any](ctx context.Context, c *mongo.Collection, filter bson.M, sort bson.D) ([]T, error) {
	cur, err := c.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
