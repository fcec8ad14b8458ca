package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.UserStore = (*UserRepo)(nil)

type UserRepo struct {
	c *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{c: db.Collection(usersCollection)}
}

// GetByEmail matches the stored email exactly.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	if err := r.c.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return model.User{}, notFound(err)
	}
	return u, nil
}

func (r *UserRepo) Insert(ctx context.Context, u model.User) (model.InsertResult, error) {
	if _, err := r.c.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.InsertResult{}, model.ErrDuplicateEmail
		}
		return model.InsertResult{}, err
	}
	return insertResult(u.ID), nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	return findAll[model.User](ctx, r.c, bson.M{}, byCreatedAt)
}

func (r *UserRepo) UpdateProfile(ctx context.Context, email string, upd model.ProfileUpdate) (model.UpdateResult, error) {
	res, err := r.c.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"name":        upd.Name,
		"email":       upd.Email,
		"phoneNumber": upd.PhoneNumber,
		"contact":     upd.Contact,
		"image":       upd.Image,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.UpdateResult{}, model.ErrDuplicateEmail
		}
		return model.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (r *UserRepo) SetRole(ctx context.Context, id model.ID, role string) (model.UpdateResult, error) {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return model.UpdateResult{}, err
	}
	return updateResult(res), nil
}

func (r *UserRepo) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return model.DeleteResult{}, err
	}
	return deleteResult(res), nil
}
