package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.StatsStore = (*StatsRepo)(nil)

// StatsRepo answers the dashboard questions. Counts use collection
// metadata and may lag recent writes.
type StatsRepo struct {
	db *mongo.Database
}

func NewStatsRepo(db *mongo.Database) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.db.Collection(usersCollection).EstimatedDocumentCount(ctx)
}

func (r *StatsRepo) CountCamps(ctx context.Context) (int64, error) {
	return r.db.Collection(campsCollection).EstimatedDocumentCount(ctx)
}

func (r *StatsRepo) CountPayments(ctx context.Context) (int64, error) {
	return r.db.Collection(paymentsCollection).EstimatedDocumentCount(ctx)
}

// SumRevenue adds up price over every payment; an empty collection yields 0.
func (r *StatsRepo) SumRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}
	cur, err := r.db.Collection(paymentsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
