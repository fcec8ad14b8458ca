// Package repository opens the configured store backend and hands out its
// repositories as one bundle. The backends live in memstore, mongostore
// and mysqlstore; all of them satisfy the service store interfaces.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/config"
	"github.com/iliyamo/medicamp-server/internal/database"
	"github.com/iliyamo/medicamp-server/internal/repository/memstore"
	"github.com/iliyamo/medicamp-server/internal/repository/mongostore"
	"github.com/iliyamo/medicamp-server/internal/repository/mysqlstore"
	"github.com/iliyamo/medicamp-server/internal/service"
)

// Stores is the set of repositories the services are built from.
type Stores struct {
	Users         service.UserStore
	Camps         service.CampStore
	Registrations service.RegistrationStore
	Payments      service.PaymentStore
	Reviews       service.ReviewStore
	Stats         service.StatsStore

	close func(context.Context) error
}

// Close releases the backend connection. It is safe on a memory store.
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the backend named by cfg.Store.Driver. Mongo indexes are
// ensured before returning; MySQL schema is left to the migrate command.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*Stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store; data is lost on exit")
		return Memory(memstore.New()), nil

	case config.DriverMongo:
		client, db, err := database.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.DB)
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		log.Info("connected to mongo", zap.String("db", cfg.Mongo.DB))
		return Mongo(client, db), nil

	case config.DriverMySQL:
		db, err := database.Open(ctx, database.MySQLOptions{
			User: cfg.MySQL.User,
			Pass: cfg.MySQL.Pass,
			Host: cfg.MySQL.Host,
			Port: cfg.MySQL.Port,
			Name: cfg.MySQL.Name,
		})
		if err != nil {
			return nil, err
		}
		log.Info("connected to mysql", zap.String("host", cfg.MySQL.Host), zap.String("db", cfg.MySQL.Name))
		return MySQL(db), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Memory wraps an in-process DB.
func Memory(db *memstore.DB) *Stores {
	return &Stores{
		Users:         memstore.NewUserRepo(db),
		Camps:         memstore.NewCampRepo(db),
		Registrations: memstore.NewRegistrationRepo(db),
		Payments:      memstore.NewPaymentRepo(db),
		Reviews:       memstore.NewReviewRepo(db),
		Stats:         memstore.NewStatsRepo(db),
	}
}

// MySQL wraps an open connection pool.
func MySQL(db *sql.DB) *Stores {
	return &Stores{
		Users:         mysqlstore.NewUserRepo(db),
		Camps:         mysqlstore.NewCampRepo(db),
		Registrations: mysqlstore.NewRegistrationRepo(db),
		Payments:      mysqlstore.NewPaymentRepo(db),
		Reviews:       mysqlstore.NewReviewRepo(db),
		Stats:         mysqlstore.NewStatsRepo(db),
		close:         func(context.Context) error { return db.Close() },
	}
}

// Mongo wraps a connected client and its database.
func Mongo(client *mongo.Client, db *mongo.Database) *Stores {
	return &Stores{
		Users:         mongostore.NewUserRepo(db),
		Camps:         mongostore.NewCampRepo(db),
		Registrations: mongostore.NewRegistrationRepo(db),
		Payments:      mongostore.NewPaymentRepo(db),
		Reviews:       mongostore.NewReviewRepo(db),
		Stats:         mongostore.NewStatsRepo(db),
		close:         client.Disconnect,
	}
}
