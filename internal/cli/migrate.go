package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/medicamp-server/internal/config"
	"github.com/iliyamo/medicamp-server/internal/database"
	"github.com/iliyamo/medicamp-server/internal/repository/mongostore"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations (mysql) or ensure indexes (mongo)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			return migrate(ctx, cfg, log)
		},
	}
}

func migrate(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	switch cfg.Store.Driver {
	case config.DriverMySQL:
		db, err := database.Open(ctx, database.MySQLOptions{
			User: cfg.MySQL.User,
			Pass: cfg.MySQL.Pass,
			Host: cfg.MySQL.Host,
			Port: cfg.MySQL.Port,
			Name: cfg.MySQL.Name,
		})
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.RunMigrations(db); err != nil {
			return err
		}
		log.Info("migrations applied", zap.String("db", cfg.MySQL.Name))
		return nil

	case config.DriverMongo:
		client, db, err := database.ConnectMongo(ctx, cfg.Mongo.URI, cfg.Mongo.DB)
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		log.Info("indexes ensured", zap.String("db", cfg.Mongo.DB))
		return nil
	}
	return fmt.Errorf("nothing to migrate for store driver %q", cfg.Store.Driver)
}
