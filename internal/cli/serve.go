package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/medicamp-server/internal/config"
	"github.com/iliyamo/medicamp-server/internal/handler"
	"github.com/iliyamo/medicamp-server/internal/payment"
	"github.com/iliyamo/medicamp-server/internal/queue"
	"github.com/iliyamo/medicamp-server/internal/repository"
	"github.com/iliyamo/medicamp-server/internal/router"
	"github.com/iliyamo/medicamp-server/internal/service"
	"github.com/iliyamo/medicamp-server/internal/token"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	stores, err := repository.Open(openCtx, cfg, log)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := stores.Close(closeCtx); err != nil {
			log.Warn("store close failed", zap.Error(err))
		}
	}()

	rdb := config.NewRedisClient(cfg.Redis, log)
	if rdb != nil {
		defer rdb.Close()
	}

	var events service.EventPublisher = queue.Nop{}
	if cfg.Queue.Enabled {
		events = queue.NewPublisher(cfg.Queue.URL, log)
	}
	if cfg.Stripe.SecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY is empty; payment intents will fail")
	}

	tokens := token.NewService(cfg.JWT.Secret, cfg.JWT.TTL)
	users := service.NewUserDirectory(stores.Users, log)
	ledger := service.NewRegistrationLedger(stores.Registrations)
	settlement := service.NewSettlementService(stores.Payments, ledger, payment.NewStripe(cfg.Stripe.SecretKey), events, cfg.Stripe.Currency, log)

	e := router.New(router.Deps{
		Config: cfg,
		Tokens: tokens,
		Roles:  users,
		Redis:  rdb,
		Log:    log,
	}, router.Handlers{
		Auth:          handler.NewAuthHandler(tokens, log),
		Users:         handler.NewUserHandler(users, log),
		Camps:         handler.NewCampHandler(service.NewCampCatalog(stores.Camps), log),
		Registrations: handler.NewRegistrationHandler(ledger, log),
		Reviews:       handler.NewReviewHandler(service.NewReviewIntake(stores.Reviews), log),
		Payments:      handler.NewPaymentHandler(settlement, log),
		Stats:         handler.NewStatsHandler(service.NewStatsAggregator(stores.Stats), log),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.App.Port
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.App.Env), zap.String("store", cfg.Store.Driver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return e.Shutdown(shutCtx)
	})
	if cfg.Queue.Enabled {
		g.Go(func() error {
			if err := queue.NewConsumer(cfg.Queue.URL, log).Run(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
