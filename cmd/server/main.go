// @title        Online Parcel Booking API
// @version      1.0.0
// @description  Parcel booking, pricing and tracking service.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/99minutos/parcel-service/internal/api"
	"github.com/99minutos/parcel-service/internal/api/handler"
	"github.com/99minutos/parcel-service/internal/core/ports"
	"github.com/99minutos/parcel-service/internal/core/service"
	"github.com/99minutos/parcel-service/internal/infrastructure/broker"
	"github.com/99minutos/parcel-service/internal/infrastructure/config"
	"github.com/99minutos/parcel-service/internal/infrastructure/db/memory"
	mongostore "github.com/99minutos/parcel-service/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/parcel-service/internal/infrastructure/db/redis"
	"github.com/99minutos/parcel-service/internal/infrastructure/db/sqlstore"
	"github.com/99minutos/parcel-service/internal/infrastructure/queue"
	"github.com/99minutos/parcel-service/pkg/logger"
)

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.PrettyLogs(),
		Service: "parcel-service",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()
	checks := make(map[string]handler.CheckFunc)

	// --- Parcel store ---
	repo, err := openStore(ctx, cfg, checks, &closers)
	if err != nil {
		return err
	}
	log.Info().Str("driver", cfg.Store.Driver).Msg("parcel store ready")

	// --- Tracking cache ---
	if cfg.Redis.Enabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, tracking cache disabled")
		} else {
			closers = append(closers, func() { _ = rdb.Close() })
			checks["redis"] = redisstore.PingFunc(rdb)
			repo = redisstore.NewCachedParcelRepository(repo, rdb, cfg.Redis.CacheTTL, logger.Component("tracking_cache"))
		}
	}

	// --- Lifecycle events ---
	publisher, err := openPublisher(cfg, checks, &closers)
	if err != nil {
		return err
	}
	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Events.Workers, cfg.Events.Buffer, publisher, logger.Component("dispatcher"))
	dispatcher.Start(dispatchCtx)
	defer func() {
		cancelDispatch()
		dispatcher.Wait()
	}()

	// --- HTTP ---
	svc := service.NewParcelService(repo, dispatcher, logger.Component("parcel_service"))
	e := api.NewRouter(api.Dependencies{
		Service:         svc,
		Logger:          logger.Component("http"),
		ReadinessChecks: checks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, checks map[string]handler.CheckFunc, closers *[]func()) (ports.ParcelRepository, error) {
	switch cfg.Store.Driver {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		})
		checks["mongodb"] = mongostore.PingFunc(client)

		repo := mongostore.NewParcelRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	case config.StorePostgres, config.StoreSQLite:
		driver := sqlstore.DriverSQLite
		if cfg.Store.Driver == config.StorePostgres {
			driver = sqlstore.DriverPostgres
		}
		db, err := sqlstore.Open(ctx, driver, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = db.Close() })
		checks[cfg.Store.Driver] = db.PingContext

		if err := sqlstore.InitSchema(ctx, db); err != nil {
			return nil, err
		}
		return sqlstore.NewParcelRepository(db, driver), nil

	default:
		return memory.NewParcelRepository(), nil
	}
}

func openPublisher(cfg *config.Config, checks map[string]handler.CheckFunc, closers *[]func()) (ports.EventPublisher, error) {
	switch cfg.Events.Broker {
	case config.BrokerRabbitMQ:
		p, err := broker.NewRabbitPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = p.Close() })
		checks["rabbitmq"] = p.Ping
		return broker.NewBreakerPublisher(p, broker.BreakerConfig{Name: "rabbitmq"}, logger.Component("broker")), nil

	case config.BrokerKafka:
		p := broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		*closers = append(*closers, func() { _ = p.Close() })
		return broker.NewBreakerPublisher(p, broker.BreakerConfig{Name: "kafka"}, logger.Component("broker")), nil

	default:
		return broker.NewLogPublisher(logger.Component("events")), nil
	}
}
