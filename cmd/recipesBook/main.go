package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	bookRecipeFactory "github.com/gmaschi/go-recipe-book-api/internal/factories/book-recipe-factory"
	"github.com/gmaschi/go-recipe-book-api/internal/services/cache"
	db "github.com/gmaschi/go-recipe-book-api/internal/services/datastore/postgresql/recipes/document"
	"github.com/gmaschi/go-recipe-book-api/pkg/config/env"
	"github.com/gmaschi/go-recipe-book-api/pkg/logger"
	"github.com/gmaschi/go-recipe-book-api/pkg/metrics"
	"github.com/gmaschi/go-recipe-book-api/pkg/telemetry"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func main() {
	config, err := env.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("cannot load env variables")
	}

	log := logger.New(config.LogLevel, config.LogFormat).With().
		Str("service", config.ServiceName).
		Logger()

	if err := run(config, log); err != nil {
		log.Error().Err(err).Msg("recipe book api stopped")
		os.Exit(1)
	}
}

func run(config env.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, config.ServiceName, config.OtelEndpoint)
	if err != nil {
		return errors.Wrap(err, "set up tracing")
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			log.Error().Err(err).Msg("cannot flush traces")
		}
	}()

	conn, err := db.Connect(ctx, db.ConnConfig{
		Driver:          config.DbDriver,
		Source:          config.DbSource,
		MaxOpenConns:    config.DbMaxOpenConns,
		MaxIdleConns:    config.DbMaxIdleConns,
		ConnMaxLifetime: config.DbConnMaxLifetime,
	})
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer conn.Close()

	if config.DbMigrate {
		if err := db.Migrate(ctx, conn); err != nil {
			return errors.Wrap(err, "migrate database")
		}
	}

	backend, err := cache.Open(ctx, cache.Config{
		Driver:  config.CacheDriver,
		URL:     config.CacheURL,
		MaxCost: config.CacheMaxCost,
	})
	if err != nil {
		return errors.Wrap(err, "open cache")
	}
	if backend != nil {
		defer backend.Close()
	}
	log.Info().Str("driver", config.CacheDriver).Dur("ttl", config.CacheTTL).Msg("recipe cache configured")

	store := db.NewStore(conn)
	server, err := bookRecipeFactory.New(config, store,
		bookRecipeFactory.WithCache(backend),
		bookRecipeFactory.WithLogger(log),
		bookRecipeFactory.WithMetrics(metrics.New()),
	)
	if err != nil {
		return errors.Wrap(err, "create server")
	}

	return server.Start(ctx, config.ServerAddress)
}
