package db

import (
	"context"
	"database/sql"
	"embed"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type ConnConfig struct {
	Driver          string
	Source          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Connect opens the connection pool and checks that the database answers.
func Connect(ctx context.Context, config ConnConfig) (*sql.DB, error) {
	conn, err := sql.Open(config.Driver, config.Source)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	conn.SetMaxOpenConns(config.MaxOpenConns)
	conn.SetMaxIdleConns(config.MaxIdleConns)
	conn.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return conn, nil
}

// Migrate applies every pending migration embedded in the binary.
func Migrate(ctx context.Context, conn *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set dialect")
	}
	if err := goose.UpContext(ctx, conn, "migrations"); err != nil {
		return errors.Wrap(err, "run migrations")
	}
	return nil
}
