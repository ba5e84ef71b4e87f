package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/migrations"
)

// NewConnectPostgres opens a pgx-backed connection pool and verifies it with a ping.
func NewConnectPostgres(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("%w: error occured during database connection: %w", ErrIO, err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return newDB(conn, migrations.DialectPostgres, NewPostgresErrorClassifier(), log), nil
}

// NewPostgresBlobStore connects, migrates and returns a [BlobStore] on PostgreSQL.
func NewPostgresBlobStore(ctx context.Context, dsn string, log *logger.Logger) (BlobStore, error) {
	db, err := NewConnectPostgres(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewPostgresBlobStore").Msg("error migrating database")
		_ = db.Close()
		return nil, err
	}

	return NewBlobRepository(db, log), nil
}
