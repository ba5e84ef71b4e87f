package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/migrations"
)

// NewConnectSQLite opens (creating if needed) a sqlite database file.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("%w: error opening connection to DB: %w", ErrIO, err)
	}

	// sqlite serialises writers; one connection avoids SQLITE_BUSY between our own goroutines.
	conn.SetMaxOpenConns(1)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return newDB(conn, migrations.DialectSQLite, NewSQLiteErrorClassifier(), log), nil
}

// NewSQLiteBlobStore connects, migrates and returns a [BlobStore] on sqlite.
func NewSQLiteBlobStore(ctx context.Context, dsn string, log *logger.Logger) (BlobStore, error) {
	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, err
	}
	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewSQLiteBlobStore").Msg("error migrating database")
		_ = db.Close()
		return nil, err
	}

	return NewBlobRepository(db, log), nil
}

// SQLiteErrorClassifier implements [ErrorClassificator] for sqlite: a busy
// or locked database is retryable, everything else is not.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
	}
	return NonRetryable
}
