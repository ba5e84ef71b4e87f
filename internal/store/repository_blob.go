// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/MKhiriev/go-secure-data/internal/logger"
)

// maxStatementTries bounds attempts for statements the classifier marks retryable.
const maxStatementTries = 3

// blobRepository is the SQL implementation of [BlobStore] shared by the
// sqlite and PostgreSQL backends. Blobs live in the "blobs" table keyed by
// their cleaned identity.
type blobRepository struct {
	*DB
	logger *logger.Logger
	// retry is the backoff policy for retryable failures; tests shorten it.
	retry func() backoff.BackOff
}

// NewBlobRepository constructs a [BlobStore] on top of an open, migrated DB.
func NewBlobRepository(db *DB, log *logger.Logger) BlobStore {
	log.Debug().Str("dialect", db.dialect).Msg("creating blob repository")
	return &blobRepository{
		DB:     db,
		logger: log,
		retry: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxInterval = time.Second
			return b
		},
	}
}

func (r *blobRepository) Key(identity string) (string, error) {
	return CleanIdentity(identity)
}

// Read returns the blob stored for identity.
//
// Error handling:
//   - no row → [ErrNotFound].
//   - query or scan failure → [ErrIO] wrapping the SQL sentinel.
func (r *blobRepository) Read(ctx context.Context, identity string) ([]byte, error) {
	log := logger.FromContext(ctx)

	key, err := r.Key(identity)
	if err != nil {
		return nil, err
	}

	query, args, err := buildSelectBlobQuery(r.builder, key)
	if err != nil {
		log.Err(err).Str("func", "*blobRepository.Read").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	data, err := withRetry(ctx, r, func() ([]byte, error) {
		var data []byte
		scanErr := r.DB.QueryRowContext(ctx, query, args...).Scan(&data)
		return data, scanErr
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Err(err).Str("func", "*blobRepository.Read").Str("identity", key).Msg("failed to read blob")
		return nil, fmt.Errorf("%w: %w: %w", ErrIO, ErrScanningRow, err)
	}

	return data, nil
}

// Write upserts the blob for identity.
func (r *blobRepository) Write(ctx context.Context, identity string, data []byte) error {
	log := logger.FromContext(ctx)

	key, err := r.Key(identity)
	if err != nil {
		return err
	}

	if data == nil {
		data = []byte{}
	}
	query, args, err := buildUpsertBlobQuery(r.builder, key, data)
	if err != nil {
		log.Err(err).Str("func", "*blobRepository.Write").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	_, err = withRetry(ctx, r, func() (sql.Result, error) {
		return r.DB.ExecContext(ctx, query, args...)
	})
	if err != nil {
		log.Err(err).Str("func", "*blobRepository.Write").Str("identity", key).Msg("failed to write blob")
		return fmt.Errorf("%w: %w: %w", ErrIO, ErrExecutingStatement, err)
	}

	log.Debug().Str("func", "*blobRepository.Write").Str("identity", key).Int("size", len(data)).Msg("blob written")
	return nil
}

// Delete removes the blob for identity; a missing row is not an error.
func (r *blobRepository) Delete(ctx context.Context, identity string) error {
	log := logger.FromContext(ctx)

	key, err := r.Key(identity)
	if err != nil {
		return err
	}

	query, args, err := buildDeleteBlobQuery(r.builder, key)
	if err != nil {
		log.Err(err).Str("func", "*blobRepository.Delete").Msg("failed to create query")
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	_, err = withRetry(ctx, r, func() (sql.Result, error) {
		return r.DB.ExecContext(ctx, query, args...)
	})
	if err != nil {
		log.Err(err).Str("func", "*blobRepository.Delete").Str("identity", key).Msg("failed to delete blob")
		return fmt.Errorf("%w: %w: %w", ErrIO, ErrExecutingStatement, err)
	}

	return nil
}

func (r *blobRepository) Close() error {
	return r.DB.Close()
}

// withRetry runs op, retrying only errors the dialect classifies as retryable.
func withRetry[T any](ctx context.Context, r *blobRepository, op func() (T, error)) (T, error) {
	operation := func() (T, error) {
		v, err := op()
		if err != nil && (r.errorClassificator == nil || r.errorClassificator.Classify(err) != Retryable) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(r.retry()),
		backoff.WithMaxTries(maxStatementTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.FromContext(ctx).Warn().Err(err).Dur("retry_in", next).Msg("retrying database statement")
		}),
	)
}
