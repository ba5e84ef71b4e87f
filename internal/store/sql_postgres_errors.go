package store

import (
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the blob repository whether a failed statement
// is worth another attempt.
type ErrorClassification int

const (
	// NonRetryable is the default for unknown errors.
	NonRetryable ErrorClassification = iota
	// Retryable failures are transient: lost connections, serialization
	// conflicts, a server that is starting up or short on resources.
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify retries broken pooled connections and the SQLSTATE classes
// accepted by [ClassifyPgError]. Anything that is not a PostgreSQL error is
// [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	switch {
	case err == nil:
		return NonRetryable
	case errors.Is(err, driver.ErrBadConn):
		return Retryable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ClassifyPgError(pgErr)
	}
	return NonRetryable
}

// ClassifyPgError decides by SQLSTATE class (see the PostgreSQL
// errcodes appendix):
//
//	08  connection exception          retryable
//	40  transaction rollback          retryable
//	53  insufficient resources        retryable
//	57  shutdown or cannot connect    retryable (57014 query_canceled is not)
//
// Constraint, data and syntax errors fail on every attempt and are not retried.
func ClassifyPgError(pgErr *pgconn.PgError) ErrorClassification {
	code := pgErr.Code

	switch {
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		pgerrcode.IsInsufficientResources(code):
		return Retryable
	}

	switch code {
	case pgerrcode.AdminShutdown, pgerrcode.CrashShutdown, pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}
