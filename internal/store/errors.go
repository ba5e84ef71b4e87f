package store

import "errors"

// Sentinel errors returned by every [BlobStore] backend. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrNotFound is returned by Read when no blob exists for the identity.
	ErrNotFound = errors.New("blob not found")

	// ErrIO wraps any backend failure other than absence: file system
	// errors, database errors, transport errors.
	ErrIO = errors.New("blob store io failure")

	// ErrInvalidIdentity is returned for empty identities, identities with
	// NUL bytes, and file identities that escape the store root.
	ErrInvalidIdentity = errors.New("invalid blob identity")

	// ErrUnknownBackend is returned when no backend matches the configured name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Low-level database operation errors. These are wrapped together with
// [ErrIO] by the SQL backends.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a blob row fails.
	ErrScanningRow = errors.New("failed to scan blob row")

	// ErrMigrating is returned when schema migrations cannot be applied.
	ErrMigrating = errors.New("failed to migrate database")
)
