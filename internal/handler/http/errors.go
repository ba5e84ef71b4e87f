package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned when a protected route is called
	// without an `Authorization` header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not in
	// the "Bearer <token>" form.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidIdentityPath is returned when the blob path cannot be unescaped.
	ErrInvalidIdentityPath = errors.New("invalid blob identity in path")

	// ErrIntegrityCheckFailed is returned when a PUT body does not match its
	// X-Content-SHA256 header.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")
)
