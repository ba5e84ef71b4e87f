package service

import "errors"

var (
	// ErrRegistryClosed is returned by every Registry method after Close.
	ErrRegistryClosed = errors.New("registry is closed")

	// ErrPasswordMismatch is returned by Open when the identity is already
	// loaded under a different password.
	ErrPasswordMismatch = errors.New("document is open with a different password")

	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
