package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidCryptoConfigs indicates an unknown profile or load mode, or
	// a negative iteration count.
	ErrInvalidCryptoConfigs = errors.New("invalid crypto configuration")
	// ErrInvalidStorageConfigs indicates an unknown backend or missing
	// backend settings (directory, DSN, base URL).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates a missing listen address, a
	// non-positive timeout or incomplete token settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero save workers).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
