package document

import "errors"

var (
	// ErrMalformedDocument is returned when decrypted bytes are not a JSON object.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrInvalidValue is returned when a nested value cannot be encoded as JSON.
	ErrInvalidValue = errors.New("invalid document value")

	// ErrUnknownLoadMode is returned by ParseLoadMode for unrecognised names.
	ErrUnknownLoadMode = errors.New("unknown load mode")
)
