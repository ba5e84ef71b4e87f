package crypto

import "errors"

// Sentinel errors returned by the envelope codec and the primitive adapters.
// Callers should match them with [errors.Is]; the wrapped detail never contains
// passwords, derived keys or plaintext.
var (
	// ErrMalformedEnvelope is returned when an envelope is too short to contain
	// the fixed-length fields dictated by the algorithm spec.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrIntegrity is returned when MAC verification fails, or when padding
	// removal fails after the MAC passed. Both cases produce the same value so
	// a caller cannot tell a wrong password from tampered or corrupted data.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrCrypto is returned when a primitive rejects its parameters: an
	// unsupported algorithm, an invalid key or IV length, a non-positive
	// iteration count, or unaligned input without padding.
	ErrCrypto = errors.New("crypto failure")

	// ErrBadPadding is returned by [BlockCipher] when decrypted data carries an
	// invalid padding block or the ciphertext is not block aligned.
	// The envelope codec folds it into [ErrIntegrity].
	ErrBadPadding = errors.New("bad padding")
)
