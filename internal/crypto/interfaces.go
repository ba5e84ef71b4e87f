package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/codec_mock.go -package=mock

// Codec seals and opens envelopes with a fixed algorithm spec.
//
// Implementations never log or wrap passwords, derived keys or plaintext
// into returned errors.
type Codec interface {
	// Encrypt returns salt || hmacSalt || iv || ciphertext || mac for plaintext.
	Encrypt(plaintext []byte, password string) ([]byte, error)

	// Decrypt verifies and opens an envelope. A wrong password, tampered data
	// and corrupted data all yield ErrIntegrity.
	Decrypt(envelope []byte, password string) ([]byte, error)

	// Spec returns the algorithm choices the codec was built with.
	Spec() Spec
}
