// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
)

// Iteration counts of the named specs.
const (
	CompatibleIterations  = 10000
	DocumentIterations    = 128
	RecommendedIterations = 600000
)

// Spec is an immutable set of algorithm choices for the envelope codec.
//
// Spec values are never validated at construction; the With* methods return
// a modified copy and invalid combinations surface as [ErrCrypto] when the
// spec is used. The IV length is always the cipher block size.
type Spec struct {
	cipher         Cipher
	mode           BlockMode
	padding        Padding
	saltLength     int
	hmacSaltLength int
	hmacKeyLength  int
	iterations     int
	prf            PRF
	mac            MACAlgorithm
	headerMAC      bool
}

// CompatibleSpec returns the cross-implementation baseline:
// AES-256/CBC/PKCS7, 16-byte salts, a 16-byte MAC key, 10000 iterations of
// PBKDF2-HMAC-SHA1 and an HMAC-SHA256 MAC. The iteration count is weak by
// current standards; it exists so payloads written by other implementations
// can be read.
func CompatibleSpec() Spec {
	return Spec{
		cipher:         AES256,
		mode:           ModeCBC,
		padding:        PaddingPKCS7,
		saltLength:     16,
		hmacSaltLength: 16,
		hmacKeyLength:  16,
		iterations:     CompatibleIterations,
		prf:            PRFHMACSHA1,
		mac:            HMACSHA256,
	}
}

// DefaultSpec is the algorithm set existing payloads were sealed with. It equals [CompatibleSpec].
func DefaultSpec() Spec {
	return CompatibleSpec()
}

// DocumentSpec is the at-rest format of secure documents written by other
// implementations: [CompatibleSpec] with 128 iterations. Weak; read-compat only.
func DocumentSpec() Spec {
	return CompatibleSpec().WithIterations(DocumentIterations)
}

// RecommendedSpec follows current OWASP guidance for PBKDF2:
// 600000 iterations of PBKDF2-HMAC-SHA256 and a 32-byte MAC key. It also
// authenticates the salts and the IV, so it cannot open envelopes written
// with [CompatibleSpec] and vice versa.
func RecommendedSpec() Spec {
	return CompatibleSpec().
		WithPRF(PRFHMACSHA256).
		WithIterations(RecommendedIterations).
		WithHMACKeyLength(32).
		WithHeaderMAC(true)
}

// SpecForProfile resolves a named profile ("compatible", "document" or
// "recommended"). The boolean is false for an unknown name.
func SpecForProfile(profile string) (Spec, bool) {
	switch normalizeName(profile) {
	case "compatible", "default":
		return CompatibleSpec(), true
	case "document":
		return DocumentSpec(), true
	case "recommended", "":
		return RecommendedSpec(), true
	}
	return Spec{}, false
}

func (s Spec) WithCipher(c Cipher) Spec             { s.cipher = c; return s }
func (s Spec) WithMode(m BlockMode) Spec            { s.mode = m; return s }
func (s Spec) WithPadding(p Padding) Spec           { s.padding = p; return s }
func (s Spec) WithSaltLength(n int) Spec            { s.saltLength = n; return s }
func (s Spec) WithHMACSaltLength(n int) Spec        { s.hmacSaltLength = n; return s }
func (s Spec) WithHMACKeyLength(n int) Spec         { s.hmacKeyLength = n; return s }
func (s Spec) WithIterations(n int) Spec            { s.iterations = n; return s }
func (s Spec) WithPRF(p PRF) Spec                   { s.prf = p; return s }
func (s Spec) WithMACAlgorithm(a MACAlgorithm) Spec { s.mac = a; return s }

// WithHeaderMAC extends the MAC input from the ciphertext alone to
// salt || hmacSalt || iv || ciphertext. The byte layout is unchanged.
func (s Spec) WithHeaderMAC(on bool) Spec { s.headerMAC = on; return s }

func (s Spec) Cipher() Cipher             { return s.cipher }
func (s Spec) Mode() BlockMode            { return s.mode }
func (s Spec) Padding() Padding           { return s.padding }
func (s Spec) SaltLength() int            { return s.saltLength }
func (s Spec) HMACSaltLength() int        { return s.hmacSaltLength }
func (s Spec) HMACKeyLength() int         { return s.hmacKeyLength }
func (s Spec) Iterations() int            { return s.iterations }
func (s Spec) PRF() PRF                   { return s.prf }
func (s Spec) MACAlgorithm() MACAlgorithm { return s.mac }
func (s Spec) HeaderMAC() bool            { return s.headerMAC }

// IVLength is the length of the IV field, always the cipher block size.
func (s Spec) IVLength() int {
	return s.cipher.BlockSize()
}

// Overhead is the number of envelope bytes that are not ciphertext.
func (s Spec) Overhead() int {
	return s.saltLength + s.hmacSaltLength + s.IVLength() + s.mac.Size()
}

// CiphertextLen returns the ciphertext length produced for n plaintext bytes.
func (s Spec) CiphertextLen(n int) int {
	bs := s.cipher.BlockSize()
	if s.padding == PaddingNone || bs == 0 {
		return n
	}
	return (n/bs + 1) * bs
}

// EnvelopeLen returns the envelope length produced for n plaintext bytes.
func (s Spec) EnvelopeLen(n int) int {
	return s.Overhead() + s.CiphertextLen(n)
}

// Validate reports the first invalid parameter of s, wrapped in [ErrCrypto].
func (s Spec) Validate() error {
	switch {
	case !s.cipher.valid():
		return fmt.Errorf("%w: unsupported cipher %d", ErrCrypto, s.cipher)
	case !s.mode.valid():
		return fmt.Errorf("%w: unsupported block mode %d", ErrCrypto, s.mode)
	case !s.padding.valid():
		return fmt.Errorf("%w: unsupported padding %d", ErrCrypto, s.padding)
	case !s.mac.valid():
		return fmt.Errorf("%w: unsupported mac algorithm %d", ErrCrypto, s.mac)
	case !s.prf.valid():
		return fmt.Errorf("%w: unsupported prf %d", ErrCrypto, s.prf)
	case s.saltLength <= 0:
		return fmt.Errorf("%w: salt length must be positive, got %d", ErrCrypto, s.saltLength)
	case s.hmacSaltLength <= 0:
		return fmt.Errorf("%w: hmac salt length must be positive, got %d", ErrCrypto, s.hmacSaltLength)
	case s.hmacKeyLength <= 0:
		return fmt.Errorf("%w: hmac key length must be positive, got %d", ErrCrypto, s.hmacKeyLength)
	case s.iterations <= 0:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrCrypto, s.iterations)
	}
	return nil
}

// String describes the algorithm choices; it is safe to log.
func (s Spec) String() string {
	mac := s.mac.String()
	if s.headerMAC {
		mac += "+header"
	}
	return fmt.Sprintf("%s/%s/%s %s %s i=%d salt=%d hmacSalt=%d hmacKey=%d",
		s.cipher, s.mode, s.padding, mac, s.prf, s.iterations,
		s.saltLength, s.hmacSaltLength, s.hmacKeyLength)
}
