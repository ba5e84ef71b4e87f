// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"
)

// Encrypt seals plaintext under password and returns the envelope
//
//	salt || hmacSalt || iv || ciphertext || mac
//
// The salts and the IV are independent CSPRNG draws, so encrypting the same
// plaintext twice never yields the same envelope. The MAC covers the
// ciphertext only (encrypt-then-MAC), or the whole envelope prefix when the
// spec has [Spec.WithHeaderMAC] set. Derived keys are wiped before return.
func Encrypt(plaintext []byte, password string, spec Spec) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	salt, err := SecureRandomBytes(spec.saltLength)
	if err != nil {
		return nil, err
	}
	hmacSalt, err := SecureRandomBytes(spec.hmacSaltLength)
	if err != nil {
		return nil, err
	}

	cipherKey, err := PBKDF2(password, salt, spec.iterations, spec.cipher.KeySize(), spec.prf)
	if err != nil {
		return nil, err
	}
	defer Wipe(cipherKey)

	iv, err := SecureRandomBytes(spec.IVLength())
	if err != nil {
		return nil, err
	}

	ciphertext, err := BlockCipher(OpEncrypt, plaintext, cipherKey, iv, spec.cipher, spec.mode, spec.padding)
	if err != nil {
		return nil, err
	}

	macKey, err := PBKDF2(password, hmacSalt, spec.iterations, spec.hmacKeyLength, spec.prf)
	if err != nil {
		return nil, err
	}
	defer Wipe(macKey)

	out := make([]byte, 0, spec.Overhead()+len(ciphertext))
	out = append(out, salt...)
	out = append(out, hmacSalt...)
	out = append(out, iv...)
	out = append(out, ciphertext...)

	macInput := ciphertext
	if spec.headerMAC {
		macInput = out
	}
	mac, err := MAC(macKey, macInput, spec.mac)
	if err != nil {
		return nil, err
	}

	return append(out, mac...), nil
}

// Decrypt opens an envelope produced by [Encrypt] with the same spec.
//
// It returns [ErrMalformedEnvelope] when the input is shorter than the fixed
// fields, [ErrIntegrity] on a MAC mismatch or a padding failure, and
// [ErrCrypto] for an unusable spec. The MAC is compared in constant time and
// the cipher key is derived on both the success and the mismatch path.
func Decrypt(envelope []byte, password string, spec Spec) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if len(envelope) < spec.Overhead() {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", ErrMalformedEnvelope, spec.Overhead(), len(envelope))
	}

	off := 0
	salt := envelope[off : off+spec.saltLength]
	off += spec.saltLength
	hmacSalt := envelope[off : off+spec.hmacSaltLength]
	off += spec.hmacSaltLength
	iv := envelope[off : off+spec.IVLength()]
	off += spec.IVLength()
	macStart := len(envelope) - spec.mac.Size()
	ciphertext := envelope[off:macStart]
	mac := envelope[macStart:]

	macKey, err := PBKDF2(password, hmacSalt, spec.iterations, spec.hmacKeyLength, spec.prf)
	if err != nil {
		return nil, err
	}
	defer Wipe(macKey)

	macInput := ciphertext
	if spec.headerMAC {
		macInput = envelope[:macStart]
	}
	expected, err := MAC(macKey, macInput, spec.mac)
	if err != nil {
		return nil, err
	}
	macOK := ConstantTimeEqual(mac, expected)

	cipherKey, err := PBKDF2(password, salt, spec.iterations, spec.cipher.KeySize(), spec.prf)
	if err != nil {
		return nil, err
	}
	defer Wipe(cipherKey)

	if !macOK {
		return nil, ErrIntegrity
	}

	plaintext, err := BlockCipher(OpDecrypt, ciphertext, cipherKey, iv, spec.cipher, spec.mode, spec.padding)
	if err != nil {
		if errors.Is(err, ErrBadPadding) {
			return nil, ErrIntegrity
		}
		return nil, err
	}

	return plaintext, nil
}

// envelopeCodec implements [Codec] for a fixed [Spec].
type envelopeCodec struct {
	spec Spec
}

// NewCodec binds spec to a [Codec].
func NewCodec(spec Spec) Codec {
	return &envelopeCodec{spec: spec}
}

func (c *envelopeCodec) Encrypt(plaintext []byte, password string) ([]byte, error) {
	return Encrypt(plaintext, password, c.spec)
}

func (c *envelopeCodec) Decrypt(envelope []byte, password string) ([]byte, error) {
	return Decrypt(envelope, password, c.spec)
}

func (c *envelopeCodec) Spec() Spec {
	return c.spec
}
