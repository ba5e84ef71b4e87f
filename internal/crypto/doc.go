// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements password-based authenticated encryption of
// arbitrary byte payloads.
//
// A payload is sealed into a self-describing envelope
//
//	salt || hmacSalt || iv || ciphertext || mac
//
// where the cipher key is derived with PBKDF2 from (password, salt), the MAC
// key with PBKDF2 from (password, hmacSalt), and the MAC authenticates the
// ciphertext. Field lengths are not stored; both sides must agree on the same
// [Spec]. The byte layout and [CompatibleSpec] are interoperable with existing
// payloads; new data should use [RecommendedSpec].
//
// The package also exposes the primitive adapters it is built on
// ([SecureRandomBytes], [PBKDF2], [BlockCipher], [MAC]) and hex [Digest] helpers.
package crypto
