package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/pbkdf2"
)

// randReader is the CSPRNG behind SecureRandomBytes; tests swap it to simulate failures.
var randReader io.Reader = rand.Reader

// SecureRandomBytes returns n bytes read from the operating system CSPRNG.
func SecureRandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative random length %d", ErrCrypto, n)
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(randReader, b); err != nil {
		return nil, fmt.Errorf("%w: reading random bytes: %w", ErrCrypto, err)
	}

	return b, nil
}

// PBKDF2 derives keyLen bytes from password and salt with the given PRF.
// The password is encoded as UTF-8.
func PBKDF2(password string, salt []byte, iterations, keyLen int, prf PRF) ([]byte, error) {
	info, ok := prfTable[prf]
	switch {
	case !ok:
		return nil, fmt.Errorf("%w: unsupported prf %d", ErrCrypto, prf)
	case iterations <= 0:
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", ErrCrypto, iterations)
	case keyLen <= 0:
		return nil, fmt.Errorf("%w: key length must be positive, got %d", ErrCrypto, keyLen)
	case len(salt) == 0:
		return nil, fmt.Errorf("%w: empty salt", ErrCrypto)
	}

	pw := []byte(password)
	defer Wipe(pw)

	return pbkdf2.Key(pw, salt, iterations, keyLen, info.new), nil
}

// MAC computes the HMAC of data under key.
func MAC(key, data []byte, alg MACAlgorithm) ([]byte, error) {
	info, ok := macTable[alg]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported mac algorithm %d", ErrCrypto, alg)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty mac key", ErrCrypto)
	}

	m := hmac.New(info.new, key)
	m.Write(data)

	return m.Sum(nil), nil
}

// ConstantTimeEqual reports whether a and b are equal. Every byte is visited
// regardless of where the first difference is, so the running time depends
// only on the lengths.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}

	return acc == 0
}

// Wipe overwrites b with zeroes.
func Wipe(b []byte) {
	memguard.WipeBytes(b)
}
