package crypto

import (
	"encoding/hex"
	"fmt"
)

// Digest hashes text (UTF-8) and returns the lowercase hex digest.
func Digest(text string, alg DigestAlgorithm) (string, error) {
	info, ok := digestTable[alg]
	if !ok {
		return "", fmt.Errorf("%w: unsupported digest %d", ErrCrypto, alg)
	}

	h := info.new()
	h.Write([]byte(text))

	return hex.EncodeToString(h.Sum(nil)), nil
}

// SHA1 is shorthand for Digest(text, DigestSHA1).
func SHA1(text string) string {
	s, _ := Digest(text, DigestSHA1)
	return s
}

// MD5 is shorthand for Digest(text, DigestMD5).
func MD5(text string) string {
	s, _ := Digest(text, DigestMD5)
	return s
}
