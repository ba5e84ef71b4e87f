package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"sync"
)

// ContentHashHeader carries the hex SHA-256 of a blob body in both directions
// between the HTTP blob client and blobd.
const ContentHashHeader = "X-Content-SHA256"

// hasherPool is a package-level pool of reusable SHA-256 hash instances.
var hasherPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// Hash returns the SHA-256 digest of data using a pooled hasher.
//
// Purpose:
//   - Avoid repeated allocations of new hash.Hash instances
//   - Reduce GC pressure on the blob transfer path
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashString returns the hex encoded SHA-256 of data.
func HashString(data []byte) string {
	return hex.EncodeToString(Hash(data))
}

// VerifyHash reports whether want is the hex SHA-256 of data. An empty want
// means the peer sent no hash and is accepted. Hex case is ignored.
func VerifyHash(data []byte, want string) bool {
	if want == "" {
		return true
	}
	decoded, err := hex.DecodeString(want)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(Hash(data), decoded) == 1
}
