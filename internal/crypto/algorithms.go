package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"
)

// Cipher identifies a block cipher together with its fixed key size.
type Cipher int

const (
	AES128 Cipher = iota + 1
	AES192
	AES256
	DES
	TripleDES
)

type cipherInfo struct {
	name      string
	blockSize int
	keySize   int
	newBlock  func(key []byte) (cipher.Block, error)
}

// block and key sizes are fixed per cipher, min and max key sizes are equal.
var cipherTable = map[Cipher]cipherInfo{
	AES128:    {name: "AES-128", blockSize: aes.BlockSize, keySize: 16, newBlock: aes.NewCipher},
	AES192:    {name: "AES-192", blockSize: aes.BlockSize, keySize: 24, newBlock: aes.NewCipher},
	AES256:    {name: "AES-256", blockSize: aes.BlockSize, keySize: 32, newBlock: aes.NewCipher},
	DES:       {name: "DES", blockSize: des.BlockSize, keySize: 8, newBlock: des.NewCipher},
	TripleDES: {name: "3DES", blockSize: des.BlockSize, keySize: 24, newBlock: des.NewTripleDESCipher},
}

// BlockSize returns the cipher block size in bytes, or 0 for an unknown cipher.
func (c Cipher) BlockSize() int {
	return cipherTable[c].blockSize
}

// KeySize returns the cipher key size in bytes, or 0 for an unknown cipher.
func (c Cipher) KeySize() int {
	return cipherTable[c].keySize
}

func (c Cipher) valid() bool {
	_, ok := cipherTable[c]
	return ok
}

func (c Cipher) String() string {
	if info, ok := cipherTable[c]; ok {
		return info.name
	}
	return "unknown-cipher"
}

// BlockMode is the block cipher mode of operation.
type BlockMode int

const (
	ModeECB BlockMode = iota + 1
	ModeCBC
)

func (m BlockMode) valid() bool {
	return m == ModeECB || m == ModeCBC
}

func (m BlockMode) String() string {
	switch m {
	case ModeECB:
		return "ECB"
	case ModeCBC:
		return "CBC"
	default:
		return "unknown-mode"
	}
}

// Padding is the padding scheme applied before block encryption.
// PKCS5 pads to the cipher block size, so it behaves exactly like PKCS7.
type Padding int

const (
	PaddingNone Padding = iota + 1
	PaddingPKCS5
	PaddingPKCS7
)

func (p Padding) valid() bool {
	return p >= PaddingNone && p <= PaddingPKCS7
}

func (p Padding) String() string {
	switch p {
	case PaddingNone:
		return "NoPadding"
	case PaddingPKCS5:
		return "PKCS5"
	case PaddingPKCS7:
		return "PKCS7"
	default:
		return "unknown-padding"
	}
}

// MACAlgorithm is the HMAC variant used to authenticate the ciphertext.
type MACAlgorithm int

const (
	HMACMD5 MACAlgorithm = iota + 1
	HMACSHA1
	HMACSHA256
	HMACSHA384
	HMACSHA512
)

type hashInfo struct {
	name string
	size int
	new  func() hash.Hash
}

var macTable = map[MACAlgorithm]hashInfo{
	HMACMD5:    {name: "HMAC-MD5", size: md5.Size, new: md5.New},
	HMACSHA1:   {name: "HMAC-SHA1", size: sha1.Size, new: sha1.New},
	HMACSHA256: {name: "HMAC-SHA256", size: sha256.Size, new: sha256.New},
	HMACSHA384: {name: "HMAC-SHA384", size: sha512.Size384, new: sha512.New384},
	HMACSHA512: {name: "HMAC-SHA512", size: sha512.Size, new: sha512.New},
}

// Size returns the MAC output length in bytes, or 0 for an unknown algorithm.
func (a MACAlgorithm) Size() int {
	return macTable[a].size
}

func (a MACAlgorithm) valid() bool {
	_, ok := macTable[a]
	return ok
}

func (a MACAlgorithm) String() string {
	if info, ok := macTable[a]; ok {
		return info.name
	}
	return "unknown-mac"
}

// PRF is the pseudo-random function PBKDF2 iterates.
type PRF int

const (
	PRFHMACSHA1 PRF = iota + 1
	PRFHMACSHA256
	PRFHMACSHA512
)

var prfTable = map[PRF]hashInfo{
	PRFHMACSHA1:   {name: "PBKDF2-HMAC-SHA1", size: sha1.Size, new: sha1.New},
	PRFHMACSHA256: {name: "PBKDF2-HMAC-SHA256", size: sha256.Size, new: sha256.New},
	PRFHMACSHA512: {name: "PBKDF2-HMAC-SHA512", size: sha512.Size, new: sha512.New},
}

func (p PRF) valid() bool {
	_, ok := prfTable[p]
	return ok
}

func (p PRF) String() string {
	if info, ok := prfTable[p]; ok {
		return info.name
	}
	return "unknown-prf"
}

// DigestAlgorithm selects the hash used by [Digest].
type DigestAlgorithm int

const (
	DigestMD5 DigestAlgorithm = iota + 1
	DigestSHA1
	DigestSHA256
	DigestSHA384
	DigestSHA512
)

var digestTable = map[DigestAlgorithm]hashInfo{
	DigestMD5:    {name: "MD5", size: md5.Size, new: md5.New},
	DigestSHA1:   {name: "SHA-1", size: sha1.Size, new: sha1.New},
	DigestSHA256: {name: "SHA-256", size: sha256.Size, new: sha256.New},
	DigestSHA384: {name: "SHA-384", size: sha512.Size384, new: sha512.New384},
	DigestSHA512: {name: "SHA-512", size: sha512.Size, new: sha512.New},
}

func (d DigestAlgorithm) String() string {
	if info, ok := digestTable[d]; ok {
		return info.name
	}
	return "unknown-digest"
}

// ParseDigestAlgorithm maps names such as "sha256" or "SHA-256" to a DigestAlgorithm.
func ParseDigestAlgorithm(name string) (DigestAlgorithm, bool) {
	switch normalizeName(name) {
	case "md5":
		return DigestMD5, true
	case "sha1":
		return DigestSHA1, true
	case "sha256":
		return DigestSHA256, true
	case "sha384":
		return DigestSHA384, true
	case "sha512":
		return DigestSHA512, true
	}
	return 0, false
}

var nameReplacer = strings.NewReplacer("-", "", "_", "", " ", "")

func normalizeName(name string) string {
	return nameReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}
