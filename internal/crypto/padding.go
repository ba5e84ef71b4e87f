package crypto

import (
	"bytes"
	"crypto/subtle"
	"fmt"
)

// PadPKCS7 appends PKCS#7 padding so the result is a multiple of blockSize.
// A full block of padding is added when data is already aligned.
func PadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 || blockSize > 255 {
		return nil, fmt.Errorf("%w: invalid block size %d", ErrCrypto, blockSize)
	}

	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)

	return append(out, bytes.Repeat([]byte{byte(n)}, n)...), nil
}

// UnpadPKCS7 strips PKCS#7 padding. It returns [ErrBadPadding] for any
// malformed padding and inspects the whole last block regardless of where the
// first bad byte is.
func UnpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 || blockSize > 255 {
		return nil, fmt.Errorf("%w: invalid block size %d", ErrCrypto, blockSize)
	}
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrBadPadding
	}

	last := data[len(data)-blockSize:]
	n := int(last[blockSize-1])

	good := subtle.ConstantTimeLessOrEq(1, n) & subtle.ConstantTimeLessOrEq(n, blockSize)
	for i := 0; i < blockSize; i++ {
		inPad := subtle.ConstantTimeLessOrEq(blockSize-n, i)
		match := subtle.ConstantTimeByteEq(last[i], byte(n))
		good &= subtle.ConstantTimeSelect(inPad, match, 1)
	}
	if good != 1 {
		return nil, ErrBadPadding
	}

	return data[:len(data)-n], nil
}
