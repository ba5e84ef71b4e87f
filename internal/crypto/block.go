package crypto

import (
	"crypto/cipher"
	"fmt"
)

// Operation selects the direction of [BlockCipher].
type Operation int

const (
	OpEncrypt Operation = iota + 1
	OpDecrypt
)

type transformationKey struct {
	cipher  Cipher
	mode    BlockMode
	padding Padding
}

// transformation is the concrete primitive configuration a (cipher, mode,
// padding) triple resolves to.
type transformation struct {
	info    cipherInfo
	mode    BlockMode
	padding bool
}

var transformations = buildTransformations()

func buildTransformations() map[transformationKey]transformation {
	t := make(map[transformationKey]transformation, len(cipherTable)*4)
	for c, info := range cipherTable {
		for _, m := range []BlockMode{ModeECB, ModeCBC} {
			t[transformationKey{c, m, PaddingNone}] = transformation{info: info, mode: m}
			t[transformationKey{c, m, PaddingPKCS5}] = transformation{info: info, mode: m, padding: true}
			t[transformationKey{c, m, PaddingPKCS7}] = transformation{info: info, mode: m, padding: true}
		}
	}
	return t
}

// BlockCipher encrypts or decrypts data with the given cipher, mode and padding.
//
// ECB takes no IV; passing one is [ErrCrypto]. CBC needs an IV of exactly one
// block. Without padding the input must be block aligned. On decryption an
// invalid padding block or unaligned ciphertext is [ErrBadPadding].
func BlockCipher(op Operation, data, key, iv []byte, c Cipher, m BlockMode, p Padding) ([]byte, error) {
	tr, ok := transformations[transformationKey{c, m, p}]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported transformation %s/%s/%s", ErrCrypto, c, m, p)
	}

	if len(key) != tr.info.keySize {
		return nil, fmt.Errorf("%w: %s needs a %d-byte key, got %d", ErrCrypto, c, tr.info.keySize, len(key))
	}
	block, err := tr.info.newBlock(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCrypto, err)
	}

	bs := block.BlockSize()
	switch tr.mode {
	case ModeECB:
		if len(iv) != 0 {
			return nil, fmt.Errorf("%w: ECB mode does not take an IV", ErrCrypto)
		}
	case ModeCBC:
		if len(iv) != bs {
			return nil, fmt.Errorf("%w: CBC needs a %d-byte IV, got %d", ErrCrypto, bs, len(iv))
		}
	}

	switch op {
	case OpEncrypt:
		return tr.encrypt(block, data, iv)
	case OpDecrypt:
		return tr.decrypt(block, data, iv)
	default:
		return nil, fmt.Errorf("%w: unknown operation %d", ErrCrypto, op)
	}
}

func (t transformation) encrypt(block cipher.Block, data, iv []byte) ([]byte, error) {
	bs := block.BlockSize()

	var in []byte
	if t.padding {
		padded, err := PadPKCS7(data, bs)
		if err != nil {
			return nil, err
		}
		in = padded
	} else {
		if len(data)%bs != 0 {
			return nil, fmt.Errorf("%w: input length %d is not a multiple of block size %d", ErrCrypto, len(data), bs)
		}
		in = data
	}

	out := make([]byte, len(in))
	if t.mode == ModeCBC {
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, in)
	} else {
		for i := 0; i < len(in); i += bs {
			block.Encrypt(out[i:i+bs], in[i:i+bs])
		}
	}

	return out, nil
}

func (t transformation) decrypt(block cipher.Block, data, iv []byte) ([]byte, error) {
	bs := block.BlockSize()
	if len(data)%bs != 0 {
		if t.padding {
			return nil, ErrBadPadding
		}
		return nil, fmt.Errorf("%w: input length %d is not a multiple of block size %d", ErrCrypto, len(data), bs)
	}

	out := make([]byte, len(data))
	if t.mode == ModeCBC {
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)
	} else {
		for i := 0; i < len(data); i += bs {
			block.Decrypt(out[i:i+bs], data[i:i+bs])
		}
	}

	if !t.padding {
		return out, nil
	}

	return UnpadPKCS7(out, bs)
}
