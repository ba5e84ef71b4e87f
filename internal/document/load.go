package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-secure-data/internal/crypto"
	"github.com/MKhiriev/go-secure-data/internal/logger"
)

// LoadMode decides what Load does with bytes it cannot open.
type LoadMode int

const (
	// Strict returns the decrypt or parse error to the caller.
	Strict LoadMode = iota
	// Lenient logs the failure and starts from an empty document,
	// which overwrites the unreadable data on the next save.
	Lenient
)

func (m LoadMode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("LoadMode(%d)", int(m))
	}
}

// ParseLoadMode maps "strict" or "lenient" to a LoadMode. An empty name is Strict.
func ParseLoadMode(name string) (LoadMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("%w: %q", ErrUnknownLoadMode, name)
	}
}

// Load opens an envelope with codec and password and parses the document
// inside. Empty data yields an empty document.
//
// Integrity, envelope and parse failures are returned in Strict mode and
// replaced by an empty document in Lenient mode. A crypto.ErrCrypto failure
// means the codec itself is unusable and is returned in both modes.
func Load(ctx context.Context, data []byte, codec crypto.Codec, password string, mode LoadMode) (*Document, error) {
	if len(data) == 0 {
		return New(), nil
	}

	log := logger.FromContext(ctx)

	plaintext, err := codec.Decrypt(data, password)
	if err != nil {
		if mode == Lenient && !errors.Is(err, crypto.ErrCrypto) {
			log.Warn().Str("func", "document.Load").Err(err).Msg("cannot open envelope, starting from an empty document")
			return New(), nil
		}
		return nil, err
	}
	defer crypto.Wipe(plaintext)

	doc, err := Parse(plaintext)
	if err != nil {
		if mode == Lenient {
			log.Warn().Str("func", "document.Load").Err(err).Msg("decrypted data is not a document, starting from an empty document")
			return New(), nil
		}
		return nil, err
	}

	return doc, nil
}

// Serialize encrypts the JSON form of the document with codec and password.
func (d *Document) Serialize(codec crypto.Codec, password string) ([]byte, error) {
	plaintext := d.JSON()
	defer crypto.Wipe(plaintext)

	return codec.Encrypt(plaintext, password)
}
