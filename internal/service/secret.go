package service

import (
	"strings"
	"sync"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/go-secure-data/internal/crypto"
)

// secret keeps a document password in an encrypted memguard enclave for as
// long as the document stays loaded.
type secret struct {
	mu        sync.Mutex
	enclave   *memguard.Enclave
	destroyed bool
}

func newSecret(password string) *secret {
	if password == "" {
		return &secret{}
	}
	// NewEnclave wipes its argument
	return &secret{enclave: memguard.NewEnclave([]byte(password))}
}

// open returns a heap copy of the password. The locked buffer it was read
// from is destroyed before open returns, so the result may be kept.
func (s *secret) open() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return "", ErrRegistryClosed
	}
	if s.enclave == nil {
		return "", nil
	}

	buf, err := s.enclave.Open()
	if err != nil {
		return "", err
	}
	defer buf.Destroy()

	return strings.Clone(buf.String()), nil
}

// matches compares password with the stored one in constant time.
func (s *secret) matches(password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return false
	}
	if s.enclave == nil {
		return password == ""
	}

	buf, err := s.enclave.Open()
	if err != nil {
		return false
	}
	defer buf.Destroy()

	return crypto.ConstantTimeEqual(buf.Bytes(), []byte(password))
}

func (s *secret) destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enclave = nil
	s.destroyed = true
}
