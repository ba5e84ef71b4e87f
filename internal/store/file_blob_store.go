// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-secure-data/internal/logger"
)

// fileBlobStore keeps each blob in its own file under root. Writes go to a
// temporary file in the target directory which is then renamed over the
// destination, so readers never observe a partially written blob.
type fileBlobStore struct {
	root   string
	logger *logger.Logger
}

// NewFileBlobStore returns a [BlobStore] rooted at dir. The directory is
// created with mode 0700 if it does not exist.
func NewFileBlobStore(dir string, log *logger.Logger) (BlobStore, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving store root: %w", ErrIO, err)
	}
	if err = os.MkdirAll(root, 0o700); err != nil {
		log.Err(err).Str("func", "NewFileBlobStore").Str("root", root).Msg("error creating store root")
		return nil, fmt.Errorf("%w: creating store root: %w", ErrIO, err)
	}

	log.Debug().Str("func", "NewFileBlobStore").Str("root", root).Msg("file blob store is ready")
	return &fileBlobStore{root: root, logger: log}, nil
}

// Key returns the absolute path of the blob file for identity.
func (s *fileBlobStore) Key(identity string) (string, error) {
	cleaned, err := CleanIdentity(identity)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

func (s *fileBlobStore) Read(ctx context.Context, identity string) ([]byte, error) {
	log := logger.FromContext(ctx)

	p, err := s.Key(identity)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		log.Err(err).Str("func", "*fileBlobStore.Read").Str("path", p).Msg("error reading blob file")
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return data, nil
}

func (s *fileBlobStore) Write(ctx context.Context, identity string, data []byte) error {
	log := logger.FromContext(ctx)

	p, err := s.Key(identity)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err = writeFileAtomic(p, data); err != nil {
		log.Err(err).Str("func", "*fileBlobStore.Write").Str("path", p).Msg("error writing blob file")
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	log.Debug().Str("func", "*fileBlobStore.Write").Str("path", p).Int("size", len(data)).Msg("blob written")
	return nil
}

func (s *fileBlobStore) Delete(ctx context.Context, identity string) error {
	p, err := s.Key(identity)
	if err != nil {
		return err
	}

	if err = os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.FromContext(ctx).Err(err).Str("func", "*fileBlobStore.Delete").Str("path", p).Msg("error removing blob file")
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}

func (s *fileBlobStore) Close() error {
	return nil
}

func writeFileAtomic(p string, data []byte) (err error) {
	dir := filepath.Dir(p)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), p)
}
