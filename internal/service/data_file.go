// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-secure-data/internal/document"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/workers"
)

// DataFile is a document loaded through a [Registry]. It embeds the
// document, so typed getters and puts are called on it directly, and adds
// persistence bound to the identity and password it was opened with.
type DataFile struct {
	*document.Document

	identity string
	secret   *secret
	registry *Registry

	// saveMu serializes saves of this file; the last save to finish wins.
	saveMu sync.Mutex
	// saved is the document revision written by the last successful save.
	saved atomic.Uint64
}

func newDataFile(r *Registry, identity, password string, doc *document.Document) *DataFile {
	f := &DataFile{
		Document: doc,
		identity: identity,
		secret:   newSecret(password),
		registry: r,
	}
	f.saved.Store(doc.Revision())
	return f
}

// Identity returns the cleaned identity the file is stored under.
func (f *DataFile) Identity() string {
	return f.identity
}

// Dirty reports whether the document changed since it was loaded or last saved.
func (f *DataFile) Dirty() bool {
	return f.Revision() != f.saved.Load()
}

// Save encrypts the document and writes it to the registry's store. Saves of
// the same file never interleave. After the registry is closed Save returns
// [ErrRegistryClosed].
func (f *DataFile) Save(ctx context.Context) error {
	f.saveMu.Lock()
	defer f.saveMu.Unlock()

	log := logger.FromContext(ctx)

	password, err := f.secret.open()
	if err != nil {
		return err
	}

	revision := f.Revision()
	data, err := f.Serialize(f.registry.codec, password)
	if err != nil {
		log.Err(err).Str("func", "*DataFile.Save").Str("identity", f.identity).Msg("failed to serialize document")
		return fmt.Errorf("serialize %q: %w", f.identity, err)
	}

	if err = f.registry.store.Write(ctx, f.identity, data); err != nil {
		log.Err(err).Str("func", "*DataFile.Save").Str("identity", f.identity).Msg("failed to write document")
		return err
	}

	f.saved.Store(revision)
	log.Debug().Str("func", "*DataFile.Save").
		Str("identity", f.identity).
		Uint64("revision", revision).
		Int("size", len(data)).
		Msg("document saved")

	return nil
}

// SaveAsync queues a save on the registry's worker pool and returns a
// channel that receives its result. A save requested while another is
// running waits for it; nothing is cancelled.
func (f *DataFile) SaveAsync(ctx context.Context) <-chan error {
	result := make(chan error, 1)

	err := f.registry.pool.Submit(ctx, func(ctx context.Context) {
		result <- f.Save(ctx)
	})
	if err != nil {
		if errors.Is(err, workers.ErrPoolStopped) {
			err = ErrRegistryClosed
		}
		result <- err
	}

	return result
}
