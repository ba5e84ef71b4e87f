// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-secure-data/internal/crypto"
	"github.com/MKhiriev/go-secure-data/internal/document"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/store"
	"github.com/MKhiriev/go-secure-data/internal/workers"
)

// DefaultIdentity is the identity opened by [Registry.OpenDefault].
const DefaultIdentity = "data"

const (
	defaultSaveWorkers = 2
	saveQueuePerWorker = 16
)

// Registry owns the documents loaded from one [store.BlobStore]. It keeps at
// most one in-memory [DataFile] per identity, runs asynchronous saves on a
// bounded worker pool and, optionally, saves dirty files on a timer.
//
// A Registry is safe for concurrent use. It must be closed with Close.
type Registry struct {
	store  store.BlobStore
	codec  crypto.Codec
	mode   document.LoadMode
	logger *logger.Logger

	saveWorkers      int
	autosaveInterval time.Duration

	group singleflight.Group

	mu     sync.Mutex
	files  map[string]*DataFile
	closed bool

	pool     *workers.Pool
	autosave *autosaveJob
	cancel   context.CancelFunc
}

// Option configures a [Registry].
type Option func(*Registry)

// WithSpec sets the envelope spec documents are encrypted with.
// The default is [crypto.RecommendedSpec].
func WithSpec(spec crypto.Spec) Option {
	return func(r *Registry) {
		r.codec = crypto.NewCodec(spec)
	}
}

// WithCodec sets the codec directly, mainly for tests.
func WithCodec(codec crypto.Codec) Option {
	return func(r *Registry) {
		r.codec = codec
	}
}

// WithLoadMode selects how undecryptable blobs are handled. The default is
// [document.Strict].
func WithLoadMode(mode document.LoadMode) Option {
	return func(r *Registry) {
		r.mode = mode
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.logger = log
		}
	}
}

// WithSaveWorkers sets the number of goroutines serving SaveAsync.
func WithSaveWorkers(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.saveWorkers = n
		}
	}
}

// WithAutosave saves dirty files every interval. Zero disables it.
func WithAutosave(interval time.Duration) Option {
	return func(r *Registry) {
		r.autosaveInterval = interval
	}
}

// NewRegistry creates a registry over blobs. The registry does not take
// ownership of blobs; closing the registry leaves the store open.
func NewRegistry(blobs store.BlobStore, opts ...Option) *Registry {
	r := &Registry{
		store:       blobs,
		codec:       crypto.NewCodec(crypto.RecommendedSpec()),
		mode:        document.Strict,
		logger:      logger.Nop(),
		saveWorkers: defaultSaveWorkers,
		files:       make(map[string]*DataFile),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.pool = workers.NewPool(r.saveWorkers, r.saveWorkers*saveQueuePerWorker, r.logger)

	ctx, cancel := context.WithCancel(r.logger.WithContext(context.Background()))
	r.cancel = cancel

	if r.autosaveInterval > 0 {
		r.autosave = newAutosaveJob(r, r.autosaveInterval)
	}
	workers.NewWorkers(r.autosave.worker()).Run(ctx)

	r.logger.Debug().Str("func", "NewRegistry").
		Str("spec", r.codec.Spec().String()).
		Str("load_mode", r.mode.String()).
		Int("save_workers", r.saveWorkers).
		Dur("autosave", r.autosaveInterval).
		Msg("registry created")

	return r
}

// Open returns the document stored under identity, loading it on first use.
//
// While a document is loaded, further opens return the same *DataFile if
// the password matches and [ErrPasswordMismatch] otherwise. Concurrent first
// opens of one identity share a single load. A missing blob yields an empty
// document; any other store failure is returned.
func (r *Registry) Open(ctx context.Context, identity, password string) (*DataFile, error) {
	identity, key, err := r.resolve(identity)
	if err != nil {
		return nil, err
	}
	if r.isClosed() {
		return nil, ErrRegistryClosed
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		if f := r.lookup(key); f != nil {
			return f, nil
		}
		return r.load(ctx, identity, key, password)
	})
	if err != nil {
		return nil, err
	}

	f := v.(*DataFile)
	if !f.secret.matches(password) {
		logger.FromContext(ctx).Warn().Str("func", "*Registry.Open").Str("identity", identity).Msg("password does not match the loaded document")
		return nil, ErrPasswordMismatch
	}

	return f, nil
}

// resolve returns the cleaned identity used for store calls and the store's
// cache key for it.
func (r *Registry) resolve(identity string) (string, string, error) {
	cleaned, err := store.CleanIdentity(identity)
	if err != nil {
		return "", "", err
	}
	key, err := r.store.Key(cleaned)
	if err != nil {
		return "", "", err
	}

	return cleaned, key, nil
}

// OpenDefault opens [DefaultIdentity].
func (r *Registry) OpenDefault(ctx context.Context, password string) (*DataFile, error) {
	return r.Open(ctx, DefaultIdentity, password)
}

func (r *Registry) load(ctx context.Context, identity, key, password string) (*DataFile, error) {
	log := logger.FromContext(ctx)

	data, err := r.store.Read(ctx, identity)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Debug().Str("func", "*Registry.load").Str("identity", identity).Msg("no stored blob, starting with an empty document")
		data = nil
	case err != nil:
		log.Err(err).Str("func", "*Registry.load").Str("identity", identity).Msg("failed to read blob")
		return nil, err
	}

	doc, err := document.Load(ctx, data, r.codec, password, r.mode)
	if err != nil {
		log.Err(err).Str("func", "*Registry.load").Str("identity", identity).Msg("failed to load document")
		return nil, fmt.Errorf("load %q: %w", identity, err)
	}

	f := newDataFile(r, identity, password, doc)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		f.secret.destroy()
		return nil, ErrRegistryClosed
	}
	r.files[key] = f

	return f, nil
}

func (r *Registry) lookup(key string) *DataFile {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.files[key]
}

func (r *Registry) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.closed
}

// Evict drops identity from memory without saving it. The next Open reloads
// it from the store; handles obtained earlier stay usable.
func (r *Registry) Evict(identity string) {
	_, key, err := r.resolve(identity)
	if err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.files, key)
}

// Delete removes the stored blob for identity and evicts it.
func (r *Registry) Delete(ctx context.Context, identity string) error {
	if r.isClosed() {
		return ErrRegistryClosed
	}
	identity, _, err := r.resolve(identity)
	if err != nil {
		return err
	}
	if err = r.store.Delete(ctx, identity); err != nil {
		return err
	}
	r.Evict(identity)

	return nil
}

// Loaded returns the identities currently in memory, sorted.
func (r *Registry) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	identities := make([]string, 0, len(r.files))
	for _, f := range r.files {
		identities = append(identities, f.identity)
	}
	sort.Strings(identities)

	return identities
}

// snapshot returns the loaded files; callers must not hold r.mu.
func (r *Registry) snapshot() []*DataFile {
	r.mu.Lock()
	defer r.mu.Unlock()

	files := make([]*DataFile, 0, len(r.files))
	for _, f := range r.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].identity < files[j].identity })

	return files
}

// saveDirty saves every dirty file and returns the combined failures.
func (r *Registry) saveDirty(ctx context.Context) error {
	var result *multierror.Error
	for _, f := range r.snapshot() {
		if !f.Dirty() {
			continue
		}
		if err := f.Save(ctx); err != nil {
			result = multierror.Append(result, fmt.Errorf("save %q: %w", f.identity, err))
		}
	}

	return result.ErrorOrNil()
}

// Close stops the autosave job, finishes queued saves, saves dirty files and
// drops every document. Later calls on the registry or its files return
// [ErrRegistryClosed].
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRegistryClosed
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	if r.autosave != nil {
		r.autosave.Stop()
	}
	r.pool.Stop()

	err := r.saveDirty(ctx)

	r.mu.Lock()
	files := r.files
	r.files = make(map[string]*DataFile)
	r.mu.Unlock()

	for _, f := range files {
		f.secret.destroy()
	}

	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*Registry.Close").Msg("failed to save documents on close")
	}

	return err
}
