// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-secure-data/internal/config"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/store"
	"github.com/MKhiriev/go-secure-data/internal/utils"
)

// newTestStore creates an httpBlobStore pointed at the test server with no
// delay between retries.
func newTestStore(t *testing.T, serverURL string, maxRetries int) *httpBlobStore {
	t.Helper()
	cfg := config.HTTP{
		BaseURL:        serverURL,
		Token:          "test-token",
		RequestTimeout: 5 * time.Second,
		MaxRetries:     maxRetries,
	}

	s, err := NewHTTPBlobStore(cfg, logger.Nop())
	require.NoError(t, err)

	h := s.(*httpBlobStore)
	h.retry = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return h
}

// memoryServer is a minimal blobd stand-in keyed by the escaped request path.
type memoryServer struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func (m *memoryServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer test-token" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	key := r.URL.EscapedPath()
	switch r.Method {
	case http.MethodGet:
		data, ok := m.blobs[key]
		if !ok {
			http.Error(w, "blob not found", http.StatusNotFound)
			return
		}
		w.Header().Set(utils.ContentHashHeader, utils.HashString(data))
		_, _ = w.Write(data)
	case http.MethodPut:
		data, _ := io.ReadAll(r.Body)
		if !utils.VerifyHash(data, r.Header.Get(utils.ContentHashHeader)) {
			http.Error(w, "integrity check failed", http.StatusBadRequest)
			return
		}
		m.blobs[key] = data
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		if _, ok := m.blobs[key]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		delete(m.blobs, key)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ── Round trip ───────────────────────────────────────────────────────────────

func TestHTTPBlobStore_RoundTrip(t *testing.T) {
	mem := &memoryServer{blobs: map[string][]byte{}}
	srv := httptest.NewServer(mem)
	defer srv.Close()

	s := newTestStore(t, srv.URL, 0)
	ctx := context.Background()

	_, err := s.Read(ctx, "alice/data")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Write(ctx, "alice/data", []byte{0x00, 0xff, 0x10}))

	got, err := s.Read(ctx, "alice/data")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x10}, got)

	require.NoError(t, s.Delete(ctx, "alice/data"))
	require.NoError(t, s.Delete(ctx, "alice/data"), "deleting a missing blob is not an error")

	_, err = s.Read(ctx, "alice/data")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NoError(t, s.Close())
}

func TestHTTPBlobStore_EmptyBlob(t *testing.T) {
	mem := &memoryServer{blobs: map[string][]byte{}}
	srv := httptest.NewServer(mem)
	defer srv.Close()

	s := newTestStore(t, srv.URL, 0)

	require.NoError(t, s.Write(context.Background(), "empty", nil))
	got, err := s.Read(context.Background(), "empty")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestHTTPBlobStore_EscapesIdentitySegments(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, 0)
	require.NoError(t, s.Write(context.Background(), "team one/a?b", []byte("x")))

	assert.Equal(t, "/api/blobs/team%20one/a%3Fb", gotPath)
}

func TestHTTPBlobStore_InvalidIdentity(t *testing.T) {
	s := newTestStore(t, "http://localhost:1", 0)

	_, err := s.Read(context.Background(), "../escape")
	assert.ErrorIs(t, err, store.ErrInvalidIdentity)
	assert.ErrorIs(t, s.Write(context.Background(), "", []byte("x")), store.ErrInvalidIdentity)
}

// ── Errors and retries ──────────────────────────────────────────────────────

func TestHTTPBlobStore_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set(utils.ContentHashHeader, utils.HashString([]byte("ok")))
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, 2)
	got, err := s.Read(context.Background(), "k")

	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPBlobStore_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, 1)
	err := s.Write(context.Background(), "k", []byte("x"))

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrIO)
	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPBlobStore_ClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, 3)
	_, err := s.Read(context.Background(), "k")

	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrIO)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPBlobStore_HashMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(utils.ContentHashHeader, utils.HashString([]byte("other")))
		_, _ = w.Write([]byte("tampered"))
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, 0)
	_, err := s.Read(context.Background(), "k")

	assert.ErrorIs(t, err, store.ErrIO)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestHTTPBlobStore_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := newTestStore(t, srv.URL, 5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Read(ctx, "k")
	assert.Error(t, err)
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusTooManyRequests, ErrTooManyRequests},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			resp, err := utils.NewHTTPClient().R().Get(srv.URL)
			require.NoError(t, err)
			assert.ErrorIs(t, mapHTTPError(resp), tt.want)
		})
	}
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewHTTPBlobStore_InvalidURL(t *testing.T) {
	_, err := NewHTTPBlobStore(config.HTTP{}, logger.Nop())
	assert.Error(t, err)
}
