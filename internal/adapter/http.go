// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the remote [store.BlobStore] backend, which talks
// to a blobd server over HTTP.
//
// Blobs travel as raw octet streams under /api/blobs/{identity}, each with an
// X-Content-SHA256 header. Non-2xx responses are mapped to the sentinel values
// in errors.go by mapHTTPError; the store boundary then folds them into
// [store.ErrNotFound] or [store.ErrIO].
package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-secure-data/internal/config"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/store"
	"github.com/MKhiriev/go-secure-data/internal/utils"
)

const blobsPath = "/api/blobs/"

type httpBlobStore struct {
	client *utils.HTTPClient

	token    string
	maxTries uint

	// retry is the backoff policy between attempts; tests shorten it.
	retry func() backoff.BackOff

	logger *logger.Logger
}

// NewHTTPBlobStore constructs the remote implementation of [store.BlobStore].
// It normalises and validates cfg.BaseURL and configures the underlying HTTP
// client with the resolved base URL and per-attempt timeout.
//
// Transport errors, 429 and 5xx responses are retried up to cfg.MaxRetries
// extra times with exponential backoff; every other status fails at once.
func NewHTTPBlobStore(cfg config.HTTP, log *logger.Logger) (store.BlobStore, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid remote blob store address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	log.Debug().Str("base_url", baseURL).Int("max_retries", maxRetries).Msg("creating http blob store")

	return &httpBlobStore{
		client:   client,
		token:    strings.TrimSpace(cfg.Token),
		maxTries: uint(maxRetries) + 1,
		retry: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
		logger: log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// blobPath escapes each segment of a cleaned identity, keeping the slashes.
func blobPath(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return blobsPath + strings.Join(segments, "/")
}

func (h *httpBlobStore) Key(identity string) (string, error) {
	return store.CleanIdentity(identity)
}

// Read downloads the blob for identity. A 404 maps to [store.ErrNotFound].
func (h *httpBlobStore) Read(ctx context.Context, identity string) ([]byte, error) {
	key, err := h.Key(identity)
	if err != nil {
		return nil, err
	}

	resp, err := h.do(ctx, http.MethodGet, key, nil)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("%w: read %q: %w", store.ErrIO, key, err)
	}

	body := resp.Body()
	if !utils.VerifyHash(body, resp.Header().Get(utils.ContentHashHeader)) {
		return nil, fmt.Errorf("%w: read %q: %w", store.ErrIO, key, ErrIntegrity)
	}
	if body == nil {
		body = []byte{}
	}

	return body, nil
}

// Write uploads data for identity, replacing any previous blob.
func (h *httpBlobStore) Write(ctx context.Context, identity string, data []byte) error {
	key, err := h.Key(identity)
	if err != nil {
		return err
	}

	if data == nil {
		data = []byte{}
	}
	if _, err = h.do(ctx, http.MethodPut, key, data); err != nil {
		return fmt.Errorf("%w: write %q: %w", store.ErrIO, key, err)
	}

	return nil
}

// Delete removes the blob for identity. A 404 is not an error.
func (h *httpBlobStore) Delete(ctx context.Context, identity string) error {
	key, err := h.Key(identity)
	if err != nil {
		return err
	}

	if _, err = h.do(ctx, http.MethodDelete, key, nil); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("%w: delete %q: %w", store.ErrIO, key, err)
	}

	return nil
}

func (h *httpBlobStore) Close() error {
	h.client.GetClient().CloseIdleConnections()
	return nil
}

// do sends one request, retrying transport failures and retryable statuses.
func (h *httpBlobStore) do(ctx context.Context, method, key string, body []byte) (*resty.Response, error) {
	log := logger.FromContext(ctx)

	operation := func() (*resty.Response, error) {
		req := h.authedRequest(ctx)
		if body != nil {
			req.
				SetHeader("Content-Type", "application/octet-stream").
				SetHeader(utils.ContentHashHeader, utils.HashString(body)).
				SetBody(body)
		}

		resp, err := req.Execute(method, blobPath(key))
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, fmt.Errorf("%s request: %w", strings.ToLower(method), err)
		}

		if err = mapHTTPError(resp); err != nil {
			if retryableStatus(resp.StatusCode()) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}

		return resp, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(h.retry()),
		backoff.WithMaxTries(h.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.Warn().Err(err).Str("func", "*httpBlobStore.do").
				Str("method", method).
				Str("identity", key).
				Dur("retry_in", next).
				Msg("retrying blob request")
		}),
	)
}

func (h *httpBlobStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}
