// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/utils"
)

// maxBlobSize bounds a single PUT body.
const maxBlobSize = 64 << 20

// identityFromRequest returns the wildcard part of the blob route. chi
// matches on the raw path when one is set, so the value is unescaped then.
func identityFromRequest(r *http.Request) (string, error) {
	identity := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return identity, nil
	}
	return url.PathUnescape(identity)
}

func (h *Handler) getBlob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, err := identityFromRequest(r)
	if err != nil {
		http.Error(w, ErrInvalidIdentityPath.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.services.BlobService.Get(r.Context(), identity)
	if err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			log.Err(err).Str("func", "*Handler.getBlob").Str("identity", identity).Msg("failed to read blob")
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set(utils.ContentHashHeader, utils.HashString(data))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) putBlob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, err := identityFromRequest(r)
	if err != nil {
		http.Error(w, ErrInvalidIdentityPath.Error(), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBlobSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		log.Err(err).Str("func", "*Handler.putBlob").Msg("failed to read request body")
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err = h.services.BlobService.Put(r.Context(), identity, data); err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			log.Err(err).Str("func", "*Handler.putBlob").Str("identity", identity).Msg("failed to write blob")
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteBlob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, err := identityFromRequest(r)
	if err != nil {
		http.Error(w, ErrInvalidIdentityPath.Error(), http.StatusBadRequest)
		return
	}

	if err = h.services.BlobService.Delete(r.Context(), identity); err != nil {
		status := statusFromError(err)
		if status >= http.StatusInternalServerError {
			log.Err(err).Str("func", "*Handler.deleteBlob").Str("identity", identity).Msg("failed to delete blob")
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
