package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/utils"
)

// verifyContentHash rejects request bodies that do not match their
// X-Content-SHA256 header. Requests without the header pass unchecked.
func (h *Handler) verifyContentHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		want := r.Header.Get(utils.ContentHashHeader)
		if want == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBlobSize))
		if err != nil {
			log.Err(err).Str("func", "*Handler.verifyContentHash").Msg("failed to read request body")
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !utils.VerifyHash(body, want) {
			log.Error().Str("func", "*Handler.verifyContentHash").
				Str("hash from request", want).
				Str("hashed body", utils.HashString(body)).
				Msg("hashes are not equal")
			http.Error(w, ErrIntegrityCheckFailed.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
