package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-secure-data/internal/utils"
)

func bodyEcho(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	_, _ = w.Write(b)
}

func TestVerifyContentHash(t *testing.T) {
	const body = "payload"

	tests := []struct {
		name       string
		hash       string
		wantStatus int
	}{
		{name: "no header", wantStatus: http.StatusOK},
		{name: "matching hash", hash: utils.HashString([]byte(body)), wantStatus: http.StatusOK},
		{name: "uppercase hash", hash: strings.ToUpper(utils.HashString([]byte(body))), wantStatus: http.StatusOK},
		{name: "mismatch", hash: utils.HashString([]byte("tampered")), wantStatus: http.StatusBadRequest},
		{name: "garbage", hash: "not-hex", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
			if tt.hash != "" {
				req.Header.Set(utils.ContentHashHeader, tt.hash)
			}
			rec := httptest.NewRecorder()
			h.verifyContentHash(http.HandlerFunc(bodyEcho)).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, body, rec.Body.String(), "body must be readable downstream")
			}
		})
	}
}
