package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-secure-data/internal/logger"
)

func TestWithTraceID_GeneratesID(t *testing.T) {
	var buf bytes.Buffer
	h, _ := newTestHandler(t)
	h.logger = &logger.Logger{Logger: zerolog.New(&buf)}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	traceID := rec.Header().Get(traceIDHeader)
	require.NotEmpty(t, traceID)
	assert.Contains(t, buf.String(), `"trace_id":"`+traceID+`"`)
}

func TestWithTraceID_ReusesIncomingID(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(traceIDHeader))
}

func TestWithTraceID_UniquePerRequest(t *testing.T) {
	h, _ := newTestHandler(t)
	handler := h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	seen := make(map[string]struct{})
	for range 10 {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		seen[rec.Header().Get(traceIDHeader)] = struct{}{}
	}

	assert.Len(t, seen, 10)
}
