package utils

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-secure-data/models"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name   string
		data   any
		status int
		want   string
	}{
		{name: "version body", data: models.VersionResponse{Version: "1.0.0", Date: "N/A", Commit: "N/A"}, status: http.StatusOK, want: `{"version":"1.0.0","date":"N/A","commit":"N/A"}`},
		{name: "map with custom status", data: map[string]string{"error": "missing"}, status: http.StatusNotFound, want: `{"error":"missing"}`},
		{name: "nil", data: nil, status: http.StatusOK, want: `null`},
		{name: "empty slice", data: []string{}, status: http.StatusOK, want: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			n, err := WriteJSON(rec, tt.data, tt.status)
			require.NoError(t, err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
			assert.JSONEq(t, tt.want, rec.Body.String())
			assert.Equal(t, rec.Body.Len(), n)
		})
	}
}

func TestWriteJSON_DecodesBack(t *testing.T) {
	rec := httptest.NewRecorder()
	want := models.TokenResponse{Client: "alice", Token: "t", ExpiresAt: "2026-10-18T00:00:00Z"}

	_, err := WriteJSON(rec, want, http.StatusCreated)
	require.NoError(t, err)

	var got models.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	tests := []struct {
		name string
		data any
	}{
		{name: "channel", data: make(chan int)},
		{name: "function", data: func() {}},
		{name: "NaN", data: math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			n, err := WriteJSON(rec, tt.data, http.StatusOK)
			assert.Error(t, err)
			assert.Zero(t, n)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.NotEqual(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
