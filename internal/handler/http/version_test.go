package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-secure-data/models"
)

func TestGetServerVersion(t *testing.T) {
	router, mocks := newRouter(t)
	want := models.VersionResponse{Version: "1.2.0", Date: "2026-10-01", Commit: "abc123"}
	mocks.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(want)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got models.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, want, got)
}

func TestGetServerVersion_NoAuthRequired(t *testing.T) {
	router, mocks := newRouter(t)
	mocks.auth.EXPECT().Enabled().Times(0)
	mocks.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.VersionResponse{Version: "1"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
