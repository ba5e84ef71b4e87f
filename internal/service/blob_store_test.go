package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-secure-data/internal/config"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/store"
)

func TestNewBlobStore(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Storage
		wantErr error
	}{
		{
			name: "file",
			cfg:  config.Storage{Backend: config.BackendFile, Files: config.Files{Dir: t.TempDir()}},
		},
		{
			name: "file backend name is case insensitive",
			cfg:  config.Storage{Backend: " FILE ", Files: config.Files{Dir: t.TempDir()}},
		},
		{
			name: "http",
			cfg:  config.Storage{Backend: config.BackendHTTP, HTTP: config.HTTP{BaseURL: "localhost:8080"}},
		},
		{
			name:    "unknown",
			cfg:     config.Storage{Backend: "s3"},
			wantErr: store.ErrUnknownBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs, err := NewBlobStore(context.Background(), tt.cfg, logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, blobs)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, blobs)
			assert.NoError(t, blobs.Close())
		})
	}
}

func TestNewBlobStore_HTTPWithoutAddress(t *testing.T) {
	_, err := NewBlobStore(context.Background(), config.Storage{Backend: config.BackendHTTP}, logger.Nop())
	assert.Error(t, err)
}
