package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-secure-data/internal/adapter"
	"github.com/MKhiriev/go-secure-data/internal/config"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/store"
)

// NewBlobStore opens the backend named by cfg.Backend. The sqlite and
// postgres backends are migrated before they are returned.
func NewBlobStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (store.BlobStore, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	log.Info().Str("func", "service.NewBlobStore").Str("backend", backend).Msg("opening blob store")

	switch backend {
	case config.BackendFile:
		return store.NewFileBlobStore(cfg.Files.Dir, log)
	case config.BackendSQLite:
		return store.NewSQLiteBlobStore(ctx, cfg.DB.DSN, log)
	case config.BackendPostgres:
		return store.NewPostgresBlobStore(ctx, cfg.DB.DSN, log)
	case config.BackendHTTP:
		return adapter.NewHTTPBlobStore(cfg.HTTP, log)
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnknownBackend, cfg.Backend)
	}
}
