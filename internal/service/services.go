package service

import (
	"github.com/MKhiriev/go-secure-data/internal/config"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/store"
	"github.com/MKhiriev/go-secure-data/models"
)

// Services groups the blobd services consumed by the HTTP handler.
type Services struct {
	AuthService    AuthService
	BlobService    BlobService
	AppInfoService AppInfoService
}

func NewServices(blobs store.BlobStore, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(cfg.Server, logger),
		BlobService:    NewBlobService(blobs, logger),
		AppInfoService: appInfo,
	}, nil
}
