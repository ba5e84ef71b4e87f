package service

import (
	"context"

	"github.com/MKhiriev/go-secure-data/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// BlobService serves blobd's blob endpoints. Identities are scoped to the
// client found in ctx, if any.
type BlobService interface {
	Get(ctx context.Context, identity string) ([]byte, error)
	Put(ctx context.Context, identity string, data []byte) error
	Delete(ctx context.Context, identity string) error
}

// AuthService issues and verifies client bearer tokens.
type AuthService interface {
	// Enabled reports whether a sign key is configured. When it is not,
	// blobd serves every request unauthenticated.
	Enabled() bool
	CreateToken(ctx context.Context, client string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.VersionResponse
}
