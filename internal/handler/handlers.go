package handler

import (
	"github.com/MKhiriev/go-secure-data/internal/config"
	"github.com/MKhiriev/go-secure-data/internal/handler/http"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/service"
)

// Handlers groups blobd's transport handlers.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{HTTP: http.NewHandler(services, logger)}, nil
}
