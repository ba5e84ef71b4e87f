package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-secure-data/internal/config"
	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/utils"
	"github.com/MKhiriev/go-secure-data/models"
)

type authService struct {
	tokenSignKey string

	tokenIssuer string

	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(cfg config.Server, logger *logger.Logger) AuthService {
	return &authService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

func (a *authService) Enabled() bool {
	return a.tokenSignKey != ""
}

func (a *authService) CreateToken(ctx context.Context, client string) (models.Token, error) {
	if client == "" {
		return models.Token{}, ErrInvalidDataProvided
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, client, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	logger.FromContext(ctx).Info().Str("func", "*authService.CreateToken").Str("client", client).Msg("token issued")
	return token, nil
}

func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*authService.ParseToken").Msg("token rejected")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return token, nil
}
