// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-secure-data/internal/crypto"
	"github.com/MKhiriev/go-secure-data/internal/document"
)

// validate checks that the merged [StructuredConfig] is usable before
// anything is started. Each group reports its own sentinel error.
func (cfg *StructuredConfig) validate() error {
	if _, err := cfg.Crypto.Spec(); err != nil {
		return err
	}
	if _, err := cfg.Crypto.Mode(); err != nil {
		return err
	}

	if err := cfg.Storage.validate(); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}
	if cfg.Server.TokenSignKey != "" && (cfg.Server.TokenIssuer == "" || cfg.Server.TokenDuration <= 0) {
		return fmt.Errorf("%w: token issuer and duration are required with a sign key", ErrInvalidServerConfigs)
	}

	if cfg.Workers.SaveWorkers < 1 || cfg.Workers.AutosaveInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (s Storage) validate() error {
	switch s.Backend {
	case BackendFile:
		if s.Files.Dir == "" {
			return fmt.Errorf("%w: file backend needs a directory", ErrInvalidStorageConfigs)
		}
	case BackendSQLite, BackendPostgres:
		if s.DB.DSN == "" {
			return fmt.Errorf("%w: %s backend needs a DSN", ErrInvalidStorageConfigs, s.Backend)
		}
	case BackendHTTP:
		u, err := url.Parse(s.HTTP.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: http backend needs an absolute base URL", ErrInvalidStorageConfigs)
		}
		if s.HTTP.RequestTimeout <= 0 || s.HTTP.MaxRetries < 0 {
			return fmt.Errorf("%w: invalid http timeout or retries", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, s.Backend)
	}

	return nil
}

// Spec resolves the profile and the iteration override into an algorithm spec.
func (c Crypto) Spec() (crypto.Spec, error) {
	spec, ok := crypto.SpecForProfile(c.Profile)
	if !ok {
		return crypto.Spec{}, fmt.Errorf("%w: unknown profile %q", ErrInvalidCryptoConfigs, c.Profile)
	}

	if c.Iterations < 0 {
		return crypto.Spec{}, fmt.Errorf("%w: negative iterations", ErrInvalidCryptoConfigs)
	}
	if c.Iterations > 0 {
		spec = spec.WithIterations(c.Iterations)
	}

	return spec, nil
}

// Mode parses LoadMode.
func (c Crypto) Mode() (document.LoadMode, error) {
	mode, err := document.ParseLoadMode(c.LoadMode)
	if err != nil {
		return mode, fmt.Errorf("%w: %w", ErrInvalidCryptoConfigs, err)
	}
	return mode, nil
}
