// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"path"

	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/store"
	"github.com/MKhiriev/go-secure-data/internal/utils"
)

type blobService struct {
	store store.BlobStore

	logger *logger.Logger
}

// NewBlobService serves blobd requests from blobs. Authenticated clients
// are confined to "<client>/<identity>"; anonymous requests use the
// identity as given.
func NewBlobService(blobs store.BlobStore, logger *logger.Logger) BlobService {
	return &blobService{store: blobs, logger: logger}
}

// scoped validates identity and prefixes it with the client from ctx.
func (s *blobService) scoped(ctx context.Context, identity string) (string, error) {
	key, err := store.CleanIdentity(identity)
	if err != nil {
		return "", err
	}
	if client, ok := utils.GetClientFromContext(ctx); ok {
		return store.CleanIdentity(path.Join(client, key))
	}
	return key, nil
}

func (s *blobService) Get(ctx context.Context, identity string) ([]byte, error) {
	key, err := s.scoped(ctx, identity)
	if err != nil {
		return nil, err
	}

	return s.store.Read(ctx, key)
}

func (s *blobService) Put(ctx context.Context, identity string, data []byte) error {
	key, err := s.scoped(ctx, identity)
	if err != nil {
		return err
	}

	if err = s.store.Write(ctx, key, data); err != nil {
		return err
	}

	logger.FromContext(ctx).Debug().Str("func", "*blobService.Put").Str("identity", key).Int("size", len(data)).Msg("blob stored")
	return nil
}

func (s *blobService) Delete(ctx context.Context, identity string) error {
	key, err := s.scoped(ctx, identity)
	if err != nil {
		return err
	}

	return s.store.Delete(ctx, key)
}
