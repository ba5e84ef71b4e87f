// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/migrations"
)

var (
	dollar   = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	question = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func Test_buildSelectBlobQuery(t *testing.T) {
	query, args, err := buildSelectBlobQuery(dollar, "vault/data")
	require.NoError(t, err)

	assert.Equal(t, "SELECT data FROM blobs WHERE identity = $1", query)
	assert.Equal(t, []any{"vault/data"}, args)
}

func Test_buildUpsertBlobQuery(t *testing.T) {
	for name, b := range map[string]sq.StatementBuilderType{"$": dollar, "?": question} {
		t.Run(name, func(t *testing.T) {
			query, args, err := buildUpsertBlobQuery(b, "data", []byte{0xde, 0xad})
			require.NoError(t, err)

			q := strings.ToLower(query)
			require.Contains(t, q, "insert into blobs (identity,data)")
			require.Contains(t, q, "on conflict (identity) do update set data = excluded.data")
			require.Contains(t, query, name)
			assert.Equal(t, []any{"data", []byte{0xde, 0xad}}, args)
		})
	}
}

func Test_buildDeleteBlobQuery(t *testing.T) {
	query, args, err := buildDeleteBlobQuery(question, "data")
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM blobs WHERE identity = ?", query)
	assert.Equal(t, []any{"data"}, args)
}

func Test_newDB_PlaceholderPerDialect(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{migrations.DialectPostgres, "SELECT data FROM blobs WHERE identity = $1"},
		{migrations.DialectSQLite, "SELECT data FROM blobs WHERE identity = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			db := newDB(nil, tt.dialect, nil, logger.Nop())

			query, _, err := buildSelectBlobQuery(db.builder, "vault")
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
		})
	}
}
