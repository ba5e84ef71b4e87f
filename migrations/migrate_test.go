// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(".*").WillReturnError(errors.New("connection refused"))
	mock.ExpectQuery(".*").WillReturnError(errors.New("connection refused"))

	err = Migrate(db, DialectPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, DialectSQLite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, "mysql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dialect")
}

func TestEmbeddedMigrations(t *testing.T) {
	for dialect, dir := range dirs {
		t.Run(dialect, func(t *testing.T) {
			entries, err := fs.ReadDir(embedMigrations, dir)
			require.NoError(t, err)
			require.NotEmpty(t, entries)

			body, err := fs.ReadFile(embedMigrations, dir+"/"+entries[0].Name())
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(body), "-- +goose Up"))
			assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS blobs")
		})
	}
}
