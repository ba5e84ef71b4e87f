package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	blobsTable = "blobs"

	upsertBlobSuffix = "ON CONFLICT (identity) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP"
)

func buildSelectBlobQuery(b sq.StatementBuilderType, identity string) (string, []any, error) {
	query, args, err := b.
		Select("data").
		From(blobsTable).
		Where(sq.Eq{"identity": identity}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertBlobQuery(b sq.StatementBuilderType, identity string, data []byte) (string, []any, error) {
	query, args, err := b.
		Insert(blobsTable).
		Columns("identity", "data").
		Values(identity, data).
		Suffix(upsertBlobSuffix).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteBlobQuery(b sq.StatementBuilderType, identity string) (string, []any, error) {
	query, args, err := b.
		Delete(blobsTable).
		Where(sq.Eq{"identity": identity}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
