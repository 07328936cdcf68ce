package db

import (
	"context"
	_ "embed"
)

//go:embed schema.sql
var schemaSQL string

// Migrate applies the schema. Statements are idempotent, so running it on
// every startup is safe.
func Migrate(ctx context.Context, q Querier) error {
	_, err := q.Exec(ctx, schemaSQL)
	return err
}
