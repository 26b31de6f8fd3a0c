// Package bronze reads raw records from the bronze layer.
package bronze

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunarbyte/pokelake/internal/silver"
)

// ErrSchemaMismatch reports a source table that lacks one of the required
// id/name/payload columns. It is detected before any row is read.
var ErrSchemaMismatch = errors.New("bronze schema mismatch")

// requiredColumns are the columns the silver stage needs from the source.
var requiredColumns = []string{"id", "name", "payload"}

// Read fully materializes the raw batch from the given source table. The
// whole table is read and the connection released before the caller starts
// transforming; no cursor state is retained.
func Read(ctx context.Context, pool *pgxpool.Pool, table string) ([]silver.RawRecord, error) {
	if err := checkSchema(ctx, pool, table); err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx,
		"SELECT id, name, payload FROM "+table+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	defer rows.Close()

	var records []silver.RawRecord
	for rows.Next() {
		var rec silver.RawRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Payload); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return records, nil
}

// checkSchema verifies the source table carries the required columns so a
// missing column fails the batch up front, not mid-stream.
func checkSchema(ctx context.Context, pool *pgxpool.Pool, table string) error {
	rows, err := pool.Query(ctx,
		"SELECT column_name FROM information_schema.columns WHERE table_name = $1", table)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return fmt.Errorf("inspect %s: %w", table, err)
		}
		present[col] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}

	if len(present) == 0 {
		return fmt.Errorf("%w: table %s does not exist", ErrSchemaMismatch, table)
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return fmt.Errorf("%w: table %s is missing column %q", ErrSchemaMismatch, table, col)
		}
	}
	return nil
}
