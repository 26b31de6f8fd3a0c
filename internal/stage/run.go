package stage

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunarbyte/pokelake/internal/bronze"
	"github.com/lunarbyte/pokelake/internal/silver"
	"github.com/lunarbyte/pokelake/internal/store"
)

// Options control one silver run.
type Options struct {
	// Source is the bronze table to read.
	Source string

	// Workers bounds the flattening worker pool; < 2 runs sequentially.
	Workers int

	// DryRun flattens and reports counts without writing.
	DryRun bool
}

// Run executes the full silver flow: read the raw batch, flatten it into the
// five normalized tables, and overwrite the silver layer. The flatten output
// is fully materialized before any write begins, so a mid-transform failure
// never leaves a partially-written destination. Concurrent runs against the
// same destination are a caller-level race; serialize them externally.
func Run(ctx context.Context, pool *pgxpool.Pool, opts Options, logger *slog.Logger) (RunResult, error) {
	var result RunResult
	result.DryRun = opts.DryRun

	logger.Info("Reading bronze layer", "table", opts.Source)
	records, err := bronze.Read(ctx, pool, opts.Source)
	if err != nil {
		result.AddErrorf("read bronze: %v", err)
		return result, err
	}
	result.RecordsRead = len(records)
	logger.Info("Bronze read complete", "records", len(records))

	flat := silver.FlattenWorkers(records, opts.Workers)
	result.MalformedPayloads = flat.MalformedPayloads
	result.BaseRows = len(flat.Tables.Base)
	result.TypeRows = len(flat.Tables.Types)
	result.AbilityRows = len(flat.Tables.Abilities)
	result.StatRows = len(flat.Tables.Stats)
	result.MoveRows = len(flat.Tables.Moves)

	if flat.MalformedPayloads > 0 {
		logger.Warn("Malformed payloads decoded to null rows",
			"count", flat.MalformedPayloads)
	}
	logger.Info("Flatten complete",
		"base", result.BaseRows, "types", result.TypeRows,
		"abilities", result.AbilityRows, "stats", result.StatRows,
		"moves", result.MoveRows)

	if opts.DryRun {
		logger.Info("Dry run, skipping write")
		return result, nil
	}

	if err := store.Overwrite(ctx, pool, flat.Tables); err != nil {
		result.AddErrorf("write silver: %v", err)
		return result, err
	}
	logger.Info("Silver layer overwritten", "summary", result.Summary())

	return result, nil
}
