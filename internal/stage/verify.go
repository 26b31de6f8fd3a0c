package stage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunarbyte/pokelake/internal/config"
)

// TableCheck is the verification outcome for one silver detail table.
type TableCheck struct {
	Table   string
	Rows    int
	Orphans int // detail rows whose (id, name) has no base row
}

// VerifyResult summarizes a post-run consistency check of the silver layer.
type VerifyResult struct {
	BaseRows int
	Details  []TableCheck
}

// OK reports whether every detail row references a base row.
func (v *VerifyResult) OK() bool {
	for _, d := range v.Details {
		if d.Orphans > 0 {
			return false
		}
	}
	return true
}

// Summary returns a human-readable summary of the verification.
func (v *VerifyResult) Summary() string {
	s := fmt.Sprintf("base=%d", v.BaseRows)
	for _, d := range v.Details {
		s += fmt.Sprintf(" %s=%d/orphans=%d", d.Table, d.Rows, d.Orphans)
	}
	return s
}

// Verify reads back the silver tables and checks that every detail row's
// (id, name) pair matches a base row — the flattening is a strict
// decomposition, so orphans mean a corrupted or concurrent write.
func Verify(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) (VerifyResult, error) {
	var result VerifyResult

	if err := pool.QueryRow(ctx, "count_"+config.PokemonTable).Scan(&result.BaseRows); err != nil {
		return result, fmt.Errorf("count %s: %w", config.PokemonTable, err)
	}

	detailTables := []string{
		config.PokemonTypesTable,
		config.PokemonAbilitiesTable,
		config.PokemonStatsTable,
		config.PokemonMovesTable,
	}
	for _, table := range detailTables {
		check := TableCheck{Table: table}
		if err := pool.QueryRow(ctx, "count_"+table).Scan(&check.Rows); err != nil {
			return result, fmt.Errorf("count %s: %w", table, err)
		}
		err := pool.QueryRow(ctx,
			"SELECT count(*) FROM "+table+" d LEFT JOIN "+config.PokemonTable+
				" p ON p.id = d.id AND p.name = d.name WHERE p.id IS NULL").Scan(&check.Orphans)
		if err != nil {
			return result, fmt.Errorf("orphan check %s: %w", table, err)
		}
		result.Details = append(result.Details, check)
		logger.Info("Verified table", "table", table, "rows", check.Rows, "orphans", check.Orphans)
	}

	return result, nil
}
