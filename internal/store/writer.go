// Package store persists flattened silver tables to Postgres.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunarbyte/pokelake/internal/config"
	"github.com/lunarbyte/pokelake/internal/silver"
)

// Overwrite replaces the contents of all five silver tables with the given
// batch in a single transaction: prior rows are never mixed with new ones,
// and a failed run leaves the previous contents untouched.
func Overwrite(ctx context.Context, pool *pgxpool.Pool, t silver.Tables) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin overwrite: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range config.SilverTables {
		if _, err := tx.Exec(ctx, "TRUNCATE "+table); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}

	if err := copyBase(ctx, tx, t.Base); err != nil {
		return err
	}
	if err := copyTypes(ctx, tx, t.Types); err != nil {
		return err
	}
	if err := copyAbilities(ctx, tx, t.Abilities); err != nil {
		return err
	}
	if err := copyStats(ctx, tx, t.Stats); err != nil {
		return err
	}
	if err := copyMoves(ctx, tx, t.Moves); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit overwrite: %w", err)
	}
	return nil
}

func copyBase(ctx context.Context, tx pgx.Tx, rows []silver.BaseRow) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{config.PokemonTable},
		[]string{"id", "name", "height", "weight", "base_experience"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.ID, r.Name, r.Height, r.Weight, r.BaseExperience}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy %s: %w", config.PokemonTable, err)
	}
	return nil
}

func copyTypes(ctx context.Context, tx pgx.Tx, rows []silver.TypeRow) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{config.PokemonTypesTable},
		[]string{"id", "name", "type_name"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.ID, r.Name, r.TypeName}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy %s: %w", config.PokemonTypesTable, err)
	}
	return nil
}

func copyAbilities(ctx context.Context, tx pgx.Tx, rows []silver.AbilityRow) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{config.PokemonAbilitiesTable},
		[]string{"id", "name", "ability_name", "is_hidden"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.ID, r.Name, r.AbilityName, r.IsHidden}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy %s: %w", config.PokemonAbilitiesTable, err)
	}
	return nil
}

func copyStats(ctx context.Context, tx pgx.Tx, rows []silver.StatRow) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{config.PokemonStatsTable},
		[]string{"id", "name", "stat_name", "stat_value"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.ID, r.Name, r.StatName, r.StatValue}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy %s: %w", config.PokemonStatsTable, err)
	}
	return nil
}

func copyMoves(ctx context.Context, tx pgx.Tx, rows []silver.MoveRow) error {
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{config.PokemonMovesTable},
		[]string{"id", "name", "move_name"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			r := rows[i]
			return []any{r.ID, r.Name, r.MoveName}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy %s: %w", config.PokemonMovesTable, err)
	}
	return nil
}
