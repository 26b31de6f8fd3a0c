// Package db provides a pgxpool-based connection pool with prepared statement
// registration, health checking, and embedded schema migrations.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunarbyte/pokelake/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API and silver
// layers use. Prepared statements eliminate parse overhead on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// API: table counts
		"count_" + config.RawPokemonTable:       "SELECT count(*) FROM " + config.RawPokemonTable,
		"count_" + config.PokemonTable:          "SELECT count(*) FROM " + config.PokemonTable,
		"count_" + config.PokemonTypesTable:     "SELECT count(*) FROM " + config.PokemonTypesTable,
		"count_" + config.PokemonAbilitiesTable: "SELECT count(*) FROM " + config.PokemonAbilitiesTable,
		"count_" + config.PokemonStatsTable:     "SELECT count(*) FROM " + config.PokemonStatsTable,
		"count_" + config.PokemonMovesTable:     "SELECT count(*) FROM " + config.PokemonMovesTable,

		// API: table previews (Postgres returns complete JSON)
		"preview_" + config.PokemonTable:          "SELECT json_agg(row_to_json(t)) FROM (SELECT * FROM " + config.PokemonTable + " ORDER BY id LIMIT $1) t",
		"preview_" + config.PokemonTypesTable:     "SELECT json_agg(row_to_json(t)) FROM (SELECT * FROM " + config.PokemonTypesTable + " ORDER BY id LIMIT $1) t",
		"preview_" + config.PokemonAbilitiesTable: "SELECT json_agg(row_to_json(t)) FROM (SELECT * FROM " + config.PokemonAbilitiesTable + " ORDER BY id LIMIT $1) t",
		"preview_" + config.PokemonStatsTable:     "SELECT json_agg(row_to_json(t)) FROM (SELECT * FROM " + config.PokemonStatsTable + " ORDER BY id LIMIT $1) t",
		"preview_" + config.PokemonMovesTable:     "SELECT json_agg(row_to_json(t)) FROM (SELECT * FROM " + config.PokemonMovesTable + " ORDER BY id LIMIT $1) t",

		// API: one pokemon with its detail rows as a single JSON document.
		// NULL when the id has no base row, so the handler can 404.
		"api_pokemon_profile": `SELECT CASE WHEN EXISTS (SELECT 1 FROM ` + config.PokemonTable + ` WHERE id = $1) THEN json_build_object(
			'base', (SELECT row_to_json(p) FROM ` + config.PokemonTable + ` p WHERE p.id = $1),
			'types', COALESCE((SELECT json_agg(row_to_json(t)) FROM ` + config.PokemonTypesTable + ` t WHERE t.id = $1), '[]'::json),
			'abilities', COALESCE((SELECT json_agg(row_to_json(a)) FROM ` + config.PokemonAbilitiesTable + ` a WHERE a.id = $1), '[]'::json),
			'stats', COALESCE((SELECT json_agg(row_to_json(s)) FROM ` + config.PokemonStatsTable + ` s WHERE s.id = $1), '[]'::json),
			'moves', COALESCE((SELECT json_agg(row_to_json(m)) FROM ` + config.PokemonMovesTable + ` m WHERE m.id = $1), '[]'::json)
		) END`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
