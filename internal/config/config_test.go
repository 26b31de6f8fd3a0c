package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("POKELAKE_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pokelake")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/pokelake", cfg.DatabaseURL)
	assert.Equal(t, 2, cfg.DBPoolMinConns)
	assert.Equal(t, 10, cfg.DBPoolMaxConns)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, RawPokemonTable, cfg.BronzeTable)
	assert.Equal(t, 1, cfg.SilverWorkers)
	assert.True(t, cfg.RateLimitEnabled)
	assert.True(t, cfg.CacheEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("POKELAKE_DATABASE_URL", "postgres://primary/pokelake")
	t.Setenv("DATABASE_URL", "postgres://fallback/ignored")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SILVER_WORKERS", "8")
	t.Setenv("BRONZE_TABLE", "raw_pokemon_staging")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://primary/pokelake", cfg.DatabaseURL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 8, cfg.SilverWorkers)
	assert.Equal(t, "raw_pokemon_staging", cfg.BronzeTable)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
}

func TestEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/pokelake")
	t.Setenv("DB_POOL_MAX_CONNS", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.DBPoolMaxConns)
}

func TestSilverTablesOrder(t *testing.T) {
	assert.Equal(t, []string{
		PokemonTable,
		PokemonTypesTable,
		PokemonAbilitiesTable,
		PokemonStatsTable,
		PokemonMovesTable,
	}, SilverTables)
}
