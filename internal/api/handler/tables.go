package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lunarbyte/pokelake/internal/api/respond"
	"github.com/lunarbyte/pokelake/internal/cache"
	"github.com/lunarbyte/pokelake/internal/config"
)

const (
	defaultPreviewLimit = 20
	maxPreviewLimit     = 200
)

// previewable guards the {table} path parameter against arbitrary
// identifiers; only the five silver tables can be previewed.
var previewable = func() map[string]bool {
	m := make(map[string]bool, len(config.SilverTables))
	for _, t := range config.SilverTables {
		m[t] = true
	}
	return m
}()

// ListTables returns row counts for the bronze source and all silver tables.
// @Summary List lakehouse tables
// @Description Returns the bronze and silver tables with their current row counts.
// @Tags tables
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /tables [get]
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables := append([]string{config.RawPokemonTable}, config.SilverTables...)

	counts := make(map[string]int64, len(tables))
	for _, table := range tables {
		var n int64
		if err := h.pool.QueryRow(r.Context(), "count_"+table).Scan(&n); err != nil {
			respond.WriteErrorDetail(w, http.StatusInternalServerError,
				"COUNT_FAILED", "Failed to count table", table)
			return
		}
		counts[table] = n
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"bronze": map[string]int64{config.RawPokemonTable: counts[config.RawPokemonTable]},
		"silver": func() map[string]int64 {
			m := make(map[string]int64, len(config.SilverTables))
			for _, t := range config.SilverTables {
				m[t] = counts[t]
			}
			return m
		}(),
	})
}

// PreviewTable returns the first rows of one silver table.
// @Summary Preview a silver table
// @Description Returns up to `limit` rows of the named silver table, ordered by id. Served as JSON passthrough from Postgres.
// @Tags tables
// @Produce json
// @Param table path string true "Silver table name" Enums(pokemon, pokemon_types, pokemon_abilities, pokemon_stats, pokemon_moves)
// @Param limit query int false "Row limit (default 20, max 200)"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /tables/{table} [get]
func (h *Handler) PreviewTable(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	if !previewable[table] {
		respond.WriteError(w, http.StatusNotFound, "UNKNOWN_TABLE",
			"Not a silver table: "+table)
		return
	}

	limit := defaultPreviewLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respond.WriteError(w, http.StatusBadRequest, "BAD_LIMIT",
				"limit must be a positive integer")
			return
		}
		if n > maxPreviewLimit {
			n = maxPreviewLimit
		}
		limit = n
	}

	cacheKey := fmt.Sprintf("preview:%s:%d", table, limit)
	ttl := cache.TTLPreview

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var raw []byte
	err := h.pool.QueryRow(r.Context(), "preview_"+table, limit).Scan(&raw)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusInternalServerError,
			"PREVIEW_FAILED", "Failed to preview table", table)
		return
	}
	if raw == nil {
		raw = []byte("[]")
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}

// GetPokemon returns one pokemon's base row plus all its detail rows.
// @Summary Get one pokemon
// @Description Returns the base row and the type/ability/stat/move detail rows for one pokemon id, as a single JSON document built by Postgres.
// @Tags pokemon
// @Produce json
// @Param id path int true "Pokemon id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /pokemon/{id} [get]
func (h *Handler) GetPokemon(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, "BAD_ID", "id must be an integer")
		return
	}

	cacheKey := fmt.Sprintf("pokemon:%d", id)
	ttl := cache.TTLProfile

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	var raw []byte
	if err := h.pool.QueryRow(r.Context(), "api_pokemon_profile", id).Scan(&raw); err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED",
			"Failed to load pokemon")
		return
	}
	if raw == nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("No pokemon with id %d", id))
		return
	}

	etag := h.cache.Set(cacheKey, raw, ttl)
	respond.WriteJSON(w, raw, etag, ttl, false)
}
