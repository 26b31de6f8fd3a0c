package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, "NOT_FOUND", "no such pokemon")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "no such pokemon", resp.Error.Message)
	assert.Empty(t, resp.Error.Detail)
}

func TestWriteErrorDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorDetail(rec, http.StatusInternalServerError, "COUNT_FAILED", "Failed to count table", "pokemon_moves")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pokemon_moves", resp.Error.Detail)
}

func TestWriteJSONHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, []byte(`[{"id":1}]`), `W/"abc"`, time.Minute, false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `W/"abc"`, rec.Header().Get("ETag"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, "public, max-age=60, stale-while-revalidate=30", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `[{"id":1}]`, rec.Body.String())
}

func TestWriteJSONCacheHit(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, []byte(`{}`), `W/"abc"`, time.Minute, true)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestWriteNotModified(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNotModified(rec, `W/"abc"`)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Equal(t, `W/"abc"`, rec.Header().Get("ETag"))
	assert.Empty(t, rec.Body.String())
}

func TestWriteJSONObject(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONObject(rec, http.StatusOK, map[string]int{"pokemon": 151})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pokemon":151}`, rec.Body.String())
}
