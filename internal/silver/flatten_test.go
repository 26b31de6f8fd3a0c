package silver

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

const bulbasaurPayload = `{
	"height": 7,
	"weight": 69,
	"types": [
		{"slot": 1, "type": {"name": "grass"}},
		{"slot": 2, "type": {"name": "poison"}}
	],
	"stats": [],
	"abilities": [],
	"moves": []
}`

func TestFlattenBulbasaur(t *testing.T) {
	records := []RawRecord{{ID: 1, Name: "bulbasaur", Payload: []byte(bulbasaurPayload)}}

	result := Flatten(records)
	tables := result.Tables

	require.Len(t, tables.Base, 1)
	assert.Equal(t, BaseRow{
		ID:     1,
		Name:   "bulbasaur",
		Height: intPtr(7),
		Weight: intPtr(69),
	}, tables.Base[0])

	require.Len(t, tables.Types, 2)
	assert.Equal(t, TypeRow{ID: 1, Name: "bulbasaur", TypeName: strPtr("grass")}, tables.Types[0])
	assert.Equal(t, TypeRow{ID: 1, Name: "bulbasaur", TypeName: strPtr("poison")}, tables.Types[1])

	assert.Empty(t, tables.Stats)
	assert.Empty(t, tables.Abilities)
	assert.Empty(t, tables.Moves)
	assert.Zero(t, result.MalformedPayloads)
}

func TestFlattenBaseRowPerRecord(t *testing.T) {
	var records []RawRecord
	for i := 1; i <= 25; i++ {
		records = append(records, RawRecord{
			ID:      i,
			Name:    fmt.Sprintf("mon-%d", i),
			Payload: []byte(`{"height": 1}`),
		})
	}

	tables := Flatten(records).Tables

	require.Len(t, tables.Base, len(records))
	seen := make(map[int]bool)
	for i, row := range tables.Base {
		assert.False(t, seen[row.ID], "duplicate base id %d", row.ID)
		seen[row.ID] = true
		assert.Equal(t, records[i].ID, row.ID)
		assert.Equal(t, records[i].Name, row.Name)
	}
}

func TestFlattenExplodePreservesCount(t *testing.T) {
	payload := `{"moves": [
		{"move": {"name": "tackle"}},
		{"move": {"name": "growl"}},
		{"move": {"name": "vine-whip"}}
	]}`
	records := []RawRecord{{ID: 1, Name: "bulbasaur", Payload: []byte(payload)}}

	tables := Flatten(records).Tables
	assert.Len(t, tables.Moves, 3)

	// Empty array yields zero rows, not one null-filled row.
	empty := Flatten([]RawRecord{{ID: 2, Name: "x", Payload: []byte(`{"moves": []}`)}}).Tables
	assert.Empty(t, empty.Moves)
}

func TestFlattenPreservesStatOrder(t *testing.T) {
	payload := `{"stats": [
		{"base_stat": 45, "effort": 0, "stat": {"name": "hp"}},
		{"base_stat": 49, "effort": 0, "stat": {"name": "attack"}},
		{"base_stat": 49, "effort": 1, "stat": {"name": "defense"}}
	]}`
	records := []RawRecord{{ID: 1, Name: "bulbasaur", Payload: []byte(payload)}}

	tables := Flatten(records).Tables
	require.Len(t, tables.Stats, 3)
	assert.Equal(t, "hp", *tables.Stats[0].StatName)
	assert.Equal(t, 45, *tables.Stats[0].StatValue)
	assert.Equal(t, "attack", *tables.Stats[1].StatName)
	assert.Equal(t, "defense", *tables.Stats[2].StatName)
}

func TestFlattenNullTolerance(t *testing.T) {
	// Weight omitted entirely: base row carries a null weight, batch accepted.
	records := []RawRecord{{ID: 1, Name: "haunter", Payload: []byte(`{"height": 16}`)}}

	result := Flatten(records)
	require.Len(t, result.Tables.Base, 1)
	assert.Equal(t, intPtr(16), result.Tables.Base[0].Height)
	assert.Nil(t, result.Tables.Base[0].Weight)
	assert.Nil(t, result.Tables.Base[0].BaseExperience)
	assert.Zero(t, result.MalformedPayloads)
}

func TestFlattenMalformedPayloadIsolation(t *testing.T) {
	records := []RawRecord{
		{ID: 1, Name: "bulbasaur", Payload: []byte(bulbasaurPayload)},
		{ID: 2, Name: "ivysaur", Payload: []byte(`{{{ not json`)},
		{ID: 3, Name: "venusaur", Payload: []byte(`{"height": 20, "types": [{"slot": 1, "type": {"name": "grass"}}]}`)},
	}

	result := Flatten(records)
	tables := result.Tables

	// All three records survive; record 2 degrades to null fields.
	require.Len(t, tables.Base, 3)
	assert.Equal(t, 2, tables.Base[1].ID)
	assert.Equal(t, "ivysaur", tables.Base[1].Name)
	assert.Nil(t, tables.Base[1].Height)
	assert.Nil(t, tables.Base[1].Weight)

	assert.Equal(t, 1, result.MalformedPayloads)

	// Explode rows for records 1 and 3 are unaffected.
	require.Len(t, tables.Types, 3)
	assert.Equal(t, 1, tables.Types[0].ID)
	assert.Equal(t, 1, tables.Types[1].ID)
	assert.Equal(t, 3, tables.Types[2].ID)
	assert.Equal(t, "grass", *tables.Types[2].TypeName)
}

func TestFlattenAbilities(t *testing.T) {
	payload := `{"abilities": [
		{"is_hidden": false, "slot": 1, "ability": {"name": "overgrow"}},
		{"is_hidden": true, "slot": 3, "ability": {"name": "chlorophyll"}}
	]}`
	records := []RawRecord{{ID: 1, Name: "bulbasaur", Payload: []byte(payload)}}

	tables := Flatten(records).Tables
	require.Len(t, tables.Abilities, 2)
	assert.Equal(t, "overgrow", *tables.Abilities[0].AbilityName)
	assert.False(t, *tables.Abilities[0].IsHidden)
	assert.Equal(t, "chlorophyll", *tables.Abilities[1].AbilityName)
	assert.True(t, *tables.Abilities[1].IsHidden)
}

func TestFlattenDuplicateIDsKept(t *testing.T) {
	// Deduplication is a caller policy, not done here.
	records := []RawRecord{
		{ID: 7, Name: "squirtle", Payload: []byte(`{"height": 5}`)},
		{ID: 7, Name: "squirtle", Payload: []byte(`{"height": 5}`)},
	}

	tables := Flatten(records).Tables
	assert.Len(t, tables.Base, 2)
}

func TestFlattenWorkersMatchesSequential(t *testing.T) {
	var records []RawRecord
	for i := 1; i <= 100; i++ {
		payload := fmt.Sprintf(
			`{"height": %d, "types": [{"slot": 1, "type": {"name": "type-%d"}}], "moves": [{"move": {"name": "m1"}}, {"move": {"name": "m2"}}]}`,
			i, i)
		records = append(records, RawRecord{ID: i, Name: fmt.Sprintf("mon-%d", i), Payload: []byte(payload)})
	}
	// A malformed record in the middle must be counted identically.
	records[49].Payload = []byte(`broken`)

	sequential := Flatten(records)
	for _, workers := range []int{2, 4, 16} {
		parallel := FlattenWorkers(records, workers)
		assert.Equal(t, sequential, parallel, "workers=%d", workers)
	}
}

func TestParseMalformedYieldsAllNull(t *testing.T) {
	parsed, ok := Parse([]byte(`not json at all`))
	assert.False(t, ok)
	assert.Nil(t, parsed.Height)
	assert.Nil(t, parsed.Weight)
	assert.Nil(t, parsed.BaseExperience)
	assert.Empty(t, parsed.Types)
	assert.Empty(t, parsed.Stats)
	assert.Empty(t, parsed.Abilities)
	assert.Empty(t, parsed.Moves)
}
