package silver

import (
	"sync"

	"github.com/lunarbyte/pokelake/internal/payload"
)

// pokemonSchema declares the payload fields the silver stage extracts.
// The PokeAPI nests the interesting names one object deep (type.name,
// stat.name, ability.name, move.name); everything else in the payload is
// ignored.
var pokemonSchema = payload.Schema{Fields: []payload.Field{
	{Name: "height", Path: []string{"height"}, Kind: payload.Int},
	{Name: "weight", Path: []string{"weight"}, Kind: payload.Int},
	{Name: "base_experience", Path: []string{"base_experience"}, Kind: payload.Int},
	{Name: "types", Path: []string{"types"}, Kind: payload.List, Elem: &payload.Schema{Fields: []payload.Field{
		{Name: "slot", Path: []string{"slot"}, Kind: payload.Int},
		{Name: "type_name", Path: []string{"type", "name"}, Kind: payload.String},
	}}},
	{Name: "stats", Path: []string{"stats"}, Kind: payload.List, Elem: &payload.Schema{Fields: []payload.Field{
		{Name: "base_stat", Path: []string{"base_stat"}, Kind: payload.Int},
		{Name: "effort", Path: []string{"effort"}, Kind: payload.Int},
		{Name: "stat_name", Path: []string{"stat", "name"}, Kind: payload.String},
	}}},
	{Name: "abilities", Path: []string{"abilities"}, Kind: payload.List, Elem: &payload.Schema{Fields: []payload.Field{
		{Name: "is_hidden", Path: []string{"is_hidden"}, Kind: payload.Bool},
		{Name: "slot", Path: []string{"slot"}, Kind: payload.Int},
		{Name: "ability_name", Path: []string{"ability", "name"}, Kind: payload.String},
	}}},
	{Name: "moves", Path: []string{"moves"}, Kind: payload.List, Elem: &payload.Schema{Fields: []payload.Field{
		{Name: "move_name", Path: []string{"move", "name"}, Kind: payload.String},
	}}},
}}

// Parse decodes one raw payload. A malformed payload yields a ParsedPayload
// with every field null and ok=false — the record is kept, never dropped.
func Parse(raw []byte) (ParsedPayload, bool) {
	rec, ok := payload.Decode(pokemonSchema, raw)

	parsed := ParsedPayload{
		Height:         rec.Int("height"),
		Weight:         rec.Int("weight"),
		BaseExperience: rec.Int("base_experience"),
	}
	for _, t := range rec.List("types") {
		parsed.Types = append(parsed.Types, TypeEntry{
			Slot:     t.Int("slot"),
			TypeName: t.Str("type_name"),
		})
	}
	for _, s := range rec.List("stats") {
		parsed.Stats = append(parsed.Stats, StatEntry{
			BaseStat: s.Int("base_stat"),
			Effort:   s.Int("effort"),
			StatName: s.Str("stat_name"),
		})
	}
	for _, a := range rec.List("abilities") {
		parsed.Abilities = append(parsed.Abilities, AbilityEntry{
			IsHidden:    a.Bool("is_hidden"),
			Slot:        a.Int("slot"),
			AbilityName: a.Str("ability_name"),
		})
	}
	for _, m := range rec.List("moves") {
		parsed.Moves = append(parsed.Moves, MoveEntry{
			MoveName: m.Str("move_name"),
		})
	}
	return parsed, ok
}

// ToBase projects the scalar payload fields onto one base row.
func ToBase(id int, name string, parsed ParsedPayload) BaseRow {
	return BaseRow{
		ID:             id,
		Name:           name,
		Height:         parsed.Height,
		Weight:         parsed.Weight,
		BaseExperience: parsed.BaseExperience,
	}
}

// explode produces one output row per element, preserving element order.
// An empty input yields zero rows, not one null-filled row.
func explode[E, R any](items []E, project func(E) R) []R {
	if len(items) == 0 {
		return nil
	}
	rows := make([]R, 0, len(items))
	for _, item := range items {
		rows = append(rows, project(item))
	}
	return rows
}

// ExplodeTypes returns one TypeRow per element of parsed.Types.
func ExplodeTypes(id int, name string, parsed ParsedPayload) []TypeRow {
	return explode(parsed.Types, func(t TypeEntry) TypeRow {
		return TypeRow{ID: id, Name: name, TypeName: t.TypeName}
	})
}

// ExplodeAbilities returns one AbilityRow per element of parsed.Abilities.
func ExplodeAbilities(id int, name string, parsed ParsedPayload) []AbilityRow {
	return explode(parsed.Abilities, func(a AbilityEntry) AbilityRow {
		return AbilityRow{ID: id, Name: name, AbilityName: a.AbilityName, IsHidden: a.IsHidden}
	})
}

// ExplodeStats returns one StatRow per element of parsed.Stats.
func ExplodeStats(id int, name string, parsed ParsedPayload) []StatRow {
	return explode(parsed.Stats, func(s StatEntry) StatRow {
		return StatRow{ID: id, Name: name, StatName: s.StatName, StatValue: s.BaseStat}
	})
}

// ExplodeMoves returns one MoveRow per element of parsed.Moves.
func ExplodeMoves(id int, name string, parsed ParsedPayload) []MoveRow {
	return explode(parsed.Moves, func(m MoveEntry) MoveRow {
		return MoveRow{ID: id, Name: name, MoveName: m.MoveName}
	})
}

// Result is the outcome of flattening one batch.
type Result struct {
	Tables Tables

	// MalformedPayloads counts records whose payload did not parse as JSON.
	// Those records still produce a base row with null scalars.
	MalformedPayloads int
}

// recordOutput is the per-record flattening, shared by the sequential and
// parallel paths.
type recordOutput struct {
	base      BaseRow
	types     []TypeRow
	abilities []AbilityRow
	stats     []StatRow
	moves     []MoveRow
	malformed bool
}

func flattenOne(rec RawRecord) recordOutput {
	parsed, ok := Parse(rec.Payload)
	return recordOutput{
		base:      ToBase(rec.ID, rec.Name, parsed),
		types:     ExplodeTypes(rec.ID, rec.Name, parsed),
		abilities: ExplodeAbilities(rec.ID, rec.Name, parsed),
		stats:     ExplodeStats(rec.ID, rec.Name, parsed),
		moves:     ExplodeMoves(rec.ID, rec.Name, parsed),
		malformed: !ok,
	}
}

// Flatten transforms a batch of raw records into the five silver tables.
// The batch output is the concatenation, in input order, of each record's
// per-record output; within one record, exploded rows preserve payload array
// order. Duplicate ids are not deduplicated here — that is a caller policy.
func Flatten(records []RawRecord) Result {
	return FlattenWorkers(records, 1)
}

// FlattenWorkers is Flatten with a bounded worker pool. Each record's
// transformation is independent, so records are processed concurrently and
// merged back in input order. workers < 2 degrades to the sequential path.
func FlattenWorkers(records []RawRecord, workers int) Result {
	outputs := make([]recordOutput, len(records))

	if workers < 2 || len(records) < 2 {
		for i, rec := range records {
			outputs[i] = flattenOne(rec)
		}
	} else {
		if workers > len(records) {
			workers = len(records)
		}
		indexes := make(chan int, len(records))
		for i := range records {
			indexes <- i
		}
		close(indexes)

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					outputs[i] = flattenOne(records[i])
				}
			}()
		}
		wg.Wait()
	}

	var result Result
	result.Tables.Base = make([]BaseRow, 0, len(records))
	for _, out := range outputs {
		result.Tables.Base = append(result.Tables.Base, out.base)
		result.Tables.Types = append(result.Tables.Types, out.types...)
		result.Tables.Abilities = append(result.Tables.Abilities, out.abilities...)
		result.Tables.Stats = append(result.Tables.Stats, out.stats...)
		result.Tables.Moves = append(result.Tables.Moves, out.moves...)
		if out.malformed {
			result.MalformedPayloads++
		}
	}
	return result
}
