// Package silver implements the silver-stage flattener: one raw record per
// pokemon (id, name, and a semi-structured JSON payload) becomes one base row
// of scalar attributes plus one detail row per nested type, ability, stat,
// and move.
package silver

// RawRecord is one bronze-layer row. Payload is the raw JSON blob as stored.
type RawRecord struct {
	ID      int
	Name    string
	Payload []byte
}

// ParsedPayload is the decoded form of RawRecord.Payload. Scalars are nil
// when absent or mistyped; the four sequences are empty when absent.
type ParsedPayload struct {
	Height         *int
	Weight         *int
	BaseExperience *int

	Types     []TypeEntry
	Stats     []StatEntry
	Abilities []AbilityEntry
	Moves     []MoveEntry
}

type TypeEntry struct {
	Slot     *int
	TypeName *string
}

type StatEntry struct {
	BaseStat *int
	Effort   *int
	StatName *string
}

type AbilityEntry struct {
	IsHidden    *bool
	Slot        *int
	AbilityName *string
}

type MoveEntry struct {
	MoveName *string
}

// --------------------------------------------------------------------------
// Output rows — one struct per silver table
// --------------------------------------------------------------------------

// BaseRow holds the scalar attributes of one pokemon. Exactly one per input
// record.
type BaseRow struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Height         *int   `json:"height"`
	Weight         *int   `json:"weight"`
	BaseExperience *int   `json:"base_experience"`
}

// TypeRow is one (pokemon, type) pair.
type TypeRow struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	TypeName *string `json:"type_name"`
}

// AbilityRow is one (pokemon, ability) pair.
type AbilityRow struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	AbilityName *string `json:"ability_name"`
	IsHidden    *bool   `json:"is_hidden"`
}

// StatRow is one (pokemon, stat) pair. StatValue is the stat's base value.
type StatRow struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	StatName  *string `json:"stat_name"`
	StatValue *int    `json:"stat_value"`
}

// MoveRow is one (pokemon, move) pair.
type MoveRow struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	MoveName *string `json:"move_name"`
}

// Tables holds the five flattened outputs of one run. Detail rows always
// reference a base row with the same (id, name).
type Tables struct {
	Base      []BaseRow
	Types     []TypeRow
	Abilities []AbilityRow
	Stats     []StatRow
	Moves     []MoveRow
}
