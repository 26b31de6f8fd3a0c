package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{Fields: []Field{
	{Name: "height", Path: []string{"height"}, Kind: Int},
	{Name: "nickname", Path: []string{"nickname"}, Kind: String},
	{Name: "shiny", Path: []string{"shiny"}, Kind: Bool},
	{Name: "type_name", Path: []string{"type", "name"}, Kind: String},
	{Name: "tags", Path: []string{"tags"}, Kind: List, Elem: &Schema{Fields: []Field{
		{Name: "label", Path: []string{"label"}, Kind: String},
	}}},
}}

func TestDecodeFullDocument(t *testing.T) {
	raw := []byte(`{
		"height": 7,
		"nickname": "bulby",
		"shiny": true,
		"type": {"name": "grass"},
		"tags": [{"label": "starter"}, {"label": "kanto"}]
	}`)

	rec, ok := Decode(testSchema, raw)
	require.True(t, ok)

	require.NotNil(t, rec.Int("height"))
	assert.Equal(t, 7, *rec.Int("height"))
	require.NotNil(t, rec.Str("nickname"))
	assert.Equal(t, "bulby", *rec.Str("nickname"))
	require.NotNil(t, rec.Bool("shiny"))
	assert.True(t, *rec.Bool("shiny"))
	require.NotNil(t, rec.Str("type_name"))
	assert.Equal(t, "grass", *rec.Str("type_name"))

	tags := rec.List("tags")
	require.Len(t, tags, 2)
	assert.Equal(t, "starter", *tags[0].Str("label"))
	assert.Equal(t, "kanto", *tags[1].Str("label"))
}

func TestDecodeMissingFieldsAreNull(t *testing.T) {
	rec, ok := Decode(testSchema, []byte(`{"height": 7}`))
	require.True(t, ok)

	assert.NotNil(t, rec.Int("height"))
	assert.Nil(t, rec.Str("nickname"))
	assert.Nil(t, rec.Bool("shiny"))
	assert.Nil(t, rec.Str("type_name"))
	assert.Empty(t, rec.List("tags"))
}

func TestDecodeMistypedFieldsAreNull(t *testing.T) {
	raw := []byte(`{
		"height": "tall",
		"nickname": 42,
		"shiny": "yes",
		"type": "grass",
		"tags": {"label": "not-a-list"}
	}`)

	rec, ok := Decode(testSchema, raw)
	require.True(t, ok)

	assert.Nil(t, rec.Int("height"))
	assert.Nil(t, rec.Str("nickname"))
	assert.Nil(t, rec.Bool("shiny"))
	assert.Nil(t, rec.Str("type_name"))
	assert.Empty(t, rec.List("tags"))
}

func TestDecodeFractionalNumberIsNullInt(t *testing.T) {
	rec, ok := Decode(testSchema, []byte(`{"height": 7.5}`))
	require.True(t, ok)
	assert.Nil(t, rec.Int("height"))
}

func TestDecodeUnknownFieldsIgnored(t *testing.T) {
	rec, ok := Decode(testSchema, []byte(`{"height": 3, "color": "green", "order": 1}`))
	require.True(t, ok)
	assert.Equal(t, 3, *rec.Int("height"))
}

func TestDecodeMalformedJSON(t *testing.T) {
	rec, ok := Decode(testSchema, []byte(`{"height": 7,`))
	assert.False(t, ok)

	assert.Nil(t, rec.Int("height"))
	assert.Nil(t, rec.Str("nickname"))
	assert.Nil(t, rec.Bool("shiny"))
	assert.Empty(t, rec.List("tags"))
}

func TestDecodeNonObjectDocument(t *testing.T) {
	for _, raw := range []string{`[1,2,3]`, `"text"`, `42`, `null`} {
		rec, ok := Decode(testSchema, []byte(raw))
		assert.False(t, ok, "document: %s", raw)
		assert.Nil(t, rec.Int("height"), "document: %s", raw)
	}
}

func TestDecodeListElementOfWrongShape(t *testing.T) {
	// A non-object element decodes to an all-null element so its siblings
	// keep their positions.
	rec, ok := Decode(testSchema, []byte(`{"tags": [{"label": "a"}, 42, {"label": "c"}]}`))
	require.True(t, ok)

	tags := rec.List("tags")
	require.Len(t, tags, 3)
	assert.Equal(t, "a", *tags[0].Str("label"))
	assert.Nil(t, tags[1].Str("label"))
	assert.Equal(t, "c", *tags[2].Str("label"))
}

func TestNullRecord(t *testing.T) {
	rec := NullRecord(testSchema)
	assert.Len(t, rec, len(testSchema.Fields))
	assert.Nil(t, rec.Int("height"))
	assert.Nil(t, rec.Str("nickname"))
	assert.Empty(t, rec.List("tags"))
}
