// Package payload implements schema-tolerant decoding of semi-structured
// JSON payloads. A Schema is a declarative description of the fields to
// extract; Decode walks the raw document against it and never fails on a
// missing or mistyped field — the field simply decodes to null. New fields
// are added by extending the schema value, not by writing new parse code.
package payload

// Kind enumerates the value kinds a schema field can declare.
type Kind int

const (
	Int Kind = iota
	String
	Bool
	List
)

// Field declares one extracted field: where it lives in the source document
// (Path, a chain of object keys) and what it is called in the decoded Record.
type Field struct {
	Name string
	Path []string
	Kind Kind
	Elem *Schema // element schema, List fields only
}

// Schema is an ordered set of field declarations.
type Schema struct {
	Fields []Field
}

// Record is the decoded form of one document: field name to decoded value.
// Scalar values are *int / *string / *bool (nil when absent or mistyped);
// List values are []Record (empty when absent or mistyped).
type Record map[string]any

// Int returns the named scalar as *int, or nil.
func (r Record) Int(name string) *int {
	if v, ok := r[name].(*int); ok {
		return v
	}
	return nil
}

// Str returns the named scalar as *string, or nil.
func (r Record) Str(name string) *string {
	if v, ok := r[name].(*string); ok {
		return v
	}
	return nil
}

// Bool returns the named scalar as *bool, or nil.
func (r Record) Bool(name string) *bool {
	if v, ok := r[name].(*bool); ok {
		return v
	}
	return nil
}

// List returns the named sequence, or nil.
func (r Record) List(name string) []Record {
	if v, ok := r[name].([]Record); ok {
		return v
	}
	return nil
}
