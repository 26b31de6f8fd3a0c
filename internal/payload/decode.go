package payload

import (
	"encoding/json"
	"math"
)

// Decode parses raw JSON against the schema. It never returns an error:
// malformed JSON (or a non-object document) yields a Record with every field
// null and ok=false; a missing or wrong-typed field yields null for that
// field only. Unknown fields in the document are ignored.
func Decode(s Schema, raw []byte) (rec Record, ok bool) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return NullRecord(s), false
	}
	obj, isObj := doc.(map[string]any)
	if !isObj {
		return NullRecord(s), false
	}
	return decodeObject(s, obj), true
}

// NullRecord returns a Record with every schema field decoded to null.
func NullRecord(s Schema) Record {
	rec := make(Record, len(s.Fields))
	for _, f := range s.Fields {
		if f.Kind == List {
			rec[f.Name] = []Record(nil)
		} else {
			rec[f.Name] = nullValue(f.Kind)
		}
	}
	return rec
}

func decodeObject(s Schema, obj map[string]any) Record {
	rec := make(Record, len(s.Fields))
	for _, f := range s.Fields {
		rec[f.Name] = decodeField(f, obj)
	}
	return rec
}

func decodeField(f Field, obj map[string]any) any {
	val, found := lookup(obj, f.Path)
	if f.Kind == List {
		if !found {
			return []Record(nil)
		}
		return decodeList(f, val)
	}
	if !found {
		return nullValue(f.Kind)
	}
	return coerce(f.Kind, val)
}

// lookup walks a chain of object keys. Any non-object intermediate or
// missing key reports not found.
func lookup(obj map[string]any, path []string) (any, bool) {
	var cur any = obj
	for _, key := range path {
		m, isObj := cur.(map[string]any)
		if !isObj {
			return nil, false
		}
		next, exists := m[key]
		if !exists {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func decodeList(f Field, val any) []Record {
	items, isList := val.([]any)
	if !isList || f.Elem == nil {
		return nil
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		obj, isObj := item.(map[string]any)
		if !isObj {
			// Element of the wrong shape decodes to an all-null element
			// rather than shifting its siblings out of position.
			out = append(out, NullRecord(*f.Elem))
			continue
		}
		out = append(out, decodeObject(*f.Elem, obj))
	}
	return out
}

// coerce converts a decoded JSON value to the declared kind, returning a
// typed nil pointer on mismatch.
func coerce(kind Kind, val any) any {
	switch kind {
	case Int:
		// encoding/json decodes all numbers as float64.
		if f, isNum := val.(float64); isNum && f == math.Trunc(f) {
			n := int(f)
			return &n
		}
		return (*int)(nil)
	case String:
		if s, isStr := val.(string); isStr {
			return &s
		}
		return (*string)(nil)
	case Bool:
		if b, isBool := val.(bool); isBool {
			return &b
		}
		return (*bool)(nil)
	default:
		return nil
	}
}

func nullValue(kind Kind) any {
	switch kind {
	case Int:
		return (*int)(nil)
	case String:
		return (*string)(nil)
	case Bool:
		return (*bool)(nil)
	default:
		return nil
	}
}
