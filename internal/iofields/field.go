package iofields

import (
	"strings"

	"stationcat/internal/textutil"
)

// Field is one readable or writable device value.
type Field struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	// Inferred marks a type guessed from the field name because the type
	// cell was blank. It is never persisted.
	Inferred bool `json:"-"`
}

// Primitive field types.
const (
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeFloat   = "float"
	TypeDouble  = "double"
	TypeString  = "string"
)

var primitiveTypes = map[string]struct{}{
	TypeBoolean: {},
	TypeInteger: {},
	TypeFloat:   {},
	TypeDouble:  {},
	TypeString:  {},
}

// IsPrimitive reports whether t is one of the catalog's field types.
func IsPrimitive(t string) bool {
	_, ok := primitiveTypes[t]
	return ok
}

var nameCorrections = map[string]string{
	"Referenceld": "ReferenceId",
}

// NormalizeName trims the name and fixes known wiki typos.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if fixed, ok := nameCorrections[name]; ok {
		return fixed
	}
	return name
}

var typeAliases = map[string]string{
	"bool": TypeBoolean,
	"int":  TypeInteger,
}

// NormalizeType lowercases the type text and expands short aliases. The
// result may still be a non-primitive.
func NormalizeType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := typeAliases[t]; ok {
		return alias
	}
	return t
}

// Only names that are common and unambiguous across device pages.
var inferredTypes = map[string]string{
	"on":            TypeBoolean,
	"power":         TypeBoolean,
	"error":         TypeBoolean,
	"lock":          TypeBoolean,
	"ratio":         TypeFloat,
	"maximum":       TypeInteger,
	"requiredpower": TypeInteger,
	"setting":       TypeInteger,
}

// InferType guesses a type from the field name when the type cell is blank
// or not a primitive.
func InferType(name string) (string, bool) {
	t, ok := inferredTypes[textutil.AlnumKey(name)]
	return t, ok
}

// Dedupe keeps the first field for every (name, type) pair, filling an empty
// description from a later duplicate.
func Dedupe(fields []Field) []Field {
	type key struct{ name, typ string }
	out := make([]Field, 0, len(fields))
	seen := make(map[key]int, len(fields))
	for _, f := range fields {
		k := key{f.Name, f.Type}
		i, ok := seen[k]
		if !ok {
			seen[k] = len(out)
			out = append(out, f)
			continue
		}
		if out[i].Description == "" && f.Description != "" {
			out[i].Description = f.Description
		}
	}
	return out
}

// CountInferred returns how many fields carry an inferred type.
func CountInferred(fields []Field) int {
	n := 0
	for _, f := range fields {
		if f.Inferred {
			n++
		}
	}
	return n
}
