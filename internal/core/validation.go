package core

// validation.go checks a CSV header against a census schema.
//
// A header is accepted only when:
//  1. Every required column of the schema is present
//  2. No column outside the schema appears
//
// A file read with the wrong delimiter collapses to a single header cell, so
// both checks fail and the decoder reports a decode error instead of
// silently binding the wrong columns.

import (
	"fmt"
	"strings"
)

// ValidationError describes a header that does not fit a schema.
type ValidationError struct {
	Schema  string   // Schema name
	Missing []string // Required columns not found
	Unknown []string // Header cells the schema does not declare
}

func (e ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required columns: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unexpected columns: "+strings.Join(e.Unknown, ", "))
	}
	return fmt.Sprintf("%s header: %s", e.Schema, strings.Join(parts, "; "))
}

// ValidateHeaders validates a CSV header row against schema.
// Returns a mapping from column name to index, or a ValidationError.
func ValidateHeaders(headers []string, schema Schema) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)

	declared := make(map[string]bool, len(schema.Columns))
	var missing []string
	for _, spec := range schema.Columns {
		key := strings.ToLower(spec.Name)
		declared[key] = true
		if _, ok := idx[key]; !ok && spec.Required {
			missing = append(missing, spec.Name)
		}
	}

	var unknown []string
	for _, h := range headers {
		clean := CleanCell(h)
		if !declared[strings.ToLower(clean)] {
			unknown = append(unknown, clean)
		}
	}

	if len(missing) > 0 || len(unknown) > 0 {
		return nil, ValidationError{Schema: schema.Name, Missing: missing, Unknown: unknown}
	}
	return idx, nil
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldInt:
		return "integer"
	case FieldFloat:
		return "number"
	default:
		return "value"
	}
}
