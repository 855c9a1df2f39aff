package iofields

import (
	"strings"

	"stationcat/internal/textutil"
)

// Role is the meaning of a table column.
type Role int

const (
	RoleName Role = iota
	RoleType
	RoleAccess
	RoleDescription
)

// HeaderRoles lists the header texts accepted for each role, in priority
// order. Matching is case-insensitive.
var HeaderRoles = map[Role][]string{
	RoleName:        {"parameter name", "output name", "name"},
	RoleType:        {"data type", "type"},
	RoleAccess:      {"access"},
	RoleDescription: {"description", "desc"},
}

// Data Parameters tables never label their name column "Output Name".
const outputNameHeader = "output name"

type columns struct {
	name, typ, access, desc int
}

func columnIndex(header []string, role Role, skip string) int {
	for _, candidate := range HeaderRoles[role] {
		if candidate == skip {
			continue
		}
		want := textutil.Fold(candidate)
		for i, cell := range header {
			if cell == want {
				return i
			}
		}
	}
	return -1
}

func locateColumns(header []string, skipName string) (columns, bool) {
	folded := make([]string, len(header))
	for i, cell := range header {
		folded[i] = textutil.Fold(cell)
	}
	cols := columns{
		name:   columnIndex(folded, RoleName, skipName),
		typ:    columnIndex(folded, RoleType, ""),
		access: columnIndex(folded, RoleAccess, ""),
		desc:   columnIndex(folded, RoleDescription, ""),
	}
	return cols, cols.name >= 0 && cols.typ >= 0
}

func cellAt(row []string, i int) (string, bool) {
	if i < 0 || i >= len(row) {
		return "", false
	}
	return row[i], true
}

// fieldFromRow applies the shared row rules. It reports false for rows that
// do not describe a field.
func fieldFromRow(row []string, cols columns) (Field, bool) {
	name, ok := cellAt(row, cols.name)
	if !ok {
		return Field{}, false
	}
	typeCell, ok := cellAt(row, cols.typ)
	if !ok {
		return Field{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" || textutil.IsDigits(name) {
		return Field{}, false
	}
	name = NormalizeName(name)

	field := Field{Name: name, Type: NormalizeType(typeCell)}
	if !IsPrimitive(field.Type) {
		inferred, ok := InferType(name)
		if !ok {
			return Field{}, false
		}
		field.Type = inferred
		field.Inferred = true
	}
	if desc, ok := cellAt(row, cols.desc); ok {
		field.Description = strings.TrimSpace(desc)
	}
	return field, true
}

// ExtractFields reads a generic IO table. It returns nil when the header has
// no name or type column.
func ExtractFields(rows [][]string) []Field {
	if len(rows) == 0 {
		return nil
	}
	cols, ok := locateColumns(rows[0], "")
	if !ok {
		return nil
	}
	var fields []Field
	for _, row := range rows[1:] {
		if field, ok := fieldFromRow(row, cols); ok {
			fields = append(fields, field)
		}
	}
	return fields
}

// ExtractParameters reads a Data Parameters table. With an access column,
// writable fields become parameters and readable ones outputs (a read/write
// field lands in both). Without one every field is a parameter.
func ExtractParameters(rows [][]string) (parameters, outputs []Field) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols, ok := locateColumns(rows[0], outputNameHeader)
	if !ok {
		return nil, nil
	}
	for _, row := range rows[1:] {
		field, ok := fieldFromRow(row, cols)
		if !ok {
			continue
		}
		access, ok := cellAt(row, cols.access)
		if !ok {
			parameters = append(parameters, field)
			continue
		}
		access = strings.ToLower(access)
		if strings.Contains(access, "write") {
			parameters = append(parameters, field)
		}
		if strings.Contains(access, "read") {
			outputs = append(outputs, field)
		}
	}
	return parameters, outputs
}
