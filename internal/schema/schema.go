// Package schema models a relational schema in memory and derives DDL and
// migration scripts from it.
//
// Ownership flows Schema → Table → Column. Columns and tables keep plain
// back-pointers to their owners, and foreign keys point at other columns
// without owning them, so reference cycles are allowed. A schema is built
// once by a single goroutine and is read-only afterwards; the generators
// never mutate it.
package schema

import (
	"fmt"
	"strings"
)

// Schema is the ordered registry of tables for one database definition.
type Schema struct {
	tables []*Table
}

// New returns an empty schema.
func New() *Schema {
	return &Schema{}
}

// AddTable appends t and links it back to s. Table names are not checked
// for uniqueness.
func (s *Schema) AddTable(t *Table) {
	s.tables = append(s.tables, t)
	t.schema = s
}

// Tables returns the tables in insertion order.
func (s *Schema) Tables() []*Table {
	out := make([]*Table, len(s.tables))
	copy(out, s.tables)
	return out
}

// Table returns the table named name, or nil. When several tables share a
// name the last one registered is returned.
func (s *Schema) Table(name string) *Table {
	var found *Table
	for _, t := range s.tables {
		if t.name == name {
			found = t
		}
	}
	return found
}

// Column resolves a "table.column" path. It fails with ErrMalformedPath
// unless path has exactly two non-empty segments, and with
// ErrUnknownReference when the table or the column does not exist.
func (s *Schema) Column(path string) (*Column, error) {
	tableName, columnName, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	t := s.Table(tableName)
	if t == nil {
		return nil, fmt.Errorf("%w: table %q in %q", ErrUnknownReference, tableName, path)
	}
	c := t.Column(columnName)
	if c == nil {
		return nil, fmt.Errorf("%w: column %q in %q", ErrUnknownReference, columnName, path)
	}
	return c, nil
}

// SplitPath splits a foreign-key path into its table and column segments.
func SplitPath(path string) (table, column string, err error) {
	parts := strings.Split(path, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q (want table.column)", ErrMalformedPath, path)
	}
	return parts[0], parts[1], nil
}

// hasTable reports whether any table in s is named name.
func (s *Schema) hasTable(name string) bool {
	for _, t := range s.tables {
		if t.name == name {
			return true
		}
	}
	return false
}

// hasColumn reports whether any table in s has a column named name.
func (s *Schema) hasColumn(name string) bool {
	for _, t := range s.tables {
		if t.Column(name) != nil {
			return true
		}
	}
	return false
}
