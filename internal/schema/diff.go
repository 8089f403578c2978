package schema

import (
	"fmt"
	"strings"
)

// ColumnScope controls where Diff looks when deciding whether a column
// exists on the other side.
type ColumnScope int

const (
	// ColumnScopeSchema treats a column as existing if any table of the
	// compared schema has a column with that name. A column moved between
	// tables therefore produces no statements.
	ColumnScopeSchema ColumnScope = iota
	// ColumnScopeTable only looks at the table with the same name.
	ColumnScopeTable
)

// ParseColumnScope maps "schema" or "table" to a ColumnScope.
func ParseColumnScope(s string) (ColumnScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "schema":
		return ColumnScopeSchema, nil
	case "table":
		return ColumnScopeTable, nil
	default:
		return 0, fmt.Errorf("unknown column scope %q (must be 'schema' or 'table')", s)
	}
}

func (cs ColumnScope) String() string {
	if cs == ColumnScopeTable {
		return "table"
	}
	return "schema"
}

// StatementKind classifies a migration statement.
type StatementKind int

// Statement kinds, in the order Diff emits them.
const (
	DropTable StatementKind = iota + 1
	CreateTable
	DropColumn
	AddColumn
)

func (k StatementKind) String() string {
	switch k {
	case DropTable:
		return "DROP TABLE"
	case CreateTable:
		return "CREATE TABLE"
	case DropColumn:
		return "DROP COLUMN"
	case AddColumn:
		return "ADD COLUMN"
	default:
		return fmt.Sprintf("StatementKind(%d)", int(k))
	}
}

// Statement is one migration step.
type Statement struct {
	Kind   StatementKind
	Table  string
	Column string // empty for table-level statements
	SQL    string
}

// Migration is the ordered list of statements that turns an old schema into
// a new one.
type Migration struct {
	Statements []Statement
}

// Empty reports whether the migration has no statements.
func (m *Migration) Empty() bool {
	return len(m.Statements) == 0
}

// Count returns the number of statements of the given kind.
func (m *Migration) Count(kind StatementKind) int {
	n := 0
	for _, st := range m.Statements {
		if st.Kind == kind {
			n++
		}
	}
	return n
}

// SQL renders the migration as a script, statements separated by blank
// lines. An empty migration renders as the empty string.
func (m *Migration) SQL() string {
	if m.Empty() {
		return ""
	}
	parts := make([]string, len(m.Statements))
	for i, st := range m.Statements {
		parts[i] = st.SQL
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Diff compares s (the new schema) against old and returns the statements
// that migrate old to s, in four passes:
//
//  1. DROP TABLE for tables only in old
//  2. CREATE TABLE for tables only in s
//  3. DROP COLUMN for columns of shared tables that no longer exist
//  4. ADD COLUMN for columns of shared tables that did not exist
//
// Tables match by name. Whether a column exists is decided by the
// configured ColumnScope, schema-wide by default. Neither schema is
// modified. A nil schema on either side counts as a schema without tables.
func (s *Schema) Diff(old *Schema, opts ...Option) *Migration {
	if s == nil {
		s = New()
	}
	if old == nil {
		old = New()
	}
	o := newOptions(opts)
	m := &Migration{}

	for _, t := range old.tables {
		if !s.hasTable(t.name) {
			m.Statements = append(m.Statements, Statement{
				Kind:  DropTable,
				Table: t.name,
				SQL:   dropTable(t),
			})
		}
	}

	for _, t := range s.tables {
		if !old.hasTable(t.name) {
			m.Statements = append(m.Statements, Statement{
				Kind:  CreateTable,
				Table: t.name,
				SQL:   createTable(t, o),
			})
		}
	}

	for _, t := range old.tables {
		if !s.hasTable(t.name) {
			continue
		}
		for _, c := range t.columns {
			if s.columnExists(t.name, c.name, o.scope) {
				continue
			}
			m.Statements = append(m.Statements, Statement{
				Kind:   DropColumn,
				Table:  t.name,
				Column: c.name,
				SQL:    fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", quoteIdent(t.name), quoteIdent(c.name)),
			})
		}
	}

	for _, t := range s.tables {
		if !old.hasTable(t.name) {
			continue
		}
		for _, c := range t.columns {
			if old.columnExists(t.name, c.name, o.scope) {
				continue
			}
			m.Statements = append(m.Statements, Statement{
				Kind:   AddColumn,
				Table:  t.name,
				Column: c.name,
				SQL:    fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", quoteIdent(t.name), columnDefinition(c, o)),
			})
		}
	}

	return m
}

func (s *Schema) columnExists(table, column string, scope ColumnScope) bool {
	if scope == ColumnScopeTable {
		t := s.Table(table)
		return t != nil && t.Column(column) != nil
	}
	return s.hasColumn(column)
}
