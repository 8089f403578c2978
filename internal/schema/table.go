package schema

import "fmt"

// Table is an ordered collection of uniquely named columns.
type Table struct {
	name    string
	columns []*Column
	schema  *Schema
}

// NewTable creates an empty table.
func NewTable(name string) *Table {
	return &Table{name: name}
}

// Name returns the table name as declared.
func (t *Table) Name() string { return t.name }

// Schema returns the owning schema, or nil before the table is registered.
func (t *Table) Schema() *Schema { return t.schema }

// Columns returns the columns in insertion order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// AddColumn appends c and links it back to t. It fails with
// ErrDuplicateColumnName if t already has a column with the same name
// (case-sensitive), leaving t unchanged.
func (t *Table) AddColumn(c *Column) error {
	if t.Column(c.name) != nil {
		return fmt.Errorf("table %q: %w: %q", t.name, ErrDuplicateColumnName, c.name)
	}
	t.columns = append(t.columns, c)
	c.table = t
	return nil
}

// Column returns the first column named name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.columns {
		if c.name == name {
			return c
		}
	}
	return nil
}

// PrimaryKey returns the names of the columns flagged primary, in order.
func (t *Table) PrimaryKey() []string {
	var pk []string
	for _, c := range t.columns {
		if c.primary {
			pk = append(pk, c.name)
		}
	}
	return pk
}
