package schema

import "fmt"

// Column describes one attribute of a table.
//
// A Column is configured through its fluent setters while the schema is
// being built and is only read afterwards. It is not safe for concurrent
// mutation.
type Column struct {
	name       string
	typ        ColumnType
	length     *int
	primary    bool
	unique     bool
	def        *string
	foreignKey *Column
	table      *Table
}

// NewColumn creates a column of the given type. It fails with
// ErrUnsupportedType if typ is not one of the supported column types.
func NewColumn(name string, typ ColumnType) (*Column, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("column %q: %w: %s", name, ErrUnsupportedType, typ)
	}
	return &Column{name: name, typ: typ}, nil
}

// SetLength assigns an explicit length.
func (c *Column) SetLength(n int) *Column {
	c.length = &n
	return c
}

// SetPrimary flags the column as the table's primary key.
func (c *Column) SetPrimary() *Column {
	c.primary = true
	return c
}

// SetUnique flags the column as unique.
func (c *Column) SetUnique() *Column {
	c.unique = true
	return c
}

// SetDefault assigns a default value.
func (c *Column) SetDefault(v string) *Column {
	c.def = &v
	return c
}

// SetForeignKey makes the column reference target. The last call wins and
// no type compatibility or cycle check is made.
func (c *Column) SetForeignKey(target *Column) *Column {
	c.foreignKey = target
	return c
}

// Name returns the column name as declared.
func (c *Column) Name() string { return c.name }

// Type returns the column type.
func (c *Column) Type() ColumnType { return c.typ }

// IsPrimary reports whether the column is flagged primary.
func (c *Column) IsPrimary() bool { return c.primary }

// IsUnique reports whether the column is flagged unique.
func (c *Column) IsUnique() bool { return c.unique }

// Table returns the owning table, or nil before the column is added to one.
func (c *Column) Table() *Table { return c.table }

// ForeignKey returns the referenced column, or nil.
func (c *Column) ForeignKey() *Column { return c.foreignKey }

// Default returns the default value and whether one is set.
func (c *Column) Default() (string, bool) {
	if c.def == nil {
		return "", false
	}
	return *c.def, true
}

// ExplicitLength returns the length assigned with SetLength, never a
// type default.
func (c *Column) ExplicitLength() (int, bool) {
	if c.length == nil {
		return 0, false
	}
	return *c.length, true
}

// Length returns the resolved length: the explicit length if one was set,
// otherwise 6 for smallint and int and 20 for bigint. String columns without
// an explicit length report false.
func (c *Column) Length() (int, bool) {
	if c.length != nil {
		return *c.length, true
	}
	return c.typ.defaultLength()
}

// ForeignKeyPath returns the "table.column" path of the referenced column.
// It reports false when no foreign key is set or the target is not yet
// attached to a table.
func (c *Column) ForeignKeyPath() (string, bool) {
	if c.foreignKey == nil || c.foreignKey.table == nil {
		return "", false
	}
	return c.foreignKey.table.name + "." + c.foreignKey.name, true
}

// Modifier returns the clause that governs how the column renders. Unique
// wins over primary, so a primary unique column is NOT NULL without
// AUTO_INCREMENT. Either flag wins over a default.
func (c *Column) Modifier() Modifier {
	switch {
	case c.unique:
		return ModifierUnique
	case c.primary:
		return ModifierPrimary
	case c.def != nil:
		return ModifierDefault
	default:
		return ModifierNone
	}
}
