package schema

import (
	"fmt"
	"strings"
)

const (
	defaultEngine  = "MyISAM"
	defaultCharset = "utf8"
)

// options holds the settings shared by the DDL and diff generators.
type options struct {
	engine  string
	charset string
	scope   ColumnScope
}

// Option configures CreateSQL and Diff.
type Option func(*options)

// WithEngine sets the storage engine named in the CREATE TABLE trailer.
func WithEngine(engine string) Option {
	return func(o *options) {
		if engine != "" {
			o.engine = engine
		}
	}
}

// WithCharset sets the character set used for string columns and the
// table trailer.
func WithCharset(charset string) Option {
	return func(o *options) {
		if charset != "" {
			o.charset = charset
		}
	}
}

// WithColumnScope selects how Diff decides whether a column still exists.
func WithColumnScope(scope ColumnScope) Option {
	return func(o *options) {
		o.scope = scope
	}
}

func newOptions(opts []Option) options {
	o := options{engine: defaultEngine, charset: defaultCharset, scope: ColumnScopeSchema}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// quoteIdent lower-cases and backtick-quotes an identifier.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(strings.ToLower(name), "`", "``") + "`"
}

// quoteValue renders a default value as a SQL string literal.
func quoteValue(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// modifierClause renders the nullability/default part of a column definition.
func modifierClause(c *Column) string {
	switch c.Modifier() {
	case ModifierPrimary:
		return "NOT NULL AUTO_INCREMENT"
	case ModifierUnique:
		return "NOT NULL"
	case ModifierDefault:
		v, _ := c.Default()
		return "DEFAULT " + quoteValue(v)
	default:
		return "DEFAULT NULL"
	}
}

// columnDefinition renders one column the way it appears inside CREATE TABLE
// and after ALTER TABLE ... ADD COLUMN.
func columnDefinition(c *Column, o options) string {
	var b strings.Builder
	b.WriteString(quoteIdent(c.name))
	b.WriteByte(' ')
	b.WriteString(c.typ.String())

	// String types only carry a length when one was given; numeric types
	// always render their resolved length.
	var (
		n  int
		ok bool
	)
	if c.typ.IsString() {
		n, ok = c.ExplicitLength()
	} else {
		n, ok = c.Length()
	}
	if ok {
		fmt.Fprintf(&b, "(%d)", n)
	}

	if c.typ.IsString() {
		b.WriteString(" CHARACTER SET ")
		b.WriteString(o.charset)
	}

	b.WriteByte(' ')
	b.WriteString(modifierClause(c))
	return b.String()
}

// createTable renders the CREATE TABLE statement for t, key clauses included.
func createTable(t *Table, o options) string {
	var defs []string
	for _, c := range t.columns {
		defs = append(defs, columnDefinition(c, o))
	}
	for _, c := range t.columns {
		if c.primary {
			defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", quoteIdent(c.name)))
		}
	}
	for _, c := range t.columns {
		if c.unique {
			defs = append(defs, fmt.Sprintf("UNIQUE KEY %s (%s)", quoteIdent(c.name), quoteIdent(c.name)))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", quoteIdent(t.name))
	for i, d := range defs {
		b.WriteByte('\t')
		b.WriteString(d)
		if i < len(defs)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, ") ENGINE=%s DEFAULT CHARSET=%s AUTO_INCREMENT=1;", o.engine, o.charset)
	return b.String()
}

func dropTable(t *Table) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", quoteIdent(t.name))
}
