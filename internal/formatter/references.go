// Package formatter writes human-readable descriptions of a schema.
package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tordrt/schemaforge/internal/schema"
)

// Reference is a foreign key from SourceTable.SourceColumn to
// TargetTable.TargetColumn.
type Reference struct {
	SourceTable  string
	SourceColumn string
	TargetTable  string
	TargetColumn string
}

// outgoingReferences lists the foreign keys declared on t.
func outgoingReferences(t *schema.Table) []Reference {
	var refs []Reference
	for _, c := range t.Columns() {
		target := c.ForeignKey()
		if target == nil || target.Table() == nil {
			continue
		}
		refs = append(refs, Reference{
			SourceTable:  t.Name(),
			SourceColumn: c.Name(),
			TargetTable:  target.Table().Name(),
			TargetColumn: target.Name(),
		})
	}
	return refs
}

// incomingReferences finds all foreign keys in s pointing at a column of t.
func incomingReferences(s *schema.Schema, t *schema.Table) []Reference {
	var refs []Reference
	for _, other := range s.Tables() {
		for _, c := range other.Columns() {
			target := c.ForeignKey()
			if target == nil || target.Table() != t {
				continue
			}
			refs = append(refs, Reference{
				SourceTable:  other.Name(),
				SourceColumn: c.Name(),
				TargetTable:  t.Name(),
				TargetColumn: target.Name(),
			})
		}
	}
	return refs
}

// columnType renders the type with its resolved length, e.g. "int(6)".
func columnType(c *schema.Column) string {
	typ := strings.ToLower(c.Type().String())
	if n, ok := c.Length(); ok {
		return typ + "(" + strconv.Itoa(n) + ")"
	}
	return typ
}

// columnConstraints lists UNIQUE, NOT NULL and DEFAULT markers for c.
// Primary keys are reported by the caller.
func columnConstraints(c *schema.Column) []string {
	var constraints []string

	if c.IsUnique() {
		constraints = append(constraints, "UNIQUE")
	}

	// Primary and unique columns are generated NOT NULL.
	if c.IsPrimary() || c.IsUnique() {
		constraints = append(constraints, "NOT NULL")
	}

	// Generated DDL drops the default of primary and unique columns.
	if c.Modifier() == schema.ModifierDefault {
		v, _ := c.Default()
		constraints = append(constraints, fmt.Sprintf("DEFAULT %s", v))
	}

	return constraints
}
