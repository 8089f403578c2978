package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/schemaforge/internal/schema"
)

// TextFormatter formats schema as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the schema in compact text format
func (f *TextFormatter) Format(s *schema.Schema) error {
	for i, table := range s.Tables() {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between tables
		}

		if err := f.FormatTable(s, table); err != nil {
			return err
		}
	}
	return nil
}

// FormatTable writes one table of s, including the foreign keys of other
// tables that point at it.
func (f *TextFormatter) FormatTable(s *schema.Schema, table *schema.Table) error {
	// Table header with primary key
	pkStr := ""
	if pk := table.PrimaryKey(); len(pk) > 0 {
		pkStr = fmt.Sprintf(" (PK: %s)", strings.Join(pk, ", "))
	}
	_, _ = fmt.Fprintf(f.writer, "TABLE %s%s\n", table.Name(), pkStr)

	for _, col := range table.Columns() {
		_, _ = fmt.Fprintf(f.writer, "  %s\n", f.formatColumn(col))
	}

	if refs := outgoingReferences(table); len(refs) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  RELATIONS:")
		for _, ref := range refs {
			_, _ = fmt.Fprintf(f.writer, "    %s → %s.%s\n", ref.SourceColumn, ref.TargetTable, ref.TargetColumn)
		}
	}

	if refs := incomingReferences(s, table); len(refs) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "  REFERENCED BY:")
		for _, ref := range refs {
			_, _ = fmt.Fprintf(f.writer, "    %s.%s → %s\n", ref.SourceTable, ref.SourceColumn, ref.TargetColumn)
		}
	}

	return nil
}

func (f *TextFormatter) formatColumn(col *schema.Column) string {
	parts := []string{col.Name() + ":", columnType(col)}
	parts = append(parts, columnConstraints(col)...)
	return strings.Join(parts, " ")
}
