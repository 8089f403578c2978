package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/schemaforge/internal/schema"
)

// MarkdownFormatter formats schema as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the schema in markdown format
func (f *MarkdownFormatter) Format(s *schema.Schema) error {
	_, _ = fmt.Fprintln(f.writer, "# Database Schema")
	_, _ = fmt.Fprintln(f.writer)

	for _, table := range s.Tables() {
		if err := f.FormatTable(s, table); err != nil {
			return err
		}
	}
	return nil
}

// FormatTable formats a single table (exported for use by multifile formatter)
func (f *MarkdownFormatter) FormatTable(s *schema.Schema, table *schema.Table) error {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", table.Name())

	_, _ = fmt.Fprintln(f.writer, "### Columns")
	_, _ = fmt.Fprintln(f.writer)

	for _, col := range table.Columns() {
		constraintStr := f.formatConstraints(col)
		if constraintStr != "" {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s, %s\n", col.Name(), columnType(col), constraintStr)
		} else {
			_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", col.Name(), columnType(col))
		}
	}
	_, _ = fmt.Fprintln(f.writer)

	if refs := outgoingReferences(table); len(refs) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### References")
		_, _ = fmt.Fprintln(f.writer)
		for _, ref := range refs {
			_, _ = fmt.Fprintf(f.writer, "- %s → %s.%s\n", ref.SourceColumn, ref.TargetTable, ref.TargetColumn)
		}
		_, _ = fmt.Fprintln(f.writer)
	}

	if refs := incomingReferences(s, table); len(refs) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### Referenced by")
		_, _ = fmt.Fprintln(f.writer)
		for _, ref := range refs {
			_, _ = fmt.Fprintf(f.writer, "- %s.%s → %s\n", ref.SourceTable, ref.SourceColumn, ref.TargetColumn)
		}
		_, _ = fmt.Fprintln(f.writer)
	}

	return nil
}

func (f *MarkdownFormatter) formatConstraints(col *schema.Column) string {
	var constraints []string
	if col.IsPrimary() {
		constraints = append(constraints, "PK")
	}
	constraints = append(constraints, columnConstraints(col)...)
	return strings.Join(constraints, ", ")
}
