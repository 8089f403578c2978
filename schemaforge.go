// Package schemaforge turns a declarative relational schema into MySQL DDL
// and migration scripts.
//
// A schema is a list of tables, each a list of typed columns with optional
// length, primary/unique flags, a default value and a foreign key to another
// column. Schemas are loaded from a JSON configuration document or a
// FreeMind mind map, and can be exported back to JSON or described as text
// or markdown.
//
// # Quick Start
//
// Generate a CREATE script from a configuration file:
//
//	s, err := schemaforge.Load("shop.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(schemaforge.GenerateDDL(s, nil))
//
// Generate a migration from the previous version of the same schema:
//
//	oldSchema, _ := schemaforge.Load("shop-v1.json")
//	newSchema, _ := schemaforge.Load("shop-v2.mm")
//	m := schemaforge.GenerateMigration(oldSchema, newSchema, nil)
//	fmt.Print(m.SQL())
//
// # Input Formats
//
// The loader is chosen by file extension:
//   - .json: {"tables": [{"name": ..., "columns": [...]}]}
//   - .mm: FreeMind mind map, tables under the root node, columns under tables
//
// # Errors
//
// Load failures wrap one of the sentinel errors below and can be tested
// with errors.Is.
package schemaforge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tordrt/schemaforge/internal/formatter"
	"github.com/tordrt/schemaforge/internal/loader"
	"github.com/tordrt/schemaforge/internal/schema"
)

// Model types, re-exported for callers outside this module.
type (
	Schema    = schema.Schema
	Table     = schema.Table
	Column    = schema.Column
	Migration = schema.Migration
)

// Sentinel errors returned (wrapped) by the loaders.
var (
	ErrUnsupportedType     = schema.ErrUnsupportedType
	ErrDuplicateColumnName = schema.ErrDuplicateColumnName
	ErrMalformedPath       = schema.ErrMalformedPath
	ErrUnknownReference    = schema.ErrUnknownReference
	ErrInvalidFormat       = schema.ErrInvalidFormat

	// ErrUnknownExtension is returned by Load for files that are neither
	// .json nor .mm.
	ErrUnknownExtension = errors.New("unknown schema file extension")
)

// Options configures DDL and migration generation.
//
// All fields are optional. If not specified:
//   - Engine: "MyISAM"
//   - Charset: "utf8"
//   - TableScopedColumns: false, a column counts as existing if any table
//     of the other schema has a column with that name
type Options struct {
	// Engine is written into the ENGINE= clause of every CREATE TABLE.
	Engine string

	// Charset is written into the DEFAULT CHARSET= clause and the
	// CHARACTER SET clause of string columns.
	Charset string

	// TableScopedColumns makes migrations compare columns only against
	// the table with the same name. With the default schema-wide lookup a
	// column moved from one table to another produces no statements.
	TableScopedColumns bool
}

func (o *Options) schemaOptions() []schema.Option {
	if o == nil {
		return nil
	}
	opts := []schema.Option{
		schema.WithEngine(o.Engine),
		schema.WithCharset(o.Charset),
	}
	if o.TableScopedColumns {
		opts = append(opts, schema.WithColumnScope(schema.ColumnScopeTable))
	}
	return opts
}

// OutputOptions configures schema description output.
//
// Single-file (Writer): All tables in one document
//
//	&OutputOptions{Writer: os.Stdout}
//
// Multi-file (OutputDir): Creates _overview + one file per table
//
//	&OutputOptions{OutputDir: "docs/schema", Format: "markdown"}
//
// If both are specified, OutputDir takes precedence and Writer is ignored.
// If neither is specified, output goes to os.Stdout.
type OutputOptions struct {
	// Writer specifies where to write single-file output.
	// Ignored if OutputDir is set.
	Writer io.Writer

	// OutputDir specifies the directory for multi-file output.
	// The directory will be created if it doesn't exist.
	OutputDir string

	// Format is "text" (default) or "markdown".
	Format string
}

// Load reads a schema from path, choosing the loader by file extension:
// .json files are JSON configuration documents and .mm files are FreeMind
// mind maps.
//
// Returns an error if:
//   - The extension is not recognised (ErrUnknownExtension)
//   - The file cannot be read
//   - The document is invalid (ErrInvalidFormat, ErrUnsupportedType, ...)
func Load(path string) (*Schema, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loader.LoadJSONFile(path)
	case ".mm":
		return loader.LoadMindMapFile(path)
	default:
		return nil, fmt.Errorf("%w: %q (want .json or .mm)", ErrUnknownExtension, path)
	}
}

// LoadJSON builds a schema from a JSON document or the path to one.
//
// Foreign keys must name a column declared earlier in the document.
//
// Example:
//
//	s, err := schemaforge.LoadJSON(`{"tables": [{"name": "user", "columns": [
//		{"name": "id", "type": "int", "primary": true}
//	]}]}`)
func LoadJSON(input string) (*Schema, error) {
	return loader.LoadJSON(input)
}

// LoadMindMap builds a schema from a FreeMind document.
//
// Like JSON foreign keys, an arrowlink must point at a column that appears
// earlier in the map or at the linking column itself, so every loaded map
// exports to JSON that LoadJSON accepts.
func LoadMindMap(r io.Reader) (*Schema, error) {
	return loader.LoadMindMap(r)
}

// GenerateDDL returns the DROP/CREATE script for every table of s.
//
// Foreign keys are not emitted. The result is empty for a schema without
// tables. opts may be nil.
func GenerateDDL(s *Schema, opts *Options) string {
	return s.CreateSQL(opts.schemaOptions()...)
}

// GenerateMigration returns the statements that migrate oldSchema to
// newSchema: dropped tables, created tables, dropped columns, then added
// columns. Neither schema is modified. opts may be nil, and a nil schema
// counts as one without tables.
//
// Example:
//
//	m := schemaforge.GenerateMigration(v1, v2, &schemaforge.Options{TableScopedColumns: true})
//	if m.Empty() {
//		fmt.Println("schemas are equivalent")
//	}
func GenerateMigration(oldSchema, newSchema *Schema, opts *Options) *Migration {
	return newSchema.Diff(oldSchema, opts.schemaOptions()...)
}

// ExportJSON writes s as a JSON configuration document that LoadJSON reads
// back into an equivalent schema.
func ExportJSON(s *Schema, w io.Writer) error {
	return loader.ExportJSON(s, w)
}

// FormatSchema writes a human-readable description of s.
//
// Each column is listed with its resolved type and constraints, and each
// table with the foreign keys it declares and the foreign keys pointing at
// it.
//
// Returns an error if:
//   - The format is not "text" or "markdown"
//   - Directory creation fails (multi-file mode)
//   - File writing fails
func FormatSchema(s *Schema, opts *OutputOptions) error {
	if opts == nil {
		opts = &OutputOptions{Writer: os.Stdout}
	}

	format := opts.Format
	if format == "" {
		format = formatter.FormatText
	}
	if format != formatter.FormatText && format != formatter.FormatMarkdown {
		return fmt.Errorf("unsupported format %q (want text or markdown)", opts.Format)
	}

	// Multi-file output
	if opts.OutputDir != "" {
		return formatter.NewMultiFileFormatter(opts.OutputDir, format).Format(s)
	}

	// Single-file output
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}
	if format == formatter.FormatMarkdown {
		return formatter.NewMarkdownFormatter(writer).Format(s)
	}
	return formatter.NewTextFormatter(writer).Format(s)
}

// LoadAndFormat loads the schema at path and writes its description in one
// call.
func LoadAndFormat(path string, opts *OutputOptions) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	return FormatSchema(s, opts)
}
