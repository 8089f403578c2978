package formatter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tordrt/schemaforge/internal/schema"
)

const (
	// FormatMarkdown selects markdown output.
	FormatMarkdown = "markdown"
	// FormatText selects compact text output.
	FormatText = "text"
)

// MultiFileFormatter writes schema to multiple files in a directory
type MultiFileFormatter struct {
	OutputDir    string
	OutputFormat string // "text" or "markdown"
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir, format string) *MultiFileFormatter {
	return &MultiFileFormatter{
		OutputDir:    outputDir,
		OutputFormat: format,
	}
}

// Format writes an overview file plus one file per table.
func (f *MultiFileFormatter) Format(s *schema.Schema) error {
	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files := tableFileNames(s.Tables())

	if err := f.writeOverview(s, files); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	for _, table := range s.Tables() {
		if err := f.writeTableFile(s, table, files[table]); err != nil {
			return fmt.Errorf("failed to write table file for %s: %w", table.Name(), err)
		}
	}

	return nil
}

func (f *MultiFileFormatter) writeOverview(s *schema.Schema, files map[*schema.Table]string) error {
	filename := filepath.Join(f.OutputDir, overviewName+f.getFileExtension())

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if f.OutputFormat == FormatMarkdown {
		_, _ = fmt.Fprintf(file, "# Schema Overview\n\n")
		_, _ = fmt.Fprintf(file, "Each table has a corresponding file: `<table_name>%s`\n\n", f.getFileExtension())
		_, _ = fmt.Fprintf(file, "## Tables\n\n")
	} else {
		_, _ = fmt.Fprintf(file, "SCHEMA OVERVIEW\n")
		_, _ = fmt.Fprintf(file, "Each table has a file: <table_name>%s\n\n", f.getFileExtension())
	}

	// Sort tables alphabetically
	sortedTables := s.Tables()
	sort.SliceStable(sortedTables, func(i, j int) bool {
		return sortedTables[i].Name() < sortedTables[j].Name()
	})

	for _, table := range sortedTables {
		f.writeOverviewLine(file, table, files[table])
	}
	return nil
}

func (f *MultiFileFormatter) writeOverviewLine(w io.Writer, table *schema.Table, file string) {
	var targets []string
	seen := make(map[string]bool)
	for _, ref := range outgoingReferences(table) {
		if !seen[ref.TargetTable] {
			seen[ref.TargetTable] = true
			targets = append(targets, ref.TargetTable)
		}
	}

	if f.OutputFormat == FormatMarkdown {
		_, _ = fmt.Fprintf(w, "- **%s**", table.Name())
	} else {
		_, _ = fmt.Fprintf(w, "%s", table.Name())
	}
	if len(targets) > 0 {
		_, _ = fmt.Fprintf(w, " (references: %s)", strings.Join(targets, ", "))
	}
	if file != table.Name() {
		_, _ = fmt.Fprintf(w, " [file: %s%s]", file, f.getFileExtension())
	}
	_, _ = fmt.Fprintln(w)
}

// writeTableFile writes a single table to its own file
func (f *MultiFileFormatter) writeTableFile(s *schema.Schema, table *schema.Table, name string) error {
	filename := filepath.Join(f.OutputDir, name+f.getFileExtension())

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	if f.OutputFormat == FormatMarkdown {
		return NewMarkdownFormatter(file).FormatTable(s, table)
	}
	return NewTextFormatter(file).FormatTable(s, table)
}

const overviewName = "_overview"

// tableFileNames maps each table to a file name without extension that stays
// inside the output directory. Path separators become underscores, and names
// that collide (ignoring case) with the overview or an earlier table get a
// numeric suffix.
func tableFileNames(tables []*schema.Table) map[*schema.Table]string {
	names := make(map[*schema.Table]string, len(tables))
	used := map[string]bool{overviewName: true}

	for _, table := range tables {
		base := strings.Map(func(r rune) rune {
			if r == '/' || r == '\\' || r == os.PathSeparator || r == 0 {
				return '_'
			}
			return r
		}, table.Name())
		if base == "" || base == "." || base == ".." {
			base = "_" + base
		}

		name := base
		for i := 2; used[strings.ToLower(name)]; i++ {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		used[strings.ToLower(name)] = true
		names[table] = name
	}
	return names
}

func (f *MultiFileFormatter) getFileExtension() string {
	if f.OutputFormat == FormatMarkdown {
		return ".md"
	}
	return ".txt"
}
