package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tordrt/schemaforge"
	"github.com/tordrt/schemaforge/internal/logging"
	"github.com/tordrt/schemaforge/internal/schema"
)

var (
	diffOld         string
	diffColumnScope string
)

var diffCmd = &cobra.Command{
	Use:   "diff --old <old-schema> <new-schema>",
	Short: "Print the migration from an old schema to a new one",
	Long: `Compares two schema files, in either format, and writes DROP TABLE, CREATE TABLE,
DROP COLUMN and ADD COLUMN statements, in that order, that migrate the old
schema to the new one.

--column-scope=schema (default) treats a column as present if any table has a
column of that name; --column-scope=table only looks at the same table.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffOld, "old", "", "previous schema file (required)")
	diffCmd.Flags().StringVar(&diffColumnScope, "column-scope", "", "column existence scope: schema or table (default from config)")
	_ = diffCmd.MarkFlagRequired("old")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldSchema, err := schemaforge.Load(diffOld)
	if err != nil {
		return fmt.Errorf("failed to load old schema: %w", err)
	}
	newSchema, err := schemaforge.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load new schema: %w", err)
	}

	opts := cfg.SchemaOptions()
	if diffColumnScope != "" {
		scope, err := schema.ParseColumnScope(diffColumnScope)
		if err != nil {
			return err
		}
		opts = append(opts, schema.WithColumnScope(scope))
	}

	m := newSchema.Diff(oldSchema, opts...)
	if m.Empty() {
		logging.Info("schemas are equivalent", "old", diffOld, "new", args[0])
	} else {
		logging.Info("generated migration",
			"drop_tables", m.Count(schema.DropTable),
			"create_tables", m.Count(schema.CreateTable),
			"drop_columns", m.Count(schema.DropColumn),
			"add_columns", m.Count(schema.AddColumn),
		)
	}

	return withOutput(cmd, func(w io.Writer) error {
		_, err := io.WriteString(w, m.SQL())
		return err
	})
}
