package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tordrt/schemaforge"
	"github.com/tordrt/schemaforge/internal/logging"
)

var ddlCmd = &cobra.Command{
	Use:   "ddl <schema.json|schema.mm>",
	Short: "Print DROP/CREATE statements for every table",
	Long: `Loads the schema and writes a DROP TABLE IF EXISTS / CREATE TABLE IF NOT EXISTS
pair for each table, in declaration order. Engine and charset come from the
config file or SCHEMAFORGE_ENGINE / SCHEMAFORGE_CHARSET.`,
	Args: cobra.ExactArgs(1),
	RunE: runDDL,
}

func init() {
	rootCmd.AddCommand(ddlCmd)
}

func runDDL(cmd *cobra.Command, args []string) error {
	s, err := schemaforge.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	sql := s.CreateSQL(cfg.SchemaOptions()...)
	logging.Info("generated DDL", "source", args[0], "tables", len(s.Tables()))

	return withOutput(cmd, func(w io.Writer) error {
		_, err := io.WriteString(w, sql)
		return err
	})
}
