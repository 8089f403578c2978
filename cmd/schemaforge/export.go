package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tordrt/schemaforge"
)

var exportCmd = &cobra.Command{
	Use:   "export <schema.json|schema.mm>",
	Short: "Write the schema as a JSON configuration document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := schemaforge.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}
		return withOutput(cmd, func(w io.Writer) error {
			return schemaforge.ExportJSON(s, w)
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
