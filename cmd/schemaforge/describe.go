package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tordrt/schemaforge"
)

var (
	describeFormat    string
	describeOutputDir string
)

var describeCmd = &cobra.Command{
	Use:   "describe <schema.json|schema.mm>",
	Short: "Describe tables, columns and foreign keys",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "text", "Output format: text or markdown")
	describeCmd.Flags().StringVarP(&describeOutputDir, "output-dir", "d", "", "Output directory for multi-file output")
	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if describeOutputDir != "" && outputFile != "" {
		return fmt.Errorf("cannot use both --output-dir and --output flags")
	}

	s, err := schemaforge.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	if describeOutputDir != "" {
		return schemaforge.FormatSchema(s, &schemaforge.OutputOptions{
			OutputDir: describeOutputDir,
			Format:    describeFormat,
		})
	}

	return withOutput(cmd, func(w io.Writer) error {
		return schemaforge.FormatSchema(s, &schemaforge.OutputOptions{
			Writer: w,
			Format: describeFormat,
		})
	})
}
