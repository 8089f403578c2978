package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tordrt/schemaforge/internal/config"
	"github.com/tordrt/schemaforge/internal/logging"
)

var (
	cfgPath    string
	outputFile string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "schemaforge",
	Short: "Generate MySQL DDL and migrations from a declarative schema",
	Long: `schemaforge reads a relational schema from a JSON configuration file or a
FreeMind mind map (.mm) and writes MySQL CREATE scripts, migration scripts
between two schema versions, JSON exports, or human-readable descriptions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		// stdout carries SQL and JSON, so diagnostics go to stderr.
		return cfg.InitLogging(cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (optional)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
}

// withOutput calls write with the command's stdout, or with the file named
// by --output.
func withOutput(cmd *cobra.Command, write func(w io.Writer) error) error {
	if outputFile == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close output file", "path", outputFile, "error", err)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logging.Debug("wrote output", "path", outputFile)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
