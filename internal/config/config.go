// Package config loads schemaforge settings from an optional YAML file,
// a .env file and SCHEMAFORGE_* environment variables.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tordrt/schemaforge/internal/logging"
	"github.com/tordrt/schemaforge/internal/schema"
)

// Environment variables that override YAML values.
const (
	EnvEngine      = "SCHEMAFORGE_ENGINE"
	EnvCharset     = "SCHEMAFORGE_CHARSET"
	EnvColumnScope = "SCHEMAFORGE_COLUMN_SCOPE"
	EnvLogLevel    = "SCHEMAFORGE_LOG_LEVEL"
	EnvLogFormat   = "SCHEMAFORGE_LOG_FORMAT"
)

// Config represents the top-level YAML configuration.
type Config struct {
	DDL  DDL  `yaml:"ddl"`
	Diff Diff `yaml:"diff"`
	Log  Log  `yaml:"log"`
}

// DDL holds the table trailer settings.
type DDL struct {
	Engine  string `yaml:"engine"`
	Charset string `yaml:"charset"`
}

// Diff holds migration settings.
type Diff struct {
	// ColumnScope is "schema" or "table".
	ColumnScope string `yaml:"column_scope"`
}

// Log holds diagnostic output settings.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DDL:  DDL{Engine: "MyISAM", Charset: "utf8"},
		Diff: Diff{ColumnScope: "schema"},
		Log:  Log{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path, if path is not empty, on top of the
// defaults and then applies environment overrides. A .env file in the
// working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv overwrites settings with any non-empty SCHEMAFORGE_* variables.
func (c *Config) applyEnv() {
	override := func(dst *string, name string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	override(&c.DDL.Engine, EnvEngine)
	override(&c.DDL.Charset, EnvCharset)
	override(&c.Diff.ColumnScope, EnvColumnScope)
	override(&c.Log.Level, EnvLogLevel)
	override(&c.Log.Format, EnvLogFormat)
}

func (c *Config) validate() error {
	if c.DDL.Engine == "" {
		return fmt.Errorf("ddl.engine must not be empty")
	}
	if c.DDL.Charset == "" {
		return fmt.Errorf("ddl.charset must not be empty")
	}
	if _, err := schema.ParseColumnScope(c.Diff.ColumnScope); err != nil {
		return fmt.Errorf("diff.column_scope: %w", err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// SchemaOptions converts the DDL and diff settings into generator options.
func (c *Config) SchemaOptions() []schema.Option {
	opts := []schema.Option{
		schema.WithEngine(c.DDL.Engine),
		schema.WithCharset(c.DDL.Charset),
	}
	if scope, err := schema.ParseColumnScope(c.Diff.ColumnScope); err == nil {
		opts = append(opts, schema.WithColumnScope(scope))
	}
	return opts
}

// InitLogging points the global logger at w with the configured level and
// format.
func (c *Config) InitLogging(w io.Writer) error {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		return err
	}
	logging.Init(w, level, format)
	return nil
}
