package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tordrt/schemaforge/internal/logging"
	"github.com/tordrt/schemaforge/internal/schema"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvEngine, EnvCharset, EnvColumnScope, EnvLogLevel, EnvLogFormat} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schemaforge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load(\"\") = %+v, want defaults %+v", *cfg, *Default())
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
ddl:
  engine: InnoDB
diff:
  column_scope: table
log:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"engine from file", cfg.DDL.Engine, "InnoDB"},
		{"charset keeps default", cfg.DDL.Charset, "utf8"},
		{"column scope from file", cfg.Diff.ColumnScope, "table"},
		{"log level from file", cfg.Log.Level, "debug"},
		{"log format keeps default", cfg.Log.Format, "text"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "ddl:\n  engine: InnoDB\n  charset: latin1\n")
	t.Setenv(EnvEngine, "Aria")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DDL.Engine != "Aria" {
		t.Errorf("engine = %q, want env value Aria", cfg.DDL.Engine)
	}
	if cfg.DDL.Charset != "latin1" {
		t.Errorf("charset = %q, want file value latin1", cfg.DDL.Charset)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format = %q, want json", cfg.Log.Format)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{name: "bad yaml", content: "ddl: [", wantErr: "parsing config file"},
		{name: "empty engine", content: "ddl:\n  engine: \"\"\n", wantErr: "ddl.engine"},
		{name: "unknown scope", content: "diff:\n  column_scope: database\n", wantErr: "diff.column_scope"},
		{name: "unknown level", env: map[string]string{EnvLogLevel: "loud"}, wantErr: "log.level"},
		{name: "unknown format", env: map[string]string{EnvLogFormat: "xml"}, wantErr: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.content != "" {
				path = writeConfig(t, tt.content)
			}

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
			t.Error("Load() on a missing file should fail")
		}
	})
}

func TestSchemaOptions(t *testing.T) {
	cfg := Default()
	cfg.DDL.Engine = "InnoDB"
	cfg.Diff.ColumnScope = "table"

	s := schema.New()
	tbl := schema.NewTable("t")
	s.AddTable(tbl)
	c, _ := schema.NewColumn("id", schema.Int)
	_ = tbl.AddColumn(c)

	if got := s.CreateSQL(cfg.SchemaOptions()...); !strings.Contains(got, "ENGINE=InnoDB DEFAULT CHARSET=utf8") {
		t.Errorf("CreateSQL() trailer does not reflect config:\n%s", got)
	}

	// Table scope reports a column moved between tables.
	old := schema.New()
	other := schema.NewTable("u")
	old.AddTable(other)
	moved, _ := schema.NewColumn("id", schema.Int)
	_ = other.AddColumn(moved)
	oldT := schema.NewTable("t")
	old.AddTable(oldT)

	if m := s.Diff(old, cfg.SchemaOptions()...); m.Count(schema.AddColumn) != 1 {
		t.Errorf("table-scoped diff = %q, want one ADD COLUMN", m.SQL())
	}
}

func TestInitLogging(t *testing.T) {
	defer logging.Init(os.Stderr, logging.LevelInfo, logging.FormatText)

	cfg := Default()
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	var buf bytes.Buffer
	if err := cfg.InitLogging(&buf); err != nil {
		t.Fatalf("InitLogging() error = %v", err)
	}
	logging.Debug("debug line")
	if !strings.Contains(buf.String(), `"msg":"debug line"`) {
		t.Errorf("debug JSON log not written: %q", buf.String())
	}
}
