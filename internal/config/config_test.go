package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Dir != "." {
		t.Errorf("default output.dir = %q", cfg.Output.Dir)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("default log = %+v", cfg.Log)
	}
	if cfg.UI.MaxColumnWidth != 30 {
		t.Errorf("default ui.max_column_width = %d", cfg.UI.MaxColumnWidth)
	}
}

func TestLoadFile(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "output:\n  dir: /tmp/exports\nlog:\n  format: json\nui:\n  max_column_width: 12\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Dir != "/tmp/exports" {
		t.Errorf("output.dir = %q", cfg.Output.Dir)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format = %q", cfg.Log.Format)
	}
	if cfg.UI.MaxColumnWidth != 12 {
		t.Errorf("ui.max_column_width = %d", cfg.UI.MaxColumnWidth)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("SHEETPEEK_OUTPUT_DIR", "/srv/out")
	t.Setenv("SHEETPEEK_LOG_LEVEL", "debug")

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Dir != "/srv/out" {
		t.Errorf("output.dir = %q", cfg.Output.Dir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q", cfg.Log.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	if _, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing --config file")
	}
}

func TestValidate(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Log.Format = "xml"
	cfg.UI.MaxColumnWidth = 0

	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"log.format", "ui.max_column_width"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}
