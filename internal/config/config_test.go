package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.OutputDir != "data" {
		t.Errorf("expected output dir data, got %s", cfg.OutputDir)
	}
	if cfg.IIIF.NAAN != "12148" {
		t.Errorf("expected NAAN 12148, got %s", cfg.IIIF.NAAN)
	}
	if cfg.EditorRecord() != nil {
		t.Error("expected no editor by default")
	}
}

func TestLoad(t *testing.T) {
	t.Run("defaults without config file", func(t *testing.T) {
		chdir(t, t.TempDir())
		t.Setenv("HOME", t.TempDir())

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Metadata.Timeout != 30*time.Second {
			t.Errorf("expected 30s timeout, got %s", cfg.Metadata.Timeout)
		}
		if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
			t.Errorf("unexpected log config %+v", cfg.Log)
		}
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "alto2tei.yaml")
		content := `output_dir: out
metadata:
  timeout: 5s
editor:
  forename: Kelly
  surname: Christensen
  orcid: 000000027236874X
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.OutputDir != "out" {
			t.Errorf("expected out, got %s", cfg.OutputDir)
		}
		if cfg.Metadata.Timeout != 5*time.Second {
			t.Errorf("expected 5s, got %s", cfg.Metadata.Timeout)
		}
		if cfg.IIIF.BaseURL != "https://gallica.bnf.fr/iiif" {
			t.Errorf("expected default IIIF base URL, got %s", cfg.IIIF.BaseURL)
		}
		e := cfg.EditorRecord()
		if e == nil || e.ID() != "KC" || e.Resp != "restructured by" {
			t.Errorf("unexpected editor %+v", e)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected validation error: %v", err)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "alto2tei.yaml")
		if err := os.WriteFile(path, []byte("output_dir: out\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("ALTO2TEI_OUTPUT_DIR", "from-env")
		t.Setenv("ALTO2TEI_IIIF_NAAN", "99999")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.OutputDir != "from-env" || cfg.IIIF.NAAN != "99999" {
			t.Errorf("environment not applied: %s, %s", cfg.OutputDir, cfg.IIIF.NAAN)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, "outputdir"},
		{"relative IIIF URL", func(c *Config) { c.IIIF.BaseURL = "gallica/iiif" }, "baseurl"},
		{"non numeric NAAN", func(c *Config) { c.IIIF.NAAN = "bnf" }, "naan"},
		{"short timeout", func(c *Config) { c.Metadata.Timeout = time.Millisecond }, "timeout"},
		{"bad ORCID", func(c *Config) { c.Editor.Surname = "C"; c.Editor.ORCID = "1234" }, "orcid"},
		{"ORCID without surname", func(c *Config) { c.Editor.ORCID = "000000027236874X" }, "surname"},
		{"unknown log level", func(c *Config) { c.Log.Level = "verbose" }, "level"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "format"},
		{"no font", func(c *Config) { c.Proof.Font = "" }, "font"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.field) {
				t.Errorf("expected error about %s, got %v", tt.field, err)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# alto2tei configuration", "output_dir: data", "naan: \"12148\"", "timeout: 30s"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("default config missing %q", want)
		}
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("written config does not validate: %v", err)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("expected error when the file exists")
	}
}

func TestLogConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	log := LogConfig{Level: "warn", Format: "json"}.Logger(&buf)

	log.Info("hidden")
	log.Warn("shown", "dir", "btv1b8449691v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"dir":"btv1b8449691v"`) {
		t.Errorf("unexpected JSON log output %q", out)
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
