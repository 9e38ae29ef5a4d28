package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Quality.ErrorThreshold != 2.5 {
		t.Fatalf("unexpected default threshold %v", cfg.Quality.ErrorThreshold)
	}
	if cfg.RevalidationGap() != time.Hour {
		t.Fatalf("unexpected default revalidation gap %s", cfg.RevalidationGap())
	}
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[quality]
error_threshold = 1.5
revalidation_gap_minutes = 30

[pipeline]
workers = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Quality.ErrorThreshold != 1.5 {
		t.Fatalf("unexpected threshold %v", cfg.Quality.ErrorThreshold)
	}
	if cfg.RevalidationGap() != 30*time.Minute {
		t.Fatalf("unexpected gap %s", cfg.RevalidationGap())
	}
	if cfg.Pipeline.Workers != 2 {
		t.Fatalf("unexpected workers %d", cfg.Pipeline.Workers)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadMissingExplicitPathUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.toml")
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected missing file")
	}
	if cfg.Quality.ErrorThreshold != 2.5 {
		t.Fatalf("unexpected threshold %v", cfg.Quality.ErrorThreshold)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"zero threshold": "[quality]\nerror_threshold = 0.0\n",
		"zero workers":   "[pipeline]\nworkers = 0\n",
		"bad format":     "[logging]\nformat = \"xml\"\n",
		"bad level":      "[logging]\nlevel = \"verbose\"\n",
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", name, err)
		}
		if _, _, _, err := Load(path); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestNormalizeExpandsPaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "~/sessions"
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if strings.HasPrefix(cfg.Paths.DataDir, "~") {
		t.Fatalf("expected expanded path, got %q", cfg.Paths.DataDir)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("expected absolute path, got %q", cfg.Paths.DataDir)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "error_threshold") {
		t.Fatal("sample missing quality section")
	}
}
