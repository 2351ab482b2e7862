package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config must not error: %v", err)
	}
	if cfg.Source.Database != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[source]\ndatabase = \"/tmp/knowledgeC.db\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Source.Database == nil || *cfg.Source.Database != "/tmp/knowledgeC.db" {
		t.Fatalf("unexpected database value: %+v", cfg.Source)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
