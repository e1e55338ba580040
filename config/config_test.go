package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".diagctl.yaml")
	content := "max_cycles_reported: 5\ncolor: false\nshow_cycle_graphs: true\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxCyclesReported != 5 || cfg.Color != false || cfg.ShowCycleGraphs != true {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsNegativeMaxCycles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".diagctl.yaml")
	if err := os.WriteFile(path, []byte("max_cycles_reported: -1\n"), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for a negative max_cycles_reported")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/.diagctl.yaml")
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("unexpected error validating default config: %v", err)
	}
}
