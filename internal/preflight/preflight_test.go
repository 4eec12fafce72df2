package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"avclapper/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckBinary(t *testing.T) {
	present := filepath.Join(t.TempDir(), "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	if result := CheckBinary("Present", present); !result.Passed {
		t.Fatalf("expected pass, got %q", result.Detail)
	}
	if result := CheckBinary("Missing", "clearly-not-present-binary"); result.Passed || result.Detail == "" {
		t.Fatalf("expected failure with detail, got %#v", result)
	}
	if result := CheckBinary("Empty", " "); result.Passed {
		t.Fatal("expected failure for unconfigured command")
	}
}

func TestRunAll(t *testing.T) {
	if RunAll(nil) != nil {
		t.Fatal("expected nil results for nil config")
	}

	dataDir := t.TempDir()
	probe := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(probe, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	cfg := config.Default()
	cfg.Paths.DataDir = dataDir
	cfg.Render.FFprobe = probe
	cfg.History.Path = filepath.Join(dataDir, "history.db")

	results := RunAll(&cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %#v", len(results), results)
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %#v", failed)
	}

	cfg.Paths.LogDir = filepath.Join(dataDir, "missing-logs")
	results = RunAll(&cfg)
	if failed := Failed(results); len(failed) != 1 || failed[0].Name != "Log directory" {
		t.Fatalf("expected log directory failure, got %#v", failed)
	}
}
