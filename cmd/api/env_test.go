package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	t.Setenv("POLY_ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	if err := loadDotEnv(); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("POLY_DATA_DIR=from-file\nPOLY_MAX_DEGREE=7\n"), 0o644); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	t.Setenv("POLY_ENV_FILE", path)
	t.Setenv("POLY_DATA_DIR", "from-env")
	t.Setenv("POLY_MAX_DEGREE", "")
	os.Unsetenv("POLY_MAX_DEGREE")

	if err := loadDotEnv(); err != nil {
		t.Fatalf("loading env file: %v", err)
	}

	if got := os.Getenv("POLY_DATA_DIR"); got != "from-env" {
		t.Fatalf("expected process value to win, got %q", got)
	}
	if got := os.Getenv("POLY_MAX_DEGREE"); got != "7" {
		t.Fatalf("expected value from file, got %q", got)
	}
}
