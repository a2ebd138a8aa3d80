package home

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("with explicit path", func(t *testing.T) {
		dir, err := New("/tmp/test-lectern")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if dir.Path() != "/tmp/test-lectern" {
			t.Errorf("expected path /tmp/test-lectern, got %s", dir.Path())
		}
	})

	t.Run("with empty path uses default", func(t *testing.T) {
		dir, err := New("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, DefaultDirName)
		if dir.Path() != expected {
			t.Errorf("expected path %s, got %s", expected, dir.Path())
		}
	})
}

func TestDir_ConfigPath(t *testing.T) {
	dir, _ := New("/tmp/test-lectern")
	expected := "/tmp/test-lectern/config.yaml"
	if dir.ConfigPath() != expected {
		t.Errorf("expected %s, got %s", expected, dir.ConfigPath())
	}
}

func TestDir_EnsureExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home")
	dir, _ := New(path)

	if dir.Exists() {
		t.Fatal("directory should not exist yet")
	}
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dir.Exists() {
		t.Error("directory should exist after EnsureExists")
	}
	if dir.ConfigExists() {
		t.Error("config file should not exist in a fresh home")
	}

	if err := os.WriteFile(dir.ConfigPath(), []byte("server:\n  port: 16009\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if !dir.ConfigExists() {
		t.Error("config file should be detected")
	}
}
