package debuglog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crategem/crategem/internal/envread"
)

func TestNewWithoutFilename(t *testing.T) {
	logger := New(envread.Map{}, "")
	if logger == nil {
		t.Fatal("New returned nil logger")
	}
	// The no-op logger must accept writes without side effects.
	logger.Debugw("discarded", "key", "value")
	logger.Sync()
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger := New(envread.Map{EnvDebugFilename: path}, "")

	logger.Debugw("resolving artifact names", "library", "my_crate")
	if err := logger.Sync(); err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("debug file not written: %v", err)
	}
	if !strings.Contains(string(data), "resolving artifact names") {
		t.Errorf("debug file missing log line, got: %s", data)
	}
}

func TestNewWithUnopenableFile(t *testing.T) {
	logger := New(envread.Map{EnvDebugFilename: filepath.Join(t.TempDir(), "missing", "deep", "debug.log")}, "")
	if logger == nil {
		t.Fatal("New returned nil logger for unopenable file")
	}
	logger.Debugw("discarded")
}

func TestNewEnvWinsOverConfigured(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "env.log")
	optPath := filepath.Join(dir, "opt.log")

	logger := New(envread.Map{EnvDebugFilename: envPath}, optPath)
	logger.Debugw("precedence check")
	logger.Sync()

	if _, err := os.Stat(envPath); err != nil {
		t.Errorf("env-named file not written: %v", err)
	}
	if _, err := os.Stat(optPath); err == nil {
		t.Error("option-named file written although the environment override was set")
	}
}

func TestNewConfiguredFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opt.log")

	logger := New(envread.Map{}, path)
	logger.Debugw("configured fallback")
	logger.Sync()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("configured debug file not written: %v", err)
	}
}
