package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeManifest(t, `
[package]
name = "my-crate"
version = "1.0.0"

[lib]
name = "my_lib"

[package.metadata.crategem]
binary-uri-format = "https://example.com/{tag}/{filename}"
git-tag-regex = '^rel-\d+$'
`)

	m, err := NewReader().Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if m.Package.Name != "my-crate" {
		t.Errorf("Package.Name = %q, want my-crate", m.Package.Name)
	}
	if m.Version() != "1.0.0" {
		t.Errorf("Version() = %q, want 1.0.0", m.Version())
	}
	if m.Lib.Name != "my_lib" {
		t.Errorf("Lib.Name = %q, want my_lib", m.Lib.Name)
	}
	tc := m.ToolConfig()
	if tc.BinaryURIFormat != "https://example.com/{tag}/{filename}" {
		t.Errorf("BinaryURIFormat = %q", tc.BinaryURIFormat)
	}
	if tc.GitTagRegex != `^rel-\d+$` {
		t.Errorf("GitTagRegex = %q", tc.GitTagRegex)
	}
}

func TestLoadAbsentTables(t *testing.T) {
	dir := writeManifest(t, `
[package]
name = "bare"
version = "0.1.0"
`)

	m, err := NewReader().Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Absence of [lib] and [package.metadata.crategem] is a valid
	// state, represented as zero values.
	if m.Lib.Name != "" {
		t.Errorf("Lib.Name = %q, want empty", m.Lib.Name)
	}
	if tc := m.ToolConfig(); tc != (ToolConfig{}) {
		t.Errorf("ToolConfig() = %+v, want zero value", tc)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewReader().Load(t.TempDir())
	if !errors.Is(err, ErrManifestUnreadable) {
		t.Errorf("Load of missing file = %v, want ErrManifestUnreadable", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := writeManifest(t, `[package`)

	_, err := NewReader().Load(dir)
	if !errors.Is(err, ErrManifestUnreadable) {
		t.Errorf("Load of malformed file = %v, want ErrManifestUnreadable", err)
	}
}

func TestLoadCaches(t *testing.T) {
	reads := 0
	content := []byte("[package]\nname = \"cached\"\nversion = \"2.0.0\"\n")
	r := NewReader(WithReadFile(func(path string) ([]byte, error) {
		reads++
		return content, nil
	}))

	first, err := r.Load("/crate")
	if err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	second, err := r.Load("/crate")
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	if reads != 1 {
		t.Errorf("manifest read %d times, want 1", reads)
	}
	if first != second {
		t.Error("second Load returned a different manifest instance")
	}
	if *first != *second {
		t.Errorf("cached manifests differ: %+v vs %+v", first, second)
	}

	// A different root is a different cache entry.
	if _, err := r.Load("/other"); err != nil {
		t.Fatalf("Load of second root failed: %v", err)
	}
	if reads != 2 {
		t.Errorf("manifest read %d times after second root, want 2", reads)
	}
}
