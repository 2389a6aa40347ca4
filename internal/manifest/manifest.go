// Copyright 2026 The crategem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest loads and caches the Cargo.toml descriptor of the
// crate being bridged into a gem.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// ErrManifestUnreadable reports a Cargo.toml that is missing or not
// valid TOML. All downstream naming depends on the manifest, so this
// error must reach the caller.
var ErrManifestUnreadable = errors.New("manifest unreadable")

// Manifest is the parsed subset of Cargo.toml that artifact naming
// consumes. Absent tables decode to zero values; absence is a valid
// state, not an error.
type Manifest struct {
	Package Package `toml:"package"`
	Lib     Lib     `toml:"lib"`
}

// Package is the [package] table.
type Package struct {
	Name     string   `toml:"name"`
	Version  string   `toml:"version"`
	Metadata Metadata `toml:"metadata"`
}

// Lib is the optional [lib] table.
type Lib struct {
	Name string `toml:"name"`
}

// Metadata is the [package.metadata] table.
type Metadata struct {
	Crategem ToolConfig `toml:"crategem"`
}

// ToolConfig is the [package.metadata.crategem] table: per-crate
// overrides for the resolver.
type ToolConfig struct {
	BinaryURIFormat string `toml:"binary-uri-format"`
	GitTagRegex     string `toml:"git-tag-regex"`
}

// Version returns the crate's declared version string.
func (m *Manifest) Version() string {
	return m.Package.Version
}

// ToolConfig returns the crategem metadata block, zero-valued when the
// crate declares none.
func (m *Manifest) ToolConfig() ToolConfig {
	return m.Package.Metadata.Crategem
}

// Reader loads manifests and caches them per crate root. A manifest
// file is read from disk at most once per process.
type Reader struct {
	readFile func(string) ([]byte, error)

	mu    sync.Mutex
	cache map[string]*Manifest
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithReadFile substitutes the file reading function, for tests.
func WithReadFile(fn func(string) ([]byte, error)) ReaderOption {
	return func(r *Reader) {
		r.readFile = fn
	}
}

// NewReader creates a manifest reader with an empty cache.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{
		readFile: os.ReadFile,
		cache:    make(map[string]*Manifest),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load parses {crateRoot}/Cargo.toml. Subsequent calls for the same
// root return the cached manifest without touching the disk.
func (r *Reader) Load(crateRoot string) (*Manifest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.cache[crateRoot]; ok {
		return m, nil
	}

	path := filepath.Join(crateRoot, "Cargo.toml")
	data, err := r.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestUnreadable, path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestUnreadable, path, err)
	}

	r.cache[crateRoot] = &m
	return &m, nil
}
