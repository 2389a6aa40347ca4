// Copyright 2026 The crategem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve derives the artifact names, paths and policy inputs
// that bridge a Rust crate into a Ruby gem: the linker-safe library
// name, the platform shared-library filename, the release tarball
// filename, the download URI template and the release tag pattern.
//
// One Resolver serves one build invocation. Every derived value is
// computed on first access and cached for the life of the process;
// repeated calls are pure cache hits with no re-reads of the
// environment or the disk.
package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/crategem/crategem/internal/envread"
	"github.com/crategem/crategem/internal/manifest"
	"github.com/crategem/crategem/internal/platform"
)

// EnvBinaryURIFormat overrides the download URI template. It has the
// highest precedence of the three template sources.
const EnvBinaryURIFormat = "CRATEGEM_BINARY_URI_FORMAT"

// DefaultTagPattern is the release tag pattern used when neither the
// options nor the crate metadata override it: a bare v-prefixed
// three-component version, anchored at both ends.
const DefaultTagPattern = `^(v\d+\.\d+\.\d+)$`

// libDir is the gem subdirectory that the Ruby runtime loads native
// extensions from.
const libDir = "lib"

// Resolver computes artifact names for one build invocation.
type Resolver struct {
	opts  Options
	env   envread.Env
	probe platform.Probe
	man   *manifest.Reader
	log   *zap.SugaredLogger

	rubyRootOnce  sync.Once
	rubyRoot      string
	crateRootOnce sync.Once
	crateRoot     string

	manOnce sync.Once
	mf      *manifest.Manifest
	manErr  error

	extOnce sync.Once
	ext     string

	uriOnce sync.Once
	uri     string
	uriOK   bool
	uriErr  error

	patOnce sync.Once
	pat     *regexp.Regexp
	patErr  error
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOptions supplies the configuration bag.
func WithOptions(opts Options) Option {
	return func(r *Resolver) {
		r.opts = opts
	}
}

// WithEnv substitutes the environment reader.
func WithEnv(env envread.Env) Option {
	return func(r *Resolver) {
		r.env = env
	}
}

// WithProbe substitutes the platform probe.
func WithProbe(p platform.Probe) Option {
	return func(r *Resolver) {
		r.probe = p
	}
}

// WithManifestReader substitutes the manifest reader.
func WithManifestReader(m *manifest.Reader) Option {
	return func(r *Resolver) {
		r.man = m
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// New creates a Resolver. Defaults: real process environment, host
// platform probe, fresh manifest reader, no-op logger.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		env:   envread.OS(),
		probe: platform.NewHost(),
		man:   manifest.NewReader(),
		log:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RubyProjectRoot returns the gem project root: the configured path,
// else the current working directory.
func (r *Resolver) RubyProjectRoot() string {
	r.rubyRootOnce.Do(func() {
		r.rubyRoot = rootOrCwd(r.opts.RubyProjectPath)
	})
	return r.rubyRoot
}

// CrateRoot returns the crate root holding Cargo.toml: the configured
// path, else the current working directory.
func (r *Resolver) CrateRoot() string {
	r.crateRootOnce.Do(func() {
		r.crateRoot = rootOrCwd(r.opts.CrateProjectPath)
	})
	return r.crateRoot
}

func rootOrCwd(configured string) string {
	if configured != "" {
		return configured
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// JoinUnder composes a path below root. It performs no existence
// checks; whether the path exists is the caller's concern.
func JoinUnder(root string, segments ...string) string {
	return filepath.Join(append([]string{root}, segments...)...)
}

// Manifest returns the crate manifest, loading it on first call.
func (r *Resolver) Manifest() (*manifest.Manifest, error) {
	r.manOnce.Do(func() {
		r.mf, r.manErr = r.man.Load(r.CrateRoot())
		if r.manErr != nil {
			r.log.Errorw("manifest load failed", "crateRoot", r.CrateRoot(), "err", r.manErr)
		}
	})
	return r.mf, r.manErr
}

// LibraryName returns the linker-safe library name: the [lib] name if
// declared, else the [package] name, with every hyphen replaced by an
// underscore. ok is false when the manifest declares neither; callers
// must validate before composing filenames. The error is non-nil only
// when the manifest itself cannot be read.
func (r *Resolver) LibraryName() (name string, ok bool, err error) {
	m, err := r.Manifest()
	if err != nil {
		return "", false, err
	}
	raw := m.Lib.Name
	if raw == "" {
		raw = m.Package.Name
	}
	if raw == "" {
		return "", false, nil
	}
	// Hyphens are legal in crate names but not in linked symbols, so
	// cargo (and therefore the built artifact) uses underscores.
	return strings.ReplaceAll(raw, "-", "_"), true, nil
}

// SharedExt returns the extension of the shared library the Ruby
// runtime links against on this platform.
func (r *Resolver) SharedExt() string {
	r.extOnce.Do(func() {
		switch {
		case r.probe.DLExt() == "bundle":
			// macOS Rubies report the .bundle loading suffix, but the
			// artifact cargo produces and the loader resolves for
			// linking is a .dylib.
			r.ext = "dylib"
		case platform.IsWindows(r.probe.OS()):
			r.ext = "dll"
		default:
			r.ext = r.probe.DLExt()
		}
	})
	return r.ext
}

// SharedLibrary returns the platform filename of the crate's shared
// library: lib{name}.{ext}, without the lib prefix on Windows.
func (r *Resolver) SharedLibrary() (string, bool, error) {
	name, ok, err := r.LibraryName()
	if !ok || err != nil {
		return "", ok, err
	}
	filename := fmt.Sprintf("%s.%s", name, r.SharedExt())
	if !platform.IsWindows(r.probe.OS()) {
		filename = "lib" + filename
	}
	return filename, true, nil
}

// ExtensionInstallPath returns the path where the built or downloaded
// shared library must reside for the gem to load it.
func (r *Resolver) ExtensionInstallPath() (string, bool, error) {
	lib, ok, err := r.SharedLibrary()
	if !ok || err != nil {
		return "", ok, err
	}
	return JoinUnder(r.RubyProjectRoot(), libDir, lib), true, nil
}

// RubyID returns the runtime identifier embedded in tarball names:
// "ruby" plus the major and minor version digits, e.g. "ruby30" for
// Ruby 3.0.x.
func (r *Resolver) RubyID() string {
	version := r.probe.RubyVersion()
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return "ruby" + strings.ReplaceAll(version, ".", "")
	}
	return "ruby" + parts[0] + parts[1]
}

// TarballName returns the release tarball filename for a version:
// {name}-{version}-{rubyID}-{os}-{arch}.tar.gz. Producer and consumer
// must agree on this byte for byte, so nothing here depends on
// anything but the five fields.
func (r *Resolver) TarballName(version string) (string, bool, error) {
	name, ok, err := r.LibraryName()
	if !ok || err != nil {
		return "", ok, err
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s.tar.gz",
		name, version, r.RubyID(), r.probe.OS(), r.probe.Arch()), true, nil
}

// BinaryURIFormat resolves the download URI template. Precedence:
// CRATEGEM_BINARY_URI_FORMAT, then the explicit option, then the
// crate's [package.metadata.crategem] block. ok is false when all
// three are absent, which means downloading is disabled and the
// caller must build from source.
func (r *Resolver) BinaryURIFormat() (string, bool, error) {
	r.uriOnce.Do(func() {
		if v, ok := r.env.LookupEnv(EnvBinaryURIFormat); ok && v != "" {
			r.uri, r.uriOK = v, true
			r.log.Debugw("binary URI template from environment", "template", v)
			return
		}
		if r.opts.BinaryURIFormat != "" {
			r.uri, r.uriOK = r.opts.BinaryURIFormat, true
			return
		}
		m, err := r.Manifest()
		if err != nil {
			r.uriErr = err
			return
		}
		if v := m.ToolConfig().BinaryURIFormat; v != "" {
			r.uri, r.uriOK = v, true
		}
	})
	return r.uri, r.uriOK, r.uriErr
}

// TagPattern resolves the release tag pattern: the explicit option,
// then the crate metadata, then DefaultTagPattern. An unreadable
// manifest counts as "no metadata override" here, since tag matching
// does not depend on manifest contents the way naming does.
// Compilation errors in a user-supplied pattern are reported, never
// masked by the default.
func (r *Resolver) TagPattern() (*regexp.Regexp, error) {
	r.patOnce.Do(func() {
		expr := r.opts.GitTagRegex
		if expr == "" {
			if m, err := r.Manifest(); err == nil {
				expr = m.ToolConfig().GitTagRegex
			}
		}
		if expr == "" {
			expr = DefaultTagPattern
		}
		r.pat, r.patErr = regexp.Compile(expr)
		if r.patErr != nil {
			r.patErr = fmt.Errorf("invalid tag pattern %q: %w", expr, r.patErr)
		}
	})
	return r.pat, r.patErr
}

// MatchesTag reports whether a release tag is eligible to carry a
// prebuilt tarball. A mismatch is a normal outcome, not an error.
func (r *Resolver) MatchesTag(tag string) (bool, error) {
	pat, err := r.TagPattern()
	if err != nil {
		return false, err
	}
	return pat.MatchString(tag), nil
}
