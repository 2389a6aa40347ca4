// Package platform reports the identifiers of the host platform and the
// Ruby runtime that native artifacts are named after.
package platform

import "strings"

// Probe exposes the platform facts needed to name a native artifact.
// Implementations must return stable values for the lifetime of the
// process; all values are advisory identifiers, never errors.
type Probe interface {
	// OS returns the operating system identifier, e.g. "linux",
	// "darwin", "windows".
	OS() string

	// Arch returns the processor architecture identifier in the
	// convention used by release tarballs, e.g. "x86_64", "arm64".
	Arch() string

	// RubyVersion returns the Ruby version string, e.g. "3.0.6".
	RubyVersion() string

	// DLExt returns Ruby's native shared-library extension for this
	// platform (RbConfig DLEXT), e.g. "so", "bundle", "dll".
	DLExt() string
}

// Static is a fixed Probe. It serves tests and callers that resolve
// names for a target platform other than the host.
type Static struct {
	OSID    string
	ArchID  string
	Version string
	Ext     string
}

func (s Static) OS() string          { return s.OSID }
func (s Static) Arch() string        { return s.ArchID }
func (s Static) RubyVersion() string { return s.Version }
func (s Static) DLExt() string       { return s.Ext }

// IsWindows reports whether an OS identifier belongs to the Windows
// platform family, including the mingw/mswin/cygwin toolchain spellings
// that RbConfig reports on Windows Rubies.
func IsWindows(os string) bool {
	for _, w := range []string{"windows", "mingw", "mswin", "cygwin"} {
		if strings.Contains(os, w) {
			return true
		}
	}
	return false
}

// NormalizeOS collapses an RbConfig host_os value to its bare platform
// identifier: "darwin21" becomes "darwin", "linux-gnu" becomes "linux",
// and any Windows family spelling becomes "windows".
func NormalizeOS(hostOS string) string {
	switch {
	case IsWindows(hostOS):
		return "windows"
	case strings.HasPrefix(hostOS, "darwin"):
		return "darwin"
	case strings.HasPrefix(hostOS, "linux"):
		return "linux"
	}
	return hostOS
}
