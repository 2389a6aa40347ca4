package resolve

// Options is the immutable configuration bag supplied when a Resolver
// is constructed. Every field is optional; zero values mean "use the
// default" (see the field comments). Options are never mutated after
// construction.
type Options struct {
	// DebugFilename is the destination for verbose diagnostic output.
	// The CRATEGEM_DEBUG_FILENAME environment variable takes
	// precedence; when both are empty, diagnostics are discarded.
	DebugFilename string

	// BinaryURIFormat is the download URI template, interpolated later
	// with {tag}, {filename} and {version}. Empty leaves the template
	// to the environment or the crate metadata; when all three are
	// absent, downloading is disabled.
	BinaryURIFormat string

	// GitTagRegex overrides the release tag pattern. Empty falls back
	// to the crate metadata, then to DefaultTagPattern.
	GitTagRegex string

	// RubyProjectPath is the gem project root. Empty means the current
	// working directory.
	RubyProjectPath string

	// CrateProjectPath is the crate root holding Cargo.toml. Empty
	// means the current working directory.
	CrateProjectPath string
}
