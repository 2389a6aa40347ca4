// Package plan decides whether the native component is obtained by
// downloading a published tarball or by building the crate locally,
// and carries the names the chosen path needs. It performs no network
// I/O and runs no compiler; those belong to the layers it feeds.
package plan

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/crategem/crategem/internal/gitrepo"
	"github.com/crategem/crategem/internal/resolve"
)

// ErrMissingLibraryName reports a crate whose Cargo.toml declares
// neither [lib] name nor [package] name. Filenames composed from an
// absent name would be malformed, so planning fails fast instead.
var ErrMissingLibraryName = errors.New("library name not present in Cargo.toml (set [lib] name or [package] name)")

// Action is the outcome of planning.
type Action int

const (
	// Build compiles the crate locally.
	Build Action = iota
	// Download fetches a published tarball.
	Download
)

func (a Action) String() string {
	if a == Download {
		return "download"
	}
	return "build"
}

// Decision is the plan for obtaining the shared library.
type Decision struct {
	Action Action

	// Version is the crate version the decision concerns: the matched
	// tag's version when downloading, the manifest version when
	// building.
	Version string

	// Tag and URI are set only for Download.
	Tag string
	URI string

	// Tarball is the release tarball filename for Version. For Build
	// it names the archive a later publish step would produce.
	Tarball string

	// SharedLibrary and InstallPath locate the final artifact.
	SharedLibrary string
	InstallPath   string

	// CrateRoot is where cargo runs when building.
	CrateRoot string
}

// Planner combines the resolver with a tag lister into the
// build-vs-download decision.
type Planner struct {
	res    *resolve.Resolver
	lister gitrepo.TagLister
	remote string
	log    *zap.SugaredLogger
}

// Option configures a Planner.
type Option func(*Planner)

// WithTagLister sets the remote tag source. Without one, planning
// always decides to build.
func WithTagLister(lister gitrepo.TagLister, remote string) Option {
	return func(p *Planner) {
		p.lister = lister
		p.remote = remote
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Planner) {
		p.log = log
	}
}

// New creates a Planner around a resolver.
func New(res *resolve.Resolver, opts ...Option) *Planner {
	p := &Planner{res: res, log: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan computes the decision. It fails fast on an unreadable manifest
// or a missing library name; an absent URI template and an empty set
// of eligible tags are normal build-from-source outcomes.
func (p *Planner) Plan(ctx context.Context) (*Decision, error) {
	m, err := p.res.Manifest()
	if err != nil {
		return nil, err
	}

	lib, ok, err := p.res.SharedLibrary()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMissingLibraryName
	}
	installPath, _, err := p.res.ExtensionInstallPath()
	if err != nil {
		return nil, err
	}

	build := func(version string) (*Decision, error) {
		tarball, _, err := p.res.TarballName(version)
		if err != nil {
			return nil, err
		}
		return &Decision{
			Action:        Build,
			Version:       version,
			Tarball:       tarball,
			SharedLibrary: lib,
			InstallPath:   installPath,
			CrateRoot:     p.res.CrateRoot(),
		}, nil
	}

	template, ok, err := p.res.BinaryURIFormat()
	if err != nil {
		return nil, err
	}
	if !ok {
		p.log.Debugw("no binary URI template, building from source")
		return build(m.Version())
	}
	if p.lister == nil {
		p.log.Debugw("no tag source configured, building from source")
		return build(m.Version())
	}

	tags, err := p.lister.Tags(ctx, p.remote)
	if err != nil {
		return nil, err
	}
	tag, ok, err := p.latestEligible(tags)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.log.Debugw("no eligible release tag, building from source", "tags", len(tags))
		return build(m.Version())
	}

	version := strings.TrimPrefix(tag, "v")
	tarball, _, err := p.res.TarballName(version)
	if err != nil {
		return nil, err
	}
	uri := ExpandURI(template, tag, tarball, version)
	p.log.Debugw("downloading prebuilt binary", "tag", tag, "uri", uri)

	return &Decision{
		Action:        Download,
		Version:       version,
		Tag:           tag,
		URI:           uri,
		Tarball:       tarball,
		SharedLibrary: lib,
		InstallPath:   installPath,
		CrateRoot:     p.res.CrateRoot(),
	}, nil
}

// latestEligible filters tags through the tag pattern and picks the
// highest by semantic version order, falling back to natural order
// for tags a custom pattern admits that are not valid semver.
func (p *Planner) latestEligible(tags []string) (string, bool, error) {
	var best string
	for _, tag := range tags {
		ok, err := p.res.MatchesTag(tag)
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}
		if best == "" || tagLess(best, tag) {
			best = tag
		}
	}
	return best, best != "", nil
}

func tagLess(a, b string) bool {
	if semver.IsValid(a) && semver.IsValid(b) {
		return semver.Compare(a, b) < 0
	}
	return naturalCompare(a, b) < 0
}

// naturalCompare orders strings with embedded numbers by numeric
// value, so that "rel-10" sorts above "rel-2".
func naturalCompare(a, b string) int {
	for a != "" || b != "" {
		an, arest := leadingInt(a)
		bn, brest := leadingInt(b)
		if an != "" || bn != "" {
			if c := compareInt(an, bn); c != 0 {
				return c
			}
			a, b = arest, brest
			continue
		}
		ac, bc := byte(0), byte(0)
		if a != "" {
			ac, a = a[0], a[1:]
		}
		if b != "" {
			bc, b = b[0], b[1:]
		}
		if ac != bc {
			if ac < bc {
				return -1
			}
			return 1
		}
	}
	return 0
}

func leadingInt(s string) (digits, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

func compareInt(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// ExpandURI interpolates a download URI template, substituting the
// {tag}, {filename} and {version} placeholders.
func ExpandURI(template, tag, filename, version string) string {
	return strings.NewReplacer(
		"{tag}", tag,
		"{filename}", filename,
		"{version}", version,
	).Replace(template)
}
