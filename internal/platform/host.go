package platform

import (
	"context"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sys/execabs"
)

// rbconfigScript prints the four RbConfig values we need, one per line.
const rbconfigScript = `print RbConfig::CONFIG["host_os"], "\n", RbConfig::CONFIG["host_cpu"], "\n", RUBY_VERSION, "\n", RbConfig::CONFIG["DLEXT"]`

const probeTimeout = 10 * time.Second

// Host probes the Ruby interpreter on the current machine. The probe
// runs at most once; if ruby is unavailable the ambient defaults
// derived from the Go runtime are used instead.
type Host struct {
	ruby string
	run  func(ctx context.Context, name string, args ...string) (string, error)

	once sync.Once
	info Static
}

// HostOption configures a Host probe.
type HostOption func(*Host)

// WithRubyPath sets a custom ruby executable path.
func WithRubyPath(path string) HostOption {
	return func(h *Host) {
		h.ruby = path
	}
}

// NewHost creates a probe for the current machine's Ruby.
func NewHost(opts ...HostOption) *Host {
	h := &Host{ruby: "ruby", run: runCommand}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) OS() string          { return h.probe().OSID }
func (h *Host) Arch() string        { return h.probe().ArchID }
func (h *Host) RubyVersion() string { return h.probe().Version }
func (h *Host) DLExt() string       { return h.probe().Ext }

func (h *Host) probe() Static {
	h.once.Do(func() {
		h.info = ambientDefaults()

		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()

		out, err := h.run(ctx, h.ruby, "-rrbconfig", "-e", rbconfigScript)
		if err != nil {
			return
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 4 {
			return
		}
		h.info = Static{
			OSID:    NormalizeOS(strings.TrimSpace(lines[0])),
			ArchID:  strings.TrimSpace(lines[1]),
			Version: strings.TrimSpace(lines[2]),
			Ext:     strings.TrimSpace(lines[3]),
		}
	})
	return h.info
}

// ambientDefaults derives platform identifiers from the Go runtime for
// machines without a usable ruby executable.
func ambientDefaults() Static {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "386":
		arch = "x86"
	}

	ext := "so"
	switch runtime.GOOS {
	case "darwin":
		ext = "bundle"
	case "windows":
		ext = "dll"
	}

	return Static{
		OSID:    runtime.GOOS,
		ArchID:  arch,
		Version: defaultRubyVersion,
		Ext:     ext,
	}
}

// defaultRubyVersion is used only when no ruby executable can be
// probed; it matches the oldest release the tool supports.
const defaultRubyVersion = "3.0.0"

func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	out, err := execabs.CommandContext(ctx, name, args...).Output()
	return string(out), err
}
