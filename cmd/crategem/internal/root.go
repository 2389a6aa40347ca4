package internal

import (
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crategem/crategem/internal/debuglog"
	"github.com/crategem/crategem/internal/envread"
	"github.com/crategem/crategem/internal/resolve"
)

var (
	rubyProjectPath  string
	crateProjectPath string
	binaryURIFormat  string
	gitTagRegex      string
	debugFilename    string
)

var rootCmd = &cobra.Command{
	Use:   "crategem",
	Short: "crategem names and resolves the native artifacts bridging a Rust crate into a Ruby gem",
	Long: `crategem computes the identifiers a gem with a Rust native extension
depends on: the linker-safe library name, the platform shared-library
filename, the release tarball filename and download URI, and whether a
published release tag carries a prebuilt binary or the crate must be
built from source.`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rubyProjectPath, "ruby-project", "", "gem project root (default: current directory)")
	pf.StringVar(&crateProjectPath, "crate-project", "", "crate root holding Cargo.toml (default: current directory)")
	pf.StringVar(&binaryURIFormat, "binary-uri-format", "", "download URI template with {tag}, {filename}, {version} placeholders")
	pf.StringVar(&gitTagRegex, "git-tag-regex", "", "release tag pattern (default: "+resolve.DefaultTagPattern+")")
	pf.StringVar(&debugFilename, "debug-filename", "", "write verbose diagnostics to this file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

// newResolver builds the resolver and logger shared by all commands.
func newResolver() (*resolve.Resolver, *zap.SugaredLogger) {
	env := envread.OS()
	logger := debuglog.New(env, debugFilename)
	res := resolve.New(
		resolve.WithOptions(resolve.Options{
			DebugFilename:    debugFilename,
			BinaryURIFormat:  binaryURIFormat,
			GitTagRegex:      gitTagRegex,
			RubyProjectPath:  rubyProjectPath,
			CrateProjectPath: crateProjectPath,
		}),
		resolve.WithEnv(env),
		resolve.WithLogger(logger),
	)
	return res, logger
}
