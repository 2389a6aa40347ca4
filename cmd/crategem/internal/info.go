package internal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crategem/crategem/internal/plan"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the resolved artifact names for this crate",
	Long: `Info loads Cargo.toml, probes the platform and prints every
identifier the build orchestration consumes: library name, shared
library filename, install path, runtime identifier and the tarball
filename for the crate's declared version.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	res, logger := newResolver()
	defer logger.Sync()

	m, err := res.Manifest()
	if err != nil {
		return err
	}

	name, ok, err := res.LibraryName()
	if err != nil {
		return err
	}
	if !ok {
		return plan.ErrMissingLibraryName
	}
	lib, _, _ := res.SharedLibrary()
	installPath, _, _ := res.ExtensionInstallPath()
	tarball, _, _ := res.TarballName(m.Version())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "library name:    %s\n", name)
	fmt.Fprintf(out, "crate version:   %s\n", m.Version())
	fmt.Fprintf(out, "shared library:  %s\n", lib)
	fmt.Fprintf(out, "install path:    %s\n", installPath)
	fmt.Fprintf(out, "runtime id:      %s\n", res.RubyID())
	fmt.Fprintf(out, "tarball:         %s\n", tarball)

	uri, ok, err := res.BinaryURIFormat()
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(out, "binary URI:      %s\n", uri)
	} else {
		fmt.Fprintf(out, "binary URI:      (downloading disabled)\n")
	}
	return nil
}
