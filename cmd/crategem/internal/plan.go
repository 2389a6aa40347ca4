package internal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crategem/crategem/internal/gitrepo"
	"github.com/crategem/crategem/internal/plan"
)

var planRemote string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Decide whether to download a prebuilt binary or build from source",
	Long: `Plan combines the resolved names with the remote's published release
tags. If a binary URI template is configured and an eligible tag
exists, it prints the tarball and URI to download; otherwise it prints
the build-from-source plan.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planRemote, "remote", "", "repository to query for release tags, e.g. https://github.com/owner/repo")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	res, logger := newResolver()
	defer logger.Sync()

	opts := []plan.Option{plan.WithLogger(logger)}
	if planRemote != "" {
		opts = append(opts, plan.WithTagLister(gitrepo.NewGit(), planRemote))
	}
	planner := plan.New(res, opts...)

	d, err := planner.Plan(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "action:          %s\n", d.Action)
	fmt.Fprintf(out, "version:         %s\n", d.Version)
	if d.Action == plan.Download {
		fmt.Fprintf(out, "tag:             %s\n", d.Tag)
		fmt.Fprintf(out, "uri:             %s\n", d.URI)
	} else {
		fmt.Fprintf(out, "crate root:      %s\n", d.CrateRoot)
	}
	fmt.Fprintf(out, "tarball:         %s\n", d.Tarball)
	fmt.Fprintf(out, "shared library:  %s\n", d.SharedLibrary)
	fmt.Fprintf(out, "install path:    %s\n", d.InstallPath)
	return nil
}
