package internal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crategem/crategem/internal/gitrepo"
)

var tagsCmd = &cobra.Command{
	Use:   "tags <remote>",
	Short: "List a remote's tags, marking those eligible for prebuilt binaries",
	Args:  cobra.ExactArgs(1),
	RunE:  runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	res, logger := newResolver()
	defer logger.Sync()

	tags, err := gitrepo.NewGit().Tags(context.Background(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, tag := range tags {
		ok, err := res.MatchesTag(tag)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintf(out, "%s (eligible)\n", tag)
		} else {
			fmt.Fprintln(out, tag)
		}
	}
	return nil
}
