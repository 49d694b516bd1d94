package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/linkly/internal/build"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "linkly %s (commit %s, branch %s)\n", build.Version, build.Commit, build.Branch)
		},
	}
}
