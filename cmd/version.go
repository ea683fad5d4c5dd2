package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/webcheck/backend/api"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, api.Version)
		},
	}
}
