package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/clawguard"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clawguard %s\n", clawguard.Version)
		},
	}
}
