package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			name := color.New(color.Bold).Sprint("lifecycle-generator")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, version)
		},
	}
}
