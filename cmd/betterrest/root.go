package main

import (
	"io"

	"github.com/spf13/cobra"
)

// newRootCmd is the base command for the CLI.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "betterrest",
		Short:         "Recommend a bedtime from a trained sleep model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newEstimateCmd())
	return root
}
