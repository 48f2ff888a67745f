package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/recdex/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show recdex version and build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Version:    %s\n", version.Version)
	fmt.Fprintf(out, "Commit:     %s\n", version.Commit)
	fmt.Fprintf(out, "Build Date: %s\n", version.Date)
	fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
	return nil
}
