// Package cli wires the rfc-master facade to a small cobra command surface:
// workspace init, document inspection, agent registration, and the MCP
// server entry point.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "rfc-master",
	Version: Version,
	Short:   "Versioned RFC documents with agent reviews",
	Long: `rfc-master manages RFC documents through their lifecycle:
versioned content edits, text-anchored comments, and multi-reviewer
review rounds driven by registered agents.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}
