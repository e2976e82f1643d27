// Package cli provides the Cobra command structure for mdvaultd.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mdvault/mdvaultd/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdvaultd command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdvaultd",
		Short: "A REST API server over a markdown vault",
		Long: `mdvaultd serves a directory of markdown notes over a REST API.

It exposes vault file operations, a targeted PATCH engine for headings,
block references, and frontmatter fields, periodic notes, full-text and
frontmatter search, and a command registry. All endpoints except the
status and health checks require a bearer API key.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newServeCommand(info, &configPath, &color))
	rootCmd.AddCommand(newKeygenCommand(&color))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
