package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for facultyscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facultyscan",
		Short: "Crawl a department site and collect its faculty directory",
		Long: `facultyscan crawls a department website breadth-first from a seed URL
until it finds the page whose main heading names the faculty listing.
Every fetched page is stored; the faculty records on the listing page are
extracted and replace the previously stored record set.

Pages and records are kept in a SQLite database under the XDG data
directory by default. PostgreSQL can be used with --db-driver postgres.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON lines")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewRecordsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
