package main

import (
	"fmt"

	"github.com/nao1215/facultyscan/internal/report"
	"github.com/spf13/cobra"
)

// NewRecordsCmd creates the records command.
func NewRecordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List the stored faculty records",
		Long: `Records prints the faculty records currently in the record store,
in the order they were extracted.

Examples:
  # Show the records as text
  facultyscan records

  # Export them as JSON
  facultyscan records -j -o professors.json`,
		Args: cobra.NoArgs,
		RunE: runRecordsCmd,
	}

	addConfigFlag(cmd)
	addStorageFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runRecordsCmd executes the records command.
func runRecordsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.ListRecords(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	return writeReport(cmd, cfg, func(w report.Writer) error {
		_, err := w.WriteRecords(records)
		return err
	})
}
