// Command import-opportunities loads legacy opportunities from an Excel
// workbook into the opportunities and opportunity_sites tables.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"enertika/internal/config"
	"enertika/internal/logger"
	"enertika/internal/migration"
	"enertika/internal/repository/postgres"
	"enertika/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "import-opportunities",
	Short: "Import legacy opportunities from an Excel workbook",
	Long: `Reads the first sheet of the workbook, resolves the technology, request type,
status and close reason columns against the active catalogs, resolves the
responsible and seller names against the user directory, creates missing
clients and inserts one opportunity with one site per row.

Rows that fail are reported and skipped; the rest of the sheet is still imported.`,
	Example: `  # Validate the workbook without writing anything
  import-opportunities --file legacy.xlsx --dry-run

  # Import for real
  import-opportunities --file legacy.xlsx`,
	SilenceUsage: true,
	RunE:         runImport,
}

func init() {
	rootCmd.Flags().StringP("file", "f", "", "Path to the .xlsx workbook")
	rootCmd.Flags().Bool("dry-run", false, "Resolve every row without writing to the database")
	rootCmd.Flags().Bool("json", false, "Print the summary as JSON")
	_ = rootCmd.MarkFlagRequired("file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := logger.Setup(cfg.LoggerConfig()); err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}
	log := logger.WithComponent("import_cmd")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := migration.ReadSheet(f)
	if err != nil {
		return fmt.Errorf("reading workbook: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	importer := migration.NewImporter(
		service.NewCatalogService(postgres.NewCatalogRepo(db)),
		postgres.NewClientRepo(db),
		postgres.NewOpportunityRepo(db),
		&cfg.Migration,
	)

	log.Info().Str("file", path).Int("rows", len(rows)).Bool("dry_run", dryRun).Msg("import starting")
	summary, err := importer.Run(cmd.Context(), rows, migration.Options{DryRun: dryRun})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Fprintf(out, "rows: %d  imported: %d  failed: %d  new clients: %d\n",
		summary.Total, summary.Succeeded, summary.Failed, summary.ClientsCreated)
	if summary.DryRun {
		fmt.Fprintln(out, "dry run: nothing was written")
	}
	for _, failure := range summary.Failures {
		fmt.Fprintf(out, "  row %d: %s\n", failure.Row, failure.Reason)
	}
	return nil
}
