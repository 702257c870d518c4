package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"inventory.GO/service/reconcile"
)

func syncCommand(use, short string, run func(*reconcile.Engine) func(context.Context) (*reconcile.Result, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			start := time.Now()
			res, err := run(a.Engine)(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s failed: %w", use, err)
			}
			printResult(cmd.OutOrStdout(), res, time.Since(start))
			return nil
		},
	}
}

func printResult(w io.Writer, res *reconcile.Result, took time.Duration) {
	fmt.Fprintf(w, `
=== Sync Report (%s) ===
Run:             %s
New items:       %d
Orders:          %d
Line items:      %d
Sales processed: %d
Skipped:         %d
Took:            %s
`, res.Kind, res.RunID, res.NewItems, res.Orders, res.LineItems, res.SalesProcessed, res.Skipped, took.Round(time.Millisecond))
	if !res.WindowEnd.IsZero() {
		fmt.Fprintf(w, "Window:          %s .. %s\n", res.WindowStart.Format(time.RFC3339), res.WindowEnd.Format(time.RFC3339))
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "  [warn] %s\n", warn)
	}
}

func init() {
	rootCmd.AddCommand(
		syncCommand("sync:run", "Run a full reconciliation (catalog, then sales)",
			func(e *reconcile.Engine) func(context.Context) (*reconcile.Result, error) { return e.FullSync }),
		syncCommand("sync:catalog", "Insert catalog items missing from the ledger",
			func(e *reconcile.Engine) func(context.Context) (*reconcile.Result, error) { return e.SyncCatalog }),
		syncCommand("sync:sales", "Apply sales since the last checkpoint",
			func(e *reconcile.Engine) func(context.Context) (*reconcile.Result, error) { return e.SyncSales }),
	)
}
