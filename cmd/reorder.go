package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	inventoryService "inventory.GO/service/inventory"
)

var reorderSearch string

var reorderCmd = &cobra.Command{
	Use:   "reorder:list",
	Short: "List items at or below their reorder threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		advice, err := a.Inventory.ReorderAdvisory(reorderSearch)
		if err != nil {
			return err
		}
		printAdvice(cmd.OutOrStdout(), advice)
		return nil
	},
}

func printAdvice(out io.Writer, advice []inventoryService.ReorderAdvice) {
	if len(advice) == 0 {
		fmt.Fprintln(out, "Nothing to reorder.")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTOCK\tTHRESHOLD\tSUGGESTED\tSUPPLIER")
	for _, a := range advice {
		suggested, supplier := "-", "-"
		if a.SuggestedQuantity != nil {
			suggested = fmt.Sprintf("%g", *a.SuggestedQuantity)
		}
		if a.Supplier != nil {
			supplier = *a.Supplier
		}
		fmt.Fprintf(w, "%s\t%g\t%g\t%s\t%s\n", a.Name, a.Stock, a.ReorderThreshold, suggested, supplier)
	}
	w.Flush()
}

func init() {
	reorderCmd.Flags().StringVarP(&reorderSearch, "search", "s", "", "Filter by item name")
	rootCmd.AddCommand(reorderCmd)
}
