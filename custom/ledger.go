// Package custom holds site extensions registered through the api, graphql and cmd registries.
package custom

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"inventory.GO/api"
	"inventory.GO/cmd"
	"inventory.GO/config"
	"inventory.GO/graphql"
	gqlregistry "inventory.GO/graphql/registry"
	inventoryEntity "inventory.GO/model/entity/inventory"
	salesEntity "inventory.GO/model/entity/sales"
	systemRepo "inventory.GO/model/repository/system"
)

const maxRuns = 100

func init() {
	// GraphQL: _extension(name: "ledgerSummary")
	gqlregistry.Register("ledgerSummary", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		db := graphql.DBFromContext(ctx)
		if db == nil {
			return nil, errors.New("ledgerSummary: no database in context")
		}
		return Summarize(db.WithContext(ctx))
	})

	// HTTP: GET /api/sync/runs?limit=
	api.RegisterModule(func(g *echo.Group, deps *api.Deps) {
		g.GET("/sync/runs", func(c echo.Context) error {
			limit, _ := strconv.Atoi(c.QueryParam("limit"))
			runs, err := systemRepo.NewRunRepository(deps.DB).Recent(clampLimit(limit))
			if err != nil {
				return api.Error(c, err)
			}
			return c.JSON(http.StatusOK, echo.Map{"runs": runs, "count": len(runs)})
		})
	})

	// CLI: sync:history
	var historyLimit int
	history := &cobra.Command{
		Use:   "sync:history",
		Short: "Show recent reconciliation attempts",
		RunE: func(c *cobra.Command, args []string) error {
			db, err := config.NewDB()
			if err != nil {
				return err
			}
			runs, err := systemRepo.NewRunRepository(db).Recent(clampLimit(historyLimit))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tKIND\tSTATUS\tNEW\tSALES\tSKIPPED\tERROR")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
					r.StartedAt.Format(time.RFC3339), r.Kind, r.Status, r.NewItems, r.SalesProcessed, r.Skipped, r.Error)
			}
			return w.Flush()
		},
	}
	history.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	cmd.Register(history)
}

func clampLimit(n int) int {
	if n <= 0 {
		return 20
	}
	if n > maxRuns {
		return maxRuns
	}
	return n
}

// LedgerSummary is a point-in-time count of the ledger.
type LedgerSummary struct {
	Items        int64 `json:"items"`
	MixItems     int64 `json:"mix_items"`
	NeedsReorder int64 `json:"needs_reorder"`
	SalesLines   int64 `json:"sales_lines"`
}

func Summarize(db *gorm.DB) (*LedgerSummary, error) {
	var s LedgerSummary
	item := &inventoryEntity.InventoryItem{}
	if err := db.Model(item).Count(&s.Items).Error; err != nil {
		return nil, err
	}
	if err := db.Model(item).Where("is_mix = ?", true).Count(&s.MixItems).Error; err != nil {
		return nil, err
	}
	if err := db.Model(item).Where("reorder_threshold IS NOT NULL AND stock <= reorder_threshold").Count(&s.NeedsReorder).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&salesEntity.SalesRecord{}).Count(&s.SalesLines).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
