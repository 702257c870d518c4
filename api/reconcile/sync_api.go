package reconcile

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"inventory.GO/api"
	reconcileService "inventory.GO/service/reconcile"
)

func init() {
	api.RegisterModule(RegisterSyncRoutes)
}

func RegisterSyncRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/sync")

	// POST /api/sync?kind=full|catalog|sales: run a reconciliation pass now
	g.POST("", func(c echo.Context) error {
		start := time.Now()
		run := deps.Sync.FullSync
		switch kind := c.QueryParam("kind"); kind {
		case "", reconcileService.KindFull:
		case reconcileService.KindCatalog:
			run = deps.Sync.SyncCatalog
		case reconcileService.KindSales:
			run = deps.Sync.SyncSales
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown sync kind " + strconv.Quote(kind)})
		}

		// The pass must not be cut short by a client disconnect once it started.
		res, err := run(context.WithoutCancel(c.Request().Context()))
		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		if err != nil {
			return c.JSON(api.StatusFor(err), echo.Map{"success": false, "error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":         true,
			"run_id":          res.RunID,
			"kind":            res.Kind,
			"new_items":       res.NewItems,
			"orders":          res.Orders,
			"sales_processed": res.SalesProcessed,
			"skipped":         res.Skipped,
			"window_start":    res.WindowStart,
			"window_end":      res.WindowEnd,
			"warnings":        res.Warnings,
		})
	})

	g.GET("/status", func(c echo.Context) error {
		st, err := deps.Sync.Status(c.Request().Context())
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, st)
	})
}
