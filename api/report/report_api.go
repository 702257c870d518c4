package report

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"inventory.GO/api"
	reportService "inventory.GO/service/report"
)

func init() {
	api.RegisterModule(RegisterReportRoutes)
}

func RegisterReportRoutes(apiGroup *echo.Group, deps *api.Deps) {
	g := apiGroup.Group("/reports/sales")

	// GET /api/reports/sales/daily?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
	g.GET("/daily", func(c echo.Context) error {
		start, end, err := reportService.ParseRange(c.QueryParam("start_date"), c.QueryParam("end_date"), time.Now())
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		days, err := deps.Reports.DailyTotals(start, end)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"start_date": start.Format("2006-01-02"),
			"end_date":   end.Format("2006-01-02"),
			"days":       days,
		})
	})

	g.GET("/items", func(c echo.Context) error {
		start, end, err := reportService.ParseRange(c.QueryParam("start_date"), c.QueryParam("end_date"), time.Now())
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		items, err := deps.Reports.ItemTotals(start, end)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"start_date": start.Format("2006-01-02"),
			"end_date":   end.Format("2006-01-02"),
			"items":      items,
		})
	})
}
