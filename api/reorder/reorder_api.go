package reorder

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inventory.GO/api"
)

func init() {
	api.RegisterModule(RegisterReorderRoutes)
}

// RegisterReorderRoutes serves GET /api/reorder?search=, the items at or below their threshold.
func RegisterReorderRoutes(apiGroup *echo.Group, deps *api.Deps) {
	apiGroup.GET("/reorder", func(c echo.Context) error {
		advice, err := deps.Inventory.ReorderAdvisory(c.QueryParam("search"))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": advice, "count": len(advice)})
	})
}
