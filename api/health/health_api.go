package health

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inventory.GO/api"
)

func init() {
	api.RegisterRoute(RegisterHealthRoutes)
}

// RegisterHealthRoutes serves the public GET /health probe.
func RegisterHealthRoutes(e *echo.Echo, deps *api.Deps) {
	e.GET("/health", func(c echo.Context) error {
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "error", "database": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
