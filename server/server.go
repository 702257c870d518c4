// Package server assembles the echo instance serving the REST and GraphQL surfaces.
package server

import (
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"inventory.GO/api"
	_ "inventory.GO/api/graphql"
	_ "inventory.GO/api/health"
	_ "inventory.GO/api/inventory"
	_ "inventory.GO/api/reconcile"
	_ "inventory.GO/api/reorder"
	_ "inventory.GO/api/report"
	"inventory.GO/core/auth"
	"inventory.GO/core/registry"
)

const (
	ctxKeyRequestRegistry = "request_registry"
	HeaderRequestID       = "X-Request-ID"
)

// New returns an echo instance with every registered module applied.
func New(deps *api.Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(requestRegistry)

	api.ApplyRoutes(e, deps)

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(deps.DB))
	api.ApplyModules(apiGroup, deps)
	return e
}

// requestRegistry stamps each request with an id and start time and reports its duration.
func requestRegistry(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reg := registry.NewRequestRegistry()
		id := c.Request().Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		reg.Set(registry.KeyRequestID, id)
		reg.Set(registry.KeyRequestStart, time.Now())
		c.Set(ctxKeyRequestRegistry, reg)
		c.Response().Header().Set(HeaderRequestID, id)

		c.Response().Before(func() {
			if start, ok := reg.Get(registry.KeyRequestStart); ok {
				duration := time.Since(start.(time.Time)).Milliseconds()
				c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			}
		})
		err := next(c)
		if start, ok := reg.Get(registry.KeyRequestStart); ok {
			log.Printf("Request %s duration: %d ms", id, time.Since(start.(time.Time)).Milliseconds())
		}
		return err
	}
}

// RequestID returns the id assigned to the current request.
func RequestID(c echo.Context) string {
	reg, ok := c.Get(ctxKeyRequestRegistry).(*registry.RequestRegistry)
	if !ok {
		return ""
	}
	id, _ := reg.Get(registry.KeyRequestID)
	s, _ := id.(string)
	return s
}
