package inventory

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"inventory.GO/api"
	inventoryService "inventory.GO/service/inventory"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

func RegisterInventoryRoutes(apiGroup *echo.Group, deps *api.Deps) {
	svc := deps.Inventory
	g := apiGroup.Group("/items")

	// GET /api/items?search=: all items, optional name filter
	g.GET("", func(c echo.Context) error {
		items, err := svc.ListItems(c.QueryParam("search"))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
	})

	// GET /api/items/search?q=&exclude=: subcomponent picker
	g.GET("/search", func(c echo.Context) error {
		items, err := svc.SearchItems(c.QueryParam("q"), c.QueryParam("exclude"))
		if err != nil {
			return api.Error(c, err)
		}
		out := make([]echo.Map, 0, len(items))
		for _, it := range items {
			out = append(out, echo.Map{"id": it.ID, "name": it.Name, "stock": it.Stock})
		}
		return c.JSON(http.StatusOK, out)
	})

	g.POST("", func(c echo.Context) error {
		var in inventoryService.ItemInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		item, err := svc.AddItem(in)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusCreated, item)
	})

	g.GET("/:id", func(c echo.Context) error {
		item, err := svc.GetItem(c.Param("id"))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, item)
	})

	g.PUT("/:id", func(c echo.Context) error {
		var in inventoryService.ItemInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		item, err := svc.UpdateItem(c.Param("id"), in)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, item)
	})

	g.DELETE("/:id", func(c echo.Context) error {
		if err := svc.DeleteItem(c.Param("id")); err != nil {
			return api.Error(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})

	// POST /api/items/:id/subcomponents {"subcomponent_id": "...", "quantity": 2}
	g.POST("/:id/subcomponents", func(c echo.Context) error {
		var body struct {
			SubcomponentID string                 `json:"subcomponent_id" form:"subcomponent_id"`
			Quantity       inventoryService.Field `json:"quantity" form:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		edge, err := svc.AddSubcomponent(c.Param("id"), body.SubcomponentID, body.Quantity)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusCreated, edge)
	})

	g.DELETE("/:id/subcomponents/:sub", func(c echo.Context) error {
		if err := svc.RemoveSubcomponent(c.Param("id"), c.Param("sub")); err != nil {
			return api.Error(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}
