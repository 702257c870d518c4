package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	inventoryService "inventory.GO/service/inventory"
	"inventory.GO/service/reconcile"
	"inventory.GO/service/square"
)

func TestRegistry_Register_Apply(t *testing.T) {
	RegisterGET("/test/registry/check", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	e := echo.New()
	ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/test/registry/check", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&inventoryService.ValidationError{Field: "name", Message: "cannot be empty"}, http.StatusBadRequest},
		{fmt.Errorf("get: %w", inventoryService.ErrNotFound), http.StatusNotFound},
		{inventoryService.ErrDuplicateSubcomponent, http.StatusConflict},
		{fmt.Errorf("full sync: %w", reconcile.ErrSyncInProgress), http.StatusConflict},
		{fmt.Errorf("full sync: %w", &square.APIError{Op: "search orders", StatusCode: 500}), http.StatusBadGateway},
		{fmt.Errorf("sales sync: %w", reconcile.ErrUnresolvedLocation), http.StatusBadGateway},
		{reconcile.ErrSourceNotConfigured, http.StatusServiceUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusFor(c.err); got != c.want {
			t.Errorf("StatusFor(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}
