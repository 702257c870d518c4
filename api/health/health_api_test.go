package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"inventory.GO/api"
	"inventory.GO/model/modeltest"
)

func TestHealth(t *testing.T) {
	db := modeltest.OpenDB(t)
	e := echo.New()
	RegisterHealthRoutes(e, &api.Deps{DB: db})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}

	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status after close = %d, want 503", rec.Code)
	}
}
