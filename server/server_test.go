package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"inventory.GO/config"
	"inventory.GO/core/app"
	"inventory.GO/model/modeltest"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	t.Setenv("AUTH_TYPE", "basic")
	t.Setenv("API_USER", "admin")
	t.Setenv("API_PASS", "secret")

	cfg, err := config.Decode(map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	a, err := app.New(cfg, modeltest.OpenDB(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	return New(a.Deps())
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer(t *testing.T) {
	e := newTestServer(t)

	t.Run("health is public", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/health", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if rec.Header().Get(HeaderRequestID) == "" {
			t.Error("missing request id header")
		}
		if rec.Header().Get("X-Request-Duration-ms") == "" {
			t.Error("missing duration header")
		}
	})

	t.Run("request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		if got := serve(e, req).Header().Get(HeaderRequestID); got != "abc-123" {
			t.Errorf("request id = %q, want abc-123", got)
		}
	})

	t.Run("api requires auth", func(t *testing.T) {
		rec := serve(e, httptest.NewRequest(http.MethodGet, "/api/items", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("api with credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
		req.SetBasicAuth("admin", "secret")
		if rec := serve(e, req); rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("sync without credentials is unavailable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/sync", nil)
		req.SetBasicAuth("admin", "secret")
		if rec := serve(e, req); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})

	t.Run("graphql is public", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ syncStatus { lastAssessed } }"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := serve(e, req)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "2024-03-01T00:00:00Z") {
			t.Errorf("status = %d body = %s", rec.Code, rec.Body.String())
		}
	})
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(requestRegistry)
	var seen string
	e.GET("/x", func(c echo.Context) error {
		seen = RequestID(c)
		return c.NoContent(http.StatusNoContent)
	})
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/x", nil))
	if seen == "" || seen != rec.Header().Get(HeaderRequestID) {
		t.Errorf("RequestID = %q, header = %q", seen, rec.Header().Get(HeaderRequestID))
	}
}
