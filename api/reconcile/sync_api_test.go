package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"inventory.GO/api"
	reconcileService "inventory.GO/service/reconcile"
)

type fakeSyncer struct {
	calls []string
	err   error
}

func (f *fakeSyncer) run(kind string) (*reconcileService.Result, error) {
	f.calls = append(f.calls, kind)
	if f.err != nil {
		return nil, f.err
	}
	return &reconcileService.Result{RunID: "run-1", Kind: kind, SalesProcessed: 3}, nil
}

func (f *fakeSyncer) SyncCatalog(context.Context) (*reconcileService.Result, error) {
	return f.run(reconcileService.KindCatalog)
}

func (f *fakeSyncer) SyncSales(context.Context) (*reconcileService.Result, error) {
	return f.run(reconcileService.KindSales)
}

func (f *fakeSyncer) FullSync(context.Context) (*reconcileService.Result, error) {
	return f.run(reconcileService.KindFull)
}

func (f *fakeSyncer) Status(context.Context) (*reconcileService.Status, error) {
	return &reconcileService.Status{LastAssessed: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func newServer(s api.Syncer) *echo.Echo {
	e := echo.New()
	RegisterSyncRoutes(e.Group("/api"), &api.Deps{Sync: s})
	return e
}

func post(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
	return rec
}

func TestSync_Kinds(t *testing.T) {
	s := &fakeSyncer{}
	e := newServer(s)

	for _, path := range []string{"/api/sync", "/api/sync?kind=catalog", "/api/sync?kind=sales"} {
		rec := post(e, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d body=%s", path, rec.Code, rec.Body.String())
		}
		if rec.Header().Get("X-Request-Duration-ms") == "" {
			t.Errorf("%s missing duration header", path)
		}
	}
	want := []string{"full", "catalog", "sales"}
	if fmt.Sprint(s.calls) != fmt.Sprint(want) {
		t.Errorf("calls = %v, want %v", s.calls, want)
	}
}

func TestSync_UnknownKind(t *testing.T) {
	s := &fakeSyncer{}
	rec := post(newServer(s), "/api/sync?kind=everything")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(s.calls) != 0 {
		t.Errorf("calls = %v, want none", s.calls)
	}
}

func TestSync_ErrorStatus(t *testing.T) {
	s := &fakeSyncer{err: fmt.Errorf("full sync: %w", reconcileService.ErrSyncInProgress)}
	rec := post(newServer(s), "/api/sync")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["success"] != false {
		t.Errorf("body = %v", body)
	}
}

func TestSync_Status(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(&fakeSyncer{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sync/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var st reconcileService.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatal(err)
	}
	if !st.LastAssessed.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("last_assessed = %v", st.LastAssessed)
	}
}
