package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"inventory.GO/api"
	systemEntity "inventory.GO/model/entity/system"
	"inventory.GO/model/modeltest"
	systemRepo "inventory.GO/model/repository/system"
	inventoryService "inventory.GO/service/inventory"
	"inventory.GO/service/reconcile"
	reportService "inventory.GO/service/report"
)

var checkpoint = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

type stubSyncer struct {
	last *systemEntity.SyncRun
}

func (s *stubSyncer) SyncCatalog(context.Context) (*reconcile.Result, error) { return nil, nil }
func (s *stubSyncer) SyncSales(context.Context) (*reconcile.Result, error) { return nil, nil }
func (s *stubSyncer) FullSync(context.Context) (*reconcile.Result, error) { return nil, nil }
func (s *stubSyncer) Status(context.Context) (*reconcile.Status, error) {
	return &reconcile.Status{LastAssessed: checkpoint, LastRun: s.last}, nil
}

type fixture struct {
	e    *echo.Echo
	deps *api.Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := modeltest.OpenDB(t)
	deps := &api.Deps{
		DB:        db,
		Inventory: inventoryService.NewService(db),
		Reports:   reportService.NewService(db),
		Sync:      &stubSyncer{},
	}
	e := echo.New()
	RegisterGraphQLRoutes(e, deps)
	return &fixture{e: e, deps: deps}
}

type gqlResponse struct {
	Data   map[string]interface{}
	Errors []struct{ Message string }
}

func (f *fixture) query(t *testing.T, query string) gqlResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{"query": query})
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp gqlResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}
	return resp
}

func TestQuery_ItemsWithSubcomponents(t *testing.T) {
	f := newFixture(t)
	svc := f.deps.Inventory
	mix, _ := svc.AddItem(inventoryService.ItemInput{Name: "Bread Mix", Stock: "1", Supplier: "Bakery", IsMix: true})
	flour, _ := svc.AddItem(inventoryService.ItemInput{Name: "Flour", Stock: "2", ReorderThreshold: "5", Supplier: "Mill"})
	if _, err := svc.AddSubcomponent(mix.ID, flour.ID, "3"); err != nil {
		t.Fatal(err)
	}

	resp := f.query(t, `{ items { name stock needsReorder subcomponents { name quantityRequired } } }`)
	items := resp.Data["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["name"] != "Bread Mix" {
		t.Fatalf("first item = %v", first)
	}
	subs := first["subcomponents"].([]interface{})
	if len(subs) != 1 || subs[0].(map[string]interface{})["quantityRequired"].(float64) != 3 {
		t.Errorf("subcomponents = %v", subs)
	}
	if items[1].(map[string]interface{})["needsReorder"] != true {
		t.Errorf("flour needsReorder = %v", items[1])
	}

	resp = f.query(t, `{ item(id: "`+flour.ID+`") { name reorderThreshold } missing: item(id: "nope") { name } }`)
	if resp.Data["item"].(map[string]interface{})["reorderThreshold"].(float64) != 5 {
		t.Errorf("item = %v", resp.Data["item"])
	}
	if resp.Data["missing"] != nil {
		t.Errorf("missing = %v, want null", resp.Data["missing"])
	}

	resp = f.query(t, `{ reorderAdvisory { name suggestedQuantity } }`)
	advice := resp.Data["reorderAdvisory"].([]interface{})
	if len(advice) != 1 || advice[0].(map[string]interface{})["suggestedQuantity"] != nil {
		t.Errorf("reorderAdvisory = %v", advice)
	}
}

func TestQuery_SyncStatusAndRecentRuns(t *testing.T) {
	f := newFixture(t)
	runs := systemRepo.NewRunRepository(f.deps.DB)
	run := &systemEntity.SyncRun{ID: "run-1", Kind: reconcile.KindFull, StartedAt: checkpoint.Add(time.Minute)}
	if err := runs.Start(run); err != nil {
		t.Fatal(err)
	}
	f.deps.Sync.(*stubSyncer).last = run

	resp := f.query(t, `{ syncStatus { lastAssessed lastRun { id status finishedAt } } }`)
	st := resp.Data["syncStatus"].(map[string]interface{})
	if st["lastAssessed"] != "2024-03-01T00:00:00Z" {
		t.Errorf("lastAssessed = %v", st["lastAssessed"])
	}
	last := st["lastRun"].(map[string]interface{})
	if last["id"] != "run-1" || last["status"] != systemEntity.RunStatusRunning || last["finishedAt"] != nil {
		t.Errorf("lastRun = %v", last)
	}

	resp = f.query(t, `{ _extension(name: "recentSyncRuns", args: "{\"limit\": 5}") }`)
	raw, _ := resp.Data["_extension"].(string)
	if !strings.Contains(raw, `"id":"run-1"`) {
		t.Errorf("_extension = %q", raw)
	}
}

func TestQuery_DailySales(t *testing.T) {
	f := newFixture(t)
	resp := f.query(t, `{ dailySales(startDate: "2024-03-01", endDate: "2024-03-02") { date revenue lines } }`)
	days := resp.Data["dailySales"].([]interface{})
	if len(days) != 2 {
		t.Fatalf("len(days) = %d", len(days))
	}
	if d := days[0].(map[string]interface{}); d["date"] != "2024-03-01" || d["revenue"] != "0.00" {
		t.Errorf("day = %v", d)
	}
}

func TestPlayground(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/playground", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/graphql") {
		t.Errorf("status = %d", rec.Code)
	}
}
