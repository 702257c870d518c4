package custom

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"inventory.GO/api"
	"inventory.GO/cmd"
	"inventory.GO/config"
	"inventory.GO/graphql"
	gqlregistry "inventory.GO/graphql/registry"
	"inventory.GO/model"
	systemEntity "inventory.GO/model/entity/system"
	"inventory.GO/model/modeltest"
	systemRepo "inventory.GO/model/repository/system"
	inventoryService "inventory.GO/service/inventory"
)

func TestLedgerSummaryExtension(t *testing.T) {
	db := modeltest.OpenDB(t)
	svc := inventoryService.NewService(db)
	for _, in := range []inventoryService.ItemInput{
		{Name: "Bread Mix", Stock: "1", Supplier: "Bakery", IsMix: true},
		{Name: "Flour", Stock: "1", ReorderThreshold: "2", Supplier: "Mill"},
	} {
		if _, err := svc.AddItem(in); err != nil {
			t.Fatal(err)
		}
	}

	out, err := gqlregistry.Resolve(graphql.WithDB(context.Background(), db), "ledgerSummary", nil)
	if err != nil {
		t.Fatal(err)
	}
	s := out.(*LedgerSummary)
	if s.Items != 2 || s.MixItems != 1 || s.NeedsReorder != 1 || s.SalesLines != 0 {
		t.Errorf("summary = %+v", s)
	}

	if _, err := gqlregistry.Resolve(context.Background(), "ledgerSummary", nil); err == nil {
		t.Error("want error without database in context")
	}
}

func TestSyncRunsRoute(t *testing.T) {
	db := modeltest.OpenDB(t)
	runs := systemRepo.NewRunRepository(db)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := runs.Start(&systemEntity.SyncRun{ID: id, Kind: "full", StartedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatal(err)
		}
	}

	e := echo.New()
	api.ApplyModules(e.Group("/api"), &api.Deps{DB: db})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sync/runs?limit=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Runs []systemEntity.SyncRun `json:"runs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Runs) != 2 || body.Runs[0].ID != "c" {
		t.Errorf("runs = %+v", body.Runs)
	}
}

func TestClampLimit(t *testing.T) {
	for in, want := range map[int]int{0: 20, -1: 20, 5: 5, 1000: maxRuns} {
		if got := clampLimit(in); got != want {
			t.Errorf("clampLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestSyncHistoryCommand(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "ledger.db"))
	t.Setenv("GORM_LOG", "off")
	db, err := config.NewDB()
	if err != nil {
		t.Fatal(err)
	}
	if err := model.AutoMigrate(db); err != nil {
		t.Fatal(err)
	}
	runs := systemRepo.NewRunRepository(db)
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, kind := range []string{"catalog", "sales", "full"} {
		if err := runs.Start(&systemEntity.SyncRun{ID: kind, Kind: kind, StartedAt: base.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatal(err)
		}
	}

	history, ok := cmd.Lookup("sync:history")
	if !ok {
		t.Fatal("sync:history not registered")
	}
	out := &bytes.Buffer{}
	history.SetOut(out)
	history.SetArgs([]string{"--limit", "2"})
	if err := history.Execute(); err != nil {
		t.Fatalf("sync:history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "STARTED") {
		t.Fatalf("output = %q, want header and 2 runs", out.String())
	}
	if !strings.Contains(lines[1], "full") || !strings.Contains(lines[2], "sales") {
		t.Errorf("runs not newest first: %q", out.String())
	}
}
