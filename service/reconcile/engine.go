package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"inventory.GO/core/cache"
	inventoryEntity "inventory.GO/model/entity/inventory"
	systemEntity "inventory.GO/model/entity/system"
	inventoryRepo "inventory.GO/model/repository/inventory"
	salesRepo "inventory.GO/model/repository/sales"
	systemRepo "inventory.GO/model/repository/system"
	"inventory.GO/service/square"
)

var (
	// ErrUnresolvedLocation means no location id could be determined for the sales pull.
	ErrUnresolvedLocation = errors.New("no point-of-sale location could be resolved")
	// ErrSourceNotConfigured means the engine has no point-of-sale client.
	ErrSourceNotConfigured = errors.New("point-of-sale source not configured")
	// ErrCheckpointMoved means another writer advanced the checkpoint during the pass.
	ErrCheckpointMoved = errors.New("sync checkpoint moved during pass")
)

const (
	KindCatalog = "catalog"
	KindSales   = "sales"
	KindFull    = "full"
)

// Source is the point-of-sale data the engine reconciles against.
type Source interface {
	Locations(ctx context.Context) ([]square.Location, error)
	CatalogItems(ctx context.Context) iter.Seq2[square.CatalogItem, error]
	SearchOrders(ctx context.Context, locationID string, start, end time.Time) iter.Seq2[square.Order, error]
}

type Options struct {
	// LocationName selects a location by case-insensitive name; empty means the first one.
	LocationName string
	// Epoch is the checkpoint of a fresh ledger.
	Epoch       time.Time
	Now         func() time.Time
	Logger      *log.Logger
	Locker      Locker
	Cache       *cache.Cache
	LocationTTL time.Duration
}

// Result summarizes one reconciliation pass.
type Result struct {
	RunID          string    `json:"run_id"`
	Kind           string    `json:"kind"`
	NewItems       int       `json:"new_items"`
	Orders         int       `json:"orders"`
	LineItems      int       `json:"line_items"`
	SalesProcessed int       `json:"sales_processed"`
	Skipped        int       `json:"skipped"`
	WindowStart    time.Time `json:"window_start"`
	WindowEnd      time.Time `json:"window_end"`
	Warnings       []Warning `json:"warnings"`
}

// Status is the checkpoint plus the most recent attempt.
type Status struct {
	LastAssessed time.Time             `json:"last_assessed"`
	LastRun      *systemEntity.SyncRun `json:"last_run,omitempty"`
}

// Engine reconciles the inventory ledger against the point-of-sale API.
// Passes are serialized by the Locker; each one commits its ledger, journal
// and checkpoint writes in a single transaction after the whole external
// window has been fetched.
type Engine struct {
	db     *gorm.DB
	source Source
	opts   Options
	log    *log.Logger

	items       *inventoryRepo.InventoryRepository
	bom         *inventoryRepo.BOMRepository
	sales       *salesRepo.SalesRepository
	checkpoints *systemRepo.CheckpointRepository
	runs        *systemRepo.RunRepository
}

// NewEngine builds an engine. A nil source makes every pass fail with ErrSourceNotConfigured.
func NewEngine(db *gorm.DB, source Source, opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "[reconcile] ", log.LstdFlags)
	}
	if opts.Locker == nil {
		opts.Locker = NewLocalLocker()
	}
	if opts.Cache == nil {
		opts.Cache = cache.New()
	}
	if opts.LocationTTL <= 0 {
		opts.LocationTTL = time.Hour
	}
	return &Engine{
		db:          db,
		source:      source,
		opts:        opts,
		log:         opts.Logger,
		items:       inventoryRepo.NewInventoryRepository(db),
		bom:         inventoryRepo.NewBOMRepository(db),
		sales:       salesRepo.NewSalesRepository(db),
		checkpoints: systemRepo.NewCheckpointRepository(db),
		runs:        systemRepo.NewRunRepository(db),
	}
}

// SyncCatalog inserts catalog items missing from the ledger. Existing rows are never touched.
func (e *Engine) SyncCatalog(ctx context.Context) (*Result, error) {
	return e.pass(ctx, KindCatalog, func(ctx context.Context, res *Result) error {
		catalog, err := e.fetchCatalog(ctx)
		if err != nil {
			return err
		}
		return e.db.Transaction(func(tx *gorm.DB) error {
			n, err := e.insertNewItems(tx, catalog)
			res.NewItems = n
			return err
		})
	})
}

// SyncSales applies every sale in [checkpoint, now) and advances the checkpoint to now.
// Nothing is written unless the whole window was retrieved.
func (e *Engine) SyncSales(ctx context.Context) (*Result, error) {
	return e.pass(ctx, KindSales, func(ctx context.Context, res *Result) error {
		start, end, err := e.window()
		if err != nil {
			return err
		}
		res.WindowStart, res.WindowEnd = start, end
		orders, err := e.fetchOrders(ctx, start, end)
		if err != nil {
			return err
		}
		return e.db.Transaction(func(tx *gorm.DB) error {
			return e.applyWindow(tx, res, orders)
		})
	})
}

// FullSync fetches the catalog and the sales window concurrently, then commits
// new items, depletions, journal entries and the checkpoint together.
func (e *Engine) FullSync(ctx context.Context) (*Result, error) {
	return e.pass(ctx, KindFull, func(ctx context.Context, res *Result) error {
		start, end, err := e.window()
		if err != nil {
			return err
		}
		res.WindowStart, res.WindowEnd = start, end

		var catalog []square.CatalogItem
		var orders []square.Order
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			catalog, err = e.fetchCatalog(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			orders, err = e.fetchOrders(gctx, start, end)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		return e.db.Transaction(func(tx *gorm.DB) error {
			n, err := e.insertNewItems(tx, catalog)
			if err != nil {
				return err
			}
			res.NewItems = n
			return e.applyWindow(tx, res, orders)
		})
	})
}

// Status reports the checkpoint and the latest recorded attempt.
func (e *Engine) Status(ctx context.Context) (*Status, error) {
	last, err := e.checkpoints.WithTx(e.db.WithContext(ctx)).Get(e.opts.Epoch)
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	run, err := e.runs.Latest()
	if err != nil {
		return nil, fmt.Errorf("read last run: %w", err)
	}
	return &Status{LastAssessed: last, LastRun: run}, nil
}

// pass runs body under the single-writer lock and records the attempt in sync_run.
func (e *Engine) pass(ctx context.Context, kind string, body func(context.Context, *Result) error) (*Result, error) {
	if e.source == nil {
		return nil, ErrSourceNotConfigured
	}
	unlock, err := e.opts.Locker.TryLock(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			e.log.Printf("%s sync: %v", kind, err)
		}
	}()

	res := &Result{RunID: uuid.NewString(), Kind: kind, Warnings: []Warning{}}
	run := &systemEntity.SyncRun{ID: res.RunID, Kind: kind, StartedAt: e.now()}
	if err := e.runs.Start(run); err != nil {
		return nil, fmt.Errorf("record sync run: %w", err)
	}

	err = body(ctx, res)
	e.finishRun(run, res, err)
	if err != nil {
		e.log.Printf("%s sync %s failed: %v", kind, res.RunID, err)
		return nil, fmt.Errorf("%s sync: %w", kind, err)
	}
	e.log.Printf("%s sync %s done: new_items=%d orders=%d sales=%d skipped=%d warnings=%d",
		kind, res.RunID, res.NewItems, res.Orders, res.SalesProcessed, res.Skipped, len(res.Warnings))
	return res, nil
}

func (e *Engine) finishRun(run *systemEntity.SyncRun, res *Result, passErr error) {
	finished := e.now()
	run.FinishedAt = &finished
	if !res.WindowEnd.IsZero() {
		ws, we := res.WindowStart, res.WindowEnd
		run.WindowStart, run.WindowEnd = &ws, &we
	}
	if passErr != nil {
		run.Status = systemEntity.RunStatusFailed
		run.Error = passErr.Error()
	} else {
		run.Status = systemEntity.RunStatusSucceeded
		run.NewItems = res.NewItems
		run.Orders = res.Orders
		run.SalesProcessed = res.SalesProcessed
		run.Skipped = res.Skipped
		if len(res.Warnings) > 0 {
			if b, err := json.Marshal(res.Warnings); err == nil {
				run.Warnings = datatypes.JSON(b)
			}
		}
	}
	if err := e.runs.Finish(run); err != nil {
		e.log.Printf("record sync run %s outcome: %v", run.ID, err)
	}
}

// window returns [checkpoint, now). Times are UTC at millisecond precision,
// matching what both the API and the database round-trip.
func (e *Engine) window() (time.Time, time.Time, error) {
	start, err := e.checkpoints.Get(e.opts.Epoch)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("read checkpoint: %w", err)
	}
	start = start.UTC().Truncate(time.Millisecond)
	end := e.now()
	if end.Before(start) {
		end = start
	}
	return start, end, nil
}

func (e *Engine) now() time.Time {
	return e.opts.Now().UTC().Truncate(time.Millisecond)
}

func (e *Engine) fetchCatalog(ctx context.Context) ([]square.CatalogItem, error) {
	items, err := square.Collect(e.source.CatalogItems(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	return items, nil
}

func (e *Engine) fetchOrders(ctx context.Context, start, end time.Time) ([]square.Order, error) {
	if !end.After(start) {
		return nil, nil
	}
	locationID, err := e.resolveLocation(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := square.Collect(e.source.SearchOrders(ctx, locationID, start, end))
	if err != nil {
		// The location may have been removed; look it up again on retry.
		e.ForgetLocation()
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	return orders, nil
}

// insertNewItems adds catalog items absent from the ledger with zero stock and no thresholds.
func (e *Engine) insertNewItems(tx *gorm.DB, catalog []square.CatalogItem) (int, error) {
	if len(catalog) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(catalog))
	for _, c := range catalog {
		ids = append(ids, c.ID)
	}
	existing, err := e.items.WithTx(tx).ExistingIDs(ids)
	if err != nil {
		return 0, fmt.Errorf("load existing items: %w", err)
	}
	var fresh []inventoryEntity.InventoryItem
	for _, c := range catalog {
		if _, ok := existing[c.ID]; ok {
			continue
		}
		existing[c.ID] = struct{}{}
		fresh = append(fresh, inventoryEntity.InventoryItem{ID: c.ID, Name: c.Name})
	}
	if err := e.items.WithTx(tx).CreateBatch(fresh); err != nil {
		return 0, fmt.Errorf("insert catalog items: %w", err)
	}
	return len(fresh), nil
}
