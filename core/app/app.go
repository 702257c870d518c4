// Package app wires configuration, storage and services into one runnable application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"inventory.GO/api"
	"inventory.GO/config"
	"inventory.GO/core/cache"
	"inventory.GO/cron"
	"inventory.GO/model"
	inventoryService "inventory.GO/service/inventory"
	"inventory.GO/service/reconcile"
	reportService "inventory.GO/service/report"
	"inventory.GO/service/square"
)

// syncLockKey is the redis key guarding the single-writer sync pass.
const syncLockKey = "inventory:sync:lock"

type App struct {
	Config    *config.Config
	DB        *gorm.DB
	Engine    *reconcile.Engine
	Inventory *inventoryService.Service
	Reports   *reportService.Service
	Logger    *log.Logger
}

// Open connects to the database selected by the environment, migrates it and builds the App.
func Open(cfg *config.Config) (*App, error) {
	db, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	log.Println("Database connection successful.")
	if err := model.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return New(cfg, db, config.RedisClient)
}

// New builds the services on an open, migrated database. A nil redis client
// keeps the sync lock in-process. Missing point-of-sale credentials are not an
// error here; sync operations report them when invoked.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	logger := log.New(os.Stderr, "["+cfg.AppName+"] ", log.LstdFlags)

	var source reconcile.Source
	client, err := square.NewClient(square.Options{
		AccessToken: cfg.SquareAccessToken,
		Environment: cfg.SquareEnvironment,
		BaseURL:     cfg.SquareBaseURL,
		Timeout:     cfg.SquareTimeout,
	})
	switch {
	case err == nil:
		source = client
	case errors.Is(err, square.ErrNotConfigured):
		logger.Println("SQUARE_ACCESS_TOKEN not set, sync operations are disabled.")
	default:
		return nil, fmt.Errorf("square client: %w", err)
	}

	var locker reconcile.Locker = reconcile.NewLocalLocker()
	if rdb != nil {
		ttl := lockTTL(cfg.SyncLockTTL)
		if ttl != cfg.SyncLockTTL {
			logger.Printf("SYNC_LOCK_TTL %s is shorter than the job timeout, using %s", cfg.SyncLockTTL, ttl)
		}
		locker = reconcile.NewRedisLocker(rdb, syncLockKey, ttl)
	}

	engine := reconcile.NewEngine(db, source, reconcile.Options{
		LocationName: cfg.SquareLocationName,
		Epoch:        cfg.SyncEpoch,
		Logger:       logger,
		Locker:       locker,
		Cache:        cache.New(),
	})

	return &App{
		Config:    cfg,
		DB:        db,
		Engine:    engine,
		Inventory: inventoryService.NewService(db),
		Reports:   reportService.NewService(db),
		Logger:    logger,
	}, nil
}

// lockTTL keeps the redis lock alive for at least as long as a scheduled pass
// may run, since the lock is never renewed.
func lockTTL(configured time.Duration) time.Duration {
	return max(configured, cron.DefaultJobTimeout)
}

// Deps exposes the services to the HTTP and GraphQL layers.
func (a *App) Deps() *api.Deps {
	return &api.Deps{
		DB:        a.DB,
		Inventory: a.Inventory,
		Reports:   a.Reports,
		Sync:      a.Engine,
	}
}

// Jobs returns the scheduled jobs backed by this App.
func (a *App) Jobs() map[string]cron.Job {
	schedules := config.CronSchedules(a.Config)
	return map[string]cron.Job{
		config.SyncJobName: {
			Schedule: schedules[config.SyncJobName],
			Run:      a.scheduledSync,
		},
	}
}

// scheduledSync runs a full pass. A pass already running elsewhere is not a failure.
func (a *App) scheduledSync(ctx context.Context) error {
	res, err := a.Engine.FullSync(ctx)
	if errors.Is(err, reconcile.ErrSyncInProgress) {
		a.Logger.Println("scheduled sync skipped: another pass is running")
		return nil
	}
	if err != nil {
		return err
	}
	a.Logger.Printf("scheduled sync: %d new items, %d sales processed, %d skipped, %d warnings",
		res.NewItems, res.SalesProcessed, res.Skipped, len(res.Warnings))
	return nil
}
