package cron

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultJobTimeout bounds one scheduled run.
const DefaultJobTimeout = 30 * time.Minute

// StartCron schedules jobs plus every registered job and starts the scheduler.
// Overlapping runs of the same job are skipped and panics are recovered.
func StartCron(jobs map[string]Job, logger *log.Logger) (*cron.Cron, error) {
	c, err := newScheduler(Merge(jobs), logger)
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}

func newScheduler(jobs map[string]Job, logger *log.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = log.New(os.Stderr, "[cron] ", log.LstdFlags)
	}
	cl := cron.PrintfLogger(logger)
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	for name, j := range jobs {
		name, run := name, j.Run
		_, err := c.AddFunc(j.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), DefaultJobTimeout)
			defer cancel()
			start := time.Now()
			if err := run(ctx); err != nil {
				logger.Printf("job %s failed after %s: %v", name, time.Since(start).Round(time.Millisecond), err)
				return
			}
			logger.Printf("job %s finished in %s", name, time.Since(start).Round(time.Millisecond))
		})
		if err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
	}
	return c, nil
}

// RunJob runs one job by case-insensitive name, once, in the foreground.
func RunJob(ctx context.Context, jobs map[string]Job, name string) error {
	j, ok := jobs[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown job: %s", name)
	}
	return j.Run(ctx)
}
