// Package janitor performs maintenance sweeps over execution records.
package janitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mkessy/devbench/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// SweepResult reports what a sweep changed.
type SweepResult struct {
	Failed int // executions moved from running to failed
}

// SweepStale marks executions still running past maxAge as failed,
// setting EndTime so terminal rows always carry one. Only rows are
// touched; any underlying process is not devbench's to manage.
func SweepStale(db *gorm.DB, maxAge time.Duration) (*SweepResult, error) {
	cutoff := time.Now().Add(-maxAge)

	res := db.Model(&models.Execution{}).
		Where("status = ? AND start_time < ?", "running", cutoff).
		Updates(map[string]interface{}{
			"status":   "failed",
			"error":    fmt.Sprintf("abandoned: still running after %s", maxAge),
			"end_time": time.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("janitor: sweep stale executions: %w", res.Error)
	}

	return &SweepResult{Failed: int(res.RowsAffected)}, nil
}

// NextRun parses a 5-field cron expression and returns the duration until
// the next fire time.
func NextRun(expr string) (time.Duration, error) {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0, fmt.Errorf("janitor: parse schedule %q: %w", expr, err)
	}
	d := time.Until(sched.Next(time.Now()))
	if d < 0 {
		d = 0
	}
	return d, nil
}

// Watch runs SweepStale on the given cron schedule until ctx is cancelled.
func Watch(ctx context.Context, db *gorm.DB, schedule string, maxAge time.Duration) error {
	for {
		d, err := NextRun(schedule)
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}

		res, err := SweepStale(db, maxAge)
		if err != nil {
			log.Printf("janitor: %v", err)
			continue
		}
		if res.Failed > 0 {
			log.Printf("janitor: marked %d stale execution(s) failed", res.Failed)
		}
	}
}
