// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package reaper

import (
	"context"
	"time"

	"github.com/wisp-social/wisp/internal/pkg/log"
)

// Scheduler triggers a reaper run once per day at a fixed UTC hour. An
// external cron invoking the reap command is the equivalent alternative; both
// drive the same Run code path.
type Scheduler struct {
	reaper  *Reaper
	hourUTC int
	timeout time.Duration
}

// NewScheduler creates a daily scheduler for the reaper.
func NewScheduler(reaper *Reaper, hourUTC int, timeout time.Duration) *Scheduler {
	return &Scheduler{
		reaper:  reaper,
		hourUTC: hourUTC,
		timeout: timeout,
	}
}

// Start blocks until the context is cancelled, firing a run at every scheduled
// time. Call it on its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	for {
		next := nextRun(time.Now().UTC(), s.hourUTC)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		runCtx, cancel := context.WithTimeout(ctx, s.timeout)
		report := s.reaper.Run(runCtx)
		cancel()

		for _, errMsg := range report.Errors {
			log.Error("reaper: %s", errMsg)
		}
	}
}

// nextRun returns the next occurrence of the scheduled hour strictly after now.
func nextRun(now time.Time, hourUTC int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
