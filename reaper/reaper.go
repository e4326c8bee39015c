// Copyright (c) 2025 Wisp Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package reaper applies the lifecycle expiry policy across the dataset: every
// entity whose expiry has passed is soft-deleted. The reaper never un-deletes
// and never extends.
package reaper

import (
	"context"
	"time"

	"github.com/wisp-social/wisp/internal/pkg/log"
)

// Report summarizes one reaper run. Row errors do not abort the run; they are
// collected here and logged.
type Report struct {
	PostsExpired    int64     `json:"postsExpired"`
	CommentsExpired int64     `json:"commentsExpired"`
	StartedAt       time.Time `json:"startedAt"`
	FinishedAt      time.Time `json:"finishedAt"`
	Errors          []string  `json:"errors,omitempty"`
}

// Reaper performs expiry sweeps over posts and comments.
type Reaper struct {
	repo      SweepRepository
	batchSize int
}

// New creates a reaper with the given batch size.
func New(repo SweepRepository, batchSize int) *Reaper {
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &Reaper{repo: repo, batchSize: batchSize}
}

// Run executes one full sweep: posts, then comments (the order is immaterial;
// the sweeps are independent). Batches stop early when the context is
// cancelled; a failed batch is retried once within the run before the sweep
// moves on.
func (r *Reaper) Run(ctx context.Context) Report {
	report := Report{StartedAt: time.Now().UTC()}

	report.PostsExpired = r.sweep(ctx, &report, "posts", r.repo.ExpirePostsBatch)
	report.CommentsExpired = r.sweep(ctx, &report, "comments", r.repo.ExpireCommentsBatch)

	report.FinishedAt = time.Now().UTC()
	log.Info("reaper run finished: %d posts, %d comments expired, %d errors",
		report.PostsExpired, report.CommentsExpired, len(report.Errors))
	return report
}

type batchFn func(ctx context.Context, now time.Time, batchSize int) (int64, error)

func (r *Reaper) sweep(ctx context.Context, report *Report, name string, expire batchFn) int64 {
	var total int64

	for {
		// Honor shutdown between batches: finish the in-flight batch, then exit.
		select {
		case <-ctx.Done():
			report.Errors = append(report.Errors, name+" sweep interrupted: "+ctx.Err().Error())
			return total
		default:
		}

		now := time.Now().UTC()
		n, err := expire(ctx, now, r.batchSize)
		if err != nil {
			// Transient failures get one retry within the run.
			log.Warn("reaper %s batch failed, retrying once: %v", name, err)
			n, err = expire(ctx, now, r.batchSize)
			if err != nil {
				report.Errors = append(report.Errors, name+" sweep failed: "+err.Error())
				return total
			}
		}

		total += n
		if n < int64(r.batchSize) {
			return total
		}
	}
}
