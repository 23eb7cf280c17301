// Package jobs runs background maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"fieldmate/internal/metrics"
	"fieldmate/internal/repo"

	"go.uber.org/zap"
)

// FileStore is the part of storage.Store the sweep needs.
type FileStore interface {
	ListOlder(ctx context.Context, cutoff time.Time) ([]string, error)
	Remove(rel string) error
}

// OrphanSweep purges soft-deleted tasks and removes image files that no
// image row points at.
type OrphanSweep struct {
	tasks     repo.TaskRepo
	files     FileStore
	logger    *zap.Logger
	retention time.Duration
	grace     time.Duration
	now       func() time.Time
}

// NewOrphanSweep keeps deleted tasks for retention before purging them.
// Files younger than grace are never touched.
func NewOrphanSweep(tasks repo.TaskRepo, files FileStore, logger *zap.Logger, retention, grace time.Duration) *OrphanSweep {
	return &OrphanSweep{
		tasks:     tasks,
		files:     files,
		logger:    logger,
		retention: retention,
		grace:     grace,
		now:       time.Now,
	}
}

// Run does one sweep and returns how many files were removed.
func (s *OrphanSweep) Run(ctx context.Context) (int, error) {
	now := s.now()
	purged, err := s.tasks.PurgeDeleted(ctx, now.Add(-s.retention))
	if err != nil {
		return 0, fmt.Errorf("purge deleted tasks: %w", err)
	}
	removed := s.remove(purged)

	known, err := s.tasks.ImagePaths(ctx)
	if err != nil {
		return removed, fmt.Errorf("image paths: %w", err)
	}
	files, err := s.files.ListOlder(ctx, now.Add(-s.grace))
	if err != nil {
		return removed, fmt.Errorf("list files: %w", err)
	}
	var orphans []string
	for _, f := range files {
		if _, ok := known[f]; !ok {
			orphans = append(orphans, f)
		}
	}
	removed += s.remove(orphans)

	metrics.RecordOrphansRemoved(removed)
	return removed, nil
}

func (s *OrphanSweep) remove(paths []string) int {
	n := 0
	for _, p := range paths {
		if err := s.files.Remove(p); err != nil {
			s.logger.Warn("orphan sweep: remove file", zap.String("path", p), zap.Error(err))
			continue
		}
		n++
	}
	return n
}
