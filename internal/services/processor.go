// Package services wires the normalization pipeline to the route file
// store for single-file and batch processing.
package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/davaotransit/routekit/internal/lib/geo"
	"github.com/davaotransit/routekit/internal/lib/normalize"
	"github.com/davaotransit/routekit/internal/lib/routes"
)

// ErrNoRouteFiles is returned by ProcessAll when the store is empty.
var ErrNoRouteFiles = errors.New("no route files found")

// Options control how files are processed.
type Options struct {
	// DryRun reports what would be done without touching any file.
	DryRun bool
	// NoBackup skips the .bak copy before overwriting.
	NoBackup bool
}

// Summary aggregates a batch run.
type Summary struct {
	Processed int
	Failed    int
}

// Processor normalizes route files one at a time. Routes are
// independent documents, so per-file failures never stop a batch.
type Processor struct {
	store      *routes.Store
	normalizer *normalize.Normalizer
	bounds     geo.Bounds
	log        *zap.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(store *routes.Store, normalizer *normalize.Normalizer, bounds geo.Bounds, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{store: store, normalizer: normalizer, bounds: bounds, log: log}
}

// ProcessFile normalizes one route document in place. The backup is
// durably written before the original is replaced, and any failure
// leaves the original file untouched.
func (p *Processor) ProcessFile(ctx context.Context, path string, opts Options) error {
	log := p.log.With(zap.String("file", filepath.Base(path)))

	route, err := p.store.Load(path)
	if err != nil {
		return err
	}

	if opts.DryRun {
		log.Info("dry run",
			zap.Int("points", len(route.Points)),
			zap.Int("stops", len(route.Stops())))
		return nil
	}

	normalized, err := p.normalizer.Normalize(ctx, route)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", route.ID, err)
	}

	report := normalize.Inspect(normalized, p.bounds)
	report.LogWarnings(log, p.bounds)

	if !opts.NoBackup {
		if _, err := p.store.Backup(path); err != nil {
			return err
		}
	}
	if err := p.store.Save(path, normalized); err != nil {
		return err
	}

	log.Info("normalized route",
		zap.Int("points_before", len(route.Points)),
		zap.Int("points_after", report.Points),
		zap.Int("stops", report.Stops),
		zap.Float64("max_waypoint_gap_m", report.MaxWaypointGapM))
	return nil
}

// ProcessAll normalizes every route file in the store, continuing past
// per-file failures. The summary tells the caller whether any file
// failed; deciding the exit status is the CLI's job.
func (p *Processor) ProcessAll(ctx context.Context, opts Options) (Summary, error) {
	paths, err := p.store.List()
	if err != nil {
		return Summary{}, err
	}
	if len(paths) == 0 {
		return Summary{}, fmt.Errorf("%w in %s", ErrNoRouteFiles, p.store.Dir())
	}

	var summary Summary
	for _, path := range paths {
		if err := p.ProcessFile(ctx, path, opts); err != nil {
			p.log.Error("route file failed", zap.String("file", filepath.Base(path)), zap.Error(err))
			summary.Failed++
			continue
		}
		summary.Processed++
	}

	p.log.Info("batch complete",
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
		zap.Int("total", len(paths)))
	return summary, nil
}
