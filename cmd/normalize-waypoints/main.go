// normalize-waypoints rewrites route waypoints so they are evenly
// spaced along the road network, using an OSRM server for map matching.
// Stops are preserved exactly as-is.
//
// Process a single route:
//
//	normalize-waypoints --osrm-url http://localhost:5001 R102-AM.json
//
// Process every route with 20m spacing, keeping .bak backups:
//
//	normalize-waypoints --all --spacing 20 --osrm-url http://localhost:5001
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/davaotransit/routekit/internal/clients/osrm"
	"github.com/davaotransit/routekit/internal/config"
	"github.com/davaotransit/routekit/internal/lib/normalize"
	"github.com/davaotransit/routekit/internal/lib/routes"
	"github.com/davaotransit/routekit/internal/logging"
	"github.com/davaotransit/routekit/internal/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	all := flag.Bool("all", false, "process every R*.json file in the routes directory")
	spacing := flag.Float64("spacing", cfg.SpacingM, "target waypoint spacing in meters")
	osrmURL := flag.String("osrm-url", cfg.OSRMURL, "OSRM server base URL")
	routesDir := flag.String("routes-dir", cfg.RoutesDir, "directory holding route files")
	dryRun := flag.Bool("dry-run", false, "show what would be done without making changes")
	noBackup := flag.Bool("no-backup", false, "don't create .bak backup files")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: normalize-waypoints [flags] [route.json]")
		fmt.Fprintln(flag.CommandLine.Output(), "Either provide a route file or use --all.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *all == (flag.NArg() == 1) {
		flag.Usage()
		return 2
	}
	if *spacing <= 0 {
		fmt.Fprintf(os.Stderr, "invalid --spacing %v: must be positive\n", *spacing)
		return 2
	}

	log := logging.New(*verbose)
	defer log.Sync()

	store := routes.NewStore(*routesDir, log)
	matcher := osrm.NewClient(*osrmURL, log)
	normalizer := normalize.New(matcher, *spacing, log)
	processor := services.NewProcessor(store, normalizer, cfg.Bounds, log)

	opts := services.Options{DryRun: *dryRun, NoBackup: *noBackup}
	ctx := context.Background()

	log.Info("normalizing waypoints",
		zap.String("osrm_url", *osrmURL),
		zap.Float64("spacing_m", *spacing),
		zap.Bool("dry_run", *dryRun))

	if *all {
		summary, err := processor.ProcessAll(ctx, opts)
		if err != nil {
			log.Error("batch failed", zap.Error(err))
			return 1
		}
		if summary.Failed > 0 {
			return 1
		}
		return 0
	}

	path := store.Resolve(flag.Arg(0))
	if err := processor.ProcessFile(ctx, path, opts); err != nil {
		log.Error("route file failed", zap.String("file", path), zap.Error(err))
		return 1
	}
	return 0
}
