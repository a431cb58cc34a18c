// geojson-to-route converts an edited GeoJSON FeatureCollection back
// into a route file. LineString features are ignored since the line is
// derived from the points, and new points picked up an id on the way in.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davaotransit/routekit/internal/config"
	"github.com/davaotransit/routekit/internal/lib/geojson"
	"github.com/davaotransit/routekit/internal/lib/routes"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: geojson-to-route in.geojson [out.json]")
		fmt.Fprintln(flag.CommandLine.Output(), "Writes to stdout when no output file is given.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	route, err := geojson.Decode(data, cfg.Bounds)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := route.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	out, err := routes.Marshal(route)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if flag.NArg() == 2 {
		if err := os.WriteFile(flag.Arg(1), out, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Print(string(out))
	return 0
}
