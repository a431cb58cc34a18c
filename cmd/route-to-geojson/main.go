// route-to-geojson converts a route file to a GeoJSON FeatureCollection
// suitable for editing in geojson.io or similar tools. Stops are styled
// red and waypoints blue so they are easy to tell apart in an editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davaotransit/routekit/internal/lib/geojson"
	"github.com/davaotransit/routekit/internal/lib/routes"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: route-to-geojson route.json [out.geojson]")
		fmt.Fprintln(flag.CommandLine.Output(), "Writes to stdout when no output file is given.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		return 2
	}

	route, err := routes.LoadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	data, err := geojson.Encode(route)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if flag.NArg() == 2 {
		if err := os.WriteFile(flag.Arg(1), data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Println(string(data))
	return 0
}
