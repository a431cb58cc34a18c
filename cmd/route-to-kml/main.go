// route-to-kml converts a route file to KML for review in Google Earth
// or any other KML viewer. Each stop becomes a placemark and the full
// point sequence becomes a styled line.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davaotransit/routekit/internal/lib/kml"
	"github.com/davaotransit/routekit/internal/lib/routes"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: route-to-kml route.json [out.kml]")
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

	out := os.Stdout
	if flag.NArg() == 2 {
		f, err := os.Create(flag.Arg(1))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		out = f
	}

	if err := kml.Write(out, route); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
