// Command arcdump prints a flight route's sampled arc as CSV.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"flightglobe/geo"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fatalf("arcdump: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("arcdump", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		from     = fs.String("from", geo.Beijing.String(), "Route start as lon,lat.")
		to       = fs.String("to", geo.NewYork.String(), "Route end as lon,lat.")
		radius   = fs.Float64("radius", geo.DefaultRadius, "Globe radius.")
		segments = fs.Int("segments", geo.DefaultSegments, "Arc segments.")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, err := geo.ParseGeoPoint(*from)
	if err != nil {
		return fmt.Errorf("-from: %w", err)
	}
	end, err := geo.ParseGeoPoint(*to)
	if err != nil {
		return fmt.Errorf("-to: %w", err)
	}
	if *radius <= 0 {
		return fmt.Errorf("-radius must be positive, got %v", *radius)
	}

	route := geo.Route{From: start, To: end, Radius: *radius}
	arc, err := route.Arc(geo.WithSegments(*segments))
	if errors.Is(err, geo.ErrAntipodal) {
		_, _ = fmt.Fprintf(stderr, "warning: %v, writing straight chord\n", err)
	}
	return writeCSV(stdout, arc)
}

func writeCSV(w io.Writer, arc geo.ArcCurve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "x", "y", "z"}); err != nil {
		return err
	}
	for i, p := range arc.Points {
		rec := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'f', 6, 64),
			strconv.FormatFloat(p.Y, 'f', 6, 64),
			strconv.FormatFloat(p.Z, 'f', 6, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
