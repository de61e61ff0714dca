package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/signalsfoundry/orbital-catalog/tle"
)

func main() {
	id := flag.String("id", "", "only show the satellite with this catalog number")
	name := flag.String("name", "", "only show satellites with this name")
	multiEpoch := flag.Bool("multi-epoch", false, "treat the file as a multi-epoch catalog of fixed 3-line records")
	derived := flag.Bool("derived", false, "print orbital period and altitudes derived from the elements")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tleparse [flags] <catalog-file>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	path := flag.Arg(0)

	var err error
	if *multiEpoch {
		err = printMultiEpoch(os.Stdout, path, *name)
	} else {
		err = printCatalog(os.Stdout, path, *id, *name, *derived)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "tleparse: %v\n", err)
		os.Exit(1)
	}
}

func printCatalog(w io.Writer, path, id, name string, derived bool) error {
	rep := &tle.CaptureReporter{}
	catalog, summary, err := tle.LoadCatalog(path, rep)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Loaded %d satellites (%d skipped, %d duplicates, %d trailing lines dropped)\n",
		summary.Records, summary.Skipped, summary.Duplicates, summary.DroppedLines)
	for _, note := range rep.Skipped {
		fmt.Fprintf(w, "  skipped %q: %s\n", note.Name, note.Reason)
	}

	ids := make([]string, 0, len(catalog))
	for catID := range catalog {
		ids = append(ids, catID)
	}
	sort.Strings(ids)

	for _, catID := range ids {
		entry := catalog[catID]
		if id != "" && catID != id {
			continue
		}
		if name != "" && entry.Name != name {
			continue
		}

		elems, err := tle.ParseElementSet(entry.Line1, entry.Line2)
		if err != nil {
			fmt.Fprintf(w, "%-8s %s  (unparseable: %v)\n", catID, entry.Name, err)
			continue
		}

		fmt.Fprintf(w, "%-8s %-24s epoch %d:%09.5f  inc %7.4f°  ecc %.7f  mm %10.8f rev/d\n",
			catID,
			entry.Name,
			elems.Line1.EpochYearFull(),
			elems.Line1.EpochDay,
			elems.Line2.Inclination,
			elems.Line2.Eccentricity,
			elems.Line2.MeanMotion,
		)
		if derived {
			fmt.Fprintf(w, "         period %.2f min  semi-major axis %.1f km  apogee %.1f km  perigee %.1f km\n",
				elems.PeriodMinutes(),
				elems.SemiMajorAxisKm(),
				elems.ApogeeAltitudeKm(),
				elems.PerigeeAltitudeKm(),
			)
		}
	}
	return nil
}

func printMultiEpoch(w io.Writer, path, name string) error {
	rep := &tle.CaptureReporter{}
	catalog, summary, err := tle.LoadMultiEpochCatalog(path, rep)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Loaded %d element sets across %d satellites (%d skipped)\n",
		summary.Records, len(catalog), summary.Skipped)

	names := make([]string, 0, len(catalog))
	for n := range catalog {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, n := range names {
		if name != "" && n != name {
			continue
		}
		fmt.Fprintf(w, "%s: %d epochs\n", n, len(catalog[n]))
		for _, epoch := range catalog[n] {
			fmt.Fprintf(w, "  %s\n", epoch.Label)
		}
	}
	return nil
}
