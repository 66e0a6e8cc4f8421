// metricplot renders one saved Prometheus range-query result as a PDF line
// chart next to the input file.
//
// Usage: metricplot <replicas>_<clients>_<metric>.json
//
// The three file name tokens drive the title and the unit policy (MEM is
// scaled from bytes to MB, anything else is plotted as a percentage). All
// series are shifted so the earliest one starts at time zero. Anything
// malformed beyond the extension check aborts the run; this is a one-shot
// analysis tool, not a service.
package main

import (
	"fmt"
	"os"

	"github.com/openshift/metricplot/src/chartrender"
	"github.com/openshift/metricplot/src/promdata"
)

func run(path string) error {
	info, err := promdata.ParseName(path)
	if err != nil {
		return err
	}
	divisor, yLabel := promdata.UnitFor(info.Metric)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	series, err := promdata.Decode(f, divisor)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	promdata.NormalizeStart(series)

	ch := chartrender.Chart{
		Title:  info.Title(),
		XLabel: "Time (s)",
		YLabel: yLabel,
		Series: series,
	}
	return ch.SavePDF(info.OutputPath(".pdf"))
}

func main() {
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
