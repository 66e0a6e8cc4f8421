// metricgallery renders a PNG preview next to every benchmark result file in a
// directory. Useful after a sweep run, which leaves dozens of
// <replicas>_<clients>_<metric>.json files behind: one command gives a quick
// look at all of them without opening the per-file PDFs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openshift/metricplot/src/chartrender"
	"github.com/openshift/metricplot/src/promdata"
)

// renderAll walks dir non-recursively and renders a preview for every file
// that looks like a benchmark result. Files with the wrong extension or too
// few name tokens are skipped, not errors; a sweep directory holds other
// artifacts too. Returns how many previews were written.
func renderAll(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	rendered := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ".json")
		if len(strings.Split(base, "_")) < 3 {
			promdata.Debugf("skip %s: name does not encode replicas_clients_metric", e.Name())
			continue
		}
		path := filepath.Join(dir, e.Name())
		if err := renderOne(path); err != nil {
			promdata.Warnf("%s: %v", e.Name(), err)
			continue
		}
		rendered++
	}
	return rendered, nil
}

func renderOne(path string) error {
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
		return err
	}
	promdata.NormalizeStart(series)

	ch := chartrender.Chart{
		Title:  info.Title(),
		XLabel: "Time (s)",
		YLabel: yLabel,
		Series: series,
	}
	out, err := os.Create(info.OutputPath(".png"))
	if err != nil {
		return err
	}
	if err := ch.RenderPNG(out); err != nil {
		out.Close()
		return fmt.Errorf("render: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	promdata.Infof("rendered %s (%d series)", info.OutputPath(".png"), len(series))
	return nil
}

func main() {
	var dir, loglevel string
	flag.StringVar(&dir, "dir", ".", "Directory holding benchmark result JSON files")
	flag.StringVar(&loglevel, "loglevel", "info", "Log level: debug|info|warn|error")
	flag.Parse()
	promdata.SetLogLevel(loglevel)

	n, err := renderAll(dir)
	if err != nil {
		promdata.Errorf("%v", err)
		os.Exit(1)
	}
	promdata.Infof("rendered %d previews in %s", n, dir)
}
