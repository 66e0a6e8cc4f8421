package chartrender

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/openshift/metricplot/src/promdata"
)

func twoSeries() []promdata.Series {
	return []promdata.Series{
		{Name: "server-0", X: []float64{0, 15, 30}, Y: []float64{10, 20, 15}},
		{Name: "server-1", X: []float64{50, 65, 80}, Y: []float64{5, 8, 12}},
	}
}

func TestSavePDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "3_10_cpu.pdf")
	ch := Chart{
		Title:  "CPU Utilization for 10 Clients and 3 Replicas",
		XLabel: "Time (s)",
		YLabel: "CPU (%)",
		Series: twoSeries(),
	}
	if err := ch.SavePDF(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("empty output file")
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF")
	}
}

func TestSavePDFNoSeries(t *testing.T) {
	// A result with zero entries still renders an (empty) chart.
	out := filepath.Join(t.TempDir(), "1_1_cpu.pdf")
	ch := Chart{Title: "CPU Utilization for 1 Clients and 1 Replicas", XLabel: "Time (s)", YLabel: "CPU (%)"}
	if err := ch.SavePDF(out); err != nil {
		t.Fatalf("save: %v", err)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("missing or empty output: %v", err)
	}
}

func TestRenderPNG(t *testing.T) {
	ch := Chart{
		Title:  "MEM Utilization for 10 Clients and 3 Replicas",
		XLabel: "Time (s)",
		YLabel: "MEM (MB)",
		Series: twoSeries(),
	}
	var buf bytes.Buffer
	if err := ch.RenderPNG(&buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	// PNG signature
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatalf("output does not look like a PNG")
	}
}
