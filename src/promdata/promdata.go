// Package promdata turns a saved Prometheus range-query response into plottable
// per-pod series. Inputs come from the benchmark harness, which saves one query
// result per file named <replicas>_<clients>_<metric>.json.
package promdata

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// Envelope mirrors the JSON shape of a /api/v1/query_range response as saved
// to disk. Only the fields the plotting path reads are declared. Pointer
// fields preserve key presence: an envelope without data.result is malformed,
// not empty.
type Envelope struct {
	Status string `json:"status,omitempty"`
	Data   *struct {
		ResultType string    `json:"resultType,omitempty"`
		Result     *[]Result `json:"result"`
	} `json:"data"`
}

// Result is one matrix entry: a pod label plus its [timestamp, "value"] pairs.
type Result struct {
	Metric struct {
		Pod *string `json:"pod"`
	} `json:"metric"`
	Values *[][]interface{} `json:"values"`
}

// Series is one plottable line. X and Y always have equal length with matching
// index correspondence.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// NameInfo holds the fields derived from an input file name.
// The base name encodes three underscore-separated tokens:
// replica count, client count, metric code.
type NameInfo struct {
	Dir      string // parent directory of the input file
	Base     string // base name with the .json suffix stripped
	Replicas string
	Clients  string
	Metric   string // metric code, uppercased
}

// ParseName derives chart metadata from the input path. A path whose base name
// does not end in .json is a usage error. A base name with fewer than three
// tokens is not validated and faults at the index; the tool is fail-fast by
// design, matching the harness it serves.
func ParseName(path string) (NameInfo, error) {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, ".json") {
		return NameInfo{}, fmt.Errorf("expected a JSON file, got %q", name)
	}
	base := strings.TrimSuffix(name, ".json")
	parts := strings.Split(base, "_")
	return NameInfo{
		Dir:      filepath.Dir(path),
		Base:     base,
		Replicas: parts[0],
		Clients:  parts[1],
		Metric:   strings.ToUpper(parts[2]),
	}, nil
}

// Title renders the chart title. The second file name token feeds "Clients"
// and the first feeds "Replicas"; this mapping is kept exactly as the harness
// established it.
func (n NameInfo) Title() string {
	return fmt.Sprintf("%s Utilization for %s Clients and %s Replicas", n.Metric, n.Clients, n.Replicas)
}

// OutputPath is where the rendered chart goes: next to the input, same base
// name, the given extension (".pdf", ".png").
func (n NameInfo) OutputPath(ext string) string {
	return filepath.Join(n.Dir, n.Base+ext)
}

const bytesPerMB = 1024 * 1024

// UnitFor maps a metric code (already uppercased) to the divisor applied to
// every sample and the y-axis label. MEM is stored in bytes and scaled to MB;
// everything else is taken as a percentage, unscaled. Two-way policy, not a
// general unit table.
func UnitFor(metric string) (divisor float64, label string) {
	if metric == "MEM" {
		return bytesPerMB, metric + " (MB)"
	}
	return 1, metric + " (%)"
}

// Decode parses a saved query-range envelope and builds one Series per result
// entry, dividing every sample value by divisor. Sample values arrive
// string-encoded, timestamps as numbers; anything else is an error, as is an
// envelope missing the data.result key or an entry missing metric.pod or
// values. A present-but-empty result list decodes to zero series.
func Decode(r io.Reader, divisor float64) ([]Series, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Data == nil || env.Data.Result == nil {
		return nil, fmt.Errorf("envelope has no data.result")
	}
	series := make([]Series, 0, len(*env.Data.Result))
	for i, res := range *env.Data.Result {
		if res.Metric.Pod == nil {
			return nil, fmt.Errorf("result[%d]: missing metric.pod", i)
		}
		if res.Values == nil {
			return nil, fmt.Errorf("result[%d]: missing values", i)
		}
		s := Series{
			Name: *res.Metric.Pod,
			X:    make([]float64, 0, len(*res.Values)),
			Y:    make([]float64, 0, len(*res.Values)),
		}
		for j, pair := range *res.Values {
			if len(pair) != 2 {
				return nil, fmt.Errorf("result[%d].values[%d]: want [timestamp, value] pair, got %d elements", i, j, len(pair))
			}
			ts, ok := pair[0].(float64)
			if !ok {
				return nil, fmt.Errorf("result[%d].values[%d]: timestamp is %T, want number", i, j, pair[0])
			}
			sv, ok := pair[1].(string)
			if !ok {
				return nil, fmt.Errorf("result[%d].values[%d]: value is %T, want string", i, j, pair[1])
			}
			v, err := strconv.ParseFloat(sv, 64)
			if err != nil {
				return nil, fmt.Errorf("result[%d].values[%d]: parse value %q: %w", i, j, sv, err)
			}
			s.X = append(s.X, ts)
			s.Y = append(s.Y, v/divisor)
		}
		series = append(series, s)
	}
	return series, nil
}

// NormalizeStart shifts all series onto a common time origin: the earliest
// FIRST timestamp across series becomes zero. Only first elements are
// compared, so a series that began later keeps a positive offset showing when
// it started relative to the earliest. Returns the subtracted origin.
func NormalizeStart(series []Series) float64 {
	if len(series) == 0 {
		return 0
	}
	minX := series[0].X[0]
	for _, s := range series[1:] {
		if s.X[0] < minX {
			minX = s.X[0]
		}
	}
	for _, s := range series {
		for i := range s.X {
			s.X[i] -= minX
		}
	}
	return minX
}
