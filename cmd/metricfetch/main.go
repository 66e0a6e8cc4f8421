// metricfetch captures one benchmark metric from Prometheus and saves the raw
// query-range envelope as <replicas>_<clients>_<metric>.json, the shape
// metricplot consumes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"

	"github.com/openshift/metricplot/src/promdata"
)

type fetchOptions struct {
	promURL  string
	query    string
	metric   string
	replicas string
	clients  string
	window   time.Duration
	step     time.Duration
	outDir   string
}

// envelope matches the on-disk shape. model.Matrix marshals each stream as
// {"metric":{...},"values":[[ts,"v"],...]}, which is exactly what the
// Prometheus API itself returns.
type envelope struct {
	Status string `json:"status"`
	Data   struct {
		ResultType string       `json:"resultType"`
		Result     model.Matrix `json:"result"`
	} `json:"data"`
}

// fetch runs the range query and writes the envelope file, returning its path.
func fetch(ctx context.Context, opts fetchOptions) (string, error) {
	defer promdata.TimeTrack(time.Now(), "fetch")

	client, err := api.NewClient(api.Config{Address: opts.promURL})
	if err != nil {
		return "", fmt.Errorf("prometheus client: %w", err)
	}
	papi := v1.NewAPI(client)

	end := time.Now()
	r := v1.Range{Start: end.Add(-opts.window), End: end, Step: opts.step}
	promdata.Debugf("query_range %q start=%s end=%s step=%s", opts.query, r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339), r.Step)

	val, warns, err := papi.QueryRange(ctx, opts.query, r)
	if err != nil {
		return "", fmt.Errorf("query_range: %w", err)
	}
	for _, w := range warns {
		promdata.Warnf("prometheus warning: %s", w)
	}
	matrix, ok := val.(model.Matrix)
	if !ok {
		return "", fmt.Errorf("query returned %s, want a range vector", val.Type())
	}
	promdata.Infof("query returned %d series", matrix.Len())

	var env envelope
	env.Status = "success"
	env.Data.ResultType = "matrix"
	env.Data.Result = matrix
	b, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("encode envelope: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%s.json", opts.replicas, opts.clients, strings.ToLower(opts.metric))
	path := filepath.Join(opts.outDir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	promdata.Infof("wrote %s", path)
	return path, nil
}

func main() {
	var opts fetchOptions
	var loglevel string
	flag.StringVar(&opts.promURL, "prom", "http://localhost:9090", "Prometheus base URL")
	flag.StringVar(&opts.query, "query", "", "PromQL range query (required)")
	flag.StringVar(&opts.metric, "metric", "", "Metric code for the file name, e.g. cpu or mem (required)")
	flag.StringVar(&opts.replicas, "replicas", "1", "Replica count label for the file name")
	flag.StringVar(&opts.clients, "clients", "1", "Client count label for the file name")
	flag.DurationVar(&opts.window, "window", 15*time.Minute, "How far back from now to query")
	flag.DurationVar(&opts.step, "step", 15*time.Second, "Query resolution step")
	flag.StringVar(&opts.outDir, "out", ".", "Output directory")
	flag.StringVar(&loglevel, "loglevel", "info", "Log level: debug|info|warn|error")
	flag.Parse()
	promdata.SetLogLevel(loglevel)

	if opts.query == "" || opts.metric == "" {
		fmt.Fprintln(os.Stderr, "error: -query and -metric are required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := fetch(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
