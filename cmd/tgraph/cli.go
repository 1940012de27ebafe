package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/tgraph/pipeline"
)

// ExitError carries the process exit code for a failed invocation.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const usage = `
tgraph - earliest-arrival times over an evolving temporal graph.

Usage:
  tgraph [options] <inputDir> <startStep> <endStep> <srcVertex>
  tgraph -config run.yaml [options]

Arguments:
  inputDir   directory holding time=<step>/<worker>/part-00000.txt shards
  startStep  first step to process
  endStep    step to stop before
  srcVertex  vertex the arrival times are measured from

Positional arguments and flags override values from -config.

Options:
`

// parseArgs builds the run configuration from args. It returns true when the
// program should exit cleanly without running (help requested).
func parseArgs(args []string, out io.Writer) (pipeline.Config, bool, error) {
	fs := flag.NewFlagSet("tgraph", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprint(out, usage)
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "Path to a YAML run configuration.")
	outDir := fs.String("out", "", "Directory for vertices-<step>.csv files.")
	every := fs.Int("every", 0, "Write results every n steps.")
	pattern := fs.String("pattern", "", "Shard file name pattern.")
	strict := fs.Bool("strict", false, "Fail on unreadable shards instead of dropping them.")
	concurrency := fs.Int("concurrency", 0, "Parallel shard reads per step.")
	offset := fs.Int64("horizon-offset", 0, "Added to the step to form the compute horizon.")
	maxSettled := fs.Int("max-settled", 0, "Abort a step's compute after settling n vertices. 0 is unbounded.")
	timeout := fs.Duration("timeout", 0, "Abort a step's compute after this long. 0 is unbounded.")
	edgeOnly := fs.Bool("edge-intervals-only", false, "Ignore vertex intervals during traversal.")
	overwrite := fs.Bool("overwrite-vertices", false, "Re-adding a vertex replaces it instead of failing.")
	logLevel := fs.String("log-level", "", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	logFormat := fs.String("log-format", "", "Log output format: 'text' or 'json'.")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address.")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return pipeline.Config{}, true, nil
		}
		return pipeline.Config{}, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if *configPath == "" && fs.NArg() == 0 {
		fs.Usage()
		return pipeline.Config{}, true, nil
	}

	cfg, err := pipeline.LoadConfig(*configPath)
	if err != nil {
		return cfg, false, &ExitError{Code: 2, Message: err.Error()}
	}

	switch fs.NArg() {
	case 0:
	case 4:
		cfg.InputDir = fs.Arg(0)
		nums := make([]int64, 3)
		for i, name := range []string{"startStep", "endStep", "srcVertex"} {
			n, err := strconv.ParseInt(fs.Arg(i+1), 10, 64)
			if err != nil {
				return cfg, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid %s %q", name, fs.Arg(i+1))}
			}
			nums[i] = n
		}
		cfg.StartStep, cfg.EndStep, cfg.Source = nums[0], nums[1], nums[2]
	default:
		return cfg, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected 4 arguments, got %d", fs.NArg())}
	}

	// Only flags given on the command line override the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.OutputDir = *outDir
		case "every":
			cfg.WriteEvery = *every
		case "pattern":
			cfg.ShardPattern = *pattern
		case "strict":
			cfg.StrictShards = *strict
		case "concurrency":
			cfg.ReadConcurrency = *concurrency
		case "horizon-offset":
			cfg.HorizonOffset = *offset
		case "max-settled":
			cfg.MaxSettled = *maxSettled
		case "timeout":
			cfg.ComputeTimeout = *timeout
		case "edge-intervals-only":
			cfg.EdgeIntervalsOnly = *edgeOnly
		case "overwrite-vertices":
			cfg.VertexOverwrite = *overwrite
		case "log-level":
			cfg.LogLevel = strings.ToLower(*logLevel)
		case "log-format":
			cfg.LogFormat = strings.ToLower(*logFormat)
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return cfg, false, nil
}
