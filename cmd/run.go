package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	sim "github.com/mlfq-sim/mlfq-sim/sim"
	"github.com/mlfq-sim/mlfq-sim/sim/input"
	"github.com/mlfq-sim/mlfq-sim/sim/trace"
)

// runOptions carries everything runSimulation needs, decoupled from flag globals.
type runOptions struct {
	Location    string
	Limits      sim.Limits
	Trace       trace.TraceConfig
	Format      string
	Quiet       bool
	Metrics     bool
	MetricsFile string
	RunID       string
}

// Report is the machine-readable result of one run.
type Report struct {
	RunID        string              `json:"run_id" yaml:"run_id"`
	Gantt        string              `json:"gantt" yaml:"gantt"`
	Timeline     []sim.TimelineEntry `json:"timeline" yaml:"timeline"`
	FinalClock   int64               `json:"final_clock" yaml:"final_clock"`
	Complete     bool                `json:"complete" yaml:"complete"`
	Truncated    bool                `json:"truncated" yaml:"truncated"`
	Error        string              `json:"error,omitempty" yaml:"error,omitempty"`
	Metrics      *sim.Metrics        `json:"metrics" yaml:"metrics"`
	TraceSummary *trace.TraceSummary `json:"trace_summary,omitempty" yaml:"trace_summary,omitempty"`
}

func isValidOutputFormat(format string) bool {
	switch format {
	case "text", "json", "yaml":
		return true
	}
	return false
}

// loadConfig reads the configuration from stdin ("-" or empty) or through afs.
func loadConfig(ctx context.Context, location string, stdin io.Reader) (*sim.Config, error) {
	if location == "" || location == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return input.ParseText("stdin", data)
	}
	return input.Load(ctx, afs.New(), location)
}

// runSimulation loads, validates and simulates one configuration and writes the
// outcome to out. A stalled or cancelled run still writes its partial chart,
// marked incomplete, before the error is returned.
func runSimulation(ctx context.Context, opts runOptions, stdin io.Reader, out io.Writer) error {
	cfg, err := loadConfig(ctx, opts.Location, stdin)
	if err != nil {
		return err
	}
	if opts.Format == "text" && !opts.Quiet {
		input.Echo(out, cfg)
	}

	s, err := sim.NewSimulator(*cfg,
		sim.WithLimits(opts.Limits),
		sim.WithTrace(opts.Trace),
		sim.WithRunID(opts.RunID),
	)
	if err != nil {
		return err
	}
	result, runErr := s.Run(ctx)
	if result == nil {
		return runErr
	}
	logrus.WithField("run", result.RunID).Infof("Run finished at tick %d, complete=%v", result.FinalClock, result.Complete)

	if opts.MetricsFile != "" {
		if err := exportMetrics(opts.MetricsFile, result); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
	}
	if err := writeResult(out, opts, result, runErr); err != nil {
		return err
	}
	return runErr
}

func newReport(result *sim.Result, runErr error) *Report {
	r := &Report{
		RunID:      result.RunID,
		Gantt:      result.Timeline.Render(),
		Timeline:   result.Timeline.Entries(),
		FinalClock: result.FinalClock,
		Complete:   result.Complete,
		Truncated:  result.Timeline.Truncated(),
		Metrics:    result.Metrics,
	}
	if r.Timeline == nil {
		r.Timeline = []sim.TimelineEntry{}
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	if result.Trace != nil {
		r.TraceSummary = trace.Summarize(result.Trace)
	}
	return r
}

func writeResult(out io.Writer, opts runOptions, result *sim.Result, runErr error) error {
	switch opts.Format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(newReport(result, runErr))
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(newReport(result, runErr)); err != nil {
			return err
		}
		return encoder.Close()
	}

	fmt.Fprintln(out, result.Timeline.Render())
	if result.Timeline.Truncated() {
		fmt.Fprintf(out, "Gantt chart truncated at %d entries (%d ticks not charted)\n",
			result.Timeline.Len(), result.Timeline.Dropped())
	}
	if !result.Complete {
		fmt.Fprintf(out, "Gantt chart incomplete: %v\n", runErr)
	}
	if opts.Metrics {
		result.Metrics.Print(out)
	}
	if result.Trace != nil {
		printTraceSummary(out, trace.Summarize(result.Trace))
	}
	return nil
}

func printTraceSummary(out io.Writer, summary *trace.TraceSummary) {
	fmt.Fprintln(out, "=== Decision Trace ===")
	fmt.Fprintf(out, "Admissions           : %d\n", summary.AdmittedCount)
	fmt.Fprintf(out, "Dispatches           : %d\n", summary.TotalDispatches)
	fmt.Fprintf(out, "Idle Ticks           : %d\n", summary.IdleTicks)
	for _, outcome := range []sim.Outcome{sim.OutcomeFinished, sim.OutcomePreempted, sim.OutcomeDemoted, sim.OutcomeRequeued, sim.OutcomeDeferred} {
		if n := summary.OutcomeCounts[string(outcome)]; n > 0 {
			fmt.Fprintf(out, "  %-19s: %d\n", outcome, n)
		}
	}
	levels := make([]int, 0, len(summary.LevelDistribution))
	for level := range summary.LevelDistribution {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		fmt.Fprintf(out, "  Q%d dispatches      : %d (%d ticks)\n", level, summary.LevelDistribution[level], summary.TicksByLevel[level])
	}
}
