package cmd

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/mlfq-sim/mlfq-sim/sim"
	"github.com/mlfq-sim/mlfq-sim/sim/trace"
)

var (
	// CLI flags for the run command
	configLocation     string // Config path or URL; "-" or empty reads stdin
	logLevel           string // Log verbosity level
	outputFormat       string // text, json or yaml
	quiet              bool   // Suppress the configuration echo
	printMetrics       bool   // Print per-process metrics after the chart
	metricsFile        string // Prometheus text exposition output path
	traceLevel         string // Decision trace level
	horizon            int64  // Largest clock value before the run is declared stalled
	maxIterations      int64  // Scheduler loop bound, 0 derives it from the workload
	maxProcesses       int    // Largest accepted process table
	maxTimelineEntries int    // Gantt chart capacity
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mlfq-sim",
	Short: "Multi-level feedback queue CPU scheduling simulator",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a process table and print its Gantt chart",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown trace level %q", traceLevel)
		}
		if !isValidOutputFormat(outputFormat) {
			logrus.Fatalf("Unknown output format %q (want text, json or yaml)", outputFormat)
		}

		limits := sim.DefaultLimits()
		limits.Horizon = horizon
		limits.MaxIterations = maxIterations
		limits.MaxProcesses = maxProcesses
		limits.MaxTimelineEntries = maxTimelineEntries

		opts := runOptions{
			Location:    configLocation,
			Limits:      limits,
			Trace:       trace.TraceConfig{Level: trace.TraceLevel(traceLevel)},
			Format:      outputFormat,
			Quiet:       quiet,
			Metrics:     printMetrics,
			MetricsFile: metricsFile,
			RunID:       uuid.New().String(),
		}
		if err := runSimulation(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// setLogLevel applies a logrus level name, exiting on an unknown one.
func setLogLevel(name string) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", name)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVarP(&configLocation, "config", "c", "-", "Config path or URL (.yaml/.yml for YAML, otherwise keyword = value text); - reads stdin")
	runCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json, yaml)")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not echo the parsed configuration")
	runCmd.Flags().BoolVar(&printMetrics, "metrics", false, "Print turnaround, waiting and response metrics")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")

	// Sanity and capacity bounds
	runCmd.Flags().Int64Var(&horizon, "horizon", sim.DefaultHorizon, "Largest simulation clock value before the run is reported as stalled")
	runCmd.Flags().Int64Var(&maxIterations, "max-iterations", 0, "Scheduler iteration bound (0 derives it from the process table)")
	runCmd.Flags().IntVar(&maxProcesses, "max-processes", sim.DefaultMaxProcesses, "Maximum number of processes accepted")
	runCmd.Flags().IntVar(&maxTimelineEntries, "max-timeline-entries", sim.DefaultMaxTimelineEntries, "Maximum number of Gantt chart entries")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
}
