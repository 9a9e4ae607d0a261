package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	sim "github.com/mlfq-sim/mlfq-sim/sim"
	"github.com/mlfq-sim/mlfq-sim/sim/input"
	"github.com/mlfq-sim/mlfq-sim/sim/workload"
)

var (
	// CLI flags for the generate command
	seed           int64 // Seed for the process table generator
	genSpec        = workload.DefaultSpec()
	genFormat      string  // text or yaml
	genOutput      string  // Output path or URL, "-" for stdout
	genQuanta      []int64 // Quantum per level
	genNamePrefix  string  // Process name prefix
	genMeanArrival float64 // Mean inter-arrival time
	genCount       int     // Number of processes
	genMinBurst    int64   // Smallest burst
	genMaxBurst    int64   // Largest burst
	genQueueNum    int     // Number of levels
)

// generateCmd writes a seeded synthetic process table
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random process table in the text or YAML config format",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(logLevel)

		spec := workload.GeneratorSpec{
			Count:            genCount,
			MeanInterArrival: genMeanArrival,
			MinBurst:         genMinBurst,
			MaxBurst:         genMaxBurst,
			QueueNum:         genQueueNum,
			TimeQuanta:       genQuanta,
			NamePrefix:       genNamePrefix,
		}
		if err := generate(cmd.Context(), spec, seed, genFormat, genOutput, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Generation failed: %v", err)
		}
	},
}

// generate produces a process table, checks that it is a valid simulation input
// and writes it to output ("-" is out).
func generate(ctx context.Context, spec workload.GeneratorSpec, seed int64, format, output string, out io.Writer) error {
	cfg, err := workload.Generate(spec, seed)
	if err != nil {
		return err
	}
	limits := sim.DefaultLimits()
	limits.MaxProcesses = max(limits.MaxProcesses, len(cfg.Processes))
	if err := cfg.Validate(limits); err != nil {
		return err
	}

	var buf bytes.Buffer
	switch input.Format(format) {
	case input.FormatText:
		err = input.WriteText(&buf, cfg)
	case input.FormatYAML:
		err = input.WriteYAML(&buf, cfg)
	default:
		err = fmt.Errorf("unknown format %q (want text or yaml)", format)
	}
	if err != nil {
		return err
	}

	if output == "" || output == "-" {
		_, err = out.Write(buf.Bytes())
		return err
	}
	URL, err := input.Location(output)
	if err != nil {
		return err
	}
	logrus.Infof("Writing %d processes to %s", len(cfg.Processes), URL)
	return afs.New().Upload(ctx, URL, file.DefaultFileOsMode, &buf)
}

func init() {
	generateCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random process generation")
	generateCmd.Flags().IntVar(&genCount, "count", genSpec.Count, "Number of processes")
	generateCmd.Flags().Float64Var(&genMeanArrival, "mean-inter-arrival", genSpec.MeanInterArrival, "Mean ticks between arrivals (0 = all arrive at 0)")
	generateCmd.Flags().Int64Var(&genMinBurst, "min-burst", genSpec.MinBurst, "Smallest burst time")
	generateCmd.Flags().Int64Var(&genMaxBurst, "max-burst", genSpec.MaxBurst, "Largest burst time")
	generateCmd.Flags().IntVar(&genQueueNum, "queue-num", genSpec.QueueNum, "Number of priority levels")
	generateCmd.Flags().Int64SliceVar(&genQuanta, "time-quantum", genSpec.TimeQuanta, "Comma-separated time quantum per level")
	generateCmd.Flags().StringVar(&genNamePrefix, "name-prefix", "P", "Process name prefix")
	generateCmd.Flags().StringVar(&genFormat, "format", string(input.FormatText), "Output format (text, yaml)")
	generateCmd.Flags().StringVar(&genOutput, "out", "-", "Output path or URL; - writes to stdout")
}
