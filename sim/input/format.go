package input

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mlfq-sim/mlfq-sim/sim"
)

// Echo prints the parsed configuration: queue count, the quanta in use and the
// process table.
func Echo(w io.Writer, cfg *sim.Config) {
	quanta := cfg.TimeQuanta
	if cfg.QueueNum >= 0 && cfg.QueueNum < len(quanta) {
		quanta = quanta[:cfg.QueueNum]
	}
	fmt.Fprintf(w, "%s = %d\n", KeywordQueueNum, cfg.QueueNum)
	fmt.Fprintf(w, "%s = %s\n", KeywordTimeQuantum, joinInts(quanta))
	fmt.Fprintf(w, "%s =\n", KeywordProcessTable)
	fmt.Fprintln(w, "Process\tArrival\tBurst")
	for _, p := range cfg.Processes {
		fmt.Fprintf(w, "%s\t%d\t%d\n", p.Name, p.ArrivalTime, p.BurstTime)
	}
}

// WriteText writes cfg in the text format ParseText reads.
func WriteText(w io.Writer, cfg *sim.Config) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s = %d\n", KeywordQueueNum, cfg.QueueNum)
	fmt.Fprintf(&sb, "%s = %s\n", KeywordTimeQuantum, joinInts(cfg.TimeQuanta))
	fmt.Fprintf(&sb, "%s = %d\n", KeywordProcessTableSize, len(cfg.Processes))
	fmt.Fprintf(&sb, "%s =\n", KeywordProcessTable)
	for _, p := range cfg.Processes {
		fmt.Fprintf(&sb, "%s %d %d\n", p.Name, p.ArrivalTime, p.BurstTime)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func joinInts(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, " ")
}
