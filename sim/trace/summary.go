package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches   int
	AdmittedCount     int
	IdleTicks         int64
	OutcomeCounts     map[string]int // outcome → number of dispatches
	LevelDistribution map[int]int    // level → number of dispatches from it
	TicksByLevel      map[int]int64  // level → ticks executed from it
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		OutcomeCounts:     make(map[string]int),
		LevelDistribution: make(map[int]int),
		TicksByLevel:      make(map[int]int64),
	}
	if st == nil {
		return summary
	}

	summary.AdmittedCount = len(st.Admissions)
	summary.TotalDispatches = len(st.Dispatches)
	for _, d := range st.Dispatches {
		summary.OutcomeCounts[d.Outcome]++
		summary.LevelDistribution[d.Level]++
		summary.TicksByLevel[d.Level] += d.Ran
	}
	for _, idle := range st.Idles {
		summary.IdleTicks += idle.To - idle.From
	}

	return summary
}
