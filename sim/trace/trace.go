package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures admissions, dispatches and idle periods.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDecisions
}

// SimulationTrace collects decision records during a simulation run.
type SimulationTrace struct {
	Config     TraceConfig
	Admissions []AdmissionRecord
	Dispatches []DispatchRecord
	Idles      []IdleRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Admissions: make([]AdmissionRecord, 0),
		Dispatches: make([]DispatchRecord, 0),
		Idles:      make([]IdleRecord, 0),
	}
}

// RecordAdmission appends an admission record.
func (st *SimulationTrace) RecordAdmission(record AdmissionRecord) {
	st.Admissions = append(st.Admissions, record)
}

// RecordDispatch appends a dispatch record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	st.Dispatches = append(st.Dispatches, record)
}

// RecordIdle appends an idle record.
func (st *SimulationTrace) RecordIdle(record IdleRecord) {
	st.Idles = append(st.Idles, record)
}
