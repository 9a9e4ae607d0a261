// Package trace provides decision-trace recording for scheduler analysis.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// AdmissionRecord captures a process entering the top-priority queue.
type AdmissionRecord struct {
	Process string
	Clock   int64 // clock at which the admission step ran
	Arrival int64 // the process's arrival time
}

// DispatchRecord captures a single scheduling decision and its classification.
type DispatchRecord struct {
	Process   string
	Clock     int64 // clock at selection
	Level     int   // level the process was dequeued from
	Ran       int64 // ticks executed, 0 for deferred dispatches
	NextLevel int   // level re-enqueued at, -1 when finished
	Outcome   string
}

// IdleRecord captures the clock jumping over a period with no runnable process.
type IdleRecord struct {
	From int64
	To   int64
}
