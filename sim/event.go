package sim

// Outcome classifies what the scheduler did with a process after dispatching it.
type Outcome string

const (
	// OutcomeFinished: the run consumed the last of the burst.
	OutcomeFinished Outcome = "finished"
	// OutcomePreempted: the run was cut at an arrival boundary; same level.
	OutcomePreempted Outcome = "preempted"
	// OutcomeDemoted: the full quantum was used; moved one level down, or kept at the lowest level.
	OutcomeDemoted Outcome = "demoted"
	// OutcomeRequeued: fallback classification, re-enqueued at the same level.
	// Unreachable for valid input.
	OutcomeRequeued Outcome = "requeued"
	// OutcomeDeferred: nothing could run before the next arrival; put back unchanged.
	OutcomeDeferred Outcome = "deferred"
)

// Dispatch describes one selection of a process by the scheduler loop.
type Dispatch struct {
	Start     int64 // clock when the process was selected
	Process   *Process
	Level     int   // level it was dequeued from
	Quantum   int64 // quantum of that level
	Tentative int64 // min(quantum, remaining) before arrival clipping
	Ran       int64 // ticks actually executed
	NextLevel int   // level it was re-enqueued at, -1 when finished
	Outcome   Outcome
}
