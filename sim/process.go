// Defines the Process struct that models one CPU-bound job in the simulation.
// Tracks the immutable definition alongside remaining time, queue level and timestamps.

package sim

import "fmt"

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StatePending  ProcessState = "pending"  // not yet arrived
	StateQueued   ProcessState = "queued"   // waiting in one of the level queues
	StateRunning  ProcessState = "running"  // dequeued and holding the CPU
	StateFinished ProcessState = "finished" // remaining time reached zero
)

// Process models a single process's lifecycle in the simulation.
// Name, ArrivalTime and BurstTime never change once loaded; everything else
// is mutated only by the Simulator.
type Process struct {
	Name        string // unique within a run
	ArrivalTime int64  // tick at which the process becomes eligible
	BurstTime   int64  // total CPU demand in ticks

	RemainingTime int64        // 0 <= RemainingTime <= BurstTime
	CurrentQueue  int          // level the process occupies or last occupied
	Admitted      bool         // set once, when ArrivalTime is reached
	State         ProcessState // pending, queued, running, finished

	FirstRunTime   int64 // tick of the first dispatch, -1 until then
	CompletionTime int64 // tick at which RemainingTime reached zero, -1 until then
	Dispatches     int   // number of runs that consumed CPU time
	Demotions      int   // quantum exhaustions that moved the process down a level
	Preemptions    int   // runs cut short by an arrival boundary
}

// NewProcess creates a process in the pending state at level 0.
func NewProcess(spec ProcessSpec) *Process {
	return &Process{
		Name:           spec.Name,
		ArrivalTime:    spec.ArrivalTime,
		BurstTime:      spec.BurstTime,
		RemainingTime:  spec.BurstTime,
		CurrentQueue:   0,
		State:          StatePending,
		FirstRunTime:   -1,
		CompletionTime: -1,
	}
}

// Finished reports whether the process has consumed its whole burst.
func (p *Process) Finished() bool {
	return p.RemainingTime == 0
}

// Turnaround is completion time minus arrival time, or -1 while unfinished.
func (p *Process) Turnaround() int64 {
	if p.CompletionTime < 0 {
		return -1
	}
	return p.CompletionTime - p.ArrivalTime
}

// Waiting is the time spent ready but not running, or -1 while unfinished.
func (p *Process) Waiting() int64 {
	if p.CompletionTime < 0 {
		return -1
	}
	return p.Turnaround() - p.BurstTime
}

// Response is the delay between arrival and the first dispatch, or -1 if never dispatched.
func (p *Process) Response() int64 {
	if p.FirstRunTime < 0 {
		return -1
	}
	return p.FirstRunTime - p.ArrivalTime
}

func (p *Process) String() string {
	return fmt.Sprintf("%s(q%d,%d/%d)", p.Name, p.CurrentQueue, p.RemainingTime, p.BurstTime)
}
