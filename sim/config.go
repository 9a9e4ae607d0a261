package sim

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultMaxQueues is the deepest feedback hierarchy supported.
	DefaultMaxQueues = 4
	// DefaultMaxProcesses bounds the process table size.
	DefaultMaxProcesses = 10
	// DefaultMaxTimelineEntries bounds the number of coalesced Gantt chart entries.
	DefaultMaxTimelineEntries = 300
	// DefaultHorizon is the largest clock value a run may reach before it is declared stalled.
	DefaultHorizon = int64(math.MaxInt32)
)

// ProcessSpec is one row of the process table as supplied by the caller.
type ProcessSpec struct {
	Name        string `json:"name" yaml:"name"`
	ArrivalTime int64  `json:"arrival" yaml:"arrival"`
	BurstTime   int64  `json:"burst" yaml:"burst"`
}

// Config is the validated input of one simulation run.
type Config struct {
	QueueNum   int           // number of priority levels, level 0 is the highest
	TimeQuanta []int64       // quantum per level; entries past QueueNum are ignored
	Processes  []ProcessSpec // process table in input order
}

// Limits groups the capacity and sanity bounds applied to a run.
type Limits struct {
	MaxQueues          int   // upper bound for QueueNum
	MaxProcesses       int   // upper bound for the process table size, also the per-level queue capacity
	MaxTimelineEntries int   // Gantt chart capacity; further distinct entries are dropped
	Horizon            int64 // a clock beyond this value stalls the run
	MaxIterations      int64 // scheduler loop bound; 0 derives one from the workload
}

// DefaultLimits returns the bounds of the classic assignment-sized simulator.
func DefaultLimits() Limits {
	return Limits{
		MaxQueues:          DefaultMaxQueues,
		MaxProcesses:       DefaultMaxProcesses,
		MaxTimelineEntries: DefaultMaxTimelineEntries,
		Horizon:            DefaultHorizon,
	}
}

// Validate checks the limits themselves.
func (l Limits) Validate() error {
	if l.MaxQueues < 1 {
		return fmt.Errorf("%w: max queues must be positive, got %d", ErrInvalidConfig, l.MaxQueues)
	}
	if l.MaxProcesses < 0 {
		return fmt.Errorf("%w: max processes must be non-negative, got %d", ErrInvalidConfig, l.MaxProcesses)
	}
	if l.MaxTimelineEntries < 1 {
		return fmt.Errorf("%w: max timeline entries must be positive, got %d", ErrInvalidConfig, l.MaxTimelineEntries)
	}
	if l.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be positive, got %d", ErrInvalidConfig, l.Horizon)
	}
	if l.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations must be non-negative, got %d", ErrInvalidConfig, l.MaxIterations)
	}
	return nil
}

// iterationBound returns the loop bound for cfg. On valid input every iteration
// either consumes at least one tick of some burst or admits a pending arrival,
// so twice that count is never reached by a healthy run.
func (l Limits) iterationBound(cfg Config) int64 {
	if l.MaxIterations > 0 {
		return l.MaxIterations
	}
	bound := int64(1)
	for _, p := range cfg.Processes {
		if p.BurstTime > 0 {
			bound = saturatingAdd(bound, p.BurstTime)
		}
		bound = saturatingAdd(bound, 1)
	}
	return saturatingAdd(bound, bound)
}

// saturatingAdd adds two non-negative values, clamping at math.MaxInt64.
func saturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Quantum returns the time quantum of level.
func (c Config) Quantum(level int) int64 {
	return c.TimeQuanta[level]
}

// Validate reports the first problem found in c under limits.
// Queue and quantum errors wrap ErrInvalidConfig; process errors wrap ErrInvalidProcess.
func (c Config) Validate(limits Limits) error {
	if err := limits.Validate(); err != nil {
		return err
	}
	if c.QueueNum < 1 || c.QueueNum > limits.MaxQueues {
		return fmt.Errorf("%w: queue_num must be in [1, %d], got %d", ErrInvalidConfig, limits.MaxQueues, c.QueueNum)
	}
	if len(c.TimeQuanta) < c.QueueNum {
		return fmt.Errorf("%w: %d time quanta supplied for %d queues", ErrInvalidConfig, len(c.TimeQuanta), c.QueueNum)
	}
	for level := 0; level < c.QueueNum; level++ {
		if c.TimeQuanta[level] <= 0 {
			return fmt.Errorf("%w: time quantum of queue %d must be positive, got %d", ErrInvalidConfig, level, c.TimeQuanta[level])
		}
	}
	if len(c.Processes) > limits.MaxProcesses {
		return fmt.Errorf("%w: %d processes exceed the limit of %d", ErrInvalidConfig, len(c.Processes), limits.MaxProcesses)
	}
	seen := make(map[string]bool, len(c.Processes))
	for i, p := range c.Processes {
		if p.Name == "" || strings.ContainsAny(p.Name, " \t\r\n") {
			return fmt.Errorf("%w: process %d has invalid name %q", ErrInvalidProcess, i, p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate process name %q", ErrInvalidProcess, p.Name)
		}
		seen[p.Name] = true
		if p.ArrivalTime < 0 {
			return fmt.Errorf("%w: process %s has negative arrival time %d", ErrInvalidProcess, p.Name, p.ArrivalTime)
		}
		if p.BurstTime <= 0 {
			return fmt.Errorf("%w: process %s has non-positive burst time %d", ErrInvalidProcess, p.Name, p.BurstTime)
		}
	}
	return c.validateClockRange()
}

// validateClockRange rejects tables whose latest possible completion, the last
// arrival plus every burst, does not fit in the int64 clock.
func (c Config) validateClockRange() error {
	var lastArrival, work int64
	for _, p := range c.Processes {
		lastArrival = max(lastArrival, p.ArrivalTime)
		if work > math.MaxInt64-p.BurstTime {
			return fmt.Errorf("%w: total burst time overflows the clock", ErrInvalidProcess)
		}
		work += p.BurstTime
	}
	if lastArrival > math.MaxInt64-work {
		return fmt.Errorf("%w: last arrival %d plus total burst time %d overflows the clock", ErrInvalidProcess, lastArrival, work)
	}
	return nil
}
