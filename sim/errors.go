package sim

import "errors"

// Sentinel errors surfaced by the simulator. Callers match them with errors.Is;
// the wrapped message carries the offending value.
var (
	// ErrInvalidConfig reports a bad queue count, quantum table or limit.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidProcess reports a bad process entry (arrival, burst or duplicate name).
	ErrInvalidProcess = errors.New("invalid process")
	// ErrQueueOverflow reports an enqueue past a level's capacity. It indicates a broken
	// invariant in the caller and is never retried.
	ErrQueueOverflow = errors.New("queue overflow")
	// ErrSimulationStalled reports that the horizon or iteration bound was reached
	// before every process finished.
	ErrSimulationStalled = errors.New("simulation stalled")
)
