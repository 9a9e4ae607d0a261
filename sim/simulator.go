// sim/simulator.go
package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mlfq-sim/mlfq-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, the level queues and
// the scheduling loop of a multi-level feedback queue. One Simulator serves one run.
type Simulator struct {
	Clock  int64
	Config Config
	Limits Limits
	// RunID tags log lines and reports of this run
	RunID string
	// Registry holds every process, admitted or not
	Registry *ProcessRegistry
	// Queues holds admitted, unfinished processes that are not running
	Queues *PriorityQueueSet
	// Timeline is the coalesced Gantt chart of executed spans
	Timeline *Timeline
	Metrics  *Metrics
	// Trace is nil unless decision tracing was requested
	Trace *trace.SimulationTrace

	ProcessesDone int
	Iterations    int64

	maxIterations  int64
	truncateLogged bool
}

// Option customises a Simulator before its first run.
type Option func(*Simulator)

// WithLimits replaces DefaultLimits.
func WithLimits(limits Limits) Option {
	return func(s *Simulator) { s.Limits = limits }
}

// WithTrace enables decision tracing at the configured level.
func WithTrace(config trace.TraceConfig) Option {
	return func(s *Simulator) {
		if config.Enabled() {
			s.Trace = trace.NewSimulationTrace(config)
		}
	}
}

// WithRunID sets the identifier attached to log lines and reports.
func WithRunID(id string) Option {
	return func(s *Simulator) { s.RunID = id }
}

// NewSimulator validates cfg and builds a simulator ready to Run.
// Each level queue is sized to the process count, so an overflow can only
// come from a broken invariant.
func NewSimulator(cfg Config, opts ...Option) (*Simulator, error) {
	s := &Simulator{
		Clock:    0,
		Config:   cfg,
		Limits:   DefaultLimits(),
		Registry: NewProcessRegistry(),
		Metrics:  NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := cfg.Validate(s.Limits); err != nil {
		return nil, err
	}
	if err := s.Registry.Load(cfg.Processes); err != nil {
		return nil, err
	}
	s.Queues = NewPriorityQueueSet(cfg.QueueNum, max(len(cfg.Processes), 1))
	s.Timeline = NewTimeline(s.Limits.MaxTimelineEntries)
	s.maxIterations = s.Limits.iterationBound(cfg)
	return s, nil
}

// Result is the outcome of a run. On error it holds everything recorded up to
// the failure and Complete is false.
type Result struct {
	RunID      string
	Timeline   *Timeline
	Processes  []*Process // input order
	Metrics    *Metrics
	Trace      *trace.SimulationTrace
	FinalClock int64
	Complete   bool
}

// Run drives the scheduling loop until every process has finished.
// It returns ErrSimulationStalled when the horizon or iteration bound is hit,
// and the context error if ctx is cancelled; both come with the partial Result.
func (sim *Simulator) Run(ctx context.Context) (*Result, error) {
	logrus.WithField("run", sim.RunID).Infof("Starting simulation with %d queues, quanta=%v, %d processes",
		sim.Config.QueueNum, sim.Config.TimeQuanta[:sim.Config.QueueNum], sim.Registry.Len())
	for {
		if err := ctx.Err(); err != nil {
			return sim.result(false), err
		}
		if sim.Iterations >= sim.maxIterations {
			return sim.stalled(fmt.Errorf("%w: %d iterations at tick %d with %d of %d processes finished",
				ErrSimulationStalled, sim.Iterations, sim.Clock, sim.ProcessesDone, sim.Registry.Len()))
		}
		sim.Iterations++

		done, err := sim.Step()
		if err != nil {
			return sim.result(false), err
		}
		if done {
			break
		}
		if sim.Clock > sim.Limits.Horizon {
			return sim.stalled(fmt.Errorf("%w: clock %d passed horizon %d with %d of %d processes finished",
				ErrSimulationStalled, sim.Clock, sim.Limits.Horizon, sim.ProcessesDone, sim.Registry.Len()))
		}
	}
	logrus.WithField("run", sim.RunID).Infof("[tick %07d] Simulation ended, %d processes finished", sim.Clock, sim.ProcessesDone)
	return sim.result(true), nil
}

// Step runs one iteration of the scheduling loop: admit due arrivals, select the
// highest non-empty level, run its head until the quantum, the burst or the next
// arrival ends the run, then re-enqueue, demote or finish it.
// done is true once no process is queued and none is pending.
func (sim *Simulator) Step() (done bool, err error) {
	if err := sim.admit(); err != nil {
		return false, err
	}

	level, ok := sim.Queues.HighestNonEmpty()
	if !ok {
		next, pending := sim.Registry.NextPendingArrival()
		if !pending {
			return true, nil
		}
		sim.idleUntil(next)
		return false, nil
	}

	p := sim.Queues.Dequeue(level)
	d := &Dispatch{
		Start:     sim.Clock,
		Process:   p,
		Level:     level,
		Quantum:   sim.Config.Quantum(level),
		NextLevel: level,
	}
	d.Tentative = min(d.Quantum, p.RemainingTime)
	d.Ran = d.Tentative

	// Arrivals always enter level 0, so any arrival preempts the selected process
	// regardless of its level. Preemption is a bound on the run length.
	nextArrival, pending := sim.Registry.NextPendingArrival()
	if pending && sim.Clock+d.Ran > nextArrival {
		d.Ran = nextArrival - sim.Clock
	}

	if d.Ran <= 0 {
		d.Ran = 0
		d.Outcome = OutcomeDeferred
		sim.Metrics.DeferredDispatches++
		logrus.Debugf("[tick %07d] %s deferred at Q%d until arrival", sim.Clock, p.Name, level)
		sim.recordDispatch(d)
		return false, sim.Queues.Enqueue(level, p)
	}

	sim.execute(d)

	switch {
	case p.RemainingTime == 0:
		d.Outcome = OutcomeFinished
		d.NextLevel = -1
		p.State = StateFinished
		p.CompletionTime = sim.Clock
		sim.ProcessesDone++
	case pending && sim.Clock == nextArrival:
		d.Outcome = OutcomePreempted
		p.Preemptions++
		sim.Metrics.ArrivalPreemptions++
	case d.Ran == d.Quantum:
		d.Outcome = OutcomeDemoted
		if level+1 < sim.Config.QueueNum {
			d.NextLevel = level + 1
			p.Demotions++
			sim.Metrics.Demotions++
		}
	default:
		d.Outcome = OutcomeRequeued
		sim.Metrics.FallbackRequeues++
		logrus.Warnf("[tick %07d] %s ran %d of quantum %d without finishing or preemption; requeued at Q%d",
			sim.Clock, p.Name, d.Ran, d.Quantum, level)
	}

	logrus.Debugf("[tick %07d] %s ran %d at Q%d: %s", sim.Clock, p.Name, d.Ran, level, d.Outcome)
	sim.recordDispatch(d)
	if d.NextLevel < 0 {
		return false, nil
	}
	return false, sim.Queues.Enqueue(d.NextLevel, p)
}

// admit moves every due arrival into level 0.
func (sim *Simulator) admit() error {
	for _, p := range sim.Registry.AdmitDue(sim.Clock) {
		logrus.Debugf("[tick %07d] << Arrival: %s (arrived at %d)", sim.Clock, p.Name, p.ArrivalTime)
		if sim.Trace != nil {
			sim.Trace.RecordAdmission(trace.AdmissionRecord{Process: p.Name, Clock: sim.Clock, Arrival: p.ArrivalTime})
		}
		if err := sim.Queues.Enqueue(0, p); err != nil {
			return err
		}
	}
	return nil
}

// idleUntil jumps the clock over a period with no runnable process.
// Idle time produces no timeline entry.
func (sim *Simulator) idleUntil(next int64) {
	logrus.Debugf("[tick %07d] CPU idle until %d", sim.Clock, next)
	sim.Metrics.IdleTime += next - sim.Clock
	if sim.Trace != nil {
		sim.Trace.RecordIdle(trace.IdleRecord{From: sim.Clock, To: next})
	}
	sim.Clock = next
}

// execute charges d.Ran ticks to the dispatched process and records the span.
func (sim *Simulator) execute(d *Dispatch) {
	p := d.Process
	if p.FirstRunTime < 0 {
		p.FirstRunTime = sim.Clock
	}
	p.RemainingTime -= d.Ran
	p.Dispatches++
	sim.Clock += d.Ran
	sim.Timeline.Record(p.Name, d.Ran)
	if sim.Timeline.Truncated() && !sim.truncateLogged {
		sim.truncateLogged = true
		logrus.Warnf("[tick %07d] Gantt chart capacity of %d entries reached; further spans are not charted",
			sim.Clock, sim.Limits.MaxTimelineEntries)
	}
}

func (sim *Simulator) recordDispatch(d *Dispatch) {
	if sim.Trace == nil {
		return
	}
	sim.Trace.RecordDispatch(trace.DispatchRecord{
		Process:   d.Process.Name,
		Clock:     d.Start,
		Level:     d.Level,
		Ran:       d.Ran,
		NextLevel: d.NextLevel,
		Outcome:   string(d.Outcome),
	})
}

func (sim *Simulator) stalled(err error) (*Result, error) {
	logrus.WithField("run", sim.RunID).Errorf("[tick %07d] %v", sim.Clock, err)
	return sim.result(false), err
}

func (sim *Simulator) result(complete bool) *Result {
	sim.Metrics.Collect(sim)
	return &Result{
		RunID:      sim.RunID,
		Timeline:   sim.Timeline,
		Processes:  sim.Registry.All(),
		Metrics:    sim.Metrics,
		Trace:      sim.Trace,
		FinalClock: sim.Clock,
		Complete:   complete,
	}
}
