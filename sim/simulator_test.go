package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlfq-sim/mlfq-sim/sim/trace"
)

func scenarioA() Config {
	return Config{
		QueueNum:   2,
		TimeQuanta: []int64{2, 4},
		Processes: []ProcessSpec{
			{Name: "A", ArrivalTime: 0, BurstTime: 4},
			{Name: "B", ArrivalTime: 1, BurstTime: 2},
		},
	}
}

func mustRun(t *testing.T, cfg Config, opts ...Option) *Result {
	t.Helper()
	s, err := NewSimulator(cfg, opts...)
	require.NoError(t, err)
	result, err := s.Run(context.Background())
	require.NoError(t, err)
	require.True(t, result.Complete)
	return result
}

func TestSimulator_ArrivalPreemptionThenDemotion(t *testing.T) {
	// GIVEN A(0,4) and B(1,2) on quanta [2,4]
	s, err := NewSimulator(scenarioA(), WithTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions}))
	require.NoError(t, err)

	// WHEN the run completes
	result, err := s.Run(context.Background())
	require.NoError(t, err)

	// THEN A is cut at B's arrival, keeps level 0, then exhausts its quantum and drops to level 1
	assert.Equal(t, "Gantt Chart = 0 A 3 B 5 A 6", result.Timeline.Render())
	assert.Equal(t, []trace.DispatchRecord{
		{Process: "A", Clock: 0, Level: 0, Ran: 1, NextLevel: 0, Outcome: string(OutcomePreempted)},
		{Process: "A", Clock: 1, Level: 0, Ran: 2, NextLevel: 1, Outcome: string(OutcomeDemoted)},
		{Process: "B", Clock: 3, Level: 0, Ran: 2, NextLevel: -1, Outcome: string(OutcomeFinished)},
		{Process: "A", Clock: 5, Level: 1, Ran: 1, NextLevel: -1, Outcome: string(OutcomeFinished)},
	}, result.Trace.Dispatches)
	assert.Equal(t, []trace.AdmissionRecord{
		{Process: "A", Clock: 0, Arrival: 0},
		{Process: "B", Clock: 1, Arrival: 1},
	}, result.Trace.Admissions)
	assert.Empty(t, result.Trace.Idles)

	a, b := s.Registry.Get("A"), s.Registry.Get("B")
	assert.Equal(t, int64(6), a.CompletionTime)
	assert.Equal(t, int64(5), b.CompletionTime)
	assert.Equal(t, 1, a.CurrentQueue)
	assert.Equal(t, 1, a.Preemptions)
	assert.Equal(t, 1, a.Demotions)
	assert.Equal(t, 3, a.Dispatches)
	assert.Equal(t, StateFinished, a.State)
	assert.Equal(t, 0, s.Queues.Len())
}

func TestSimulator_LongBurstSettlesAtLowestLevel(t *testing.T) {
	// GIVEN a process whose burst exceeds the sum of all quanta
	cfg := Config{QueueNum: 3, TimeQuanta: []int64{1, 2, 3}, Processes: []ProcessSpec{{Name: "X", BurstTime: 20}}}
	s, err := NewSimulator(cfg, WithTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions}))
	require.NoError(t, err)

	// WHEN the run completes
	result, err := s.Run(context.Background())
	require.NoError(t, err)

	// THEN it demotes twice, then keeps being re-enqueued at level 2 until done
	assert.Equal(t, "Gantt Chart = 0 X 20", result.Timeline.Render())
	assert.Equal(t, 2, result.Metrics.Demotions)
	levels := make([]int, 0, len(result.Trace.Dispatches))
	for _, d := range result.Trace.Dispatches {
		levels = append(levels, d.Level)
	}
	assert.Equal(t, []int{0, 1, 2, 2, 2, 2, 2, 2}, levels)
	last := result.Trace.Dispatches[len(result.Trace.Dispatches)-1]
	assert.Equal(t, string(OutcomeFinished), last.Outcome)
	assert.Equal(t, int64(2), last.Ran)
	x := s.Registry.Get("X")
	assert.Equal(t, 2, x.CurrentQueue)
	assert.Equal(t, int64(0), x.RemainingTime)
}

func TestSimulator_IdleGap_NotCharted(t *testing.T) {
	// GIVEN B arriving three ticks after A finishes
	cfg := Config{QueueNum: 1, TimeQuanta: []int64{4}, Processes: []ProcessSpec{
		{Name: "A", ArrivalTime: 0, BurstTime: 2},
		{Name: "B", ArrivalTime: 5, BurstTime: 3},
	}}
	s, err := NewSimulator(cfg, WithTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions}))
	require.NoError(t, err)

	result, err := s.Run(context.Background())
	require.NoError(t, err)

	// THEN the gap is idle time, not a timeline entry, and chart plus idle equals the clock
	assert.Equal(t, "Gantt Chart = 0 A 2 B 5", result.Timeline.Render())
	assert.Equal(t, int64(8), result.FinalClock)
	assert.Equal(t, int64(3), result.Metrics.IdleTime)
	assert.Equal(t, []trace.IdleRecord{{From: 2, To: 5}}, result.Trace.Idles)
	assert.Equal(t, result.FinalClock, result.Timeline.Total()+result.Metrics.IdleTime)
}

func TestSimulator_LateFirstArrival_IdlesFromZero(t *testing.T) {
	cfg := Config{QueueNum: 2, TimeQuanta: []int64{2, 4}, Processes: []ProcessSpec{{Name: "A", ArrivalTime: 4, BurstTime: 1}}}
	result := mustRun(t, cfg)
	assert.Equal(t, int64(5), result.FinalClock)
	assert.Equal(t, int64(4), result.Metrics.IdleTime)
	assert.Equal(t, "Gantt Chart = 0 A 1", result.Timeline.Render())
}

func TestSimulator_SingleQueue_IsRoundRobin(t *testing.T) {
	// GIVEN one level with quantum 1 and two processes arriving together
	cfg := Config{QueueNum: 1, TimeQuanta: []int64{1}, Processes: []ProcessSpec{
		{Name: "A", BurstTime: 3},
		{Name: "B", BurstTime: 2},
	}}

	result := mustRun(t, cfg)

	// THEN they alternate and no demotion is counted
	assert.Equal(t, "Gantt Chart = 0 A 1 B 2 A 3 B 4 A 5", result.Timeline.Render())
	assert.Equal(t, 0, result.Metrics.Demotions)
}

func TestSimulator_SingleQueue_LargeQuantum_IsFCFS(t *testing.T) {
	cfg := Config{QueueNum: 1, TimeQuanta: []int64{100}, Processes: []ProcessSpec{
		{Name: "A", ArrivalTime: 0, BurstTime: 5},
		{Name: "B", ArrivalTime: 0, BurstTime: 2},
		{Name: "C", ArrivalTime: 0, BurstTime: 1},
	}}
	result := mustRun(t, cfg)
	assert.Equal(t, "Gantt Chart = 0 A 5 B 7 C 8", result.Timeline.Render())
}

func TestSimulator_EmptyProcessTable(t *testing.T) {
	result := mustRun(t, Config{QueueNum: 2, TimeQuanta: []int64{2, 4}})
	assert.Equal(t, "Gantt Chart = 0", result.Timeline.Render())
	assert.Equal(t, int64(0), result.FinalClock)
	assert.Equal(t, 0, result.Metrics.CompletedProcesses)
}

func TestSimulator_ArrivalPreemptsLowerLevelRun(t *testing.T) {
	// GIVEN L sitting at level 1 when a new process arrives mid-quantum
	cfg := Config{QueueNum: 2, TimeQuanta: []int64{1, 10}, Processes: []ProcessSpec{
		{Name: "L", ArrivalTime: 0, BurstTime: 10},
		{Name: "N", ArrivalTime: 4, BurstTime: 1},
	}}

	result := mustRun(t, cfg)

	// THEN L runs up to the arrival, N runs at level 0, then L resumes
	assert.Equal(t, "Gantt Chart = 0 L 4 N 5 L 11", result.Timeline.Render())
	assert.Equal(t, 1, result.Metrics.ArrivalPreemptions)
	assert.Equal(t, 1, result.Metrics.Demotions)
}

func TestSimulator_RunIsIdempotent(t *testing.T) {
	// Two simulators over the same config produce identical charts.
	first := mustRun(t, scenarioA())
	second := mustRun(t, scenarioA())
	assert.Equal(t, first.Timeline.Entries(), second.Timeline.Entries())
	assert.Equal(t, first.FinalClock, second.FinalClock)
	assert.Equal(t, first.Metrics, second.Metrics)
}

func TestSimulator_RunDoesNotMutateConfig(t *testing.T) {
	cfg := scenarioA()
	mustRun(t, cfg)
	assert.Equal(t, scenarioA(), cfg)
}

func TestNewSimulator_InvalidConfig(t *testing.T) {
	_, err := NewSimulator(Config{QueueNum: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewSimulator(Config{QueueNum: 1, TimeQuanta: []int64{1}, Processes: []ProcessSpec{{Name: "A"}}})
	assert.ErrorIs(t, err, ErrInvalidProcess)
}

func TestSimulator_Horizon_StallsWithPartialResult(t *testing.T) {
	// GIVEN a horizon shorter than the only burst
	limits := DefaultLimits()
	limits.Horizon = 5
	cfg := Config{QueueNum: 1, TimeQuanta: []int64{2}, Processes: []ProcessSpec{{Name: "X", BurstTime: 10}}}
	s, err := NewSimulator(cfg, WithLimits(limits))
	require.NoError(t, err)

	// WHEN the run passes the horizon
	result, err := s.Run(context.Background())

	// THEN it stops with ErrSimulationStalled and the work done so far
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSimulationStalled))
	require.NotNil(t, result)
	assert.False(t, result.Complete)
	assert.Equal(t, int64(6), result.FinalClock)
	assert.Equal(t, "Gantt Chart = 0 X 6", result.Timeline.Render())
	assert.Equal(t, 0, result.Metrics.CompletedProcesses)
	assert.Equal(t, int64(4), result.Metrics.Processes[0].Remaining)
}

func TestSimulator_MaxIterations_Stalls(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxIterations = 2
	cfg := Config{QueueNum: 1, TimeQuanta: []int64{1}, Processes: []ProcessSpec{{Name: "X", BurstTime: 5}}}
	s, err := NewSimulator(cfg, WithLimits(limits))
	require.NoError(t, err)

	result, err := s.Run(context.Background())

	assert.ErrorIs(t, err, ErrSimulationStalled)
	assert.Equal(t, int64(2), result.FinalClock)
	assert.Equal(t, int64(2), s.Iterations)
}

func TestSimulator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := NewSimulator(scenarioA())
	require.NoError(t, err)

	result, err := s.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, result)
	assert.False(t, result.Complete)
	assert.Equal(t, int64(0), result.FinalClock)
}

func TestSimulator_TimelineTruncation(t *testing.T) {
	// GIVEN a chart capacity of three entries for a round robin of five spans
	limits := DefaultLimits()
	limits.MaxTimelineEntries = 3
	cfg := Config{QueueNum: 1, TimeQuanta: []int64{1}, Processes: []ProcessSpec{
		{Name: "A", BurstTime: 3},
		{Name: "B", BurstTime: 2},
	}}

	result := mustRun(t, cfg, WithLimits(limits))

	// THEN the run still completes, the chart is flagged and the dropped ticks are counted
	assert.True(t, result.Timeline.Truncated())
	assert.Equal(t, "Gantt Chart = 0 A 1 B 2 A 3", result.Timeline.Render())
	assert.Equal(t, int64(2), result.Timeline.Dropped())
	assert.Equal(t, int64(5), result.FinalClock)
	assert.Equal(t, 2, result.Metrics.CompletedProcesses)
}

func TestSimulator_Step_ReportsDone(t *testing.T) {
	s, err := NewSimulator(Config{QueueNum: 1, TimeQuanta: []int64{5}, Processes: []ProcessSpec{{Name: "C", BurstTime: 3}}})
	require.NoError(t, err)

	done, err := s.Step()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, int64(3), s.Clock)

	done, err = s.Step()
	require.NoError(t, err)
	assert.True(t, done)
}

func TestSimulator_WithRunID(t *testing.T) {
	result := mustRun(t, scenarioA(), WithRunID("run-1"))
	assert.Equal(t, "run-1", result.RunID)
}

func TestSimulator_TraceDisabledByDefault(t *testing.T) {
	result := mustRun(t, scenarioA(), WithTrace(trace.TraceConfig{Level: trace.TraceLevelNone}))
	assert.Nil(t, result.Trace)
}
