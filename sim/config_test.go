package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		QueueNum:   2,
		TimeQuanta: []int64{1, 2},
		Processes: []ProcessSpec{
			{Name: "A", ArrivalTime: 0, BurstTime: 4},
			{Name: "B", ArrivalTime: 1, BurstTime: 2},
		},
	}
}

func TestConfig_Validate_Accepts(t *testing.T) {
	require.NoError(t, validConfig().Validate(DefaultLimits()))

	// Extra quanta beyond queue_num are ignored.
	cfg := validConfig()
	cfg.TimeQuanta = []int64{1, 2, -7}
	assert.NoError(t, cfg.Validate(DefaultLimits()))

	// An empty process table is valid.
	cfg = validConfig()
	cfg.Processes = nil
	assert.NoError(t, cfg.Validate(DefaultLimits()))
}

func TestConfig_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero queues", func(c *Config) { c.QueueNum = 0 }, ErrInvalidConfig},
		{"too many queues", func(c *Config) { c.QueueNum = 5; c.TimeQuanta = []int64{1, 1, 1, 1, 1} }, ErrInvalidConfig},
		{"missing quanta", func(c *Config) { c.TimeQuanta = []int64{1} }, ErrInvalidConfig},
		{"zero quantum", func(c *Config) { c.TimeQuanta = []int64{1, 0} }, ErrInvalidConfig},
		{"negative quantum", func(c *Config) { c.TimeQuanta = []int64{-1, 2} }, ErrInvalidConfig},
		{"too many processes", func(c *Config) {
			c.Processes = nil
			for i := 0; i < DefaultMaxProcesses+1; i++ {
				c.Processes = append(c.Processes, ProcessSpec{Name: string(rune('a' + i)), BurstTime: 1})
			}
		}, ErrInvalidConfig},
		{"empty name", func(c *Config) { c.Processes[0].Name = "" }, ErrInvalidProcess},
		{"name with space", func(c *Config) { c.Processes[0].Name = "A B" }, ErrInvalidProcess},
		{"duplicate name", func(c *Config) { c.Processes[1].Name = "A" }, ErrInvalidProcess},
		{"negative arrival", func(c *Config) { c.Processes[1].ArrivalTime = -1 }, ErrInvalidProcess},
		{"zero burst", func(c *Config) { c.Processes[0].BurstTime = 0 }, ErrInvalidProcess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Processes = append([]ProcessSpec(nil), cfg.Processes...)
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(DefaultLimits()), tt.want)
		})
	}
}

func TestLimits_Validate(t *testing.T) {
	require.NoError(t, DefaultLimits().Validate())

	bad := DefaultLimits()
	bad.Horizon = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultLimits()
	bad.MaxTimelineEntries = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultLimits()
	bad.MaxIterations = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}

func TestLimits_RaisedMaxProcesses_AcceptsLargerTables(t *testing.T) {
	cfg := validConfig()
	cfg.Processes = nil
	for i := 0; i < 25; i++ {
		cfg.Processes = append(cfg.Processes, ProcessSpec{Name: "P" + string(rune('A'+i)), BurstTime: 1})
	}
	limits := DefaultLimits()
	assert.ErrorIs(t, cfg.Validate(limits), ErrInvalidConfig)
	limits.MaxProcesses = 25
	assert.NoError(t, cfg.Validate(limits))
}

func TestLimits_IterationBound(t *testing.T) {
	cfg := validConfig() // bursts 4 + 2, two processes
	assert.Equal(t, int64(2*(1+4+1+2+1)), DefaultLimits().iterationBound(cfg))

	limits := DefaultLimits()
	limits.MaxIterations = 3
	assert.Equal(t, int64(3), limits.iterationBound(cfg))
}

func TestConfig_Validate_RejectsClockOverflow(t *testing.T) {
	limits := DefaultLimits()
	limits.Horizon = math.MaxInt64

	tests := []struct {
		name      string
		processes []ProcessSpec
	}{
		{"bursts overflow", []ProcessSpec{
			{Name: "A", BurstTime: math.MaxInt64 / 2},
			{Name: "B", BurstTime: math.MaxInt64 / 2},
			{Name: "C", BurstTime: 5},
		}},
		{"late arrival plus burst overflows", []ProcessSpec{
			{Name: "A", ArrivalTime: math.MaxInt64 - 2, BurstTime: 1},
			{Name: "B", ArrivalTime: 0, BurstTime: 2},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN a table whose completion time cannot be represented
			cfg := Config{QueueNum: 1, TimeQuanta: []int64{math.MaxInt64 / 2}, Processes: tt.processes}

			// WHEN it is validated
			err := cfg.Validate(limits)

			// THEN it is rejected before the clock can wrap
			assert.ErrorIs(t, err, ErrInvalidProcess)
			_, err = NewSimulator(cfg, WithLimits(limits))
			assert.ErrorIs(t, err, ErrInvalidProcess)
		})
	}
}

func TestConfig_Validate_AcceptsClockAtLimit(t *testing.T) {
	cfg := Config{QueueNum: 1, TimeQuanta: []int64{1}, Processes: []ProcessSpec{
		{Name: "A", ArrivalTime: math.MaxInt64 - 3, BurstTime: 1},
		{Name: "B", ArrivalTime: 0, BurstTime: 2},
	}}
	assert.NoError(t, cfg.Validate(DefaultLimits()))
}

func TestLimits_IterationBound_Saturates(t *testing.T) {
	cfg := Config{QueueNum: 1, TimeQuanta: []int64{1}, Processes: []ProcessSpec{
		{Name: "A", BurstTime: math.MaxInt64 - 1},
	}}
	assert.Equal(t, int64(math.MaxInt64), DefaultLimits().iterationBound(cfg))
}

func TestSimulator_LargeBursts_ClockStaysPositive(t *testing.T) {
	// GIVEN bursts near the top of the clock range and a horizon that allows them
	limits := DefaultLimits()
	limits.Horizon = math.MaxInt64
	half := int64(math.MaxInt64 / 4)
	cfg := Config{QueueNum: 1, TimeQuanta: []int64{half}, Processes: []ProcessSpec{
		{Name: "A", BurstTime: half},
		{Name: "B", BurstTime: half},
		{Name: "C", BurstTime: 5},
	}}

	// WHEN the run completes
	result := mustRun(t, cfg, WithLimits(limits))

	// THEN the clock is the exact total work
	assert.Equal(t, 2*half+5, result.FinalClock)
	assert.Equal(t, result.FinalClock, result.Timeline.Total())
}
