package workload

import (
	"fmt"

	"github.com/mlfq-sim/mlfq-sim/sim"
)

// GeneratorSpec describes a synthetic process table.
// Arrivals follow a Poisson process; bursts are uniform in [MinBurst, MaxBurst].
type GeneratorSpec struct {
	Count            int     `yaml:"count"`
	MeanInterArrival float64 `yaml:"mean_inter_arrival"` // 0 means every process arrives at tick 0
	MinBurst         int64   `yaml:"min_burst"`
	MaxBurst         int64   `yaml:"max_burst"`
	QueueNum         int     `yaml:"queue_num"`
	TimeQuanta       []int64 `yaml:"time_quantum"`
	NamePrefix       string  `yaml:"name_prefix"` // defaults to "P"
}

// Validate checks the generator parameters. Queue and quantum checks are left
// to sim.Config.Validate on the generated config.
func (s *GeneratorSpec) Validate() error {
	if s.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", s.Count)
	}
	if s.MeanInterArrival < 0 {
		return fmt.Errorf("mean inter-arrival must be non-negative, got %v", s.MeanInterArrival)
	}
	if s.MinBurst <= 0 {
		return fmt.Errorf("min burst must be positive, got %d", s.MinBurst)
	}
	if s.MaxBurst < s.MinBurst {
		return fmt.Errorf("max burst %d is below min burst %d", s.MaxBurst, s.MinBurst)
	}
	return nil
}

func (s *GeneratorSpec) namePrefix() string {
	if s.NamePrefix == "" {
		return "P"
	}
	return s.NamePrefix
}

// DefaultSpec returns a small three-level workload.
func DefaultSpec() GeneratorSpec {
	return GeneratorSpec{
		Count:            sim.DefaultMaxProcesses,
		MeanInterArrival: 3,
		MinBurst:         1,
		MaxBurst:         12,
		QueueNum:         3,
		TimeQuanta:       []int64{2, 4, 8},
	}
}
