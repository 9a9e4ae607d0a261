package workload

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mlfq-sim/mlfq-sim/sim"
)

// Generate creates a process table from spec.
// Deterministic given the same spec and seed. Processes are emitted in
// arrival order with sequential names (P0, P1, ...).
func Generate(spec GeneratorSpec, seed int64) (*sim.Config, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}

	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed))
	arrivalRNG := rng.ForSubsystem(sim.SubsystemArrivals)
	burstRNG := rng.ForSubsystem(sim.SubsystemBursts)

	arrivals := &PoissonSampler{mean: spec.MeanInterArrival}
	bursts := &UniformSampler{min: spec.MinBurst, max: spec.MaxBurst}

	processes := make([]sim.ProcessSpec, 0, spec.Count)
	currentTime := int64(0)
	for i := 0; i < spec.Count; i++ {
		if i > 0 {
			currentTime += arrivals.SampleIAT(arrivalRNG)
		}
		processes = append(processes, sim.ProcessSpec{
			Name:        fmt.Sprintf("%s%d", spec.namePrefix(), i),
			ArrivalTime: currentTime,
			BurstTime:   bursts.Sample(burstRNG),
		})
	}
	logrus.Debugf("Generated %d processes with seed %d, last arrival at %d", len(processes), seed, currentTime)

	quanta := make([]int64, len(spec.TimeQuanta))
	copy(quanta, spec.TimeQuanta)
	return &sim.Config{
		QueueNum:   spec.QueueNum,
		TimeQuanta: quanta,
		Processes:  processes,
	}, nil
}
