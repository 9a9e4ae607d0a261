package workload

import (
	"math"
	"math/rand"
)

// ArrivalSampler generates inter-arrival times.
type ArrivalSampler interface {
	// SampleIAT returns the next inter-arrival time in ticks (>= 0).
	SampleIAT(rng *rand.Rand) int64
}

// PoissonSampler generates exponentially-distributed inter-arrival times.
// Values are floored to whole ticks, so simultaneous arrivals do occur.
type PoissonSampler struct {
	mean float64 // mean inter-arrival time in ticks
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int64 {
	if s.mean <= 0 {
		return 0
	}
	return int64(math.Floor(rng.ExpFloat64() * s.mean))
}

// BurstSampler produces burst lengths.
type BurstSampler interface {
	// Sample returns a positive burst length (>= 1).
	Sample(rng *rand.Rand) int64
}

// UniformSampler draws burst lengths uniformly from [min, max].
type UniformSampler struct {
	min, max int64
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	if s.min >= s.max {
		return max(s.min, 1)
	}
	return s.min + rng.Int63n(s.max-s.min+1)
}
