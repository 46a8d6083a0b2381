package sim

import (
	"hash/fnv"
	"math/rand"
)

// Named random streams used when generating particle systems.
const (
	SubsystemPositions  = "positions" // seeded with the master seed itself
	SubsystemVelocities = "velocities"
	SubsystemRadii      = "radii"
)

// PartitionedRNG hands out one independent, lazily created stream per
// subsystem name, so that drawing extra positions never shifts velocities.
// A stream is seeded with seed XOR fnv1a64(name), except positions.
type PartitionedRNG struct {
	seed    int64
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG rooted at seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{seed: seed, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.streamSeed(name)))
	p.streams[name] = rng
	return rng
}

// Seed returns the master seed.
func (p *PartitionedRNG) Seed() int64 { return p.seed }

func (p *PartitionedRNG) streamSeed(name string) int64 {
	if name == SubsystemPositions {
		return p.seed
	}
	return p.seed ^ fnv1a64(name)
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
