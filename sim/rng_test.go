package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionedRNG_SameSeedSameStream(t *testing.T) {
	for _, seed := range []int64{0, 42, -1, math.MaxInt64, math.MinInt64} {
		a := NewPartitionedRNG(seed).ForSubsystem(SubsystemVelocities)
		b := NewPartitionedRNG(seed).ForSubsystem(SubsystemVelocities)
		for i := 0; i < 3; i++ {
			assert.Equal(t, a.Float64(), b.Float64(), "seed %d draw %d", seed, i)
		}
	}
}

func TestPartitionedRNG_StreamsAreIsolated(t *testing.T) {
	// GIVEN a generator that has already drawn ten positions
	used := NewPartitionedRNG(42)
	for i := 0; i < 10; i++ {
		used.ForSubsystem(SubsystemPositions).Float64()
	}

	// THEN its velocity stream still starts where a fresh one does
	fresh := NewPartitionedRNG(42)
	assert.Equal(t, fresh.ForSubsystem(SubsystemVelocities).Float64(), used.ForSubsystem(SubsystemVelocities).Float64())
}

func TestPartitionedRNG_PositionsUseMasterSeed(t *testing.T) {
	positions := NewPartitionedRNG(42).ForSubsystem(SubsystemPositions)
	direct := rand.New(rand.NewSource(42))

	for i := 0; i < 10; i++ {
		assert.Equal(t, direct.Float64(), positions.Float64(), "draw %d", i)
	}
}

func TestPartitionedRNG_StreamsDiffer(t *testing.T) {
	rng := NewPartitionedRNG(7)
	first := map[float64]string{}
	for _, name := range []string{SubsystemPositions, SubsystemVelocities, SubsystemRadii} {
		v := rng.ForSubsystem(name).Float64()
		assert.NotContains(t, first, v, "%s repeats another stream", name)
		first[v] = name
	}
}

func TestPartitionedRNG_CachesStreamLazily(t *testing.T) {
	rng := NewPartitionedRNG(42)
	assert.Empty(t, rng.streams)

	assert.Same(t, rng.ForSubsystem(SubsystemRadii), rng.ForSubsystem(SubsystemRadii))
	assert.Len(t, rng.streams, 1)
	assert.Equal(t, int64(42), rng.Seed())
}
