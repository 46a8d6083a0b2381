package scenario

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/inference-sim/collision-sim/sim"
)

// maxPlacementAttempts bounds rejection sampling per particle.
const maxPlacementAttempts = 10000

// palette cycles display colors for generated particles.
var palette = []sim.Color{
	{R: 230, G: 57, B: 70},
	{R: 69, G: 123, B: 157},
	{R: 42, G: 157, B: 143},
	{R: 233, G: 196, B: 106},
	{R: 244, G: 162, B: 97},
	{R: 168, G: 218, B: 220},
}

// Generate creates spec.Count non-overlapping particles inside the unit square.
// Deterministic given the same spec and seed.
func Generate(spec RandomSpec, seed int64) ([]sim.ParticleState, error) {
	return appendRandom(nil, spec, seed)
}

// appendRandom places spec.Count random particles so that none overlaps
// existing or any previously placed particle.
func appendRandom(existing []sim.ParticleState, spec RandomSpec, seed int64) ([]sim.ParticleState, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid random spec: %w", err)
	}
	rng := sim.NewPartitionedRNG(seed)
	posRNG := rng.ForSubsystem(sim.SubsystemPositions)
	velRNG := rng.ForSubsystem(sim.SubsystemVelocities)
	radRNG := rng.ForSubsystem(sim.SubsystemRadii)

	states := existing
	for i := 0; i < spec.Count; i++ {
		radius := uniform(radRNG, spec.RadiusMin, spec.RadiusMax)
		x, y, ok := place(posRNG, radius, states)
		if !ok {
			return nil, fmt.Errorf("could not place particle %d of radius %g after %d attempts; system too dense",
				i, radius, maxPlacementAttempts)
		}
		states = append(states, sim.ParticleState{
			X: x, Y: y,
			VX:     uniform(velRNG, -spec.MaxSpeed, spec.MaxSpeed),
			VY:     uniform(velRNG, -spec.MaxSpeed, spec.MaxSpeed),
			Radius: radius,
			Mass:   uniform(velRNG, spec.MassMin, spec.MassMax),
			Color:  palette[i%len(palette)],
		})
	}
	return states, nil
}

func place(rng *rand.Rand, radius float64, placed []sim.ParticleState) (x, y float64, ok bool) {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		x = uniform(rng, radius, 1-radius)
		y = uniform(rng, radius, 1-radius)
		if !overlaps(x, y, radius, placed) {
			return x, y, true
		}
	}
	return 0, 0, false
}

func overlaps(x, y, radius float64, placed []sim.ParticleState) bool {
	for _, p := range placed {
		if math.Hypot(p.X-x, p.Y-y) < p.Radius+radius {
			return true
		}
	}
	return false
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
