// Package trace provides event-trace recording for post-run analysis of a
// collision simulation.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventRecord captures a single applied physical event.
type EventRecord struct {
	Clock     float64 `json:"clock"`
	Kind      string  `json:"kind"`      // "WallVertical", "WallHorizontal" or "Collision"
	Particles []int   `json:"particles"` // input-order indexes of the involved particles
}
