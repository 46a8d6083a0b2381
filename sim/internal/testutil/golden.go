// Package testutil provides shared test infrastructure for the collision
// simulator: golden scenario types and assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-verified scenario with its expected outcome.
type GoldenTestCase struct {
	Name      string           `json:"name"`
	Horizon   float64          `json:"horizon"`
	TickHz    float64          `json:"tick_hz"`
	Particles []GoldenParticle `json:"particles"`
	Metrics   GoldenMetrics    `json:"metrics"`
	Final     []GoldenPosition `json:"final"`
}

// GoldenParticle is an initial particle state.
type GoldenParticle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	VX     float64 `json:"vx"`
	VY     float64 `json:"vy"`
	Radius float64 `json:"radius"`
	Mass   float64 `json:"mass"`
}

// GoldenPosition is an expected particle position at the end of the run.
type GoldenPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GoldenMetrics represents the expected counters from a golden test case.
type GoldenMetrics struct {
	// Exact match metrics
	EventsScheduled    int `json:"events_scheduled"`
	EventsProcessed    int `json:"events_processed"`
	StaleDiscarded     int `json:"stale_discarded"`
	WallBounces        int `json:"wall_bounces"`
	ParticleCollisions int `json:"particle_collisions"`
	Ticks              int `json:"ticks"`

	// Compared with relative tolerance
	KineticEnergy float64 `json:"kinetic_energy"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
