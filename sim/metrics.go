// Tracks run-wide counters and energy bookkeeping for final reporting.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/sirupsen/logrus"
)

// Metrics aggregates statistics about one simulation run.
type Metrics struct {
	EventsScheduled    int     `json:"events_scheduled"`    // events pushed onto the queue
	EventsProcessed    int     `json:"events_processed"`    // valid events popped, ticks included
	StaleDiscarded     int     `json:"stale_discarded"`     // invalid events dropped at pop time
	WallBounces        int     `json:"wall_bounces"`        // vertical + horizontal wall events applied
	ParticleCollisions int     `json:"particle_collisions"` // pairwise events applied
	Ticks              int     `json:"ticks"`               // observer notifications
	PeakQueueLen       int     `json:"peak_queue_len"`      // max queue occupancy
	InitialEnergy      float64 `json:"initial_energy"`
	FinalEnergy        float64 `json:"final_energy"`
	SimEndedTime       float64 `json:"sim_ended_time"`
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// EnergyDrift returns |final - initial| / initial, or 0 for a system at rest.
func (m *Metrics) EnergyDrift() float64 {
	if m.InitialEnergy == 0 {
		return 0
	}
	return math.Abs(m.FinalEnergy-m.InitialEnergy) / m.InitialEnergy
}

// Print writes a human-readable summary to w.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Simulated Time       : %.6f\n", m.SimEndedTime)
	fmt.Fprintf(w, "Events Scheduled     : %d\n", m.EventsScheduled)
	fmt.Fprintf(w, "Events Processed     : %d\n", m.EventsProcessed)
	fmt.Fprintf(w, "Stale Discarded      : %d\n", m.StaleDiscarded)
	fmt.Fprintf(w, "Wall Bounces         : %d\n", m.WallBounces)
	fmt.Fprintf(w, "Particle Collisions  : %d\n", m.ParticleCollisions)
	fmt.Fprintf(w, "Ticks                : %d\n", m.Ticks)
	fmt.Fprintf(w, "Peak Queue Length    : %d\n", m.PeakQueueLen)
	fmt.Fprintf(w, "Kinetic Energy       : %.9g -> %.9g (drift %.3e)\n",
		m.InitialEnergy, m.FinalEnergy, m.EnergyDrift())
}

// SaveResults prints the summary to stdout and, when outputFilePath is set,
// writes the metrics as indented JSON.
func (m *Metrics) SaveResults(outputFilePath string) {
	m.Print(os.Stdout)
	if outputFilePath == "" {
		return
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		logrus.Errorf("Error marshalling metrics: %v", err)
		return
	}
	if err := os.WriteFile(outputFilePath, data, 0o644); err != nil {
		logrus.Errorf("Error writing metrics to %s: %v", outputFilePath, err)
		return
	}
	logrus.Infof("Metrics written to: %s", outputFilePath)
}
