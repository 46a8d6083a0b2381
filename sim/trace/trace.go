package trace

import (
	"encoding/json"
	"fmt"
	"os"
)

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every applied wall bounce and collision.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level      TraceLevel
	MaxRecords int // 0 = unlimited; records past the cap are counted in Dropped
}

// SimulationTrace collects event records during a run.
type SimulationTrace struct {
	Config  TraceConfig   `json:"-"`
	Events  []EventRecord `json:"events"`
	Dropped int           `json:"dropped"`
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Events: make([]EventRecord, 0),
	}
}

// RecordEvent appends an event record, or counts it as dropped once MaxRecords is reached.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	if st.Config.MaxRecords > 0 && len(st.Events) >= st.Config.MaxRecords {
		st.Dropped++
		return
	}
	st.Events = append(st.Events, record)
}

// WriteJSON writes the trace and its summary to path.
func (st *SimulationTrace) WriteJSON(path string) error {
	out := struct {
		Summary *TraceSummary    `json:"summary"`
		Trace   *SimulationTrace `json:"trace"`
	}{Summarize(st), st}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}
