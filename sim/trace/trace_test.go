package trace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationTrace_RecordEvent_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for events
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN an event record is recorded
	st.RecordEvent(EventRecord{Clock: 0.45, Kind: "WallVertical", Particles: []int{0}})

	// THEN the trace contains one record with correct data
	if len(st.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(st.Events))
	}
	if st.Events[0].Kind != "WallVertical" {
		t.Errorf("expected kind WallVertical, got %s", st.Events[0].Kind)
	}
	if st.Events[0].Clock != 0.45 {
		t.Errorf("expected clock 0.45, got %v", st.Events[0].Clock)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN multiple records are added
	st.RecordEvent(EventRecord{Clock: 0.1, Kind: "Collision", Particles: []int{0, 1}})
	st.RecordEvent(EventRecord{Clock: 0.2, Kind: "WallHorizontal", Particles: []int{1}})
	st.RecordEvent(EventRecord{Clock: 0.3, Kind: "WallVertical", Particles: []int{0}})

	// THEN insertion order is preserved
	require.Len(t, st.Events, 3)
	assert.Equal(t, []float64{0.1, 0.2, 0.3},
		[]float64{st.Events[0].Clock, st.Events[1].Clock, st.Events[2].Clock})
}

func TestSimulationTrace_MaxRecords_CountsDropped(t *testing.T) {
	// GIVEN a trace capped at two records
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents, MaxRecords: 2})

	// WHEN four records are added
	for i := 0; i < 4; i++ {
		st.RecordEvent(EventRecord{Clock: float64(i), Kind: "WallVertical", Particles: []int{i}})
	}

	// THEN only the first two are kept and the rest are counted
	assert.Len(t, st.Events, 2)
	assert.Equal(t, 2, st.Dropped)
	assert.Equal(t, 1.0, st.Events[1].Clock)
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"events", true},
		{"", true},
		{"decisions", false},
		{"EVENTS", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidTraceLevel(tt.level))
		})
	}
}

func TestSimulationTrace_WriteJSON_IncludesSummary(t *testing.T) {
	// GIVEN a trace with one collision
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordEvent(EventRecord{Clock: 0.25, Kind: "Collision", Particles: []int{0, 1}})
	path := filepath.Join(t.TempDir(), "trace.json")

	// WHEN written to disk
	require.NoError(t, st.WriteJSON(path))

	// THEN the file decodes with both the summary and the raw events
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got struct {
		Summary TraceSummary `json:"summary"`
		Trace   struct {
			Events []EventRecord `json:"events"`
		} `json:"trace"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 1, got.Summary.TotalEvents)
	assert.Equal(t, 1, got.Summary.KindCounts["Collision"])
	require.Len(t, got.Trace.Events, 1)
	assert.Equal(t, []int{0, 1}, got.Trace.Events[0].Particles)
}
