package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRunConfig_ValidYAML(t *testing.T) {
	yaml := `
horizon: 250
tick_hz: 16
bounds_tolerance: 1.0e-7
seed: 7
trace:
  level: events
  max_records: 1000
`
	cfg, err := LoadRunConfig(writeTempYAML(t, yaml))
	require.NoError(t, err)
	want := RunConfig{
		Horizon:         250,
		TickHz:          16,
		BoundsTolerance: 1e-7,
		Seed:            7,
		Trace:           TraceConfig{Level: "events", MaxRecords: 1000},
	}
	assert.Equal(t, want, *cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRunConfig_PartialFile_KeepsDefaults(t *testing.T) {
	cfg, err := LoadRunConfig(writeTempYAML(t, "horizon: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, cfg.Horizon)
	assert.Equal(t, DefaultTickHz, cfg.TickHz)
	assert.Equal(t, DefaultBoundsTolerance, cfg.BoundsTolerance)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadRunConfig_UnknownField_Rejected(t *testing.T) {
	// typos must cause errors
	_, err := LoadRunConfig(writeTempYAML(t, "horizn: 5\n"))
	assert.Error(t, err)
}

func TestLoadRunConfig_MissingFile(t *testing.T) {
	_, err := LoadRunConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestRunConfig_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunConfig)
	}{
		{"negative horizon", func(c *RunConfig) { c.Horizon = -1 }},
		{"negative tick", func(c *RunConfig) { c.TickHz = -8 }},
		{"negative tolerance", func(c *RunConfig) { c.BoundsTolerance = -1e-9 }},
		{"unknown trace level", func(c *RunConfig) { c.Trace.Level = "verbose" }},
		{"negative max records", func(c *RunConfig) { c.Trace.MaxRecords = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRunConfig_NewTrace(t *testing.T) {
	cfg := DefaultRunConfig()
	assert.Nil(t, cfg.NewTrace(), "level none must disable tracing")

	cfg.Trace = TraceConfig{Level: "events", MaxRecords: 3}
	st := cfg.NewTrace()
	require.NotNil(t, st)
	assert.Equal(t, 3, st.Config.MaxRecords)
}

func TestRunConfig_EngineConfig_CarriesTunables(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.TickHz = 4
	cfg.BoundsTolerance = 1e-6
	obs := ObserverFunc(func(float64, []ParticleState) {})

	got := cfg.EngineConfig(obs)

	assert.Equal(t, 4.0, got.TickHz)
	assert.Equal(t, 1e-6, got.BoundsTolerance)
	assert.NotNil(t, got.Observer)
	assert.Nil(t, got.Trace)
}
