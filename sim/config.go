package sim

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/collision-sim/sim/trace"
)

// RunConfig holds the run parameters, loadable from a YAML file.
// Zero numeric fields mean "use the default"; CLI flags override file values.
type RunConfig struct {
	Horizon         float64     `yaml:"horizon"`          // simulation time limit (must be ≥ 0)
	TickHz          float64     `yaml:"tick_hz"`          // observer ticks per unit time (default 8)
	BoundsTolerance float64     `yaml:"bounds_tolerance"` // domain slack (default 1e-9)
	Seed            int64       `yaml:"seed"`             // master seed for generated scenarios
	Trace           TraceConfig `yaml:"trace"`
}

// TraceConfig holds event-trace configuration.
type TraceConfig struct {
	Level      string `yaml:"level"`       // "none" (default) or "events"
	MaxRecords int    `yaml:"max_records"` // 0 = unlimited
}

// DefaultRunConfig returns the configuration used when no file is given.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Horizon:         100,
		TickHz:          DefaultTickHz,
		BoundsTolerance: DefaultBoundsTolerance,
		Seed:            42,
		Trace:           TraceConfig{Level: string(trace.TraceLevelNone)},
	}
}

// LoadRunConfig reads a YAML run configuration on top of DefaultRunConfig.
// Unknown fields are rejected so that typos surface as errors.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	cfg := DefaultRunConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &cfg, nil
}

// Validate checks parameter ranges.
func (c *RunConfig) Validate() error {
	if math.IsNaN(c.Horizon) || c.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %v", c.Horizon)
	}
	if math.IsNaN(c.TickHz) || c.TickHz < 0 || math.IsInf(c.TickHz, 0) {
		return fmt.Errorf("tick_hz must be positive and finite, got %v", c.TickHz)
	}
	if math.IsNaN(c.BoundsTolerance) || c.BoundsTolerance < 0 {
		return fmt.Errorf("bounds_tolerance must be non-negative, got %v", c.BoundsTolerance)
	}
	if !trace.IsValidTraceLevel(c.Trace.Level) {
		return fmt.Errorf("unknown trace level %q", c.Trace.Level)
	}
	if c.Trace.MaxRecords < 0 {
		return fmt.Errorf("trace max_records must be non-negative, got %d", c.Trace.MaxRecords)
	}
	return nil
}

// NewTrace returns a SimulationTrace for the configured level, or nil when
// tracing is disabled.
func (c *RunConfig) NewTrace() *trace.SimulationTrace {
	level := trace.TraceLevel(c.Trace.Level)
	if level == "" || level == trace.TraceLevelNone {
		return nil
	}
	return trace.NewSimulationTrace(trace.TraceConfig{Level: level, MaxRecords: c.Trace.MaxRecords})
}

// EngineConfig converts the run configuration into engine tunables.
func (c *RunConfig) EngineConfig(observer Observer) EngineConfig {
	return EngineConfig{
		TickHz:          c.TickHz,
		BoundsTolerance: c.BoundsTolerance,
		Observer:        observer,
		Trace:           c.NewTrace(),
	}
}
