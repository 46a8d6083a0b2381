// Package scenario builds initial particle configurations: it parses the
// plain-text particle format, loads YAML scenario specs, and generates
// random non-overlapping systems.
package scenario

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/collision-sim/sim"
)

// ScenarioSpec is the top-level scenario configuration.
// Loaded from YAML via LoadScenarioSpec(path). Explicit particles and a
// random block may be combined; random particles are placed around the
// explicit ones.
type ScenarioSpec struct {
	Version   string              `yaml:"version"`
	Seed      int64               `yaml:"seed"`
	Particles []sim.ParticleState `yaml:"particles"`
	Random    *RandomSpec         `yaml:"random,omitempty"`
}

// RandomSpec parameterizes a randomly generated particle system.
type RandomSpec struct {
	Count     int     `yaml:"count"`
	RadiusMin float64 `yaml:"radius_min"`
	RadiusMax float64 `yaml:"radius_max"`
	MaxSpeed  float64 `yaml:"max_speed"` // per-axis velocity is drawn from [-max_speed, max_speed]
	MassMin   float64 `yaml:"mass_min"`
	MassMax   float64 `yaml:"mass_max"`
}

// DefaultRandomSpec mirrors the classic random particle: small radius,
// slow drift, mass 0.5.
func DefaultRandomSpec(count int) RandomSpec {
	return RandomSpec{
		Count:     count,
		RadiusMin: 0.005,
		RadiusMax: 0.02,
		MaxSpeed:  0.01,
		MassMin:   0.5,
		MassMax:   0.5,
	}
}

// LoadScenarioSpec reads and strictly parses a YAML scenario.
func LoadScenarioSpec(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario spec: %w", err)
	}
	var spec ScenarioSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that the scenario describes a physical system.
func (s *ScenarioSpec) Validate() error {
	if s.Version != "1" {
		return fmt.Errorf("unsupported scenario version %q", s.Version)
	}
	if len(s.Particles) == 0 && s.Random == nil {
		return fmt.Errorf("at least one particle or a random block required")
	}
	for i, p := range s.Particles {
		if err := validateFinitePositive(fmt.Sprintf("particles[%d].radius", i), p.Radius); err != nil {
			return err
		}
		if err := validateFinitePositive(fmt.Sprintf("particles[%d].mass", i), p.Mass); err != nil {
			return err
		}
	}
	if s.Random != nil {
		if err := s.Random.Validate(); err != nil {
			return fmt.Errorf("random: %w", err)
		}
	}
	return nil
}

// Validate checks parameter ranges of a random block.
func (r *RandomSpec) Validate() error {
	if r.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", r.Count)
	}
	if err := validateFinitePositive("radius_min", r.RadiusMin); err != nil {
		return err
	}
	if err := validateFinitePositive("radius_max", r.RadiusMax); err != nil {
		return err
	}
	if r.RadiusMax < r.RadiusMin || r.RadiusMax >= 0.5 {
		return fmt.Errorf("radius_max must be in [radius_min, 0.5), got %f", r.RadiusMax)
	}
	if math.IsNaN(r.MaxSpeed) || math.IsInf(r.MaxSpeed, 0) || r.MaxSpeed < 0 {
		return fmt.Errorf("max_speed must be a non-negative finite number, got %f", r.MaxSpeed)
	}
	if err := validateFinitePositive("mass_min", r.MassMin); err != nil {
		return err
	}
	if err := validateFinitePositive("mass_max", r.MassMax); err != nil {
		return err
	}
	if r.MassMax < r.MassMin {
		return fmt.Errorf("mass_max must be ≥ mass_min, got %f", r.MassMax)
	}
	return nil
}

// Build materializes the scenario into initial particle states.
func (s *ScenarioSpec) Build() ([]sim.ParticleState, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario spec: %w", err)
	}
	states := append([]sim.ParticleState(nil), s.Particles...)
	if s.Random == nil {
		return states, nil
	}
	return appendRandom(states, *s.Random, s.Seed)
}

// Load reads initial particle states from path. Files ending in .yaml or
// .yml are scenario specs; anything else is the plain-text format.
func Load(path string) ([]sim.ParticleState, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		spec, err := LoadScenarioSpec(path)
		if err != nil {
			return nil, err
		}
		states, err := spec.Build()
		if err != nil {
			return nil, err
		}
		logrus.Infof("Loaded %d particles from scenario spec %s", len(states), path)
		return states, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening particle file: %w", err)
		}
		defer f.Close()
		states, err := ParseText(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logrus.Infof("Loaded %d particles from %s", len(states), path)
		return states, nil
	}
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%s must be a finite number, got %f", name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%s must be positive, got %f", name, val)
	}
	return nil
}
