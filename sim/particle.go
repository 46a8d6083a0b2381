package sim

import (
	"fmt"
	"math"
)

// DefaultBoundsTolerance is the absolute slack allowed around [r, 1-r] when
// checking that a particle is still inside the unit square.
const DefaultBoundsTolerance = 1e-9

// Color is the display attribute carried by a particle. Physics never reads it.
type Color struct {
	R uint8 `yaml:"r" json:"r"`
	G uint8 `yaml:"g" json:"g"`
	B uint8 `yaml:"b" json:"b"`
}

// ParticleState is a value snapshot of a particle, used both as initial
// configuration and as the read-only view handed to observers.
type ParticleState struct {
	X          float64 `yaml:"x" json:"x"`
	Y          float64 `yaml:"y" json:"y"`
	VX         float64 `yaml:"vx" json:"vx"`
	VY         float64 `yaml:"vy" json:"vy"`
	Radius     float64 `yaml:"radius" json:"radius"`
	Mass       float64 `yaml:"mass" json:"mass"`
	Color      Color   `yaml:"color" json:"color"`
	Collisions int     `yaml:"-" json:"collisions"`
}

// Particle is a hard disc moving in the unit square.
//
// The collision counter only grows: once per wall bounce and once per
// participant in a particle-particle bounce. Events snapshot it to detect
// that a prediction went stale.
type Particle struct {
	x, y       float64
	vx, vy     float64
	radius     float64
	mass       float64
	color      Color
	collisions int
}

// NewParticle builds a particle from its initial state.
// Radius and mass must be positive and finite; coordinates must be finite.
func NewParticle(s ParticleState) (*Particle, error) {
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return nil, fmt.Errorf("particle radius %v must be positive: %w", s.Radius, ErrInvalidArgument)
	}
	if !(s.Mass > 0) || math.IsInf(s.Mass, 0) {
		return nil, fmt.Errorf("particle mass %v must be positive: %w", s.Mass, ErrInvalidArgument)
	}
	for _, v := range []float64{s.X, s.Y, s.VX, s.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("particle coordinates must be finite, got %+v: %w", s, ErrInvalidArgument)
		}
	}
	return &Particle{
		x: s.X, y: s.Y,
		vx: s.VX, vy: s.VY,
		radius: s.Radius,
		mass:   s.Mass,
		color:  s.Color,
	}, nil
}

// State returns a value snapshot of the particle.
func (p *Particle) State() ParticleState {
	return ParticleState{
		X: p.x, Y: p.y,
		VX: p.vx, VY: p.vy,
		Radius:     p.radius,
		Mass:       p.mass,
		Color:      p.color,
		Collisions: p.collisions,
	}
}

// Collisions returns how many bounces this particle has taken part in.
func (p *Particle) Collisions() int { return p.collisions }

// Move advances the particle along its velocity for dt.
func (p *Particle) Move(dt float64) {
	p.x += p.vx * dt
	p.y += p.vy * dt
}

// InBounds reports whether the particle's edge lies inside the unit square,
// allowing tol of slack for accumulated rounding.
func (p *Particle) InBounds(tol float64) bool {
	return p.x >= p.radius-tol && p.x <= 1-p.radius+tol &&
		p.y >= p.radius-tol && p.y <= 1-p.radius+tol
}

// TimeToHit returns the time until p and other touch, or +Inf if they never will
// on their current courses.
func (p *Particle) TimeToHit(other *Particle) float64 {
	if p == other {
		return math.Inf(1)
	}
	dx, dy := other.x-p.x, other.y-p.y
	dvx, dvy := other.vx-p.vx, other.vy-p.vy
	dvdr := dx*dvx + dy*dvy
	if dvdr >= 0 {
		return math.Inf(1)
	}
	dvdv := dvx*dvx + dvy*dvy
	drdr := dx*dx + dy*dy
	sigma := p.radius + other.radius
	d := dvdr*dvdr - dvdv*(drdr-sigma*sigma)
	if d < 0 {
		return math.Inf(1)
	}
	return -(dvdr + math.Sqrt(d)) / dvdv
}

// TimeToHitVerticalWall returns the time until the particle's edge reaches
// x=0 or x=1, or +Inf when it is not moving horizontally.
func (p *Particle) TimeToHitVerticalWall() float64 {
	return timeToWall(p.x, p.vx, p.radius)
}

// TimeToHitHorizontalWall returns the time until the particle's edge reaches
// y=0 or y=1, or +Inf when it is not moving vertically.
func (p *Particle) TimeToHitHorizontalWall() float64 {
	return timeToWall(p.y, p.vy, p.radius)
}

func timeToWall(pos, v, radius float64) float64 {
	switch {
	case v > 0:
		return (1 - pos - radius) / v
	case v < 0:
		return (radius - pos) / v
	default:
		return math.Inf(1)
	}
}

// BounceOffVerticalWall reflects the horizontal velocity.
func (p *Particle) BounceOffVerticalWall() {
	p.vx = -p.vx
	p.collisions++
}

// BounceOffHorizontalWall reflects the vertical velocity.
func (p *Particle) BounceOffHorizontalWall() {
	p.vy = -p.vy
	p.collisions++
}

// BounceOff resolves an elastic collision between p and other, which must be
// in contact. Geometry is recomputed from the current state because both
// particles may have moved since the collision was predicted.
func (p *Particle) BounceOff(other *Particle) {
	dx, dy := other.x-p.x, other.y-p.y
	dvx, dvy := other.vx-p.vx, other.vy-p.vy
	dvdr := dx*dvx + dy*dvy
	sigma := p.radius + other.radius

	// impulse along the line of centres
	j := 2 * p.mass * other.mass * dvdr / ((p.mass + other.mass) * sigma)
	jx := j * dx / sigma
	jy := j * dy / sigma

	p.vx += jx / p.mass
	p.vy += jy / p.mass
	other.vx -= jx / other.mass
	other.vy -= jy / other.mass

	p.collisions++
	other.collisions++
}

// KineticEnergy returns ½·m·|v|².
func (p *Particle) KineticEnergy() float64 {
	return 0.5 * p.mass * (p.vx*p.vx + p.vy*p.vy)
}

// Momentum returns m·v.
func (p *Particle) Momentum() (px, py float64) {
	return p.mass * p.vx, p.mass * p.vy
}
