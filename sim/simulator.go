// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/collision-sim/sim/trace"
)

// DefaultTickHz is the default observer notification rate, in ticks per unit
// of simulated time.
const DefaultTickHz = 8.0

// Observer receives a read-only copy of the particle set at every tick.
// It is called synchronously from the event loop and must not call back into
// the Engine.
type Observer interface {
	Observe(clock float64, particles []ParticleState)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(clock float64, particles []ParticleState)

// Observe calls f.
func (f ObserverFunc) Observe(clock float64, particles []ParticleState) { f(clock, particles) }

// EngineConfig groups the tunables of a run. Zero values select defaults.
type EngineConfig struct {
	TickHz          float64                // observer ticks per unit time (default DefaultTickHz)
	BoundsTolerance float64                // slack around the domain (default DefaultBoundsTolerance)
	Observer        Observer               // optional
	Trace           *trace.SimulationTrace // optional; nil disables event tracing
}

// Engine is the event-driven simulator. It owns its particles, its event
// queue and its clock. One Engine runs exactly once.
//
// Thread-safety: NOT thread-safe. Must be driven from a single goroutine.
type Engine struct {
	particles []*Particle
	index     map[*Particle]int
	queue     *MinQueue[*Event]
	clock     float64
	limit     float64
	tickHz    float64
	tolerance float64
	observer  Observer
	trace     *trace.SimulationTrace
	seq       uint64
	ran       bool

	Metrics *Metrics
}

// NewEngine builds an engine over the given initial particle states.
func NewEngine(states []ParticleState, cfg EngineConfig) (*Engine, error) {
	if cfg.TickHz == 0 {
		cfg.TickHz = DefaultTickHz
	}
	if !(cfg.TickHz > 0) || math.IsInf(cfg.TickHz, 0) {
		return nil, fmt.Errorf("tick frequency %v must be positive and finite: %w", cfg.TickHz, ErrInvalidArgument)
	}
	if cfg.BoundsTolerance == 0 {
		cfg.BoundsTolerance = DefaultBoundsTolerance
	}
	if cfg.BoundsTolerance < 0 {
		return nil, fmt.Errorf("bounds tolerance %v must be non-negative: %w", cfg.BoundsTolerance, ErrInvalidArgument)
	}

	e := &Engine{
		particles: make([]*Particle, len(states)),
		index:     make(map[*Particle]int, len(states)),
		queue:     NewMinQueue(eventLess),
		tickHz:    cfg.TickHz,
		tolerance: cfg.BoundsTolerance,
		observer:  cfg.Observer,
		trace:     cfg.Trace,
		Metrics:   NewMetrics(),
	}
	for i, s := range states {
		p, err := NewParticle(s)
		if err != nil {
			return nil, fmt.Errorf("particle %d: %w", i, err)
		}
		e.particles[i] = p
		e.index[p] = i
	}
	return e, nil
}

// Simulate runs the event loop until no event at or before timeLimit remains.
// It returns ErrDomainViolation if a particle ever leaves the domain; the run
// is then void.
func (e *Engine) Simulate(timeLimit float64) error {
	if math.IsNaN(timeLimit) || timeLimit < 0 {
		return fmt.Errorf("time limit %v: %w", timeLimit, ErrInvalidArgument)
	}
	if e.ran {
		return ErrAlreadyRun
	}
	e.ran = true
	e.clock = 0
	e.limit = timeLimit

	for i, p := range e.particles {
		if !p.InBounds(e.tolerance) {
			return fmt.Errorf("particle %d starts at (%g, %g) with radius %g: %w",
				i, p.x, p.y, p.radius, ErrDomainViolation)
		}
	}
	e.Metrics.InitialEnergy = e.KineticEnergy()

	logrus.Infof("[t=%.6f] Starting simulation: %d particles, limit=%g, tick=%gHz",
		e.clock, len(e.particles), timeLimit, e.tickHz)

	for _, p := range e.particles {
		if err := e.predict(p); err != nil {
			return err
		}
	}
	if err := e.schedule(NewTickEvent(e.clock)); err != nil {
		return err
	}

	for !e.queue.IsEmpty() {
		ev, err := e.queue.RemoveMin()
		if err != nil {
			return err
		}
		if !ev.IsValid() {
			e.Metrics.StaleDiscarded++
			logrus.Tracef("[t=%.6f] Discarding stale %s", ev.time, ev.kind)
			continue
		}
		if err := e.advance(ev.time); err != nil {
			return err
		}
		logrus.Debugf("[t=%.6f] Executing %s", e.clock, ev.kind)
		e.Metrics.EventsProcessed++

		if ev.kind == EventTick {
			if err := e.tick(); err != nil {
				return err
			}
			continue
		}
		if err := ev.Apply(); err != nil {
			return err
		}
		e.record(ev)
		for _, p := range ev.Particles() {
			if err := e.predict(p); err != nil {
				return err
			}
		}
	}

	e.Metrics.FinalEnergy = e.KineticEnergy()
	e.Metrics.SimEndedTime = e.clock
	logrus.Infof("[t=%.6f] Simulation ended", e.clock)
	return nil
}

// advance moves every particle to time t and checks the domain invariant.
func (e *Engine) advance(t float64) error {
	dt := t - e.clock
	for i, p := range e.particles {
		p.Move(dt)
		if !p.InBounds(e.tolerance) {
			return fmt.Errorf("[t=%g] particle %d at (%g, %g) with radius %g: %w",
				t, i, p.x, p.y, p.radius, ErrDomainViolation)
		}
	}
	e.clock = t
	return nil
}

// tick notifies the observer and schedules the next heartbeat. The last
// heartbeat lands exactly on the time limit: advancing past it could carry a
// particle through a wall whose bounce was never scheduled.
func (e *Engine) tick() error {
	e.Metrics.Ticks++
	if e.observer != nil {
		e.observer.Observe(e.clock, e.Particles())
	}
	if e.clock < e.limit {
		return e.schedule(NewTickEvent(math.Min(e.clock+1/e.tickHz, e.limit)))
	}
	return nil
}

// predict schedules every wall and pairwise event of p that lands within the
// time limit.
func (e *Engine) predict(p *Particle) error {
	for _, other := range e.particles {
		dt := p.TimeToHit(other)
		if !e.withinLimit(dt) {
			continue
		}
		ev, err := NewCollisionEvent(e.clock+clampInterval(dt), p, other)
		if err != nil {
			return err
		}
		if err := e.schedule(ev); err != nil {
			return err
		}
	}
	walls := []struct {
		kind EventKind
		dt   float64
	}{
		{EventWallVertical, p.TimeToHitVerticalWall()},
		{EventWallHorizontal, p.TimeToHitHorizontalWall()},
	}
	for _, w := range walls {
		if !e.withinLimit(w.dt) {
			continue
		}
		ev, err := NewWallEvent(w.kind, e.clock+clampInterval(w.dt), p)
		if err != nil {
			return err
		}
		if err := e.schedule(ev); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) withinLimit(dt float64) bool {
	return !math.IsInf(dt, 1) && !math.IsNaN(dt) && e.clock+clampInterval(dt) <= e.limit
}

// clampInterval turns the tiny negative intervals produced by rounding when
// two bodies are already touching into "now".
func clampInterval(dt float64) float64 {
	return math.Max(dt, 0)
}

// schedule stamps ev with the next sequence number and queues it.
func (e *Engine) schedule(ev *Event) error {
	e.seq++
	ev.seq = e.seq
	if err := e.queue.Insert(ev); err != nil {
		return err
	}
	e.Metrics.EventsScheduled++
	if n := e.queue.Len(); n > e.Metrics.PeakQueueLen {
		e.Metrics.PeakQueueLen = n
	}
	return nil
}

func (e *Engine) record(ev *Event) {
	switch ev.kind {
	case EventCollision:
		e.Metrics.ParticleCollisions++
	default:
		e.Metrics.WallBounces++
	}
	if e.trace == nil {
		return
	}
	ids := make([]int, 0, 2)
	for _, p := range ev.Particles() {
		ids = append(ids, e.index[p])
	}
	e.trace.RecordEvent(trace.EventRecord{
		Clock:     ev.time,
		Kind:      ev.kind.String(),
		Particles: ids,
	})
}

// Clock returns the current simulated time.
func (e *Engine) Clock() float64 { return e.clock }

// Len returns the number of particles.
func (e *Engine) Len() int { return len(e.particles) }

// Particles returns a snapshot of every particle, in input order.
func (e *Engine) Particles() []ParticleState {
	out := make([]ParticleState, len(e.particles))
	for i, p := range e.particles {
		out[i] = p.State()
	}
	return out
}

// CollisionCounts returns each particle's collision counter, in input order.
func (e *Engine) CollisionCounts() []int {
	out := make([]int, len(e.particles))
	for i, p := range e.particles {
		out[i] = p.collisions
	}
	return out
}

// KineticEnergy returns the total kinetic energy of the system.
func (e *Engine) KineticEnergy() float64 {
	total := 0.0
	for _, p := range e.particles {
		total += p.KineticEnergy()
	}
	return total
}
