package sim

import "fmt"

// EventKind tags the variant carried by an Event.
type EventKind int

const (
	// EventWallVertical is a bounce off the x=0 or x=1 wall.
	EventWallVertical EventKind = iota
	// EventWallHorizontal is a bounce off the y=0 or y=1 wall.
	EventWallHorizontal
	// EventCollision is a bounce between two particles.
	EventCollision
	// EventTick drives observer notification. It never touches particles.
	EventTick
)

var eventKindNames = map[EventKind]string{
	EventWallVertical:   "WallVertical",
	EventWallHorizontal: "WallHorizontal",
	EventCollision:      "Collision",
	EventTick:           "Tick",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a scheduled occurrence. Events are immutable once built: the
// collision counters of the involved particles are captured at construction
// and compared against the live counters by IsValid.
type Event struct {
	time   float64
	kind   EventKind
	a, b   *Particle
	countA int
	countB int
	seq    uint64 // set by the engine on schedule, breaks time ties
}

// NewWallEvent creates a wall bounce of the given kind for p at time t.
func NewWallEvent(kind EventKind, t float64, p *Particle) (*Event, error) {
	if kind != EventWallVertical && kind != EventWallHorizontal {
		return nil, fmt.Errorf("wall event with kind %s: %w", kind, ErrInvalidArgument)
	}
	if p == nil {
		return nil, fmt.Errorf("%s event: nil particle: %w", kind, ErrInvalidArgument)
	}
	return &Event{time: t, kind: kind, a: p, countA: p.collisions}, nil
}

// NewCollisionEvent creates a collision between a and b at time t.
func NewCollisionEvent(t float64, a, b *Particle) (*Event, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("collision event: nil particle: %w", ErrInvalidArgument)
	}
	return &Event{
		time:   t,
		kind:   EventCollision,
		a:      a,
		b:      b,
		countA: a.collisions,
		countB: b.collisions,
	}, nil
}

// NewTickEvent creates an observer heartbeat at time t.
func NewTickEvent(t float64) *Event {
	return &Event{time: t, kind: EventTick}
}

// Time returns the scheduled simulation time.
func (e *Event) Time() float64 { return e.time }

// Kind returns the event variant.
func (e *Event) Kind() EventKind { return e.kind }

// IsValid reports whether no involved particle has bounced since e was created.
func (e *Event) IsValid() bool {
	switch e.kind {
	case EventTick:
		return true
	case EventCollision:
		return e.a.collisions == e.countA && e.b.collisions == e.countB
	default:
		return e.a.collisions == e.countA
	}
}

// Apply performs the bounce described by e. Ticks have no physical effect
// and return ErrUnsupported.
func (e *Event) Apply() error {
	switch e.kind {
	case EventWallVertical:
		e.a.BounceOffVerticalWall()
	case EventWallHorizontal:
		e.a.BounceOffHorizontalWall()
	case EventCollision:
		e.a.BounceOff(e.b)
	case EventTick:
		return fmt.Errorf("apply %s event: %w", e.kind, ErrUnsupported)
	default:
		return fmt.Errorf("apply %s: %w", e.kind, ErrUnsupported)
	}
	return nil
}

// Particles returns the particles whose futures must be re-predicted after e.
func (e *Event) Particles() []*Particle {
	switch e.kind {
	case EventTick:
		return nil
	case EventCollision:
		return []*Particle{e.a, e.b}
	default:
		return []*Particle{e.a}
	}
}

// eventLess orders by time, then by schedule order.
func eventLess(x, y *Event) bool {
	if x.time != y.time {
		return x.time < y.time
	}
	return x.seq < y.seq
}
