// Package sim provides the event-driven engine for elastic particle collisions
// in the unit square.
//
// # Reading Guide
//
// Start with these four files to understand the simulation kernel:
//   - queue.go: MinQueue, the resizing binary heap that orders pending events
//   - particle.go: Particle kinematics, collision prediction and elastic bounces
//   - event.go: Event variants (WallVertical, WallHorizontal, Collision, Tick)
//     and staleness detection through collision counters
//   - simulator.go: The event loop, prediction, and observer ticks
//
// # Architecture
//
// The engine never advances particles step by step. It predicts every future
// wall or pairwise contact, queues them by time, and jumps straight to the
// earliest. A bounce invalidates queued predictions involving the bounced
// particles lazily: each event remembers the collision counters it was built
// with and is discarded on pop if they no longer match.
//
// Supporting sub-packages:
//   - sim/scenario/: Particle files, YAML scenarios and random generation
//   - sim/trace/: Event trace recording and summary
//   - sim/render/: Terminal renderer, an Observer driven by ticks
//
// # Key Interfaces
//
//   - Observer: receives a read-only particle snapshot at every tick
package sim
