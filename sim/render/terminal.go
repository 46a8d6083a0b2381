// Package render draws particle snapshots to a terminal. It plugs into the
// engine as a sim.Observer and owns its own frame pacing.
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/inference-sim/collision-sim/sim"
)

// DefaultFrameDelay is the pause after each drawn frame.
const DefaultFrameDelay = 20 * time.Millisecond

const (
	fillRune  = '█'
	pointRune = '•'
)

// Terminal renders each tick onto a tcell screen. The bottom row is a status
// line; the rest is the unit square with y pointing up.
type Terminal struct {
	screen     tcell.Screen
	frameDelay time.Duration
	sleep      func(time.Duration)
	frames     int
}

// NewTerminal creates a renderer over an initialized screen.
func NewTerminal(screen tcell.Screen, frameDelay time.Duration) *Terminal {
	return &Terminal{
		screen:     screen,
		frameDelay: frameDelay,
		sleep:      time.Sleep,
	}
}

// OpenScreen creates and initializes the terminal screen. Callers must Fini it.
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	screen.Clear()
	return screen, nil
}

// Frames returns the number of frames drawn so far.
func (t *Terminal) Frames() int { return t.frames }

// Observe implements sim.Observer.
func (t *Terminal) Observe(clock float64, particles []sim.ParticleState) {
	t.draw(clock, particles)
	t.frames++
	if t.frameDelay > 0 {
		t.sleep(t.frameDelay)
	}
}

func (t *Terminal) draw(clock float64, particles []sim.ParticleState) {
	t.screen.Clear()
	width, height := t.screen.Size()
	rows := height - 1
	if width <= 0 || rows <= 0 {
		return
	}

	for _, p := range particles {
		style := tcell.StyleDefault.Foreground(toColor(p.Color))
		if !t.fillDisc(p, width, rows, style) {
			col, row := cell(p.X, p.Y, width, rows)
			t.screen.SetContent(col, row, pointRune, nil, style)
		}
	}

	status := fmt.Sprintf("t=%.3f  particles=%d  frame=%d", clock, len(particles), t.frames)
	for i, r := range []rune(status) {
		if i >= width {
			break
		}
		t.screen.SetContent(i, rows, r, nil, tcell.StyleDefault.Reverse(true))
	}
	t.screen.Show()
}

// fillDisc paints every cell whose centre lies inside the particle. It
// reports whether any cell was painted.
func (t *Terminal) fillDisc(p sim.ParticleState, width, rows int, style tcell.Style) bool {
	c0, r1 := cell(p.X-p.Radius, p.Y-p.Radius, width, rows)
	c1, r0 := cell(p.X+p.Radius, p.Y+p.Radius, width, rows)
	painted := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			cx := (float64(col) + 0.5) / float64(width)
			cy := 1 - (float64(row)+0.5)/float64(rows)
			dx, dy := cx-p.X, cy-p.Y
			if dx*dx+dy*dy <= p.Radius*p.Radius {
				t.screen.SetContent(col, row, fillRune, nil, style)
				painted = true
			}
		}
	}
	return painted
}

// cell maps unit-square coordinates to a screen cell, clamped to the playfield.
func cell(x, y float64, width, rows int) (col, row int) {
	col = clamp(int(x*float64(width)), 0, width-1)
	row = clamp(int((1-y)*float64(rows)), 0, rows-1)
	return col, row
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func toColor(c sim.Color) tcell.Color {
	if c == (sim.Color{}) {
		return tcell.ColorWhite
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
