package scenario

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/inference-sim/collision-sim/sim"
)

// maxPrealloc caps the slice capacity reserved from the declared count,
// which is untrusted until that many records have actually been read.
const maxPrealloc = 1024

// ParseText reads the plain-text particle format: a particle count N
// followed by N records of "rx ry vx vy radius mass r g b". Tokens are
// whitespace-separated; line breaks carry no meaning.
func ParseText(r io.Reader) ([]sim.ParticleState, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	next := func(what string) (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("unexpected end of input reading %s", what)
		}
		return sc.Text(), nil
	}

	tok, err := next("particle count")
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("invalid particle count %q", tok)
	}

	states := make([]sim.ParticleState, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		var f [6]float64
		for j, name := range []string{"rx", "ry", "vx", "vy", "radius", "mass"} {
			tok, err := next(fmt.Sprintf("particle %d %s", i, name))
			if err != nil {
				return nil, err
			}
			if f[j], err = strconv.ParseFloat(tok, 64); err != nil {
				return nil, fmt.Errorf("particle %d %s: %w", i, name, err)
			}
		}
		var rgb [3]uint8
		for j, name := range []string{"r", "g", "b"} {
			tok, err := next(fmt.Sprintf("particle %d color %s", i, name))
			if err != nil {
				return nil, err
			}
			v, err := strconv.ParseUint(tok, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("particle %d color %s: %w", i, name, err)
			}
			rgb[j] = uint8(v)
		}
		states = append(states, sim.ParticleState{
			X: f[0], Y: f[1], VX: f[2], VY: f[3],
			Radius: f[4], Mass: f[5],
			Color: sim.Color{R: rgb[0], G: rgb[1], B: rgb[2]},
		})
	}
	return states, nil
}

// WriteText writes states in the format read by ParseText, one particle per line.
func WriteText(w io.Writer, states []sim.ParticleState) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, len(states))
	for _, s := range states {
		fmt.Fprintf(bw, "%s %s %s %s %s %s %d %d %d\n",
			ftoa(s.X), ftoa(s.Y), ftoa(s.VX), ftoa(s.VY), ftoa(s.Radius), ftoa(s.Mass),
			s.Color.R, s.Color.G, s.Color.B)
	}
	return bw.Flush()
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
