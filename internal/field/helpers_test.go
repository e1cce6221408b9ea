package field

import (
	"image/color"
	"math"
)

// seqRand replays vals in a loop.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

type fakeSurface struct {
	clears int
	fills  int
	dots   []Dot
	color  color.Color
}

func (s *fakeSurface) Clear() { s.clears++ }

func (s *fakeSurface) FillCircles(dots []Dot, c color.Color) {
	s.fills++
	s.dots = append(s.dots[:0], dots...)
	s.color = c
}

func viewport(w, h, ratio float64) Viewport {
	vp, _ := NewViewportAdapter(4).Resolve(w, h, ratio)
	return vp
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
