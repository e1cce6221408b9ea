package field

import (
	"math"

	"github.com/iburimskiy/dotfield/internal/config"
)

// Dot is a grid point after the lens has been applied: where to draw it
// and how big, in device pixels.
type Dot struct {
	X, Y, R float64
}

// Lens holds the distortion parameters shared by every bubble.
type Lens struct {
	Pull          float64
	MinScale      float64
	SkipSigmaMult float64
}

func LensFromConfig(cfg config.Config) Lens {
	return Lens{
		Pull:          cfg.PullStrength,
		MinScale:      cfg.MinScaleAtCenter,
		SkipSigmaMult: cfg.SkipSigmaMult,
	}
}

// Negligible reports whether a bubble with the given sigma has no
// meaningful effect at displacement (dx, dy). The box test runs first so
// most far points never reach the multiply. A collapsed bubble (sigma 0)
// affects nothing.
func Negligible(dx, dy, sigma, skipSigmaMult float64) bool {
	if sigma <= 0 {
		return true
	}
	cutoff := skipSigmaMult * sigma
	if math.Abs(dx) > cutoff || math.Abs(dy) > cutoff {
		return true
	}
	return dx*dx+dy*dy > cutoff*cutoff
}

// Influence sums the pull and Gaussian weight of every bubble at p.
func (l Lens) Influence(p Point, bubbles []*Bubble) (offX, offY, weight float64) {
	for _, b := range bubbles {
		dx := p.X - b.x
		dy := p.Y - b.y
		if Negligible(dx, dy, b.sigma, l.SkipSigmaMult) {
			continue
		}
		w := math.Exp(-(dx*dx + dy*dy) / (2 * b.sigma2))
		offX -= dx * l.Pull * w
		offY -= dy * l.Pull * w
		weight += w
	}
	return offX, offY, weight
}

// Scale maps a summed weight to a size factor in [MinScale, 1]. Weights
// of one or more hit the floor exactly.
func (l Lens) Scale(weight float64) float64 {
	switch {
	case weight <= 0:
		return 1
	case weight >= 1:
		return l.MinScale
	}
	return 1 - (1-l.MinScale)*weight
}

// Apply returns the distorted dot for p.
func (l Lens) Apply(p Point, baseRadius float64, bubbles []*Bubble) Dot {
	offX, offY, w := l.Influence(p, bubbles)
	return Dot{
		X: p.X + offX,
		Y: p.Y + offY,
		R: baseRadius * l.Scale(w),
	}
}

// Evaluate applies the lens to every point, reusing dst's backing array.
func (l Lens) Evaluate(dst []Dot, points []Point, baseRadius float64, bubbles []*Bubble) []Dot {
	dst = dst[:0]
	for _, p := range points {
		dst = append(dst, l.Apply(p, baseRadius, bubbles))
	}
	return dst
}
