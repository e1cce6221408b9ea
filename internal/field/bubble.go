package field

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/dotfield/internal/config"
)

// Rand is the random source the simulator draws from. *rand.Rand from
// math/rand/v2 satisfies it; tests script their own.
type Rand interface {
	Float64() float64
}

// NewRand returns a PCG source for seed, or the unseeded global source
// when seed is zero.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		return globalRand{}
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

func between(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// Bubble is one wandering lens. Position and radius ease toward a target
// that is re-picked on a per-bubble random timer.
type Bubble struct {
	x, y, r    float64
	tx, ty, tr float64

	sigma, sigma2 float64
	sigmaMult     float64

	lastTarget time.Duration
	interval   time.Duration
	centerEase float64
	radiusEase float64
}

// NewBubbleAt places a bubble that stays put: its target is its current
// state and it never re-targets.
func NewBubbleAt(x, y, r, sigmaMult float64) *Bubble {
	b := &Bubble{
		x: x, y: y,
		tx: x, ty: y, tr: r,
		sigmaMult: sigmaMult,
		interval:  math.MaxInt64,
	}
	b.setRadius(r)
	return b
}

func (b *Bubble) Center() (x, y float64)          { return b.x, b.y }
func (b *Bubble) Target() (x, y, r float64)       { return b.tx, b.ty, b.tr }
func (b *Bubble) Radius() float64                 { return b.r }
func (b *Bubble) Sigma() float64                  { return b.sigma }
func (b *Bubble) Eases() (center, radius float64) { return b.centerEase, b.radiusEase }

// setRadius is the only writer of r; sigma follows it.
func (b *Bubble) setRadius(r float64) {
	b.r = r
	b.sigma = r * b.sigmaMult
	b.sigma2 = b.sigma * b.sigma
}

// ease moves one frame toward the target. The remaining distance shrinks
// by (1-ease) each call and never overshoots for ease in (0,1].
func (b *Bubble) ease() {
	b.x += (b.tx - b.x) * b.centerEase
	b.y += (b.ty - b.y) * b.centerEase
	b.setRadius(b.r + (b.tr-b.r)*b.radiusEase)
}

// Simulator owns the bubble set for one viewport.
type Simulator struct {
	cfg     config.Config
	vp      Viewport
	rng     Rand
	bubbles []*Bubble
}

// NewSimulator spawns cfg.BubbleCount bubbles inside vp. Each bubble's
// timer is backdated by a random offset so they do not re-target together.
func NewSimulator(cfg config.Config, vp Viewport, rng Rand, now time.Duration) *Simulator {
	s := &Simulator{cfg: cfg, vp: vp, rng: rng}
	s.bubbles = make([]*Bubble, 0, cfg.BubbleCount)
	for i := 0; i < cfg.BubbleCount; i++ {
		s.bubbles = append(s.bubbles, s.spawn(now))
	}
	return s
}

func (s *Simulator) Bubbles() []*Bubble { return s.bubbles }

func (s *Simulator) spawn(now time.Duration) *Bubble {
	r := s.vp.MinSide() * between(s.rng, s.cfg.BubbleMinFrac, s.cfg.BubbleMaxFrac)
	x, y := s.pickCenter()
	b := &Bubble{
		x: x, y: y,
		tx: x, ty: y, tr: r,
		sigmaMult: s.cfg.SigmaMult,
	}
	b.setRadius(r)
	s.pickTiming(b)
	b.lastTarget = now - millis(between(s.rng, 0, s.cfg.StartPhaseDesyncMs))
	return b
}

// pickCenter returns a point inside the viewport inset by
// config.TargetMargin on every side, in device pixels.
func (s *Simulator) pickCenter() (x, y float64) {
	padX := s.vp.CSSWidth * config.TargetMargin
	padY := s.vp.CSSHeight * config.TargetMargin
	x = (padX + s.rng.Float64()*(s.vp.CSSWidth-2*padX)) * s.vp.Ratio
	y = (padY + s.rng.Float64()*(s.vp.CSSHeight-2*padY)) * s.vp.Ratio
	return x, y
}

func (s *Simulator) pickTiming(b *Bubble) {
	b.interval = millis(between(s.rng, s.cfg.TargetChangeMsMin, s.cfg.TargetChangeMsMax))
	b.centerEase = between(s.rng, s.cfg.CenterEaseMin, s.cfg.CenterEaseMax)
	b.radiusEase = between(s.rng, s.cfg.RadiusEaseMin, s.cfg.RadiusEaseMax)
}

// Wander advances every bubble by one frame.
func (s *Simulator) Wander(now time.Duration) {
	for _, b := range s.bubbles {
		s.wander(b, now)
	}
}

func (s *Simulator) wander(b *Bubble, now time.Duration) {
	if now-b.lastTarget >= b.interval {
		b.lastTarget = now
		b.tx, b.ty = s.pickCenter()
		minSide := s.vp.MinSide()
		b.tr = between(s.rng, minSide*s.cfg.BubbleMinFrac, minSide*s.cfg.BubbleMaxFrac)
		s.pickTiming(b)
	}
	b.ease()
}
