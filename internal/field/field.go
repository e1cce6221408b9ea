package field

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/iburimskiy/dotfield/internal/config"
)

// Surface is anything the dots can be painted on.
type Surface interface {
	// Clear erases the previous frame.
	Clear()
	// FillCircles paints every dot as a filled circle in one pass.
	FillCircles(dots []Dot, c color.Color)
}

// Field is the whole simulation state for one surface: grid, bubbles and
// density cap. Nothing in it is shared between instances.
type Field struct {
	cfg     config.Config
	rng     Rand
	lens    Lens
	color   color.NRGBA
	vp      Viewport
	points  []Point
	sim     *Simulator
	quality *Quality
	dots    []Dot
}

// New builds a field for vp. rng may be nil, in which case the unseeded
// global source is used.
func New(cfg config.Config, vp Viewport, rng Rand, now time.Duration) *Field {
	if rng == nil {
		rng = NewRand(0)
	}
	f := &Field{
		cfg:     cfg,
		rng:     rng,
		lens:    LensFromConfig(cfg),
		color:   cfg.Color(),
		quality: NewQuality(cfg),
	}
	f.Resize(vp, now)
	return f
}

// Resize rebuilds the grid and respawns every bubble for vp.
func (f *Field) Resize(vp Viewport, now time.Duration) {
	f.vp = vp
	f.rebuildGrid()
	f.sim = NewSimulator(f.cfg, vp, f.rng, now)
	Logger().Info("field resized",
		slog.Int("width", vp.Width),
		slog.Int("height", vp.Height),
		slog.Float64("ratio", vp.Ratio),
		slog.Int("dots", len(f.points)),
	)
}

func (f *Field) rebuildGrid() {
	f.points = BuildGrid(f.vp, f.cfg.Spacing, f.quality.Cap())
}

// Wander advances the bubbles one frame.
func (f *Field) Wander(now time.Duration) {
	f.sim.Wander(now)
}

// Render evaluates the lens at every point and paints the result.
func (f *Field) Render(s Surface) {
	baseR := f.cfg.BaseDotRadius * f.vp.Ratio
	f.dots = f.lens.Evaluate(f.dots, f.points, baseR, f.sim.Bubbles())
	s.Clear()
	s.FillCircles(f.dots, f.color)
}

// Adapt feeds a frame duration to the quality controller and rebuilds
// the grid when the density cap moves.
func (f *Field) Adapt(frame time.Duration) {
	if !f.quality.Observe(frame) {
		return
	}
	f.rebuildGrid()
	Logger().Debug("density cap changed",
		slog.Int("cap", f.quality.Cap()),
		slog.Int("dots", len(f.points)),
		slog.Duration("frame", frame),
	)
}

func (f *Field) Config() config.Config { return f.cfg }
func (f *Field) Viewport() Viewport    { return f.vp }
func (f *Field) Points() []Point       { return f.points }
func (f *Field) Bubbles() []*Bubble    { return f.sim.Bubbles() }
func (f *Field) DensityCap() int       { return f.quality.Cap() }
func (f *Field) Pressure() float64     { return f.quality.Pressure() }
