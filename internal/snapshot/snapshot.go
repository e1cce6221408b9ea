// Package snapshot renders the dot field without a window, into a gg
// software raster context, and writes the last frame as a PNG.
package snapshot

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/field"
)

// Surface adapts a gg.Context. All dots go into one path and are filled
// once per frame.
type Surface struct {
	dc *gg.Context
}

func NewSurface(dc *gg.Context) *Surface {
	return &Surface{dc: dc}
}

func (s *Surface) Clear() {
	s.dc.Clear()
}

func (s *Surface) FillCircles(dots []field.Dot, c color.Color) {
	for _, d := range dots {
		s.dc.DrawCircle(d.X, d.Y, d.R)
	}
	s.dc.SetColor(c)
	if err := s.dc.Fill(); err != nil {
		field.Logger().Warn("snapshot fill failed", slog.Any("err", err))
	}
}

// Options describe one headless run.
type Options struct {
	Width, Height float64 // logical size
	Ratio         float64 // device pixel ratio before capping
	Frames        int
	FrameInterval time.Duration
	ReducedMotion bool
	Seed          uint64
	Background    color.Color // nil keeps the frame transparent
}

// Result reports what the run produced.
type Result struct {
	Stats    field.Stats
	Viewport field.Viewport
}

// Render simulates opts.Frames frames on a synthetic clock and returns
// the context holding the last drawn frame. The caller owns the context.
func Render(cfg config.Config, opts Options) (*gg.Context, Result, error) {
	vp, _ := field.NewViewportAdapter(cfg.DeviceRatioCap).Resolve(opts.Width, opts.Height, opts.Ratio)
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil, Result{}, fmt.Errorf("snapshot: empty viewport %vx%v", opts.Width, opts.Height)
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = time.Second / 60
	}

	dc := gg.NewContext(vp.Width, vp.Height)
	f := field.New(cfg, vp, field.NewRand(opts.Seed), 0)
	sched := field.NewScheduler(f, NewSurface(dc), cfg.FPSCap)
	if err := sched.Start(0, opts.ReducedMotion); err != nil {
		dc.Close()
		return nil, Result{}, err
	}
	for i := 1; i <= opts.Frames && sched.State() == field.StateRunning; i++ {
		sched.Frame(time.Duration(i) * interval)
	}
	sched.Stop()

	if opts.Background != nil {
		flattenOnto(dc, opts.Background)
	}
	return dc, Result{Stats: sched.Stats(), Viewport: vp}, nil
}

// WritePNG renders and saves to path.
func WritePNG(path string, cfg config.Config, opts Options) (Result, error) {
	dc, res, err := Render(cfg, opts)
	if err != nil {
		return res, err
	}
	defer dc.Close()
	if err := dc.SavePNG(path); err != nil {
		return res, fmt.Errorf("snapshot: save %s: %w", path, err)
	}
	field.Logger().Info("snapshot written",
		slog.String("path", path),
		slog.Int("frames", res.Stats.Frames),
		slog.Int("dots", res.Stats.Dots),
	)
	return res, nil
}

// flattenOnto puts the drawn frame over a solid background.
func flattenOnto(dc *gg.Context, bg color.Color) {
	frame := gg.ImageBufFromImage(dc.Image())
	dc.ClearWithColor(gg.FromColor(bg))
	dc.DrawImage(frame, 0, 0)
}
