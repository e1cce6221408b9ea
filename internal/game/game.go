package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/field"
)

// screenSurface paints dots onto the ebiten screen of the current frame.
type screenSurface struct {
	img *ebiten.Image
}

func (s *screenSurface) Clear() {
	s.img.Clear()
}

func (s *screenSurface) FillCircles(dots []field.Dot, c color.Color) {
	for _, d := range dots {
		vector.DrawFilledCircle(s.img, float32(d.X), float32(d.Y), float32(d.R), c, true)
	}
}

// Options are the signals the host reads once at startup.
type Options struct {
	ReducedMotion bool
	Seed          uint64
	HUD           bool
}

type game struct {
	cfg     config.Config
	opts    Options
	start   time.Time
	adapter *field.ViewportAdapter
	surface *screenSurface
	sched   *field.Scheduler

	// last outside size reported by Layout, in device-independent pixels
	outsideW, outsideH int

	hud     bool
	lastErr error
}

// New returns an ebiten.Game that renders the dot field for cfg.
func New(cfg config.Config, opts Options) ebiten.Game {
	return &game{
		cfg:     cfg,
		opts:    opts,
		start:   time.Now(),
		adapter: field.NewViewportAdapter(cfg.DeviceRatioCap),
		surface: &screenSurface{},
		hud:     opts.HUD,
	}
}

func (g *game) now() time.Duration {
	return time.Since(g.start)
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		if g.sched != nil {
			g.sched.Stop()
		}
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hud = !g.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if err := g.openConfigDialog(); err != nil {
			g.lastErr = err
			field.Logger().Warn("config not replaced", slog.Any("err", err))
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.img = screen
	if g.sched == nil {
		g.begin()
		if g.hud {
			g.drawHUD(screen)
		}
		return
	}
	if g.sched.Frame(g.now()) && g.hud {
		g.drawHUD(screen)
	}
}

// begin builds the field for the current viewport and starts the
// scheduler. A frozen start draws its only frame here.
func (g *game) begin() {
	now := g.now()
	f := field.New(g.cfg, g.adapter.Current(), field.NewRand(g.opts.Seed), now)
	g.sched = field.NewScheduler(f, g.surface, g.cfg.FPSCap)
	if err := g.sched.Start(now, g.opts.ReducedMotion); err != nil {
		g.lastErr = err
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outsideW, g.outsideH = outsideWidth, outsideHeight
	vp, changed := g.adapter.Resolve(float64(outsideWidth), float64(outsideHeight), ebiten.Monitor().DeviceScaleFactor())
	if changed && g.sched != nil {
		g.sched.Resize(vp, g.now())
	}
	return max(1, vp.Width), max(1, vp.Height)
}

func (g *game) drawHUD(screen *ebiten.Image) {
	st := g.sched.Stats()
	status := fmt.Sprintf("%s | dots %d/%d | pressure %.2f | frames %d | up %s | fps %.0f",
		st.State, st.Dots, st.DensityCap, st.Pressure, st.Frames, formatDuration(g.now()), ebiten.ActualFPS())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *game) openConfigDialog() error {
	filename, err := SelectConfigFile()
	if err != nil || filename == "" {
		return err
	}
	cfg, err := config.Load(filename)
	if err != nil {
		return err
	}
	field.Logger().Info("config replaced", slog.String("path", filename))
	g.replace(cfg)
	return nil
}

// replace swaps the configuration. The old field is dropped whole and a
// new one is started on the next Draw.
func (g *game) replace(cfg config.Config) {
	if g.sched != nil {
		g.sched.Stop()
		g.sched = nil
	}
	g.cfg = cfg
	g.lastErr = nil
	g.adapter = field.NewViewportAdapter(cfg.DeviceRatioCap)
	g.adapter.Resolve(float64(g.outsideW), float64(g.outsideH), ebiten.Monitor().DeviceScaleFactor())
}
