package field

import (
	"errors"
	"log/slog"
	"time"
)

// ErrNoSurface is returned by Start when there is nothing to draw on.
// The scheduler is stopped and every later call is a no-op.
var ErrNoSurface = errors.New("field: no drawing surface")

// State is the render scheduler's lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFrozen
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFrozen:
		return "frozen"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

// Stats is a snapshot of the scheduler for overlays and logs.
type Stats struct {
	State      State
	Dots       int
	DensityCap int
	Pressure   float64
	Frames     int
}

// Scheduler drives wander, draw and quality adaptation once per host
// frame callback. It is not safe for concurrent use; the host must call
// it from a single loop.
type Scheduler struct {
	field   *Field
	surface Surface
	state   State

	minInterval time.Duration
	lastDraw    time.Duration
	drawn       bool
	redraw      bool
	frames      int
}

// NewScheduler wires a field to a surface. fpsCap of zero leaves drawing
// uncapped.
func NewScheduler(f *Field, s Surface, fpsCap float64) *Scheduler {
	var interval time.Duration
	if fpsCap > 0 {
		interval = time.Duration(float64(time.Second) / fpsCap)
	}
	return &Scheduler{field: f, surface: s, minInterval: interval}
}

// Start leaves idle. With reduced motion requested (and honored by the
// config) exactly one frame is drawn and the scheduler freezes; otherwise
// it runs. Calling Start twice has no effect.
func (s *Scheduler) Start(now time.Duration, reducedMotion bool) error {
	if s.state != StateIdle {
		return nil
	}
	if s.surface == nil || s.field == nil {
		s.state = StateStopped
		Logger().Warn("dot field disabled", slog.Any("err", ErrNoSurface))
		return ErrNoSurface
	}
	s.lastDraw = now
	if reducedMotion && s.field.Config().RespectReducedMotion {
		s.state = StateFrozen
		s.field.Wander(now)
		s.draw()
		Logger().Info("dot field frozen", slog.Int("dots", len(s.field.Points())))
		return nil
	}
	s.state = StateRunning
	Logger().Info("dot field running",
		slog.Int("dots", len(s.field.Points())),
		slog.Duration("minInterval", s.minInterval),
	)
	return nil
}

// Frame handles one host frame callback and reports whether anything was
// drawn. Callbacks arriving sooner than the fps cap allows are ignored.
func (s *Scheduler) Frame(now time.Duration) bool {
	switch s.state {
	case StateRunning:
	case StateFrozen:
		if s.redraw {
			s.redraw = false
			s.draw()
			return true
		}
		return false
	default:
		return false
	}
	if s.minInterval > 0 && s.drawn && now-s.lastDraw < s.minInterval {
		return false
	}

	elapsed := now - s.lastDraw
	s.lastDraw = now
	s.field.Wander(now)
	s.draw()
	s.field.Adapt(elapsed)
	return true
}

func (s *Scheduler) draw() {
	s.field.Render(s.surface)
	s.drawn = true
	s.frames++
}

// Resize rebuilds the field for a new viewport. A frozen field is drawn
// once more on the next frame so the new surface is not left empty.
func (s *Scheduler) Resize(vp Viewport, now time.Duration) {
	if s.field == nil || s.state == StateStopped {
		return
	}
	s.field.Resize(vp, now)
	if s.state == StateFrozen {
		s.field.Wander(now)
		s.redraw = true
	}
}

// Stop ends the loop; later frames are ignored.
func (s *Scheduler) Stop() {
	if s.state == StateStopped {
		return
	}
	s.state = StateStopped
	Logger().Info("dot field stopped", slog.Int("frames", s.frames))
}

func (s *Scheduler) State() State { return s.state }

func (s *Scheduler) Field() *Field { return s.field }

func (s *Scheduler) Stats() Stats {
	st := Stats{State: s.state, Frames: s.frames}
	if s.field != nil {
		st.Dots = len(s.field.Points())
		st.DensityCap = s.field.DensityCap()
		st.Pressure = s.field.Pressure()
	}
	return st
}
