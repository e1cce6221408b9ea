package field

import (
	"time"

	"github.com/iburimskiy/dotfield/internal/config"
)

const (
	pressureDecay = 0.92
	pressureGain  = 0.08
)

// Quality adapts the density cap to frame time. It is a bang-bang
// controller: sustained overage steps the cap down, and the cap only
// steps back up once the pressure has decayed to (near) zero.
type Quality struct {
	enabled bool
	minDots int
	maxDots int
	step    int
	slowMs  float64
	trip    float64
	recover float64

	pressure float64
	dotCap   int
}

func NewQuality(cfg config.Config) *Quality {
	return &Quality{
		enabled: cfg.AdaptiveQuality,
		minDots: cfg.MinDots,
		maxDots: cfg.MaxDots,
		step:    cfg.QualityStep,
		slowMs:  cfg.SlowFrameMs,
		trip:    cfg.QualityTripThreshold,
		recover: cfg.QualityRecoverEpsilon,
		dotCap:  cfg.MaxDots,
	}
}

// Cap is the current density cap, always within [minDots, maxDots].
func (q *Quality) Cap() int { return q.dotCap }

// Pressure is the smoothed frame-time overage in milliseconds.
func (q *Quality) Pressure() float64 { return q.pressure }

// Observe feeds one frame duration and reports whether the cap moved.
func (q *Quality) Observe(frame time.Duration) bool {
	if !q.enabled {
		return false
	}
	over := float64(frame)/float64(time.Millisecond) - q.slowMs
	q.pressure = pressureDecay*q.pressure + pressureGain*max(0, over)

	switch {
	case q.pressure > q.trip && q.dotCap > q.minDots:
		q.dotCap = max(q.minDots, q.dotCap-q.step)
		q.pressure = 0
		return true
	case q.pressure <= q.recover && q.dotCap < q.maxDots:
		q.dotCap = min(q.maxDots, q.dotCap+q.step)
		return true
	}
	return false
}
