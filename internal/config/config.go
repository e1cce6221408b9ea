package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640
	WindowTitle  = "Dot Field - O: open config, H: HUD, Esc/Q: quit"

	// Bubble targets stay inside this fraction of the viewport on each side.
	TargetMargin = 0.15
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds every tunable of the dot field. Millisecond values are
// kept as float64 so JSON files read the same as the defaults below.
type Config struct {
	// Rendering
	DeviceRatioCap float64 `json:"deviceRatioCap"`
	Spacing        float64 `json:"spacing"`
	MaxDots        int     `json:"maxDots"`
	MinDots        int     `json:"minDots"`
	BaseDotRadius  float64 `json:"baseDotRadius"`
	DotColor       string  `json:"dotColor"`

	// Bubbles
	BubbleCount   int     `json:"bubbleCount"`
	BubbleMinFrac float64 `json:"bubbleMinFrac"`
	BubbleMaxFrac float64 `json:"bubbleMaxFrac"`

	// Timing and movement, re-picked per bubble on every new target
	TargetChangeMsMin  float64 `json:"targetChangeMsMin"`
	TargetChangeMsMax  float64 `json:"targetChangeMsMax"`
	CenterEaseMin      float64 `json:"centerEaseMin"`
	CenterEaseMax      float64 `json:"centerEaseMax"`
	RadiusEaseMin      float64 `json:"radiusEaseMin"`
	RadiusEaseMax      float64 `json:"radiusEaseMax"`
	StartPhaseDesyncMs float64 `json:"startPhaseDesyncMs"`

	// Distortion field
	SigmaMult        float64 `json:"sigmaMult"`
	PullStrength     float64 `json:"pullStrength"`
	MinScaleAtCenter float64 `json:"minScaleAtCenter"`
	SkipSigmaMult    float64 `json:"skipSigmaMult"`

	// Animation
	RespectReducedMotion  bool    `json:"respectReducedMotion"`
	FPSCap                float64 `json:"fpsCap"`
	AdaptiveQuality       bool    `json:"adaptiveQuality"`
	SlowFrameMs           float64 `json:"slowFrameMs"`
	QualityStep           int     `json:"qualityStep"`
	QualityTripThreshold  float64 `json:"qualityTripThreshold"`
	QualityRecoverEpsilon float64 `json:"qualityRecoverEpsilon"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		DeviceRatioCap: 2,
		Spacing:        28,
		MaxDots:        5000,
		MinDots:        1200,
		BaseDotRadius:  2.2,
		DotColor:       "rgba(255,255,255,0.20)",

		BubbleCount:   3,
		BubbleMinFrac: 0.10,
		BubbleMaxFrac: 0.18,

		TargetChangeMsMin:  1600,
		TargetChangeMsMax:  2200,
		CenterEaseMin:      0.001,
		CenterEaseMax:      0.010,
		RadiusEaseMin:      0.001,
		RadiusEaseMax:      0.010,
		StartPhaseDesyncMs: 2000,

		SigmaMult:        0.65,
		PullStrength:     0.45,
		MinScaleAtCenter: 0.5,
		SkipSigmaMult:    3.0,

		RespectReducedMotion:  true,
		FPSCap:                0,
		AdaptiveQuality:       true,
		SlowFrameMs:           22,
		QualityStep:           200,
		QualityTripThreshold:  3,
		QualityRecoverEpsilon: 1e-3,
	}
}

// Load reads a JSON file and overlays it on Default. Keys missing from
// the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first setting that would break the field.
func (c Config) Validate() error {
	switch {
	case c.DeviceRatioCap <= 0:
		return invalid("deviceRatioCap must be > 0, got %v", c.DeviceRatioCap)
	case c.Spacing <= 0:
		return invalid("spacing must be > 0, got %v", c.Spacing)
	case c.MinDots < 0:
		return invalid("minDots must be >= 0, got %d", c.MinDots)
	case c.MinDots > c.MaxDots:
		return invalid("minDots %d exceeds maxDots %d", c.MinDots, c.MaxDots)
	case c.BaseDotRadius <= 0:
		return invalid("baseDotRadius must be > 0, got %v", c.BaseDotRadius)
	case c.BubbleCount < 0:
		return invalid("bubbleCount must be >= 0, got %d", c.BubbleCount)
	case c.BubbleMinFrac <= 0 || c.BubbleMaxFrac > 1 || c.BubbleMinFrac > c.BubbleMaxFrac:
		return invalid("bubble fractions must satisfy 0 < min <= max <= 1, got %v..%v", c.BubbleMinFrac, c.BubbleMaxFrac)
	case c.TargetChangeMsMin < 0 || c.TargetChangeMsMin > c.TargetChangeMsMax:
		return invalid("targetChangeMs range %v..%v", c.TargetChangeMsMin, c.TargetChangeMsMax)
	case !easeRange(c.CenterEaseMin, c.CenterEaseMax):
		return invalid("centerEase range %v..%v", c.CenterEaseMin, c.CenterEaseMax)
	case !easeRange(c.RadiusEaseMin, c.RadiusEaseMax):
		return invalid("radiusEase range %v..%v", c.RadiusEaseMin, c.RadiusEaseMax)
	case c.StartPhaseDesyncMs < 0:
		return invalid("startPhaseDesyncMs must be >= 0, got %v", c.StartPhaseDesyncMs)
	case c.SigmaMult <= 0:
		return invalid("sigmaMult must be > 0, got %v", c.SigmaMult)
	case c.MinScaleAtCenter < 0 || c.MinScaleAtCenter > 1:
		return invalid("minScaleAtCenter must be in [0,1], got %v", c.MinScaleAtCenter)
	case c.SkipSigmaMult <= 0:
		return invalid("skipSigmaMult must be > 0, got %v", c.SkipSigmaMult)
	case c.FPSCap < 0:
		return invalid("fpsCap must be >= 0, got %v", c.FPSCap)
	case c.QualityStep <= 0:
		return invalid("qualityStep must be > 0, got %d", c.QualityStep)
	case c.QualityTripThreshold <= 0:
		return invalid("qualityTripThreshold must be > 0, got %v", c.QualityTripThreshold)
	case c.QualityRecoverEpsilon < 0:
		return invalid("qualityRecoverEpsilon must be >= 0, got %v", c.QualityRecoverEpsilon)
	}
	if _, err := ParseColor(c.DotColor); err != nil {
		return fmt.Errorf("%w: dotColor: %v", ErrInvalid, err)
	}
	return nil
}

// easeRange accepts 0 < min <= max <= 1; anything else either never
// converges or overshoots.
func easeRange(lo, hi float64) bool {
	return lo > 0 && lo <= hi && hi <= 1
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}
