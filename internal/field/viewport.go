package field

import "math"

// Viewport describes the drawing area in both CSS-like logical pixels
// and backing-store device pixels.
type Viewport struct {
	CSSWidth, CSSHeight float64
	Ratio               float64
	Width, Height       int
}

// MinSide is the smaller backing-store dimension, in device pixels.
func (v Viewport) MinSide() float64 {
	return float64(min(v.Width, v.Height))
}

// ViewportAdapter turns host-reported sizes into a Viewport, capping the
// device pixel ratio.
type ViewportAdapter struct {
	ratioCap float64
	current  Viewport
}

func NewViewportAdapter(ratioCap float64) *ViewportAdapter {
	if ratioCap <= 0 {
		ratioCap = 1
	}
	return &ViewportAdapter{ratioCap: ratioCap}
}

// Resolve computes the viewport for the given logical size and device
// ratio. changed is false when the result equals the previous one, so
// hosts that fire resize repeatedly can skip rebuilding.
func (a *ViewportAdapter) Resolve(cssWidth, cssHeight, deviceRatio float64) (vp Viewport, changed bool) {
	if deviceRatio <= 0 || math.IsNaN(deviceRatio) {
		deviceRatio = 1
	}
	ratio := math.Min(deviceRatio, a.ratioCap)
	vp = Viewport{
		CSSWidth:  cssWidth,
		CSSHeight: cssHeight,
		Ratio:     ratio,
		Width:     backing(cssWidth, ratio),
		Height:    backing(cssHeight, ratio),
	}
	changed = vp != a.current
	a.current = vp
	return vp, changed
}

// Current returns the last resolved viewport.
func (a *ViewportAdapter) Current() Viewport {
	return a.current
}

func backing(css, ratio float64) int {
	if css <= 0 {
		return 0
	}
	return int(math.Floor(css * ratio))
}
