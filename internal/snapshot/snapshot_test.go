package snapshot

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iburimskiy/dotfield/internal/config"
	"github.com/iburimskiy/dotfield/internal/field"
)

func plainConfig() config.Config {
	cfg := config.Default()
	cfg.BubbleCount = 0
	cfg.DotColor = "rgb(255,255,255)"
	return cfg
}

func TestRenderFrozen(t *testing.T) {
	dc, res, err := Render(plainConfig(), Options{Width: 200, Height: 100, Ratio: 1, Frames: 30, ReducedMotion: true})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	defer dc.Close()

	if res.Stats.Frames != 1 {
		t.Errorf("Frames = %d, want 1", res.Stats.Frames)
	}
	if res.Stats.Dots != 8*4 {
		t.Errorf("Dots = %d, want 32", res.Stats.Dots)
	}
	if res.Stats.State != field.StateStopped {
		t.Errorf("State = %v, want stopped", res.Stats.State)
	}

	img := dc.Image().(*image.RGBA)
	// First lattice point sits at (2, 8).
	if a := img.RGBAAt(2, 8).A; a != 255 {
		t.Errorf("alpha at first dot = %d, want 255", a)
	}
	if a := img.RGBAAt(16, 22).A; a != 0 {
		t.Errorf("alpha between dots = %d, want 0", a)
	}
}

func TestRenderRunning(t *testing.T) {
	dc, res, err := Render(config.Default(), Options{
		Width: 320, Height: 240, Ratio: 2, Frames: 12, FrameInterval: 20 * time.Millisecond, Seed: 5,
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	defer dc.Close()

	if res.Stats.Frames != 12 {
		t.Errorf("Frames = %d, want 12", res.Stats.Frames)
	}
	if res.Viewport.Width != 640 || res.Viewport.Height != 480 {
		t.Errorf("Viewport = %dx%d, want 640x480", res.Viewport.Width, res.Viewport.Height)
	}
	if dc.Width() != 640 || dc.Height() != 480 {
		t.Errorf("context = %dx%d, want 640x480", dc.Width(), dc.Height())
	}
}

func TestRenderBackground(t *testing.T) {
	dc, _, err := Render(plainConfig(), Options{
		Width: 200, Height: 100, Ratio: 1, ReducedMotion: true,
		Background: color.NRGBA{A: 255},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	defer dc.Close()

	img := dc.Image().(*image.RGBA)
	if got := img.RGBAAt(16, 22); got.A != 255 || got.R != 0 {
		t.Errorf("background pixel = %v, want opaque black", got)
	}
	if got := img.RGBAAt(2, 8); got.R < 200 {
		t.Errorf("dot pixel = %v, want white over black", got)
	}
}

func TestRenderEmptyViewport(t *testing.T) {
	if _, _, err := Render(config.Default(), Options{Width: 0, Height: 100, Ratio: 1}); err == nil {
		t.Error("Render() with zero width succeeded, want error")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.png")
	res, err := WritePNG(path, config.Default(), Options{Width: 120, Height: 90, Ratio: 1, Frames: 3, Seed: 1})
	if err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != res.Viewport.Width || b.Dy() != res.Viewport.Height {
		t.Errorf("PNG size = %dx%d, want %dx%d", b.Dx(), b.Dy(), res.Viewport.Width, res.Viewport.Height)
	}
}
