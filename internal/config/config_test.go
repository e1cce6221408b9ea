package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero spacing", func(c *Config) { c.Spacing = 0 }},
		{"min above max", func(c *Config) { c.MinDots = c.MaxDots + 1 }},
		{"inverted bubble fractions", func(c *Config) { c.BubbleMinFrac, c.BubbleMaxFrac = 0.3, 0.2 }},
		{"fraction above one", func(c *Config) { c.BubbleMaxFrac = 1.5 }},
		{"inverted change interval", func(c *Config) { c.TargetChangeMsMin = 3000 }},
		{"zero center ease", func(c *Config) { c.CenterEaseMin = 0 }},
		{"radius ease above one", func(c *Config) { c.RadiusEaseMax = 1.2 }},
		{"negative fps cap", func(c *Config) { c.FPSCap = -1 }},
		{"zero quality step", func(c *Config) { c.QualityStep = 0 }},
		{"min scale above one", func(c *Config) { c.MinScaleAtCenter = 1.1 }},
		{"bad color", func(c *Config) { c.DotColor = "chartreuse" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.json")
	if err := os.WriteFile(path, []byte(`{"spacing": 20, "fpsCap": 30, "dotColor": "#ff000080"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Spacing != 20 || cfg.FPSCap != 30 {
		t.Errorf("Load() spacing/fpsCap = %v/%v, want 20/30", cfg.Spacing, cfg.FPSCap)
	}
	if cfg.MaxDots != Default().MaxDots {
		t.Errorf("Load() maxDots = %d, want default %d", cfg.MaxDots, Default().MaxDots)
	}
	want := color.NRGBA{R: 255, G: 0, B: 0, A: 128}
	if got := cfg.Color(); got != want {
		t.Errorf("Color() = %v, want %v", got, want)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.json")
	if err := os.WriteFile(path, []byte(`{"minDots": 9000}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load() error = %v, want ErrInvalid", err)
	}
	if cfg != Default() {
		t.Errorf("Load() on invalid file should return defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "rgba(255,255,255,0.20)", want: color.NRGBA{R: 255, G: 255, B: 255, A: 51}},
		{in: "rgb(10, 20, 30)", want: color.NRGBA{R: 10, G: 20, B: 30, A: 255}},
		{in: "RGBA(0,0,0,2)", want: color.NRGBA{A: 255}},
		{in: "#fff", want: color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{in: "#00ff0033", want: color.NRGBA{G: 255, A: 51}},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "rgba(1,2,3)", wantErr: true},
		{in: "white", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
