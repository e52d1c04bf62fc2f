// Package config handles exporter configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ExportConfig holds the options that shape the generated document.
type ExportConfig struct {
	// AnimLoop plays animations forever instead of once.
	AnimLoop bool `yaml:"anim_loop"`
	// AnimBake samples every frame with linear timing instead of only
	// authored keys.
	AnimBake bool `yaml:"anim_bake"`
	// Export3D enables Z transforms, a perspective root and preserve-3d.
	Export3D bool `yaml:"export_3d"`
	// SwitchAxis swaps Y and Z, for physics-oriented scenes.
	SwitchAxis bool `yaml:"switch_axis"`
	// CollapseTransforms exports world-space poses with a flat DOM.
	CollapseTransforms bool `yaml:"collapse_transforms"`
	// FPS overrides the scene frame rate; nil uses the scene's.
	FPS *float64 `yaml:"fps"`

	Scale       float64 `yaml:"scale"`       // Pixels per scene unit
	Width       int     `yaml:"width"`       // Root container width
	Height      int     `yaml:"height"`      // Root container height
	Perspective float64 `yaml:"perspective"` // 3-D perspective distance in px
	Output      string  `yaml:"output"`      // Output file; empty derives it from the scene
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// WatchConfig holds settings for re-exporting on scene changes.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"` // Quiet period before re-exporting
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			AnimLoop:           true,
			AnimBake:           true,
			Export3D:           false,
			SwitchAxis:         false,
			CollapseTransforms: false,
			FPS:                nil,
			Scale:              10,
			Width:              640,
			Height:             480,
			Perspective:        70,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	e := c.Export
	if e.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidConfig, e.Scale)
	}
	if e.Width <= 0 || e.Height <= 0 {
		return fmt.Errorf("%w: root size must be positive, got %dx%d", ErrInvalidConfig, e.Width, e.Height)
	}
	if e.FPS != nil && *e.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %v", ErrInvalidConfig, *e.FPS)
	}
	if e.Perspective < 0 {
		return fmt.Errorf("%w: perspective must not be negative, got %v", ErrInvalidConfig, e.Perspective)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch debounce must not be negative, got %v", ErrInvalidConfig, c.Watch.Debounce)
	}
	return nil
}
