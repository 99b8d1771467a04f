// Package config provides YAML-based configuration for the mole game, with
// environment overrides for quick tweaks.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mole-arcade/internal/mole"
)

// ErrInvalid is returned by Validate for unusable values.
var ErrInvalid = errors.New("config: invalid value")

// MoleConfig contains all configuration for the mole game.
type MoleConfig struct {
	Session SessionConfig `yaml:"session"`
	Layout  LayoutConfig  `yaml:"layout"`
	Audio   AudioConfig   `yaml:"audio"`
}

// SessionConfig defines round timing.
type SessionConfig struct {
	CountdownSeconds int `yaml:"countdown_seconds" env:"MOLE_COUNTDOWN_SECONDS"`
	SessionSeconds   int `yaml:"session_seconds" env:"MOLE_SESSION_SECONDS"`
}

// LayoutConfig defines the target size in terminal cells.
type LayoutConfig struct {
	TargetWidth  int `yaml:"target_width" env:"MOLE_TARGET_WIDTH"`
	TargetHeight int `yaml:"target_height" env:"MOLE_TARGET_HEIGHT"`
}

// AudioConfig toggles the terminal bell on hits.
type AudioConfig struct {
	Bell bool `yaml:"bell" env:"MOLE_BELL"`
}

// DefaultMoleConfig returns the hardcoded defaults, matching defaults/mole.yaml.
func DefaultMoleConfig() MoleConfig {
	return MoleConfig{
		Session: SessionConfig{
			CountdownSeconds: mole.DefaultCountdownSeconds,
			SessionSeconds:   mole.DefaultSessionSeconds,
		},
		Layout: LayoutConfig{
			TargetWidth:  9,
			TargetHeight: 4,
		},
		Audio: AudioConfig{
			Bell: true,
		},
	}
}

// Validate rejects values no session could run with.
func (c MoleConfig) Validate() error {
	if c.Session.CountdownSeconds < 0 {
		return fmt.Errorf("%w: countdown_seconds %d", ErrInvalid, c.Session.CountdownSeconds)
	}
	if c.Session.SessionSeconds <= 0 {
		return fmt.Errorf("%w: session_seconds %d", ErrInvalid, c.Session.SessionSeconds)
	}
	if c.Layout.TargetWidth <= 0 || c.Layout.TargetHeight <= 0 {
		return fmt.Errorf("%w: target %dx%d", ErrInvalid, c.Layout.TargetWidth, c.Layout.TargetHeight)
	}
	return nil
}

// SessionConfig builds the session config for a surface of the given size.
func (c MoleConfig) SessionConfig(surfaceW, surfaceH int) mole.Config {
	return mole.Config{
		CountdownSeconds: c.Session.CountdownSeconds,
		SessionSeconds:   c.Session.SessionSeconds,
		Bounds: mole.Bounds{
			SurfaceW: float64(surfaceW),
			SurfaceH: float64(surfaceH),
			TargetW:  float64(c.Layout.TargetWidth),
			TargetH:  float64(c.Layout.TargetHeight),
		},
	}
}
