// Package config handles viewer and shadow configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/midgard-shadow/internal/engine/shadow"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Shadows  ShadowConfig   `yaml:"shadows"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	Fullscreen  bool `yaml:"fullscreen"`
	VSync       bool `yaml:"vsync"`
	FPSLimit    int  `yaml:"fps_limit"`
	StencilBits int  `yaml:"stencil_bits"` // requested; the window reports what it got

	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png, bmp
}

// ShadowConfig holds shadow technique and capacity settings.
type ShadowConfig struct {
	Technique         string  `yaml:"technique"`         // none, projection, volume
	Backend           string  `yaml:"backend"`           // gl, vk
	SilhouettePolicy  string  `yaml:"silhouette_policy"` // auto, first-match, count-matches
	ThrowDistance     float32 `yaml:"throw_distance"`
	EdgeDefsPerVertex int     `yaml:"edge_defs_per_vertex"`
	MaxVertexes       int     `yaml:"max_vertexes"`
	MaxIndexes        int     `yaml:"max_indexes"`
	QuadCapacity      int     `yaml:"quad_capacity"` // 0 = max_vertexes/4
	Mirror            bool    `yaml:"mirror"`
}

// SceneConfig points at the scene to render.
type SceneConfig struct {
	Path string `yaml:"path"` // empty = built-in demo scene
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			FPSLimit:    0,
			StencilBits: 8,

			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Shadows: ShadowConfig{
			Technique:         "volume",
			Backend:           "gl",
			SilhouettePolicy:  "auto",
			ThrowDistance:     shadow.DefaultThrowDistance,
			EdgeDefsPerVertex: shadow.DefaultEdgeDefs,
			MaxVertexes:       1000,
			MaxIndexes:        6000,
			QuadCapacity:      0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Volume converts the shadow settings into a shadow.Config for a render target with
// stencilBits of stencil precision.
func (s ShadowConfig) Volume(stencilBits int) (shadow.Config, error) {
	technique, err := shadow.ParseTechnique(s.Technique)
	if err != nil {
		return shadow.Config{}, err
	}
	variant, err := shadow.ParseVariant(s.Backend)
	if err != nil {
		return shadow.Config{}, err
	}
	policy, explicit, err := shadow.ParsePolicy(s.SilhouettePolicy)
	if err != nil {
		return shadow.Config{}, err
	}
	if !explicit {
		policy = variant.DefaultPolicy()
	}

	return shadow.Config{
		Technique:     technique,
		Variant:       variant,
		Policy:        policy,
		ThrowDistance: s.ThrowDistance,
		EdgeDefs:      s.EdgeDefsPerVertex,
		QuadCapacity:  s.QuadCapacity,
		StencilBits:   stencilBits,
	}, nil
}

// Validate checks values that cannot be defaulted later.
func (c *Config) Validate() error {
	if _, err := c.Shadows.Volume(c.Graphics.StencilBits); err != nil {
		return fmt.Errorf("shadows: %w", err)
	}
	if c.Shadows.MaxVertexes < 0 || c.Shadows.MaxIndexes < 0 {
		return fmt.Errorf("shadows: negative buffer capacity")
	}
	if c.Shadows.ThrowDistance < 0 {
		return fmt.Errorf("shadows: negative throw distance %v", c.Shadows.ThrowDistance)
	}
	return nil
}
