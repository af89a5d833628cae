package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagShadows     = flag.String("shadows", "", "Shadow technique: none, projection, volume")
	flagBackend     = flag.String("backend", "", "Volume backend variant: gl, vk")
	flagPolicy      = flag.String("policy", "", "Silhouette policy: auto, first-match, count-matches")
	flagStencilBits = flag.Int("stencil-bits", -1, "Requested stencil buffer depth")
	flagScene       = flag.String("scene", "", "Scene file")
	flagMirror      = flag.Bool("mirror", false, "Render through a mirrored view")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagShadows != "" {
		cfg.Shadows.Technique = *flagShadows
	}
	if *flagBackend != "" {
		cfg.Shadows.Backend = *flagBackend
	}
	if *flagPolicy != "" {
		cfg.Shadows.SilhouettePolicy = *flagPolicy
	}
	if *flagStencilBits >= 0 {
		cfg.Graphics.StencilBits = *flagStencilBits
	}
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	}
	if *flagMirror {
		cfg.Shadows.Mirror = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
