// Package viewer implements the interactive shadow viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadow/internal/config"
	"github.com/Faultbox/midgard-shadow/internal/engine/camera"
	"github.com/Faultbox/midgard-shadow/internal/engine/debug"
	"github.com/Faultbox/midgard-shadow/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-shadow/internal/engine/input"
	"github.com/Faultbox/midgard-shadow/internal/engine/model"
	"github.com/Faultbox/midgard-shadow/internal/engine/picking"
	"github.com/Faultbox/midgard-shadow/internal/engine/renderer"
	"github.com/Faultbox/midgard-shadow/internal/engine/scene"
	"github.com/Faultbox/midgard-shadow/internal/engine/tess"
	"github.com/Faultbox/midgard-shadow/internal/engine/window"
	"github.com/Faultbox/midgard-shadow/internal/logger"
)

const windowTitle = "Midgard Shadow"

// Viewer is the main viewer instance.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	scene    *scene.Scene
	shadows  *scene.Renderer
	settings Settings
	last     scene.FrameStats
	shots    *debug.Screenshots
	log      *zap.Logger

	// Scene paths chosen in the file dialog, consumed on the main thread
	pendingScene chan string
}

// New creates a viewer for s.
func New(cfg *config.Config, s *scene.Scene) (*Viewer, error) {
	log := logger.Named(logger.Viewer)
	log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("entities", len(s.Entities)),
	)

	v := &Viewer{
		config: cfg,
		scene:  s,
		shots:  debug.NewScreenshots(cfg.Graphics.ScreenshotDir, "shadow"),
		log:    log,

		pendingScene: make(chan string, 1),
	}
	v.shots.SetFormat(debug.Format(cfg.Graphics.ScreenshotFormat))

	// Create window (this also creates OpenGL context)
	var err error
	v.window, err = window.New(window.Config{
		Title:       windowTitle,
		Width:       cfg.Graphics.Width,
		Height:      cfg.Graphics.Height,
		Fullscreen:  cfg.Graphics.Fullscreen,
		VSync:       cfg.Graphics.VSync,
		StencilBits: cfg.Graphics.StencilBits,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	v.renderer.Resize(v.window.GetSize())

	// Shadows are sized by what the context actually provides
	shadowCfg, err := cfg.Shadows.Volume(v.window.StencilBits())
	if err != nil {
		v.Close()
		return nil, err
	}
	buf := tess.New(cfg.Shadows.MaxVertexes, cfg.Shadows.MaxIndexes)
	v.shadows = scene.NewRenderer(shadowCfg, buf, v.renderer)
	v.settings = Settings{Shadow: shadowCfg, Mirror: cfg.Shadows.Mirror}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()
	b := s.Bounds()
	v.camera.FitToBounds(b.Min, b.Max)

	log.Info("viewer initialized",
		zap.Stringer("technique", shadowCfg.Technique),
		zap.Stringer("variant", shadowCfg.Variant),
		zap.Stringer("policy", shadowCfg.Policy),
		zap.Int("stencilBits", shadowCfg.StencilBits),
	)
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleInput()
		v.loadPendingScene()

		// 2. Render
		stats, err := v.render()
		if err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		v.last = stats

		// 3. Present (swap buffers)
		v.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Int("draws", stats.Draws),
				zap.Int("quads", stats.Quads),
			)
			v.window.SetTitle(fmt.Sprintf("%s - %s/%s - %d fps",
				windowTitle, v.settings.Shadow.Technique, v.settings.Shadow.Policy, frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleInput() {
	for _, event := range v.input.Events() {
		switch {
		case event.Type == input.EventWindowResize:
			v.renderer.Resize(event.Width, event.Height)
		case event.Type == input.EventMouseDown && event.Button == sdl.BUTTON_RIGHT:
			v.pick(event.MouseX, event.MouseY)
		}
	}

	if dx, dy := v.input.Drag(sdl.BUTTON_LEFT); dx != 0 || dy != 0 {
		v.camera.HandleDrag(float32(dx), float32(dy))
	}
	if w := v.input.Wheel(); w != 0 {
		v.camera.HandleZoom(float32(w))
	}

	for _, a := range input.Actions(v.input.Events(), input.DefaultBindings) {
		switch a {
		case input.ActionQuit:
			v.running = false
		case input.ActionDumpStats:
			v.dumpStats()
		case input.ActionScreenshot:
			v.screenshot()
		case input.ActionOpenScene:
			v.openSceneDialog()
		default:
			if v.settings.Apply(a) {
				v.shadows.SetConfig(v.settings.Shadow)
			}
		}
	}
	v.camera.Mirror = v.settings.Mirror
}

// render draws the current frame.
func (v *Viewer) render() (scene.FrameStats, error) {
	v.renderer.Begin()
	defer v.renderer.End()

	v.renderer.SetViewProjection(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(v.renderer.Aspect()))
	return v.shadows.Render(v.scene, v.settings.Mirror)
}

func (v *Viewer) dumpStats() {
	for _, es := range v.last.Entities {
		v.logEntity(es)
	}
}

func (v *Viewer) logEntity(es scene.EntityStats) {
	v.log.Info("entity",
		zap.String("name", es.Name),
		zap.Stringer("technique", es.Technique),
		zap.Stringer("skipped", es.Volume.Skipped),
		zap.Int("facing", es.Volume.FacingTriangles),
		zap.Int("quads", es.Volume.Quads),
		zap.Int("dangling", es.Volume.Silhouette.Dangling),
	)
}

// pick logs the last frame's stats of the entity under the cursor.
func (v *Viewer) pick(x, y int) {
	w, h := v.window.GetSize()
	view := v.camera.ViewMatrix()
	proj := v.camera.ProjectionMatrix(v.renderer.Aspect())
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), proj.Mul(view).Inverse())

	boxes := make([]model.Bounds, len(v.scene.Entities))
	for i, e := range v.scene.Entities {
		boxes[i] = e.WorldBounds()
	}
	i := ray.Nearest(boxes)
	if i < 0 || i >= len(v.last.Entities) {
		return
	}
	v.logEntity(v.last.Entities[i])
}

// openSceneDialog asks for a scene file without blocking the loop.
func (v *Viewer) openSceneDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Scene files", "yaml", "yml").
			Filter("All Files", "*").
			Title("Open Scene").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				v.log.Warn("file dialog error", zap.Error(err))
			}
			return
		}
		select {
		case v.pendingScene <- filename:
		default:
		}
	}()
}

func (v *Viewer) loadPendingScene() {
	select {
	case path := <-v.pendingScene:
		s, err := scene.Load(path)
		if err != nil {
			v.log.Warn("failed to load scene", zap.String("path", path), zap.Error(err))
			return
		}
		v.scene = s
		b := s.Bounds()
		v.camera.FitToBounds(b.Min, b.Max)
		v.log.Info("scene loaded", zap.String("path", path), zap.Int("entities", len(s.Entities)))
	default:
	}
}

// screenshot renders one frame into an offscreen target and saves it as PNG.
func (v *Viewer) screenshot() {
	w, h := v.window.GetSize()
	fb, err := framebuffer.New(int32(w), int32(h))
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	defer fb.Destroy()

	restore := fb.BindWithViewport()
	_, err = v.render()
	pixels := fb.ReadPixels()
	restore()
	if err != nil {
		v.log.Warn("screenshot frame failed", zap.Error(err))
		return
	}

	fw, fh := fb.Size()
	path, err := v.shots.SavePixels(pixels, int(fw), int(fh))
	if err != nil {
		v.log.Warn("saving screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path), zap.Int("stencilBits", fb.StencilBits()))
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
