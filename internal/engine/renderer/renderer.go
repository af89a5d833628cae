// Package renderer executes shadow draw calls with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-shadow/internal/engine/shader"
	"github.com/Faultbox/midgard-shadow/internal/engine/shadow"
	"github.com/Faultbox/midgard-shadow/internal/engine/tess"
	"github.com/Faultbox/midgard-shadow/internal/logger"
	"github.com/Faultbox/midgard-shadow/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

// Renderer handles all OpenGL rendering. It implements shadow.Backend.
type Renderer struct {
	config Config

	flat *shader.Flat

	// Streamed geometry, re-uploaded on every draw
	vao      uint32
	posVBO   uint32
	colorVBO uint32
	ebo      uint32

	projection math.Mat4
	view       math.Mat4
	clipPlane  [4]float32
	clipActive bool

	draws int
}

var _ shadow.Backend = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		projection: math.Identity(),
		view:       math.Identity(),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background
	gl.ClearStencil(0)
	gl.FrontFace(gl.CCW)

	var err error
	r.flat, err = shader.NewFlat()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.createBuffers()
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	buffers := []uint32{r.posVBO, r.colorVBO, r.ebo}
	gl.DeleteBuffers(int32(len(buffers)), &buffers[0])
	if r.flat != nil {
		r.flat.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetViewProjection sets the camera matrices used by world-space draws. Identity-transform
// draws keep the projection and replace the view.
func (r *Renderer) SetViewProjection(view, projection math.Mat4) {
	r.view = view
	r.projection = projection
}

// SetClipPlane enables a world-space user clip plane (a*x + b*y + c*z + d >= 0 is kept) for
// pipelines that honour clip planes.
func (r *Renderer) SetClipPlane(plane [4]float32) {
	r.clipPlane = plane
	r.clipActive = true
}

// ClearClipPlane disables the user clip plane.
func (r *Renderer) ClearClipPlane() {
	r.clipPlane = [4]float32{}
	r.clipActive = false
}

// Begin starts a new frame. The stencil buffer is cleared with color and depth since
// shadow volumes count into it.
func (r *Renderer) Begin() {
	r.draws = 0
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Draws returns the number of draw calls issued since Begin.
func (r *Renderer) Draws() int {
	return r.draws
}

// Draw uploads the call's geometry and issues it with the call's pipeline state.
func (r *Renderer) Draw(call *shadow.DrawCall) {
	if len(call.Indexes) == 0 || len(call.Xyz) == 0 {
		return
	}
	if len(call.Colors) < len(call.Xyz) {
		logger.Warn("draw call with missing colors",
			zap.String("pipeline", call.Pipeline.Name),
			zap.Int("vertexes", len(call.Xyz)),
			zap.Int("colors", len(call.Colors)),
		)
		return
	}

	r.flat.Use()
	gl.UniformMatrix4fv(r.flat.Projection, 1, false, r.projection.Ptr())
	view := r.view
	if call.Transform == shadow.TransformIdentity {
		view = math.Identity()
	}
	gl.UniformMatrix4fv(r.flat.View, 1, false, view.Ptr())
	gl.Uniform4f(r.flat.ClipPlane, r.clipPlane[0], r.clipPlane[1], r.clipPlane[2], r.clipPlane[3])

	gl.BindVertexArray(r.vao)
	upload(gl.ARRAY_BUFFER, r.posVBO, len(call.Xyz)*int(unsafe.Sizeof(math.Vec3{})), unsafe.Pointer(&call.Xyz[0]))
	upload(gl.ARRAY_BUFFER, r.colorVBO, len(call.Colors)*int(unsafe.Sizeof(tess.Color{})), unsafe.Pointer(&call.Colors[0]))
	upload(gl.ELEMENT_ARRAY_BUFFER, r.ebo, len(call.Indexes)*4, unsafe.Pointer(&call.Indexes[0]))

	apply(call.Pipeline, r.clipActive)
	gl.DrawElements(gl.TRIANGLES, int32(len(call.Indexes)), gl.UNSIGNED_INT, nil)
	restore()

	r.draws++
}

// upload orphans the buffer and fills it with size bytes.
func upload(target, buffer uint32, size int, data unsafe.Pointer) {
	gl.BindBuffer(target, buffer)
	gl.BufferData(target, size, nil, gl.STREAM_DRAW)
	gl.BufferSubData(target, 0, size, data)
}

// createBuffers creates the streaming VAO: positions at location 0, normalized byte colors
// at location 1.
func (r *Renderer) createBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.posVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &r.colorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.colorVBO)
	gl.VertexAttribPointer(1, 4, gl.UNSIGNED_BYTE, true, 0, nil)
	gl.EnableVertexAttribArray(1)

	// The element binding is VAO state
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("draw buffers created",
		zap.Uint32("vao", r.vao),
		zap.Uint32("positions", r.posVBO),
		zap.Uint32("colors", r.colorVBO),
		zap.Uint32("indexes", r.ebo),
	)
}
