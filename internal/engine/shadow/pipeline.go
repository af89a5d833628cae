package shadow

import (
	"fmt"

	"github.com/Faultbox/midgard-shadow/internal/engine/tess"
	"github.com/Faultbox/midgard-shadow/pkg/math"
)

// CullMode selects which triangle sides are discarded.
type CullMode int

const (
	CullNone CullMode = iota
	CullBack
	CullFront
)

// StencilFunc is the stencil comparison.
type StencilFunc int

const (
	StencilAlways StencilFunc = iota
	StencilNotEqual
)

// StencilOp is applied to the stencil value when both stencil and depth tests pass.
type StencilOp int

const (
	StencilKeep StencilOp = iota
	StencilIncr
	StencilDecr
)

// BlendFactor is a source or destination blend factor.
type BlendFactor int

const (
	BlendOne BlendFactor = iota
	BlendZero
	BlendDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// Stencil describes the stencil test of a pipeline.
type Stencil struct {
	Enabled   bool
	Func      StencilFunc
	Ref       uint8
	Mask      uint8
	DepthPass StencilOp
}

// Pipeline is the complete fixed-function state of one draw. Backends apply it before the
// draw and restore their defaults afterwards.
type Pipeline struct {
	Name          string
	Cull          CullMode
	Stencil       Stencil
	SrcBlend      BlendFactor
	DstBlend      BlendFactor
	ColorWrite    bool
	DepthTest     bool
	DepthWrite    bool
	PolygonOffset bool
	ClipPlanes    bool
}

// Transform selects the model-view matrix of a draw.
type Transform int

const (
	// TransformWorld uses the camera's view.
	TransformWorld Transform = iota
	// TransformIdentity draws in eye space with an identity model-view.
	TransformIdentity
)

// DrawCall names a pipeline and a region of the tessellation buffer. The slices are only
// valid for the duration of Backend.Draw.
type DrawCall struct {
	Pipeline  Pipeline
	Transform Transform
	Xyz       []math.Vec3
	Colors    []tess.Color
	Indexes   []uint32
}

// Backend issues draws. Calls must be executed in submission order.
type Backend interface {
	Draw(call *DrawCall)
}

// Vertex colors. Volume geometry needs a color only to satisfy the vertex format.
var (
	VolumeColor = tess.Color{50, 50, 50, 255}
	DarkenColor = tess.Color{153, 153, 153, 255}
	SplatColor  = tess.Color{0, 0, 0, 128}
)

// VolumePasses returns the increment and decrement passes for one caster, in draw order.
// A mirrored view flips triangle winding, so the cull sides swap while each stencil op stays
// with its pass.
func VolumePasses(v Variant, mirror bool) [2]Pipeline {
	incr := Pipeline{
		Cull:       CullBack,
		Stencil:    Stencil{Enabled: true, Func: StencilAlways, Ref: 1, Mask: 255, DepthPass: StencilIncr},
		SrcBlend:   BlendOne,
		DstBlend:   BlendZero,
		ColorWrite: false,
		DepthTest:  true,
	}
	decr := incr
	decr.Cull = CullFront
	decr.Stencil.DepthPass = StencilDecr

	if mirror {
		incr.Cull, decr.Cull = decr.Cull, incr.Cull
	}

	m := 0
	if mirror {
		m = 1
	}
	switch v {
	case VariantPipeline:
		incr.Name = fmt.Sprintf("shadow_volume[0][%d]", m)
		decr.Name = fmt.Sprintf("shadow_volume[1][%d]", m)
	default:
		incr.Name = "shadow_volume_incr"
		decr.Name = "shadow_volume_decr"
	}
	return [2]Pipeline{incr, decr}
}

// DarkenPipeline multiplies the color buffer wherever the stencil is non-zero.
func DarkenPipeline() Pipeline {
	return Pipeline{
		Name:       "shadow_finish",
		Cull:       CullNone,
		Stencil:    Stencil{Enabled: true, Func: StencilNotEqual, Ref: 0, Mask: 255, DepthPass: StencilKeep},
		SrcBlend:   BlendDstColor,
		DstBlend:   BlendZero,
		ColorWrite: true,
		ClipPlanes: false,
	}
}

// OpaquePipeline draws ordinary lit-less geometry with depth.
func OpaquePipeline() Pipeline {
	return Pipeline{
		Name:       "opaque",
		Cull:       CullBack,
		SrcBlend:   BlendOne,
		DstBlend:   BlendZero,
		ColorWrite: true,
		DepthTest:  true,
		DepthWrite: true,
		ClipPlanes: true,
	}
}

// SplatPipeline draws a flattened projection shadow as a translucent dark decal.
func SplatPipeline() Pipeline {
	return Pipeline{
		Name:          "projection_shadow",
		Cull:          CullNone,
		SrcBlend:      BlendSrcAlpha,
		DstBlend:      BlendOneMinusSrcAlpha,
		ColorWrite:    true,
		DepthTest:     true,
		PolygonOffset: true,
		ClipPlanes:    true,
	}
}
