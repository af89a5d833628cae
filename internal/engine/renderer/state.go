package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-shadow/internal/engine/shadow"
)

// cullFace maps a cull mode to the GL face to discard. ok is false when culling is off.
func cullFace(m shadow.CullMode) (face uint32, ok bool) {
	switch m {
	case shadow.CullBack:
		return gl.BACK, true
	case shadow.CullFront:
		return gl.FRONT, true
	default:
		return 0, false
	}
}

func stencilFunc(f shadow.StencilFunc) uint32 {
	switch f {
	case shadow.StencilNotEqual:
		return gl.NOTEQUAL
	default:
		return gl.ALWAYS
	}
}

func stencilOp(op shadow.StencilOp) uint32 {
	switch op {
	case shadow.StencilIncr:
		return gl.INCR_WRAP
	case shadow.StencilDecr:
		return gl.DECR_WRAP
	default:
		return gl.KEEP
	}
}

func blendFactor(f shadow.BlendFactor) uint32 {
	switch f {
	case shadow.BlendZero:
		return gl.ZERO
	case shadow.BlendDstColor:
		return gl.DST_COLOR
	case shadow.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case shadow.BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return gl.ONE
	}
}

// blends reports whether the factors differ from plain replacement.
func blends(p shadow.Pipeline) bool {
	return p.SrcBlend != shadow.BlendOne || p.DstBlend != shadow.BlendZero
}

// apply sets GL state for p. Everything touched here is put back by restore.
func apply(p shadow.Pipeline, clip bool) {
	if face, ok := cullFace(p.Cull); ok {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(face)
	}

	if p.Stencil.Enabled {
		gl.Enable(gl.STENCIL_TEST)
		gl.StencilFunc(stencilFunc(p.Stencil.Func), int32(p.Stencil.Ref), uint32(p.Stencil.Mask))
		gl.StencilOp(gl.KEEP, gl.KEEP, stencilOp(p.Stencil.DepthPass))
	}

	if blends(p) {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(blendFactor(p.SrcBlend), blendFactor(p.DstBlend))
	}

	if !p.ColorWrite {
		gl.ColorMask(false, false, false, false)
	}
	if !p.DepthTest {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(p.DepthWrite)

	if p.PolygonOffset {
		gl.Enable(gl.POLYGON_OFFSET_FILL)
		gl.PolygonOffset(-1, -2)
	}
	if p.ClipPlanes && clip {
		gl.Enable(gl.CLIP_DISTANCE0)
	}
}

// restore returns GL to the renderer defaults: depth test and writes on, everything else off.
func restore() {
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.STENCIL_TEST)
	gl.Disable(gl.BLEND)
	gl.ColorMask(true, true, true, true)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.Disable(gl.CLIP_DISTANCE0)
}
