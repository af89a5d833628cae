package shadow

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-shadow/internal/engine/model"
	"github.com/Faultbox/midgard-shadow/internal/engine/tess"
	"github.com/Faultbox/midgard-shadow/pkg/math"
)

func newTestVolume(cfg Config, maxV, maxI int) (*Volume, *Recorder, *tess.Buffer) {
	rec := &Recorder{}
	buf := tess.New(maxV, maxI)
	return NewVolume(cfg, buf, rec), rec, buf
}

func cubeCaster(light math.Vec3) Caster {
	m := model.Cube(8)
	return Caster{Xyz: m.Xyz, Indexes: m.Indexes, LightDir: light}
}

func TestRenderCasterCube(t *testing.T) {
	vol, rec, buf := newTestVolume(DefaultConfig(VariantTwoPass), 1000, 6000)

	res, err := vol.RenderCaster(cubeCaster(math.Vec3{Z: 1}))
	if err != nil {
		t.Fatalf("RenderCaster: %v", err)
	}
	if res.Skipped != NotSkipped {
		t.Fatalf("unexpected skip: %v", res.Skipped)
	}
	if res.Triangles != 12 || res.FacingTriangles != 2 {
		t.Errorf("triangles=%d facing=%d, want 12 and 2", res.Triangles, res.FacingTriangles)
	}
	if res.Quads != 4 || res.BatchesPerPass != 1 || res.Draws != 2 {
		t.Errorf("quads=%d batches=%d draws=%d, want 4, 1, 2", res.Quads, res.BatchesPerPass, res.Draws)
	}
	if buf.Held() {
		t.Error("buffer still held")
	}

	if len(rec.Calls) != 2 {
		t.Fatalf("expected 2 draws, got %d", len(rec.Calls))
	}
	incr, decr := rec.Calls[0].Pipeline, rec.Calls[1].Pipeline
	if incr.Cull != CullBack || incr.Stencil.DepthPass != StencilIncr {
		t.Errorf("first pass = %+v, want back-cull increment", incr)
	}
	if decr.Cull != CullFront || decr.Stencil.DepthPass != StencilDecr {
		t.Errorf("second pass = %+v, want front-cull decrement", decr)
	}
	if incr.ColorWrite || decr.ColorWrite {
		t.Error("volume passes must not write color")
	}

	// Extruded corners sit 512 units below the lit top face.
	q := rec.Calls[0].Xyz
	if q[0].Z != 8 || q[1].Z != 8-DefaultThrowDistance {
		t.Errorf("quad z = %v / %v, want 8 / %v", q[0].Z, q[1].Z, 8-DefaultThrowDistance)
	}
}

func TestRenderCasterMirrorSwapsCulling(t *testing.T) {
	for _, variant := range []Variant{VariantTwoPass, VariantPipeline} {
		t.Run(variant.String(), func(t *testing.T) {
			vol, rec, _ := newTestVolume(DefaultConfig(variant), 1000, 6000)
			c := cubeCaster(math.Vec3{Z: 1})
			c.Mirror = true
			if _, err := vol.RenderCaster(c); err != nil {
				t.Fatal(err)
			}

			first, second := rec.Calls[0].Pipeline, rec.Calls[1].Pipeline
			if first.Cull != CullFront || first.Stencil.DepthPass != StencilIncr {
				t.Errorf("mirrored first pass = %+v", first)
			}
			if second.Cull != CullBack || second.Stencil.DepthPass != StencilDecr {
				t.Errorf("mirrored second pass = %+v", second)
			}
			if variant == VariantPipeline && first.Name != "shadow_volume[0][1]" {
				t.Errorf("pipeline name = %q", first.Name)
			}
		})
	}
}

func TestRenderCasterVertexThreshold(t *testing.T) {
	const maxV = 100
	limit := CasterVertexLimit(maxV)

	// Separate lit triangles; a trailing vertex that completes no triangle stays unused.
	corner := [3]math.Vec3{{}, {X: 1}, {Y: 1}}
	caster := func(n int) Caster {
		c := Caster{LightDir: math.Vec3{Z: 1}}
		for i := 0; i < n; i++ {
			c.Xyz = append(c.Xyz, corner[i%3].Add(math.Vec3{X: float32(i / 3 * 3)}))
		}
		for i := 0; i+2 < n; i += 3 {
			c.Indexes = append(c.Indexes, uint32(i), uint32(i+1), uint32(i+2))
		}
		return c
	}

	vol, rec, _ := newTestVolume(DefaultConfig(VariantTwoPass), maxV, 6*maxV)
	res, err := vol.RenderCaster(caster(limit))
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != NotSkipped || len(rec.Calls) == 0 {
		t.Errorf("caster at the limit (%d) must be processed: %+v", limit, res)
	}

	rec.Reset()
	res, _ = vol.RenderCaster(caster(limit + 1))
	if res.Skipped != SkipTooManyVertexes {
		t.Errorf("Skipped = %v, want %v", res.Skipped, SkipTooManyVertexes)
	}
	if len(rec.Calls) != 0 {
		t.Errorf("skipped caster issued %d draws", len(rec.Calls))
	}
}

func TestRenderCasterQuadCapacity(t *testing.T) {
	// 16 separate lit triangles give 48 silhouette edges; only 25 fit.
	cfg := DefaultConfig(VariantTwoPass)
	vol, rec, _ := newTestVolume(cfg, 100, 600)

	var c Caster
	c.LightDir = math.Vec3{Z: 1}
	for i := 0; i < 16; i++ {
		base := uint32(len(c.Xyz))
		x := float32(i * 3)
		c.Xyz = append(c.Xyz, math.Vec3{X: x}, math.Vec3{X: x + 1}, math.Vec3{X: x, Y: 1})
		c.Indexes = append(c.Indexes, base, base+1, base+2)
	}

	res, err := vol.RenderCaster(c)
	if err != nil {
		t.Fatal(err)
	}
	if res.Quads != 25 || res.DroppedQuads != 23 {
		t.Errorf("quads=%d dropped=%d, want 25 and 23", res.Quads, res.DroppedQuads)
	}
	// 24 quads per batch: 2 batches per pass.
	if res.BatchesPerPass != 2 || len(rec.Calls) != 4 {
		t.Errorf("batches=%d calls=%d, want 2 and 4", res.BatchesPerPass, len(rec.Calls))
	}
	if got := rec.Quads(rec.Calls[0].Pipeline.Name); got != 25 {
		t.Errorf("first pass drew %d quads, want 25", got)
	}
}

func TestRenderCasterStencilBits(t *testing.T) {
	cfg := DefaultConfig(VariantTwoPass)
	cfg.StencilBits = 2
	vol, rec, _ := newTestVolume(cfg, 1000, 6000)

	res, err := vol.RenderCaster(cubeCaster(math.Vec3{Z: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != SkipStencilBits || len(rec.Calls) != 0 {
		t.Errorf("Skipped=%v calls=%d, want stencil skip with no draws", res.Skipped, len(rec.Calls))
	}
	if drawn, _ := vol.Finish(); drawn {
		t.Error("Finish must not darken without stencil precision")
	}
}

func TestRenderCasterResetsBetweenCasters(t *testing.T) {
	vol, rec, _ := newTestVolume(DefaultConfig(VariantPipeline), 1000, 6000)

	big := model.Cube(8)
	if _, err := vol.RenderCaster(Caster{Xyz: big.Xyz, Indexes: big.Indexes, LightDir: math.Vec3{Z: 1}}); err != nil {
		t.Fatal(err)
	}

	rec.Reset()
	tri := model.Triangle(math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1})
	res, err := vol.RenderCaster(Caster{Xyz: tri.Xyz, Indexes: tri.Indexes, LightDir: math.Vec3{Z: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Quads != 3 {
		t.Errorf("second caster quads = %d, want 3 (no leakage from the cube)", res.Quads)
	}
}

func TestFinish(t *testing.T) {
	vol, rec, buf := newTestVolume(DefaultConfig(VariantTwoPass), 1000, 6000)

	drawn, err := vol.Finish()
	if err != nil || !drawn {
		t.Fatalf("Finish = %v, %v", drawn, err)
	}
	if len(rec.Calls) != 1 {
		t.Fatalf("expected one darken draw, got %d", len(rec.Calls))
	}
	call := rec.Calls[0]
	if call.Transform != TransformIdentity {
		t.Error("darken quad must use the identity model-view")
	}
	p := call.Pipeline
	if !p.Stencil.Enabled || p.Stencil.Func != StencilNotEqual || p.Stencil.Ref != 0 {
		t.Errorf("stencil = %+v, want != 0 test", p.Stencil)
	}
	if p.SrcBlend != BlendDstColor || p.DstBlend != BlendZero || p.Cull != CullNone || p.ClipPlanes {
		t.Errorf("pipeline = %+v, want two-sided multiplicative blend without clip planes", p)
	}
	if len(call.Xyz) != 4 || len(call.Indexes) != 6 || call.Colors[0] != DarkenColor {
		t.Errorf("unexpected darken geometry %+v", call)
	}
	if buf.Held() {
		t.Error("buffer still held after Finish")
	}
}

func TestFinishTechniqueAndBusy(t *testing.T) {
	cfg := DefaultConfig(VariantTwoPass)
	cfg.Technique = TechniqueProjection
	vol, rec, _ := newTestVolume(cfg, 1000, 6000)
	if drawn, _ := vol.Finish(); drawn || len(rec.Calls) != 0 {
		t.Error("Finish must be a no-op for projection shadows")
	}

	vol, _, buf := newTestVolume(DefaultConfig(VariantTwoPass), 1000, 6000)
	span, _ := buf.Acquire()
	defer span.Release()
	if _, err := vol.Finish(); !errors.Is(err, tess.ErrBufferBusy) {
		t.Errorf("expected ErrBufferBusy, got %v", err)
	}
}

func TestCasterVertexLimit(t *testing.T) {
	if got := CasterVertexLimit(1000); got != 499 {
		t.Errorf("CasterVertexLimit(1000) = %d, want 499", got)
	}
}

// TestVolumeWallsFaceOutward checks the winding of every wall against a counter-clockwise
// front face: normals point away from the light axis through the caster, and the increment
// pass keeps exactly those faces, mirrored or not.
func TestVolumeWallsFaceOutward(t *testing.T) {
	lights := []math.Vec3{
		{Z: 1},
		{X: 1},
		math.Vec3{X: 1, Y: 1, Z: 1}.Normalize(),
	}
	for _, variant := range []Variant{VariantTwoPass, VariantPipeline} {
		for _, mirror := range []bool{false, true} {
			for _, light := range lights {
				vol, rec, _ := newTestVolume(DefaultConfig(variant), 1000, 6000)
				c := cubeCaster(light)
				c.Mirror = mirror
				if _, err := vol.RenderCaster(c); err != nil {
					t.Fatal(err)
				}
				if len(rec.Calls) != 2 {
					t.Fatalf("%v mirror=%v: expected 2 draws, got %d", variant, mirror, len(rec.Calls))
				}

				call := rec.Calls[0]
				inward := 0
				for i := 0; i+2 < len(call.Indexes); i += 3 {
					a, b, cc := call.Xyz[call.Indexes[i]], call.Xyz[call.Indexes[i+1]], call.Xyz[call.Indexes[i+2]]
					n := b.Sub(a).Cross(cc.Sub(a))
					mid := a.Add(b).Add(cc).Scale(1.0 / 3)
					radial := mid.Sub(light.Scale(mid.Dot(light)))
					if n.Dot(radial) <= 0 {
						inward++
					}
				}
				if inward != 0 {
					t.Errorf("%v mirror=%v light=%v: %d of %d wall triangles face into the volume",
						variant, mirror, light, inward, len(call.Indexes)/3)
				}

				incr, decr := rec.Calls[0].Pipeline, rec.Calls[1].Pipeline
				keepsFront := func(p Pipeline) bool { return (p.Cull == CullBack) != mirror }
				if incr.Stencil.DepthPass != StencilIncr || !keepsFront(incr) {
					t.Errorf("%v mirror=%v: increment pass must draw outward faces, got %+v", variant, mirror, incr)
				}
				if decr.Stencil.DepthPass != StencilDecr || keepsFront(decr) {
					t.Errorf("%v mirror=%v: decrement pass must draw inward faces, got %+v", variant, mirror, decr)
				}
			}
		}
	}
}
