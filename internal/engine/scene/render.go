package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadow/internal/engine/lighting"
	"github.com/Faultbox/midgard-shadow/internal/engine/shadow"
	"github.com/Faultbox/midgard-shadow/internal/engine/tess"
	"github.com/Faultbox/midgard-shadow/internal/logger"
	"github.com/Faultbox/midgard-shadow/pkg/math"
)

// EntityStats is the per-entity outcome of one frame.
type EntityStats struct {
	Name      string
	Drawn     bool // opaque geometry fit the tessellation buffer
	Technique shadow.Technique
	Volume    shadow.Result
	Light     math.Vec3 // projection light after clamping, in entity space
}

// FrameStats summarizes one Render call.
type FrameStats struct {
	Entities        []EntityStats
	Casters         int
	Skipped         int
	Quads           int
	Draws           int
	DroppedEdgeDefs int
	DroppedQuads    int
	Darkened        bool
}

// Renderer draws scenes through a shadow.Backend, sharing one tessellation buffer between
// opaque geometry, projection shadows and volumes.
type Renderer struct {
	cfg     shadow.Config
	buf     *tess.Buffer
	backend shadow.Backend
	volume  *shadow.Volume
	log     *zap.Logger

	local []math.Vec3
}

// NewRenderer creates a renderer for cfg.
func NewRenderer(cfg shadow.Config, buf *tess.Buffer, backend shadow.Backend) *Renderer {
	r := &Renderer{
		buf:     buf,
		backend: backend,
		log:     logger.Named(logger.Scene),
	}
	r.SetConfig(cfg)
	return r
}

// Config returns the effective shadow configuration.
func (r *Renderer) Config() shadow.Config {
	return r.volume.Config()
}

// SetConfig switches technique, policy or variant between frames.
func (r *Renderer) SetConfig(cfg shadow.Config) {
	r.cfg = cfg
	r.volume = shadow.NewVolume(cfg, r.buf, r.backend)
	r.log.Debug("shadow config",
		zap.Stringer("technique", cfg.Technique),
		zap.Stringer("variant", cfg.Variant),
		zap.Stringer("policy", cfg.Policy),
		zap.Int("stencilBits", cfg.StencilBits),
	)
}

// Render draws every entity followed by its shadow, then darkens the stenciled region once
// when volumes are active. mirror must match the view's handedness.
func (r *Renderer) Render(s *Scene, mirror bool) (FrameStats, error) {
	var stats FrameStats

	for _, e := range s.Entities {
		es := EntityStats{Name: e.Name, Technique: r.cfg.Technique}
		world := e.World()

		drawn, err := r.drawOpaque(e, world, mirror)
		if err != nil {
			return stats, fmt.Errorf("entity %s: %w", e.Name, err)
		}
		es.Drawn = drawn
		if drawn {
			stats.Draws++
		}

		if e.CastShadows {
			switch r.cfg.Technique {
			case shadow.TechniqueVolume:
				stats.Casters++
				res, err := r.volume.RenderCaster(shadow.Caster{
					Xyz:      world,
					Indexes:  e.Mesh.Indexes,
					LightDir: s.LightDir,
					Mirror:   mirror,
				})
				if err != nil {
					return stats, fmt.Errorf("entity %s: %w", e.Name, err)
				}
				es.Volume = res
				if res.Skipped != shadow.NotSkipped {
					stats.Skipped++
				}
				stats.Quads += res.Quads
				stats.Draws += res.Draws
				stats.DroppedEdgeDefs += res.DroppedEdgeDefs
				stats.DroppedQuads += res.DroppedQuads

			case shadow.TechniqueProjection:
				stats.Casters++
				light, ok, err := r.drawProjection(e, s.LightDir)
				if err != nil {
					return stats, fmt.Errorf("entity %s: %w", e.Name, err)
				}
				es.Light = light
				if ok {
					stats.Draws++
				} else {
					stats.Skipped++
				}
			}
		}
		stats.Entities = append(stats.Entities, es)
	}

	if r.cfg.Technique == shadow.TechniqueVolume {
		darkened, err := r.volume.Finish()
		if err != nil {
			return stats, err
		}
		stats.Darkened = darkened
		if darkened {
			stats.Draws++
		}
	}
	return stats, nil
}

// drawOpaque submits the entity's own triangles. Meshes larger than the buffer are not drawn.
func (r *Renderer) drawOpaque(e *Entity, world []math.Vec3, mirror bool) (bool, error) {
	p := shadow.OpaquePipeline()
	if mirror {
		p.Cull = shadow.CullFront
	}
	return r.submit(p, world, e.Mesh.Indexes, e.Color)
}

// drawProjection flattens a copy of the entity's local vertexes onto its shadow plane and
// draws them as a translucent decal.
func (r *Renderer) drawProjection(e *Entity, lightDir math.Vec3) (math.Vec3, bool, error) {
	r.local = append(r.local[:0], e.Mesh.Xyz...)

	ground, dist := shadow.GroundPlane(e.Orientation, e.ShadowPlane)
	light, ok := shadow.ProjectionDeform(r.local, ground, dist, lighting.EntityLight(lightDir, e.Orientation.Axis))
	if !ok {
		r.log.Debug("degenerate ground plane, projection skipped", zap.String("entity", e.Name))
		return light, false, nil
	}

	for i, v := range r.local {
		r.local[i] = e.Orientation.PointToWorld(v)
	}
	ok, err := r.submit(shadow.SplatPipeline(), r.local, e.Mesh.Indexes, shadow.SplatColor)
	return light, ok, err
}

func (r *Renderer) submit(p shadow.Pipeline, xyz []math.Vec3, indexes []uint32, color tess.Color) (bool, error) {
	span, err := r.buf.Acquire()
	if err != nil {
		return false, err
	}
	defer span.Release()

	if len(xyz) > span.FreeVertexes() || len(indexes) > span.FreeIndexes() {
		r.log.Debug("mesh exceeds tessellation buffer",
			zap.String("pipeline", p.Name),
			zap.Int("vertexes", len(xyz)),
			zap.Int("indexes", len(indexes)),
		)
		return false, nil
	}
	for _, v := range xyz {
		span.AddVertex(v, color)
	}
	span.AddIndexes(indexes...)

	r.backend.Draw(&shadow.DrawCall{
		Pipeline:  p,
		Transform: shadow.TransformWorld,
		Xyz:       span.Xyz(),
		Colors:    span.Colors(),
		Indexes:   span.Indexes(),
	})
	return true, nil
}
