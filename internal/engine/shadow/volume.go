package shadow

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-shadow/internal/engine/tess"
	"github.com/Faultbox/midgard-shadow/internal/logger"
	"github.com/Faultbox/midgard-shadow/pkg/math"
)

// MinStencilBits is the stencil depth below which volumes are not rendered at all.
const MinStencilBits = 4

// Config controls a Volume.
type Config struct {
	Technique     Technique
	Variant       Variant
	Policy        Policy
	ThrowDistance float32
	EdgeDefs      int // per-vertex edge capacity, 0 for DefaultEdgeDefs
	QuadCapacity  int // silhouette quads per caster, 0 for MaxVertexes/4
	StencilBits   int // stencil depth of the render target
}

// DefaultConfig returns the stencil volume setup for variant v.
func DefaultConfig(v Variant) Config {
	return Config{
		Technique:     TechniqueVolume,
		Variant:       v,
		Policy:        v.DefaultPolicy(),
		ThrowDistance: DefaultThrowDistance,
		EdgeDefs:      DefaultEdgeDefs,
		StencilBits:   8,
	}
}

// SkipReason tells why a caster produced no volume.
type SkipReason int

const (
	NotSkipped SkipReason = iota
	SkipStencilBits
	SkipTooManyVertexes
	SkipTooManyIndexes
)

// String returns a short description.
func (r SkipReason) String() string {
	switch r {
	case NotSkipped:
		return "none"
	case SkipStencilBits:
		return "insufficient stencil bits"
	case SkipTooManyVertexes:
		return "too many vertexes"
	case SkipTooManyIndexes:
		return "too many indexes"
	default:
		return fmt.Sprintf("SkipReason(%d)", int(r))
	}
}

// Caster is the borrowed input for one shadow-casting mesh: a triangle list in the same space
// as LightDir, which points towards the light and is unit length.
type Caster struct {
	Xyz      []math.Vec3
	Indexes  []uint32
	LightDir math.Vec3
	Mirror   bool
}

// Result reports what happened to one caster. Overflow is reported here, never as an error.
type Result struct {
	Skipped         SkipReason
	Triangles       int
	FacingTriangles int
	Silhouette      SilhouetteStats
	DroppedEdgeDefs int
	DroppedQuads    int
	Quads           int
	BatchesPerPass  int
	Draws           int
}

// scratch is the per-caster working memory. It is reset on entry to RenderCaster.
type scratch struct {
	table    *EdgeTable
	facing   []bool
	extruded []math.Vec3
	edges    []Edge
	quads    []Quad
}

// Volume renders stencil shadow volumes for one caster at a time.
type Volume struct {
	cfg     Config
	buf     *tess.Buffer
	backend Backend
	batcher *Batcher
	scratch scratch
	log     *zap.Logger
}

// NewVolume sizes all scratch memory from buf's capacities.
func NewVolume(cfg Config, buf *tess.Buffer, backend Backend) *Volume {
	if cfg.ThrowDistance <= 0 {
		cfg.ThrowDistance = DefaultThrowDistance
	}
	if cfg.EdgeDefs <= 0 {
		cfg.EdgeDefs = DefaultEdgeDefs
	}
	if cfg.QuadCapacity <= 0 {
		cfg.QuadCapacity = buf.MaxVertexes() / 4
	}

	maxV := buf.MaxVertexes()
	return &Volume{
		cfg:     cfg,
		buf:     buf,
		backend: backend,
		batcher: NewBatcher(buf, backend),
		scratch: scratch{
			table:    NewEdgeTable(maxV, cfg.EdgeDefs),
			facing:   make([]bool, buf.MaxIndexes()/3),
			extruded: make([]math.Vec3, maxV),
			edges:    make([]Edge, 0, cfg.QuadCapacity),
			quads:    make([]Quad, 0, cfg.QuadCapacity),
		},
		log: logger.Named(logger.Shadow),
	}
}

// Config returns the effective configuration.
func (v *Volume) Config() Config { return v.cfg }

// CasterVertexLimit returns the largest caster vertex count a buffer of maxVertexes accepts.
// The original and extruded vertex sets must both fit, so the limit sits just under half.
func CasterVertexLimit(maxVertexes int) int {
	return maxVertexes/2 - 1
}

// RenderCaster builds the shadow volume of c and submits it through both stencil passes.
// Casters that fail a capacity precondition are skipped and report why in Result.Skipped.
// An error is only returned when the tessellation buffer is already held by someone else.
func (v *Volume) RenderCaster(c Caster) (Result, error) {
	res := Result{Triangles: len(c.Indexes) / 3}

	switch {
	case v.cfg.StencilBits < MinStencilBits:
		res.Skipped = SkipStencilBits
	case len(c.Xyz) > CasterVertexLimit(v.buf.MaxVertexes()):
		res.Skipped = SkipTooManyVertexes
	case len(c.Indexes) > v.buf.MaxIndexes():
		res.Skipped = SkipTooManyIndexes
	}
	if res.Skipped != NotSkipped {
		v.log.Debug("caster skipped",
			zap.Stringer("reason", res.Skipped),
			zap.Int("vertexes", len(c.Xyz)),
			zap.Int("indexes", len(c.Indexes)),
		)
		return res, nil
	}

	s := &v.scratch
	n := len(c.Xyz)

	s.extruded = Extrude(s.extruded[:cap(s.extruded)], c.Xyz, c.LightDir, v.cfg.ThrowDistance)

	s.table.Reset(n)
	res.FacingTriangles = ClassifyFacing(c.Xyz, c.Indexes, c.LightDir, s.facing, s.table)
	res.DroppedEdgeDefs = s.table.Dropped()

	s.edges, res.Silhouette = Extract(s.table, n, v.cfg.Policy, v.cfg.QuadCapacity, s.edges[:0])
	res.DroppedQuads = res.Silhouette.Truncated

	s.quads = BuildQuads(s.edges, c.Xyz, s.extruded, s.quads[:0])
	res.Quads = len(s.quads)

	if res.DroppedEdgeDefs > 0 || res.DroppedQuads > 0 {
		v.log.Debug("shadow volume overflow",
			zap.Int("droppedEdgeDefs", res.DroppedEdgeDefs),
			zap.Int("droppedQuads", res.DroppedQuads),
		)
	}

	for _, p := range VolumePasses(v.cfg.Variant, c.Mirror) {
		batches, err := v.batcher.Submit(s.quads, p)
		res.Draws += batches
		if err != nil {
			return res, fmt.Errorf("render %s: %w", p.Name, err)
		}
		res.BatchesPerPass = batches
	}
	return res, nil
}

// darkenQuad covers the view in eye space.
var darkenQuad = [4]math.Vec3{
	{X: -100, Y: 100, Z: -10},
	{X: 100, Y: 100, Z: -10},
	{X: 100, Y: -100, Z: -10},
	{X: -100, Y: -100, Z: -10},
}

// Finish darkens every pixel with a non-zero stencil value. Call it once per frame after all
// casters; shadows of overlapping casters would otherwise darken twice. It reports whether
// the darken quad was drawn.
func (v *Volume) Finish() (bool, error) {
	if v.cfg.Technique != TechniqueVolume || v.cfg.StencilBits < MinStencilBits {
		return false, nil
	}

	span, err := v.buf.Acquire()
	if err != nil {
		return false, fmt.Errorf("shadow finish: %w", err)
	}
	defer span.Release()

	for _, p := range darkenQuad {
		span.AddVertex(p, DarkenColor)
	}
	span.AddIndexes(0, 1, 2, 0, 2, 3)

	v.backend.Draw(&DrawCall{
		Pipeline:  DarkenPipeline(),
		Transform: TransformIdentity,
		Xyz:       span.Xyz(),
		Colors:    span.Colors(),
		Indexes:   span.Indexes(),
	})
	return true, nil
}
