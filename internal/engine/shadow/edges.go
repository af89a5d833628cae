// Package shadow builds stencil shadow volumes and planar projection shadows for mesh casters.
//
// Per caster and frame the volume path runs: facing classification, which fills an EdgeTable;
// silhouette extraction over that table; extrusion of the silhouette into quads; and batched
// submission of the quads through two stencil passes. Finish darkens every stenciled pixel once
// all casters are done. ProjectionDeform is the cheaper alternative that flattens a mesh onto
// its ground plane instead.
//
// All scratch memory is owned by a Volume and reset at the start of each caster. Nothing here
// is safe for concurrent use; run it on the render thread.
package shadow

// DefaultEdgeDefs is the per-vertex edge capacity of an EdgeTable.
const DefaultEdgeDefs = 32

// EdgeDef is a directed edge leaving a vertex, tagged with the facing of its triangle.
type EdgeDef struct {
	To     uint32
	Facing bool
}

// EdgeTable maps every source vertex to the directed edges leaving it.
//
// Each vertex holds at most PerVertex edges. Further edges are dropped and counted; silhouettes
// through such a vertex may then be incomplete.
type EdgeTable struct {
	perVertex int
	defs      []EdgeDef
	counts    []int
	active    int
	dropped   int
}

// NewEdgeTable allocates a table for up to maxVertexes source vertexes.
// perVertex <= 0 selects DefaultEdgeDefs.
func NewEdgeTable(maxVertexes, perVertex int) *EdgeTable {
	if perVertex <= 0 {
		perVertex = DefaultEdgeDefs
	}
	return &EdgeTable{
		perVertex: perVertex,
		defs:      make([]EdgeDef, maxVertexes*perVertex),
		counts:    make([]int, maxVertexes),
	}
}

// PerVertex returns the per-vertex capacity.
func (t *EdgeTable) PerVertex() int { return t.perVertex }

// MaxVertexes returns how many source vertexes the table can index.
func (t *EdgeTable) MaxVertexes() int { return len(t.counts) }

// Len returns the vertex range set by the last Reset.
func (t *EdgeTable) Len() int { return t.active }

// Reset zeroes the counts of the first n vertexes and the drop counter.
// It must run before each caster. n is clamped to the table size.
func (t *EdgeTable) Reset(n int) {
	n = min(max(n, 0), len(t.counts))
	clear(t.counts[:max(n, t.active)])
	t.active = n
	t.dropped = 0
}

// Add records the directed edge from→to. It reports false when the edge was dropped, either
// because from's list is full or because from is outside the active range.
func (t *EdgeTable) Add(from, to uint32, facing bool) bool {
	if int(from) >= t.active {
		t.dropped++
		return false
	}
	c := t.counts[from]
	if c == t.perVertex {
		t.dropped++
		return false
	}
	t.defs[int(from)*t.perVertex+c] = EdgeDef{To: to, Facing: facing}
	t.counts[from] = c + 1
	return true
}

// Edges returns the edges leaving v in insertion order. The slice aliases the table.
func (t *EdgeTable) Edges(v uint32) []EdgeDef {
	if int(v) >= t.active {
		return nil
	}
	base := int(v) * t.perVertex
	return t.defs[base : base+t.counts[v]]
}

// Count returns the number of edges leaving v.
func (t *EdgeTable) Count(v uint32) int {
	return len(t.Edges(v))
}

// Dropped returns how many edges were discarded since the last Reset.
func (t *EdgeTable) Dropped() int { return t.dropped }
