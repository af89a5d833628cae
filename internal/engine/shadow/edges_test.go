package shadow

import (
	"testing"

	"github.com/Faultbox/midgard-shadow/pkg/math"
)

func TestEdgeTableOverflowDrops(t *testing.T) {
	table := NewEdgeTable(4, 32)
	table.Reset(4)

	for i := 0; i < 40; i++ {
		ok := table.Add(0, 1, true)
		if want := i < 32; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if got := table.Count(0); got != 32 {
		t.Errorf("Count(0) = %d, want 32", got)
	}
	if got := table.Dropped(); got != 8 {
		t.Errorf("Dropped() = %d, want 8", got)
	}
}

func TestEdgeTableResetClearsPreviousCaster(t *testing.T) {
	table := NewEdgeTable(8, 0)
	table.Reset(8)
	table.Add(5, 6, true)
	table.Add(7, 0, false)

	table.Reset(3)
	if table.Dropped() != 0 {
		t.Error("Reset must clear the drop counter")
	}
	if table.Edges(5) != nil {
		t.Error("vertexes beyond the active range must have no edges")
	}

	table.Reset(8)
	for v := uint32(0); v < 8; v++ {
		if table.Count(v) != 0 {
			t.Errorf("vertex %d kept %d edges across Reset", v, table.Count(v))
		}
	}
}

func TestEdgeTableRejectsOutOfRange(t *testing.T) {
	table := NewEdgeTable(4, 0)
	table.Reset(2)
	if table.Add(3, 0, true) {
		t.Error("edge from an inactive vertex must be dropped")
	}
	table.Reset(100)
	if table.Len() != 4 {
		t.Errorf("Reset should clamp to the table size, got %d", table.Len())
	}
}

func TestClassifyFacingFanOverflow(t *testing.T) {
	// 40 triangles fanned around vertex 0 push 40 edges out of it.
	xyz := []math.Vec3{{}}
	var indexes []uint32
	for i := 0; i <= 40; i++ {
		xyz = append(xyz, math.Vec3{X: float32(i), Y: 1})
	}
	for i := 1; i <= 40; i++ {
		indexes = append(indexes, 0, uint32(i+1), uint32(i))
	}

	table := NewEdgeTable(len(xyz), DefaultEdgeDefs)
	table.Reset(len(xyz))
	facing := make([]bool, 40)
	ClassifyFacing(xyz, indexes, math.Vec3{Z: 1}, facing, table)

	if table.Count(0) != DefaultEdgeDefs {
		t.Errorf("Count(0) = %d, want %d", table.Count(0), DefaultEdgeDefs)
	}
	if table.Dropped() != 40-DefaultEdgeDefs {
		t.Errorf("Dropped() = %d, want %d", table.Dropped(), 40-DefaultEdgeDefs)
	}
}

func TestClassifyFacing(t *testing.T) {
	xyz := []math.Vec3{{}, {X: 1}, {Y: 1}, {Z: 1}}
	indexes := []uint32{
		0, 1, 2, // normal +Z
		0, 2, 1, // normal -Z
		0, 1, 1, // degenerate
		0, 1, 9, // out of range
	}
	table := NewEdgeTable(len(xyz), 0)
	table.Reset(len(xyz))
	facing := make([]bool, 4)

	lit := ClassifyFacing(xyz, indexes, math.Vec3{Z: 1}, facing, table)
	if lit != 1 {
		t.Errorf("lit = %d, want 1", lit)
	}
	want := []bool{true, false, false, false}
	for i := range want {
		if facing[i] != want[i] {
			t.Errorf("facing[%d] = %v, want %v", i, facing[i], want[i])
		}
	}
	// Three valid triangles, three edges each.
	total := 0
	for v := uint32(0); v < 4; v++ {
		total += table.Count(v)
	}
	if total != 9 {
		t.Errorf("registered %d edges, want 9", total)
	}
}
