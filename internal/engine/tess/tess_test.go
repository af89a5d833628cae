package tess

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-shadow/pkg/math"
)

func TestNewDefaults(t *testing.T) {
	b := New(0, -1)
	if b.MaxVertexes() != DefaultMaxVertexes {
		t.Errorf("expected %d vertexes, got %d", DefaultMaxVertexes, b.MaxVertexes())
	}
	if b.MaxIndexes() != DefaultMaxIndexes {
		t.Errorf("expected %d indexes, got %d", DefaultMaxIndexes, b.MaxIndexes())
	}
}

func TestAcquireIsExclusive(t *testing.T) {
	b := New(8, 12)

	span, err := b.Acquire()
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if _, err := b.Acquire(); !errors.Is(err, ErrBufferBusy) {
		t.Errorf("expected ErrBufferBusy, got %v", err)
	}

	span.Release()
	if b.Held() {
		t.Error("buffer should be free after release")
	}
	if _, err := b.Acquire(); err != nil {
		t.Errorf("acquire after release: %v", err)
	}
}

func TestReleaseClearsCounts(t *testing.T) {
	b := New(8, 12)

	span, _ := b.Acquire()
	span.AddVertex(math.Vec3{X: 1}, Color{1, 2, 3, 4})
	span.AddIndexes(0, 0, 0)
	span.Release()

	next, _ := b.Acquire()
	if len(next.Xyz()) != 0 || len(next.Colors()) != 0 || len(next.Indexes()) != 0 {
		t.Errorf("expected empty span, got %d vertexes %d indexes", len(next.Xyz()), len(next.Indexes()))
	}
}

func TestStaleSpan(t *testing.T) {
	b := New(4, 6)

	old, _ := b.Acquire()
	old.Release()
	old.Release()

	if old.Xyz() != nil || old.FreeVertexes() != 0 {
		t.Error("released span must expose no storage")
	}
	if _, ok := old.AddVertex(math.Vec3{}, Color{}); ok {
		t.Error("released span must not accept vertexes")
	}

	// A stale span must not touch a newer holder's data.
	cur, _ := b.Acquire()
	cur.AddVertex(math.Vec3{X: 5}, Color{})
	old.Release()
	if !b.Held() || len(cur.Xyz()) != 1 {
		t.Error("stale release affected the current span")
	}
}

func TestCapacity(t *testing.T) {
	b := New(2, 3)
	span, _ := b.Acquire()
	defer span.Release()

	for i := 0; i < 2; i++ {
		if idx, ok := span.AddVertex(math.Vec3{}, Color{}); !ok || idx != uint32(i) {
			t.Fatalf("vertex %d: idx=%d ok=%v", i, idx, ok)
		}
	}
	if _, ok := span.AddVertex(math.Vec3{}, Color{}); ok {
		t.Error("expected vertex overflow to be refused")
	}
	if span.AddIndexes(0, 1, 0, 1) {
		t.Error("expected index overflow to be refused")
	}
	if len(span.Indexes()) != 0 {
		t.Error("refused AddIndexes must not write partially")
	}
	if !span.AddIndexes(0, 1, 1) {
		t.Error("expected indexes to fit")
	}
}
