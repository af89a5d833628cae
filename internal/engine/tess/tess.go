// Package tess holds the shared per-frame tessellation buffer.
//
// Every consumer (mesh drawing, shadow volume batches, the shadow darken quad) borrows the same
// fixed-capacity arrays through Acquire and hands them back with Release, which clears the
// counts. Only one Span may be held at a time.
package tess

import (
	"errors"

	"github.com/Faultbox/midgard-shadow/pkg/math"
)

// Default capacities, matching the classic per-shader limits.
const (
	DefaultMaxVertexes = 1000
	DefaultMaxIndexes  = 6 * DefaultMaxVertexes
)

// ErrBufferBusy is returned by Acquire while another Span is still held.
var ErrBufferBusy = errors.New("tess: buffer already acquired")

// Color is an RGBA8 vertex color.
type Color [4]uint8

// Buffer is a fixed-capacity vertex/index arena.
type Buffer struct {
	xyz     []math.Vec3
	colors  []Color
	indexes []uint32

	held       bool
	generation uint64
}

// New creates a buffer. Non-positive capacities fall back to the defaults.
func New(maxVertexes, maxIndexes int) *Buffer {
	if maxVertexes <= 0 {
		maxVertexes = DefaultMaxVertexes
	}
	if maxIndexes <= 0 {
		maxIndexes = DefaultMaxIndexes
	}
	return &Buffer{
		xyz:     make([]math.Vec3, 0, maxVertexes),
		colors:  make([]Color, 0, maxVertexes),
		indexes: make([]uint32, 0, maxIndexes),
	}
}

// MaxVertexes returns the vertex capacity.
func (b *Buffer) MaxVertexes() int { return cap(b.xyz) }

// MaxIndexes returns the index capacity.
func (b *Buffer) MaxIndexes() int { return cap(b.indexes) }

// Held reports whether a Span is currently outstanding.
func (b *Buffer) Held() bool { return b.held }

// Acquire hands out the buffer, emptied, for exclusive use.
func (b *Buffer) Acquire() (*Span, error) {
	if b.held {
		return nil, ErrBufferBusy
	}
	b.held = true
	b.generation++
	b.reset()
	return &Span{buf: b, generation: b.generation}, nil
}

func (b *Buffer) reset() {
	b.xyz = b.xyz[:0]
	b.colors = b.colors[:0]
	b.indexes = b.indexes[:0]
}

// Span is a scoped view of a Buffer. It is invalid after Release.
type Span struct {
	buf        *Buffer
	generation uint64
}

func (s *Span) valid() bool {
	return s.buf != nil && s.buf.held && s.buf.generation == s.generation
}

// Release empties the buffer and returns it to the pool. Releasing twice is a no-op.
func (s *Span) Release() {
	if !s.valid() {
		return
	}
	s.buf.reset()
	s.buf.held = false
	s.buf = nil
}

// FreeVertexes returns how many more vertexes fit.
func (s *Span) FreeVertexes() int {
	if !s.valid() {
		return 0
	}
	return cap(s.buf.xyz) - len(s.buf.xyz)
}

// FreeIndexes returns how many more indexes fit.
func (s *Span) FreeIndexes() int {
	if !s.valid() {
		return 0
	}
	return cap(s.buf.indexes) - len(s.buf.indexes)
}

// AddVertex appends one vertex and returns its index, or false when full.
func (s *Span) AddVertex(p math.Vec3, c Color) (uint32, bool) {
	if s.FreeVertexes() == 0 {
		return 0, false
	}
	b := s.buf
	b.xyz = append(b.xyz, p)
	b.colors = append(b.colors, c)
	return uint32(len(b.xyz) - 1), true
}

// AddIndexes appends indexes; nothing is written unless all of them fit.
func (s *Span) AddIndexes(idx ...uint32) bool {
	if s.FreeIndexes() < len(idx) {
		return false
	}
	s.buf.indexes = append(s.buf.indexes, idx...)
	return true
}

// Xyz returns the vertex positions written so far.
func (s *Span) Xyz() []math.Vec3 {
	if !s.valid() {
		return nil
	}
	return s.buf.xyz
}

// Colors returns the vertex colors written so far.
func (s *Span) Colors() []Color {
	if !s.valid() {
		return nil
	}
	return s.buf.colors
}

// Indexes returns the indexes written so far.
func (s *Span) Indexes() []uint32 {
	if !s.valid() {
		return nil
	}
	return s.buf.indexes
}
