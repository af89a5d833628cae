package shadow

import (
	"errors"
	"fmt"

	"github.com/Faultbox/midgard-shadow/internal/engine/tess"
)

// ErrBatchTooSmall is returned when the tessellation buffer cannot hold a single quad.
var ErrBatchTooSmall = errors.New("shadow: tessellation buffer too small for one quad")

// quadIndexes turns quad k into two triangles, the strip orig[From], ext[From], orig[To],
// ext[To]. Silhouette edges run counter-clockwise around the lit cap, so with counter-clockwise
// front faces every wall faces out of the volume.
var quadIndexes = [6]uint32{0, 1, 2, 2, 1, 3}

// QuadsPerBatch returns how many quads one draw can carry. One vertex slot is held back, as
// the tessellation buffer has always done.
func QuadsPerBatch(maxVertexes, maxIndexes int) int {
	return max(min((maxVertexes-1)/4, maxIndexes/6), 0)
}

// Batcher streams quads through the tessellation buffer in capacity-bounded draws.
type Batcher struct {
	buf     *tess.Buffer
	backend Backend
	color   tess.Color
}

// NewBatcher creates a batcher that writes into buf and draws through backend.
func NewBatcher(buf *tess.Buffer, backend Backend) *Batcher {
	return &Batcher{buf: buf, backend: backend, color: VolumeColor}
}

// PerBatch returns the quad capacity of one draw.
func (b *Batcher) PerBatch() int {
	return QuadsPerBatch(b.buf.MaxVertexes(), b.buf.MaxIndexes())
}

// Submit draws every quad with pipeline p and returns the number of draws issued.
// A batch is flushed once the next quad would no longer fit.
func (b *Batcher) Submit(quads []Quad, p Pipeline) (int, error) {
	if len(quads) == 0 {
		return 0, nil
	}
	per := b.PerBatch()
	if per < 1 {
		return 0, ErrBatchTooSmall
	}

	batches := 0
	for i := 0; i < len(quads); {
		count := min(len(quads)-i, per)
		if err := b.draw(quads[i:i+count], p); err != nil {
			return batches, fmt.Errorf("batch %d: %w", batches, err)
		}
		batches++
		i += count
	}
	return batches, nil
}

func (b *Batcher) draw(quads []Quad, p Pipeline) error {
	span, err := b.buf.Acquire()
	if err != nil {
		return err
	}
	defer span.Release()

	for k, q := range quads {
		for _, v := range q {
			span.AddVertex(v, b.color)
		}
		base := uint32(k * 4)
		span.AddIndexes(
			base+quadIndexes[0], base+quadIndexes[1], base+quadIndexes[2],
			base+quadIndexes[3], base+quadIndexes[4], base+quadIndexes[5],
		)
	}

	b.backend.Draw(&DrawCall{
		Pipeline:  p,
		Transform: TransformWorld,
		Xyz:       span.Xyz(),
		Colors:    span.Colors(),
		Indexes:   span.Indexes(),
	})
	return nil
}
