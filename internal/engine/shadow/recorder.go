package shadow

// Recorder is a Backend that keeps a copy of every draw. It backs the command line tools and
// the tests.
type Recorder struct {
	Calls []DrawCall
}

// Draw copies call.
func (r *Recorder) Draw(call *DrawCall) {
	c := *call
	c.Xyz = append(c.Xyz[:0:0], call.Xyz...)
	c.Colors = append(c.Colors[:0:0], call.Colors...)
	c.Indexes = append(c.Indexes[:0:0], call.Indexes...)
	r.Calls = append(r.Calls, c)
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// ByPipeline returns the recorded calls whose pipeline has the given name.
func (r *Recorder) ByPipeline(name string) []DrawCall {
	var out []DrawCall
	for _, c := range r.Calls {
		if c.Pipeline.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Quads returns the number of volume quads drawn under pipeline name.
func (r *Recorder) Quads(name string) int {
	n := 0
	for _, c := range r.ByPipeline(name) {
		n += len(c.Xyz) / 4
	}
	return n
}
