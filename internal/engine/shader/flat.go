package shader

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

//go:embed glsl/flat.vert
var flatVertex string

//go:embed glsl/flat.frag
var flatFragment string

// Flat is the untextured vertex-color program every shadow pipeline draws with.
type Flat struct {
	Program    uint32
	Projection int32
	View       int32
	ClipPlane  int32
}

// NewFlat compiles the flat program and resolves its uniforms.
func NewFlat() (*Flat, error) {
	program, err := CompileProgram(flatVertex, flatFragment)
	if err != nil {
		return nil, fmt.Errorf("flat program: %w", err)
	}
	return &Flat{
		Program:    program,
		Projection: MustGetUniform(program, "uProjection"),
		View:       MustGetUniform(program, "uView"),
		ClipPlane:  MustGetUniform(program, "uClipPlane"),
	}, nil
}

// Use binds the program.
func (f *Flat) Use() {
	gl.UseProgram(f.Program)
}

// Delete releases the program.
func (f *Flat) Delete() {
	if f.Program != 0 {
		gl.DeleteProgram(f.Program)
		f.Program = 0
	}
}
