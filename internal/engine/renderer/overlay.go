package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/doorsmith/internal/engine/shader"
	"github.com/Faultbox/doorsmith/pkg/math"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

// BoundsPadding keeps the overlay off the door surfaces.
const BoundsPadding = 1.0

// BoundsOverlay draws a wireframe box around the door.
type BoundsOverlay struct {
	program  uint32
	vao, vbo uint32
	locView  int32
	locProj  int32
	locColor int32

	Color [3]float32
}

// NewBoundsOverlay compiles the line program and allocates the box buffer.
func NewBoundsOverlay() (*BoundsOverlay, error) {
	prog, err := shader.LoadProgram("line")
	if err != nil {
		return nil, fmt.Errorf("failed to create line program: %w", err)
	}
	o := &BoundsOverlay{
		program:  prog,
		locView:  shader.Uniform(prog, "uView"),
		locProj:  shader.Uniform(prog, "uProjection"),
		locColor: shader.Uniform(prog, "uColor"),
		Color:    [3]float32{1, 0.85, 0.2},
	}

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, mesh.WireframeVertexCount*int(unsafe.Sizeof(math.Vec3{})), nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(unsafe.Sizeof(math.Vec3{})), 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return o, nil
}

// Draw outlines b. Empty bounds draw nothing.
func (o *BoundsOverlay) Draw(b mesh.Bounds, view, projection math.Mat4) {
	if b.Empty() {
		return
	}
	lines := b.Wireframe(BoundsPadding)

	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(lines)*int(unsafe.Sizeof(math.Vec3{})), unsafe.Pointer(&lines[0]))

	gl.UseProgram(o.program)
	gl.UniformMatrix4fv(o.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(o.locProj, 1, false, projection.Ptr())
	gl.Uniform3f(o.locColor, o.Color[0], o.Color[1], o.Color[2])

	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(lines)))
	gl.BindVertexArray(0)
}

// Destroy releases all OpenGL resources.
func (o *BoundsOverlay) Destroy() {
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
		o.vao = 0
	}
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
		o.vbo = 0
	}
	if o.program != 0 {
		gl.DeleteProgram(o.program)
		o.program = 0
	}
}
