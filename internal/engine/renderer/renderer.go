// Package renderer draws finalized door buffers with OpenGL.
package renderer

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/doorsmith/internal/engine/shader"
	"github.com/Faultbox/doorsmith/pkg/door"
	"github.com/Faultbox/doorsmith/pkg/math"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

// Init loads the OpenGL function pointers. Call once after the context is
// current and before New.
func Init(log *zap.Logger) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return nil
}

// Light is a single directional light with an ambient term.
type Light struct {
	Direction math.Vec3
	Ambient   [3]float32
	Diffuse   [3]float32
}

// DefaultLight is a key light from the upper front right.
var DefaultLight = Light{
	Direction: math.Vec3{X: 0.4, Y: 0.8, Z: 0.6},
	Ambient:   [3]float32{0.35, 0.35, 0.35},
	Diffuse:   [3]float32{0.7, 0.7, 0.7},
}

type uniforms struct {
	model, view, projection    int32
	color, opacity, doubleSide int32
	lightDir, ambient, diffuse int32
}

// DoorRenderer owns the GPU copy of one door buffer and draws it one
// material group at a time.
type DoorRenderer struct {
	log     *zap.Logger
	program uint32
	loc     uniforms

	vao, vbo, ebo uint32
	groups        []mesh.MaterialGroup
	bounds        mesh.Bounds
	materials     []door.Material

	Light Light
}

// New compiles the door program. The GL context must be current.
func New(log *zap.Logger) (*DoorRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	prog, err := shader.LoadProgram("door")
	if err != nil {
		return nil, fmt.Errorf("failed to create door program: %w", err)
	}
	r := &DoorRenderer{log: log, program: prog, Light: DefaultLight}
	r.loc = uniforms{
		model:      shader.Uniform(prog, "uModel"),
		view:       shader.Uniform(prog, "uView"),
		projection: shader.Uniform(prog, "uProjection"),
		color:      shader.Uniform(prog, "uColor"),
		opacity:    shader.Uniform(prog, "uOpacity"),
		doubleSide: shader.Uniform(prog, "uDoubleSided"),
		lightDir:   shader.Uniform(prog, "uLightDir"),
		ambient:    shader.Uniform(prog, "uAmbient"),
		diffuse:    shader.Uniform(prog, "uDiffuse"),
	}
	log.Debug("door program created", zap.Uint32("program", prog))
	return r, nil
}

// Upload replaces the GPU buffers with g's drawable buffer.
func (r *DoorRenderer) Upload(g *door.Geometry) {
	r.releaseBuffers()
	var buf *mesh.Buffer
	if g != nil {
		buf = g.Buffer()
	}
	if buf == nil || len(buf.Indices) == 0 {
		r.groups = nil
		return
	}
	stride := int32(unsafe.Sizeof(mesh.Vertex{}))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf.Vertices)*int(stride), unsafe.Pointer(&buf.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(buf.Indices)*4, unsafe.Pointer(&buf.Indices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)

	r.groups = append(r.groups[:0], buf.Groups...)
	r.bounds = buf.Bounds
	r.log.Debug("door buffer uploaded",
		zap.Int("vertices", len(buf.Vertices)),
		zap.Int("groups", len(buf.Groups)),
	)
}

// SetMaterials replaces the per-slot colours without touching geometry.
func (r *DoorRenderer) SetMaterials(m []door.Material) {
	r.materials = append(r.materials[:0], m...)
}

// Bounds returns the bounds of the uploaded buffer.
func (r *DoorRenderer) Bounds() mesh.Bounds { return r.bounds }

// Draw renders the uploaded door into the current framebuffer. Opaque
// groups are drawn first, transparent groups last with depth writes off.
func (r *DoorRenderer) Draw(view, projection math.Mat4) {
	if r.vao == 0 || len(r.groups) == 0 {
		return
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(r.program)
	model := math.Identity()
	gl.UniformMatrix4fv(r.loc.projection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(r.loc.view, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.loc.model, 1, false, model.Ptr())

	l := r.Light.Direction.Normalize()
	gl.Uniform3f(r.loc.lightDir, l.X, l.Y, l.Z)
	gl.Uniform3f(r.loc.ambient, r.Light.Ambient[0], r.Light.Ambient[1], r.Light.Ambient[2])
	gl.Uniform3f(r.loc.diffuse, r.Light.Diffuse[0], r.Light.Diffuse[1], r.Light.Diffuse[2])

	gl.BindVertexArray(r.vao)
	for _, call := range drawOrder(r.groups, r.materials) {
		c := call.material.Color.Float3()
		gl.Uniform3f(r.loc.color, c[0], c[1], c[2])
		gl.Uniform1f(r.loc.opacity, call.opacity())

		if call.material.Side == door.SideDouble {
			gl.Disable(gl.CULL_FACE)
			gl.Uniform1i(r.loc.doubleSide, 1)
		} else {
			gl.Enable(gl.CULL_FACE)
			gl.CullFace(gl.BACK)
			gl.Uniform1i(r.loc.doubleSide, 0)
		}
		gl.DepthMask(!call.material.Transparent)

		//nolint:govet // Valid OpenGL offset pointer usage
		gl.DrawElements(gl.TRIANGLES, call.group.IndexCount, gl.UNSIGNED_INT, unsafe.Pointer(uintptr(call.group.StartIndex*4)))
	}
	gl.DepthMask(true)
	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(0)
}

type drawCall struct {
	group    mesh.MaterialGroup
	material door.Material
}

func (c drawCall) opacity() float32 {
	if c.material.Transparent {
		return c.material.Opacity
	}
	return 1
}

// drawOrder pairs each group with its material and moves transparent
// groups behind opaque ones. Groups without a material draw in grey.
func drawOrder(groups []mesh.MaterialGroup, materials []door.Material) []drawCall {
	calls := make([]drawCall, 0, len(groups))
	for _, g := range groups {
		m := door.Material{Color: door.RGB(0x808080)}
		if g.Material >= 0 && g.Material < len(materials) {
			m = materials[g.Material]
		}
		calls = append(calls, drawCall{group: g, material: m})
	}
	sort.SliceStable(calls, func(i, j int) bool {
		return !calls[i].material.Transparent && calls[j].material.Transparent
	})
	return calls
}

func (r *DoorRenderer) releaseBuffers() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
}

// Destroy releases all OpenGL resources.
func (r *DoorRenderer) Destroy() {
	r.releaseBuffers()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
