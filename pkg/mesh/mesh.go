package mesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jinzhu/copier"

	"github.com/Faultbox/doorsmith/pkg/math"
)

// Topology errors reported by Validate.
var (
	ErrVertexIndexOutOfRange = errors.New("face vertex index out of range")
	ErrMaterialOutOfRange    = errors.New("face material slot out of range")
)

// New returns an empty mesh with room for the given number of vertices and faces.
func New(vertexHint, faceHint int) *Mesh {
	return &Mesh{
		Vertices: make([]math.Vec3, 0, vertexHint),
		Faces:    make([]Face, 0, faceHint),
	}
}

// FromTables builds a mesh from a vertex table and a triangle table, tagging
// every face with material.
func FromTables(vertices []math.Vec3, triangles [][3]int, material int) *Mesh {
	m := New(len(vertices), len(triangles))
	m.Vertices = append(m.Vertices, vertices...)
	for _, t := range triangles {
		m.AddFace(t[0], t[1], t[2], material)
	}
	return m
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v math.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

// AddFace appends a triangle.
func (m *Mesh) AddFace(a, b, c, material int) {
	m.Faces = append(m.Faces, Face{A: a, B: b, C: c, Material: material})
}

// AddQuad appends the quad a-b-c-d as the triangles (a,b,c) and (a,c,d).
func (m *Mesh) AddQuad(a, b, c, d, material int) {
	m.AddFace(a, b, c, material)
	m.AddFace(a, c, d, material)
}

// Merge appends other's vertices and faces, rebasing face indices.
// Material slots are preserved.
func (m *Mesh) Merge(other *Mesh) {
	if other == nil {
		return
	}
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, f := range other.Faces {
		m.Faces = append(m.Faces, Face{A: f.A + base, B: f.B + base, C: f.C + base, Material: f.Material})
	}
	m.invalidate()
}

// Transform applies mat to every vertex in place. Mirroring transforms flip
// the winding of every face so front faces stay front faces.
func (m *Mesh) Transform(mat math.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.TransformVec3(v)
	}
	if mat.Determinant3() < 0 {
		for i := range m.Faces {
			m.Faces[i].B, m.Faces[i].C = m.Faces[i].C, m.Faces[i].B
		}
	}
	m.invalidate()
}

// SetMaterial tags every face with the given material slot.
func (m *Mesh) SetMaterial(material int) {
	for i := range m.Faces {
		m.Faces[i].Material = material
	}
}

// Clone returns a deep copy that shares no buffers with m.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{}
	if err := copier.CopyWithOption(out, m, copier.Option{DeepCopy: true}); err != nil {
		panic(fmt.Sprintf("mesh: clone: %v", err))
	}
	return out
}

// CountMaterial returns how many faces use the given material slot.
func (m *Mesh) CountMaterial(material int) int {
	n := 0
	for _, f := range m.Faces {
		if f.Material == material {
			n++
		}
	}
	return n
}

// MaterialBounds returns the bounding box of the vertices referenced by faces
// of the given material slot.
func (m *Mesh) MaterialBounds(material int) Bounds {
	b := emptyBounds()
	for _, f := range m.Faces {
		if f.Material != material {
			continue
		}
		for _, idx := range [3]int{f.A, f.B, f.C} {
			b.Min = b.Min.Min(m.Vertices[idx])
			b.Max = b.Max.Max(m.Vertices[idx])
		}
	}
	return b
}

// Validate checks that every face references existing vertices and a material
// slot in [0, slotCount).
func (m *Mesh) Validate(slotCount int) error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		if f.A < 0 || f.A >= n || f.B < 0 || f.B >= n || f.C < 0 || f.C >= n {
			return fmt.Errorf("%w: face %d (%d,%d,%d) with %d vertices", ErrVertexIndexOutOfRange, i, f.A, f.B, f.C, n)
		}
		if f.Material < 0 || f.Material >= slotCount {
			return fmt.Errorf("%w: face %d slot %d", ErrMaterialOutOfRange, i, f.Material)
		}
	}
	return nil
}

// ComputeNormals recomputes face normals and area-weighted vertex normals.
func (m *Mesh) ComputeNormals() {
	m.FaceNormals = make([]math.Vec3, len(m.Faces))
	m.VertexNormals = make([]math.Vec3, len(m.Vertices))

	for i, f := range m.Faces {
		v0, v1, v2 := m.Vertices[f.A], m.Vertices[f.B], m.Vertices[f.C]
		// Unnormalized cross product length is twice the triangle area.
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		m.FaceNormals[i] = n.Normalize()

		m.VertexNormals[f.A] = m.VertexNormals[f.A].Add(n)
		m.VertexNormals[f.B] = m.VertexNormals[f.B].Add(n)
		m.VertexNormals[f.C] = m.VertexNormals[f.C].Add(n)
	}

	for i := range m.VertexNormals {
		m.VertexNormals[i] = m.VertexNormals[i].Normalize()
	}
}

// ComputeBounds recomputes the axis-aligned bounding box.
func (m *Mesh) ComputeBounds() {
	b := emptyBounds()
	for _, v := range m.Vertices {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	m.Bounds = b
}

// FinalizeOptions controls conversion to a drawable buffer.
type FinalizeOptions struct {
	// SmoothNormals uses vertex normals instead of flat face normals.
	SmoothNormals bool
}

// Finalize converts the mesh into a flat drawable buffer. Triangles are
// unrolled (three vertices each) and grouped by ascending material slot.
// Stale normals are recomputed; bounds always are.
func (m *Mesh) Finalize(opts FinalizeOptions) *Buffer {
	if len(m.FaceNormals) != len(m.Faces) || len(m.VertexNormals) != len(m.Vertices) {
		m.ComputeNormals()
	}
	m.ComputeBounds()

	byMaterial := make(map[int][]int)
	for i, f := range m.Faces {
		byMaterial[f.Material] = append(byMaterial[f.Material], i)
	}
	materials := make([]int, 0, len(byMaterial))
	for mat := range byMaterial {
		materials = append(materials, mat)
	}
	sort.Ints(materials)

	buf := &Buffer{
		Vertices: make([]Vertex, 0, len(m.Faces)*3),
		Indices:  make([]uint32, 0, len(m.Faces)*3),
		Groups:   make([]MaterialGroup, 0, len(materials)),
		Bounds:   m.Bounds,
	}

	for _, mat := range materials {
		start := int32(len(buf.Indices))
		for _, fi := range byMaterial[mat] {
			f := m.Faces[fi]
			for _, vi := range [3]int{f.A, f.B, f.C} {
				n := m.FaceNormals[fi]
				if opts.SmoothNormals {
					n = m.VertexNormals[vi]
				}
				buf.Indices = append(buf.Indices, uint32(len(buf.Vertices)))
				buf.Vertices = append(buf.Vertices, Vertex{
					Position: m.Vertices[vi].Array(),
					Normal:   unitOrUp(n).Array(),
				})
			}
		}
		buf.Groups = append(buf.Groups, MaterialGroup{
			Material:   mat,
			StartIndex: start,
			IndexCount: int32(len(buf.Indices)) - start,
		})
	}

	return buf
}

// invalidate drops derived data after an edit.
func (m *Mesh) invalidate() {
	m.FaceNormals = nil
	m.VertexNormals = nil
	m.Bounds = emptyBounds()
}

func emptyBounds() Bounds {
	return Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
}

// unitOrUp normalizes n, falling back to +Y for degenerate triangles.
func unitOrUp(n math.Vec3) math.Vec3 {
	if n.Length() < 0.0001 {
		return math.Vec3{Y: 1}
	}
	return n.Normalize()
}

// Box returns an axis-aligned box spanning lo..hi: 8 vertices and 6 quads
// (12 triangles) wound counter-clockwise when seen from outside.
func Box(lo, hi math.Vec3, material int) *Mesh {
	m := New(8, 12)
	AppendBox(m, lo, hi, material)
	return m
}

// AppendBox adds a box to m without a separate merge.
func AppendBox(m *Mesh, lo, hi math.Vec3, material int) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices,
		math.Vec3{X: lo.X, Y: lo.Y, Z: lo.Z},
		math.Vec3{X: hi.X, Y: lo.Y, Z: lo.Z},
		math.Vec3{X: hi.X, Y: hi.Y, Z: lo.Z},
		math.Vec3{X: lo.X, Y: hi.Y, Z: lo.Z},
		math.Vec3{X: lo.X, Y: lo.Y, Z: hi.Z},
		math.Vec3{X: hi.X, Y: lo.Y, Z: hi.Z},
		math.Vec3{X: hi.X, Y: hi.Y, Z: hi.Z},
		math.Vec3{X: lo.X, Y: hi.Y, Z: hi.Z},
	)
	for _, q := range boxQuads {
		m.AddQuad(base+q[0], base+q[1], base+q[2], base+q[3], material)
	}
}

var boxQuads = [6][4]int{
	{0, 3, 2, 1}, // -Z
	{4, 5, 6, 7}, // +Z
	{0, 1, 5, 4}, // -Y
	{3, 7, 6, 2}, // +Y
	{0, 4, 7, 3}, // -X
	{1, 2, 6, 5}, // +X
}
