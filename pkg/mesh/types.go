// Package mesh provides an editable triangle mesh and the immutable drawable
// buffer produced from it.
package mesh

import "github.com/Faultbox/doorsmith/pkg/math"

// Face is a triangle referencing three vertex indices and a material slot.
type Face struct {
	A, B, C  int
	Material int
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Empty reports whether the box holds no points.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Mesh is an indexed, editable triangle mesh. The normal and bounds fields are
// derived; call ComputeNormals and ComputeBounds after editing.
type Mesh struct {
	Vertices []math.Vec3
	Faces    []Face

	FaceNormals   []math.Vec3
	VertexNormals []math.Vec3
	Bounds        Bounds
}

// Vertex is the interleaved GPU vertex layout of a finalized buffer.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// MaterialGroup is a contiguous run of triangles sharing one material slot.
type MaterialGroup struct {
	Material   int
	StartIndex int32
	IndexCount int32
}

// Buffer is the flat drawable form of a mesh: unrolled triangles grouped by
// material, with unit-length normals. A Buffer is never modified after
// Finalize returns it.
type Buffer struct {
	Vertices []Vertex
	Indices  []uint32
	Groups   []MaterialGroup
	Bounds   Bounds
}

// TriangleCount returns the number of triangles in the buffer.
func (b *Buffer) TriangleCount() int {
	return len(b.Indices) / 3
}

// WireframeVertexCount is the number of line endpoints Wireframe returns.
const WireframeVertexCount = 24

// Wireframe returns the 12 edges of the box grown by padding on every side,
// as pairs of line endpoints.
func (b Bounds) Wireframe(padding float32) []math.Vec3 {
	lo := b.Min.Sub(math.Vec3{X: padding, Y: padding, Z: padding})
	hi := b.Max.Add(math.Vec3{X: padding, Y: padding, Z: padding})
	c := [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z}, {X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	out := make([]math.Vec3, 0, WireframeVertexCount)
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		out = append(out,
			c[i], c[j], // bottom
			c[i+4], c[j+4], // top
			c[i], c[i+4], // vertical
		)
	}
	return out
}
