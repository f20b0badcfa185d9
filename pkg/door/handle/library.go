// Package handle holds the fixed door handle meshes and places copies of
// them on door leaves.
package handle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/doorsmith/pkg/math"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

// ErrUnknownType is returned when a handle tag or code is not in the enum.
var ErrUnknownType = errors.New("unknown handle type")

// Type identifies one of the fixed handle shapes. The zero value is invalid.
type Type uint8

const (
	None Type = iota + 1
	Handle01
	Handle02
	Handle03
	Handle04
)

var typeTags = [...]string{
	None:     "NONE",
	Handle01: "HANDLE_01",
	Handle02: "HANDLE_02",
	Handle03: "HANDLE_03",
	Handle04: "HANDLE_04",
}

// Types returns every handle type in declaration order.
func Types() []Type {
	return []Type{None, Handle01, Handle02, Handle03, Handle04}
}

// Valid reports whether t is a member of the enum.
func (t Type) Valid() bool {
	return t >= None && t <= Handle04
}

// String returns the serialization tag.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeTags[t]
}

// ParseType resolves a tag such as "HANDLE_02" (case-insensitive).
func ParseType(tag string) (Type, error) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	for _, t := range Types() {
		if typeTags[t] == tag {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, tag)
}

// Static handle tables in mounting space: X runs along the lever, +Y points
// away from the surface the handle is mounted on (Y=0 is the surface) and Z is
// vertical. Every shape is symmetric in Z so the back-face copy may be turned
// upside down. Tables are never handed out; Mesh returns clones.
var library = map[Type]*mesh.Mesh{
	Handle01: leverHandle(),
	Handle02: knobHandle(),
	Handle03: barPullHandle(),
	Handle04: flushPullHandle(),
}

// Mesh returns a private copy of the handle's table, or nil for None and
// unknown types.
func Mesh(t Type) *mesh.Mesh {
	src, ok := library[t]
	if !ok {
		return nil
	}
	return src.Clone()
}

// FaceCount returns the number of triangles in the handle's table.
func FaceCount(t Type) int {
	src, ok := library[t]
	if !ok {
		return 0
	}
	return len(src.Faces)
}

// leverHandle: square rose, round-ish neck, lever arm reaching towards +X.
func leverHandle() *mesh.Mesh {
	m := mesh.New(24, 36)
	mesh.AppendBox(m, math.Vec3{X: -2.5, Y: 0, Z: -4}, math.Vec3{X: 2.5, Y: 1, Z: 4}, 0)
	mesh.AppendBox(m, math.Vec3{X: -0.8, Y: 1, Z: -0.8}, math.Vec3{X: 0.8, Y: 4, Z: 0.8}, 0)
	mesh.AppendBox(m, math.Vec3{X: -0.8, Y: 4, Z: -1}, math.Vec3{X: 12, Y: 5.5, Z: 1}, 0)
	return m
}

// knobHandle: square rose with an octagonal knob.
func knobHandle() *mesh.Mesh {
	m := mesh.New(24, 40)
	mesh.AppendBox(m, math.Vec3{X: -3, Y: 0, Z: -3}, math.Vec3{X: 3, Y: 1, Z: 3}, 0)
	appendOctagonalPrism(m, 2.5, 1, 6)
	return m
}

// barPullHandle: vertical bar on two standoffs.
func barPullHandle() *mesh.Mesh {
	m := mesh.New(24, 36)
	mesh.AppendBox(m, math.Vec3{X: -1, Y: 0, Z: -10}, math.Vec3{X: 1, Y: 4, Z: -8}, 0)
	mesh.AppendBox(m, math.Vec3{X: -1, Y: 0, Z: 8}, math.Vec3{X: 1, Y: 4, Z: 10}, 0)
	mesh.AppendBox(m, math.Vec3{X: -1.2, Y: 4, Z: -14}, math.Vec3{X: 1.2, Y: 6, Z: 14}, 0)
	return m
}

// flushPullHandle: thin plate with a shallow grip.
func flushPullHandle() *mesh.Mesh {
	m := mesh.New(16, 24)
	mesh.AppendBox(m, math.Vec3{X: -2, Y: 0, Z: -7}, math.Vec3{X: 2, Y: 0.6, Z: 7}, 0)
	mesh.AppendBox(m, math.Vec3{X: -1, Y: 0.6, Z: -5}, math.Vec3{X: 1, Y: 1.6, Z: 5}, 0)
	return m
}

// appendOctagonalPrism adds a prism around the Y axis from y0 to y1:
// 16 vertices, 8 side quads and two fan-triangulated caps (28 triangles).
func appendOctagonalPrism(m *mesh.Mesh, radius, y0, y1 float32) {
	const sides = 8
	base := len(m.Vertices)
	for _, y := range [2]float32{y0, y1} {
		for k := 0; k < sides; k++ {
			angle := (float32(k) + 0.5) * 2 * math.Pi / sides
			s, c := math32.Sincos(angle)
			m.AddVertex(math.Vec3{X: radius * c, Y: y, Z: radius * s})
		}
	}

	bottom := func(k int) int { return base + k%sides }
	top := func(k int) int { return base + sides + k%sides }

	for k := 0; k < sides; k++ {
		m.AddQuad(bottom(k), top(k), top(k+1), bottom(k+1), 0)
	}
	for k := 1; k < sides-1; k++ {
		m.AddFace(bottom(0), bottom(k), bottom(k+1), 0)
		m.AddFace(top(0), top(k+1), top(k), 0)
	}
}
