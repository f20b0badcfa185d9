package door

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/doorsmith/pkg/math"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

func vec(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

// signedVolume is positive for a closed, outward-wound solid.
func signedVolume(m *mesh.Mesh) float32 {
	var v float32
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f.A], m.Vertices[f.B], m.Vertices[f.C]
		v += a.Dot(b.Cross(c)) / 6
	}
	return v
}

func TestFrameTopology(t *testing.T) {
	p := DefaultParameters()
	m := buildFrame(p)
	if len(m.Vertices) != FrameVertexCount || len(m.Faces) != FrameFaceCount {
		t.Fatalf("frame = %d vertices, %d faces", len(m.Vertices), len(m.Faces))
	}

	// Every edge is shared by exactly two faces, once in each direction.
	edges := make(map[[2]int]int)
	for _, f := range m.Faces {
		for _, e := range [3][2]int{{f.A, f.B}, {f.B, f.C}, {f.C, f.A}} {
			edges[e]++
		}
	}
	for e, n := range edges {
		if n != 1 || edges[[2]int{e[1], e[0]}] != 1 {
			t.Fatalf("edge %v used %d times, reverse %d times", e, n, edges[[2]int{e[1], e[0]}])
		}
	}

	// U section: two jambs and the head, less the bevels.
	fs, h, w, th := p.FrameSize, p.FrameHeight, p.FrameWidth, p.FrameThickness
	full := (2*fs*(h-fs) + w*fs) * th
	if v := signedVolume(m); v <= 0 || v > full {
		t.Errorf("frame volume = %v, want in (0, %v]", v, full)
	}
}

func TestFrameJambsWiderThanOpening(t *testing.T) {
	tests := []struct {
		name          string
		width, height float32
	}{
		{"narrow", 8, 200},
		{"short", 100, 3},
		{"tiny", 6, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustNew(t, 1, Properties{KeyFrameWidth: tt.width, KeyFrameHeight: tt.height})
			if n := d.Geometry().CountMaterial(SlotDoor); n != 0 {
				t.Errorf("leaf faces = %d, want none", n)
			}

			p := d.Params()
			m := buildFrame(p)
			slab := p.FrameWidth * p.FrameHeight * p.FrameThickness
			if v := signedVolume(m); v <= 0 || v > slab {
				t.Errorf("frame volume = %v, want in (0, %v]", v, slab)
			}
			m.ComputeBounds()
			hw := p.FrameWidth / 2
			if m.Bounds.Min.X < -hw-1e-3 || m.Bounds.Max.X > hw+1e-3 {
				t.Errorf("bounds = %+v, want x within ±%v", m.Bounds, hw)
			}
		})
	}
}

func TestFrameStandsUprightAndCentred(t *testing.T) {
	p := DefaultParameters()
	p.FrameWidth, p.FrameHeight, p.FrameThickness = 120, 210, 18
	m := buildFrame(p)
	m.ComputeBounds()

	const eps = 1e-3
	b := m.Bounds
	want := mesh.Bounds{Min: vec(-60, -105, -9), Max: vec(60, 105, 9)}
	if !b.Min.ApproxEqual(want.Min, eps) || !b.Max.ApproxEqual(want.Max, eps) {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}

	// The opening is clear: no frame vertex lies inside it.
	hw := p.UsableWidth() / 2
	top := p.FrameHeight/2 - p.FrameSize
	for _, v := range m.Vertices {
		if v.X > -hw+eps && v.X < hw-eps && v.Y < top-eps {
			t.Fatalf("frame vertex %v inside the opening", v)
		}
	}
}

func TestLeafShapes(t *testing.T) {
	spec := LeafSpec{Width: 45, Height: 195, Depth: 18.5, Bottom: -100, Material: SlotDoor, Glass: SlotGlass}
	for _, v := range Variants() {
		t.Run(v.Name, func(t *testing.T) {
			m := v.Leaf.Build(spec)
			if err := m.Validate(SlotCount); err != nil {
				t.Fatal(err)
			}
			if signedVolume(m) <= 0 {
				t.Error("leaf is not wound outward")
			}

			b := m.MaterialBounds(SlotDoor)
			const eps = 1e-3
			if math32.Abs(b.Min.X) > eps || math32.Abs(b.Max.X-spec.Width) > eps ||
				math32.Abs(b.Min.Y-spec.Bottom) > eps || math32.Abs(b.Max.Y-(spec.Bottom+spec.Height)) > eps {
				t.Errorf("body bounds = %+v", b)
			}

			glazedShape := v.Code == 4 || v.Code == 6
			if got := m.CountMaterial(SlotGlass) > 0; got != glazedShape {
				t.Errorf("glass faces present = %v, want %v", got, glazedShape)
			}
			if glazedShape {
				g := m.MaterialBounds(SlotGlass)
				if g.Min.X <= b.Min.X || g.Max.X >= b.Max.X || g.Size().Z >= spec.Depth {
					t.Errorf("glass %+v not inside body %+v", g, b)
				}
			}
		})
	}

	if n := len(PlainLeaf.Build(spec).Faces); n != 12 {
		t.Errorf("plain leaf faces = %d, want 12", n)
	}
}

func TestRightLeafIsMirrored(t *testing.T) {
	d := mustNew(t, 2, Properties{KeyOpenDirection: "RIGHT", KeyHandleType: "NONE"})
	if v := signedVolume(d.Geometry().Mesh()); v <= 0 {
		t.Errorf("door volume = %v, mirrored leaf wound inward", v)
	}
}
