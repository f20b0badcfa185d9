package handle

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/doorsmith/pkg/math"
)

func TestFaceCounts(t *testing.T) {
	want := map[Type]int{
		None:     0,
		Handle01: 36,
		Handle02: 40,
		Handle03: 36,
		Handle04: 24,
	}
	for typ, n := range want {
		if got := FaceCount(typ); got != n {
			t.Errorf("FaceCount(%s) = %d, want %d", typ, got, n)
		}
		m := Mesh(typ)
		if typ == None {
			if m != nil {
				t.Errorf("Mesh(NONE) = %v, want nil", m)
			}
			continue
		}
		if len(m.Faces) != n {
			t.Errorf("Mesh(%s) faces = %d, want %d", typ, len(m.Faces), n)
		}
		if err := m.Validate(1); err != nil {
			t.Errorf("Mesh(%s): %v", typ, err)
		}
	}
}

func TestTablesAreClosedAndOutward(t *testing.T) {
	for _, typ := range Types()[1:] {
		m := Mesh(typ)
		m.ComputeNormals()
		m.ComputeBounds()
		center := m.Bounds.Center()

		// Signed volume of a closed, outward-wound solid is positive.
		var volume float32
		for _, f := range m.Faces {
			a := m.Vertices[f.A].Sub(center)
			b := m.Vertices[f.B].Sub(center)
			c := m.Vertices[f.C].Sub(center)
			volume += a.Dot(b.Cross(c)) / 6
		}
		if volume <= 0 {
			t.Errorf("%s signed volume = %v, want > 0", typ, volume)
		}
		if m.Bounds.Min.Y != 0 {
			t.Errorf("%s does not sit on its mounting surface: min y = %v", typ, m.Bounds.Min.Y)
		}
	}
}

func TestMeshReturnsPrivateCopies(t *testing.T) {
	a := Mesh(Handle01)
	b := Mesh(Handle01)
	a.Vertices[0] = math.Vec3{X: 999}
	a.Faces[0].Material = 4
	if b.Vertices[0].X == 999 || b.Faces[0].Material == 4 {
		t.Fatal("handle copies share buffers")
	}
	if c := Mesh(Handle01); c.Vertices[0].X == 999 {
		t.Fatal("library table was mutated through a copy")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"NONE", None, false},
		{"HANDLE_01", Handle01, false},
		{"handle_04", Handle04, false},
		{" HANDLE_03 ", Handle03, false},
		{"HANDLE_05", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownType) {
				t.Errorf("ParseType(%q) err = %v, want ErrUnknownType", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseType(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if Type(0).Valid() || Type(9).Valid() {
		t.Error("out-of-enum values report Valid")
	}
}

func TestPlaceNone(t *testing.T) {
	if m := Place(Request{Type: None, Face: Front, DoorSide: Left}); m != nil {
		t.Errorf("Place(NONE) = %v, want nil", m)
	}
}

func TestPlaceTowardsLatchEdge(t *testing.T) {
	const eps = 1e-3
	base := Request{
		Type:           Handle01,
		FrameWidth:     100,
		FrameSize:      5,
		FrameThickness: 20,
		DoorRatio:      0.3,
		Material:       4,
	}

	// Handle01 rose spans x [-2.5, 2.5] and the lever reaches x = 12, so the
	// expected extents follow from where the mount axis lands.
	tests := []struct {
		name       string
		side       Side
		split      bool
		minX, maxX float32
	}{
		{"single left", Left, false, 7.5, 22},
		{"single right", Right, false, -22, -7.5},
		// left leaf is 27 wide: axis at 17, lever turned towards the hinge at 0
		{"split left", Left, true, 5, 19.5},
		// right leaf is 63 wide: axis at -53, lever towards the hinge at 0
		{"split right", Right, true, -55.5, -41},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.DoorSide = tt.side
			req.Split = tt.split

			front := req
			front.Face = Front
			back := req
			back.Face = Back

			pair := Place(front)
			pair.Merge(Place(back))
			pair.ComputeBounds()

			if got := pair.Bounds.Min.X; math32.Abs(got-tt.minX) > eps {
				t.Errorf("min x = %v, want %v", got, tt.minX)
			}
			if got := pair.Bounds.Max.X; math32.Abs(got-tt.maxX) > eps {
				t.Errorf("max x = %v, want %v", got, tt.maxX)
			}

			// One copy on each face, each standing proud of it.
			depth := Depth(req.FrameThickness)
			if got := pair.Bounds.Max.Z; math32.Abs(got-(depth+5.5)) > eps {
				t.Errorf("max z = %v, want %v", got, depth+5.5)
			}
			if got := pair.Bounds.Min.Z; math32.Abs(got+(depth+5.5)) > eps {
				t.Errorf("min z = %v, want %v", got, -(depth + 5.5))
			}
			if n := pair.CountMaterial(4); n != 2*FaceCount(Handle01) {
				t.Errorf("handle faces = %d, want %d", n, 2*FaceCount(Handle01))
			}
		})
	}
}

func TestPlaceFaceDepth(t *testing.T) {
	req := Request{Type: Handle04, Face: Front, DoorSide: Left, FrameWidth: 100, FrameSize: 5, FrameThickness: 20}
	m := Place(req)
	m.ComputeBounds()
	if got, want := m.Bounds.Min.Z, Depth(20); math32.Abs(got-want) > 1e-4 {
		t.Errorf("front copy base z = %v, want %v", got, want)
	}

	req.Face = Back
	m = Place(req)
	m.ComputeBounds()
	if got, want := m.Bounds.Max.Z, -Depth(20); math32.Abs(got-want) > 1e-4 {
		t.Errorf("back copy base z = %v, want %v", got, want)
	}
}

func TestPlaceElevation(t *testing.T) {
	req := Request{Type: Handle03, Face: Front, DoorSide: Left, FrameWidth: 100, FrameSize: 5, FrameThickness: 20, Elevation: -7}
	m := Place(req)
	m.ComputeBounds()
	if c := m.Bounds.Center(); math32.Abs(c.Y+7) > 1e-4 {
		t.Errorf("handle centre y = %v, want -7", c.Y)
	}
}

func TestLeafWidth(t *testing.T) {
	r := Request{FrameWidth: 100, FrameSize: 5, DoorRatio: 0.25}
	if got := r.LeafWidth(); got != 90 {
		t.Errorf("single leaf width = %v, want 90", got)
	}
	r.Split = true
	r.DoorSide = Left
	if got := r.LeafWidth(); math32.Abs(got-22.5) > 1e-4 {
		t.Errorf("left leaf width = %v, want 22.5", got)
	}
	r.DoorSide = Right
	if got := r.LeafWidth(); math32.Abs(got-67.5) > 1e-4 {
		t.Errorf("right leaf width = %v, want 67.5", got)
	}
}
