package door

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/doorsmith/pkg/door/handle"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

func mustNew(t *testing.T, code int, props Properties) *Door {
	t.Helper()
	d, err := NewOfType(code, props)
	if err != nil {
		t.Fatalf("NewOfType(%d): %v", code, err)
	}
	return d
}

func TestTopologyWellFormed(t *testing.T) {
	for _, v := range Variants() {
		for _, dir := range OpenDirections() {
			for _, ht := range handle.Types() {
				for _, ratio := range []float32{0, 0.3, 0.5, 1} {
					d, err := New(v, Properties{KeyOpenDirection: dir, KeyHandleType: ht, KeyDoorRatio: ratio})
					if err != nil {
						t.Fatalf("%s/%s/%s/%v: %v", v.Name, dir, ht, ratio, err)
					}
					m := d.Geometry().Mesh()
					if err := m.Validate(SlotCount); err != nil {
						t.Errorf("%s/%s/%s/%v: %v", v.Name, dir, ht, ratio, err)
					}
					buf := d.Geometry().Buffer()
					if buf.TriangleCount() != len(m.Faces) {
						t.Errorf("buffer triangles = %d, mesh faces = %d", buf.TriangleCount(), len(m.Faces))
					}
				}
			}
		}
	}
}

func TestDefaultsAndID(t *testing.T) {
	a := mustNew(t, 1, nil)
	b := mustNew(t, 1, nil)
	if a.ID() == b.ID() {
		t.Error("two doors share an ID")
	}
	if a.Type() != 1 {
		t.Errorf("Type = %d, want 1", a.Type())
	}
	if a.Params() != DefaultParameters() {
		t.Errorf("params = %+v", a.Params())
	}
}

func TestClampOnConstruction(t *testing.T) {
	tests := []struct {
		props Properties
		size  float32
		ratio float32
	}{
		{Properties{KeyFrameSize: 1}, 5, 0.5},
		{Properties{KeyFrameSize: 999}, 25, 0.5},
		{Properties{KeyDoorRatio: -1}, 5, 0},
		{Properties{KeyDoorRatio: 2}, 5, 1},
	}
	for _, tt := range tests {
		d := mustNew(t, 1, tt.props)
		if d.FrameSize() != tt.size || d.DoorRatio() != tt.ratio {
			t.Errorf("%v: frameSize=%v doorRatio=%v, want %v %v", tt.props, d.FrameSize(), d.DoorRatio(), tt.size, tt.ratio)
		}
	}
}

func TestInvalidEnumOnConstruction(t *testing.T) {
	_, err := NewOfType(1, Properties{KeyOpenDirection: "DIAGONAL"})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
	_, err = NewOfType(1, Properties{KeyHandleType: "HANDLE_07"})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestUnknownVariant(t *testing.T) {
	for _, code := range []int{0, 7, -1} {
		if _, err := ClassFor(code); !errors.Is(err, ErrUnimplementedVariant) {
			t.Errorf("ClassFor(%d) err = %v", code, err)
		}
	}
	if _, err := New(Variant{Code: 42}, nil); !errors.Is(err, ErrUnimplementedVariant) {
		t.Errorf("New without leaf shape err = %v", err)
	}
	vs := Variants()
	if len(vs) != 6 {
		t.Fatalf("len(Variants) = %d, want 6", len(vs))
	}
	for i, v := range vs {
		if v.Code != i+1 {
			t.Errorf("Variants()[%d].Code = %d", i, v.Code)
		}
	}
}

func TestNoDoorsIsFrameOnly(t *testing.T) {
	for _, v := range Variants() {
		d, err := New(v, Properties{KeyOpenDirection: "NO_DOORS"})
		if err != nil {
			t.Fatal(err)
		}
		m := d.Geometry().Mesh()
		if len(m.Vertices) != FrameVertexCount || len(m.Faces) != FrameFaceCount {
			t.Errorf("%s: %d vertices, %d faces; want %d, %d", v.Name, len(m.Vertices), len(m.Faces), FrameVertexCount, FrameFaceCount)
		}
		if n := m.CountMaterial(SlotFrame); n != FrameFaceCount {
			t.Errorf("%s: frame faces = %d", v.Name, n)
		}
	}
}

func TestSplitLeafWidths(t *testing.T) {
	const eps = 1e-3
	for _, ratio := range []float32{0.5, 0.3} {
		d := mustNew(t, 1, Properties{KeyOpenDirection: "BOTH_SIDES", KeyDoorRatio: ratio, KeyHandleType: "NONE"})
		m := d.Geometry().Mesh()
		left := m.MaterialBounds(SlotLeftDoor).Size().X
		right := m.MaterialBounds(SlotRightDoor).Size().X
		usable := d.Params().UsableWidth()

		if math32.Abs(left-usable*ratio) > eps || math32.Abs(right-usable*(1-ratio)) > eps {
			t.Errorf("ratio %v: leaves %v / %v, want %v / %v", ratio, left, right, usable*ratio, usable*(1-ratio))
		}
		if m.CountMaterial(SlotDoor) != 0 {
			t.Errorf("ratio %v: split door uses the single-leaf slot", ratio)
		}

		// The leaves meet inside the opening without overlapping.
		lb, rb := m.MaterialBounds(SlotLeftDoor), m.MaterialBounds(SlotRightDoor)
		if math32.Abs(lb.Min.X+usable/2) > eps || math32.Abs(rb.Max.X-usable/2) > eps {
			t.Errorf("ratio %v: leaves span [%v, %v], want ±%v", ratio, lb.Min.X, rb.Max.X, usable/2)
		}
		if math32.Abs(lb.Max.X-rb.Min.X) > eps {
			t.Errorf("ratio %v: leaves meet at %v and %v", ratio, lb.Max.X, rb.Min.X)
		}
	}
}

func TestSingleLeafFillsOpening(t *testing.T) {
	const eps = 1e-3
	for _, dir := range []string{"LEFT", "RIGHT"} {
		d := mustNew(t, 1, Properties{KeyOpenDirection: dir})
		m := d.Geometry().Mesh()
		b := m.MaterialBounds(SlotDoor)
		usable := d.Params().UsableWidth()
		if math32.Abs(b.Min.X+usable/2) > eps || math32.Abs(b.Max.X-usable/2) > eps {
			t.Errorf("%s: leaf spans [%v, %v], want ±%v", dir, b.Min.X, b.Max.X, usable/2)
		}
		if math32.Abs(b.Min.Y+d.FrameHeight()/2) > eps || math32.Abs(b.Max.Y-(d.FrameHeight()/2-d.FrameSize())) > eps {
			t.Errorf("%s: leaf height span [%v, %v]", dir, b.Min.Y, b.Max.Y)
		}
		if depth := b.Size().Z; math32.Abs(depth-d.Params().LeafDepth()) > eps {
			t.Errorf("%s: leaf depth = %v", dir, depth)
		}
	}
}

func TestHandleFaceCounts(t *testing.T) {
	leaves := map[string]int{"LEFT": 1, "RIGHT": 1, "BOTH_SIDES": 2, "NO_DOORS": 0}
	for _, v := range Variants() {
		for dir, n := range leaves {
			for _, ht := range handle.Types() {
				d, err := New(v, Properties{KeyOpenDirection: dir, KeyHandleType: ht})
				if err != nil {
					t.Fatal(err)
				}
				got := d.Geometry().CountMaterial(SlotHandle)
				want := n * 2 * handle.FaceCount(ht)
				if got != want {
					t.Errorf("%s/%s/%s: handle faces = %d, want %d", v.Name, dir, ht, got, want)
				}
			}
		}
	}
}

func TestHandlesSitInsideTheirLeaf(t *testing.T) {
	for _, dir := range []string{"LEFT", "RIGHT", "BOTH_SIDES"} {
		for _, ratio := range []float32{0.3, 0.5, 0.7} {
			d := mustNew(t, 1, Properties{KeyOpenDirection: dir, KeyDoorRatio: ratio, KeyFrameWidth: 160})
			m := d.Geometry().Mesh()
			hb := m.MaterialBounds(SlotHandle)
			usable := d.Params().UsableWidth()
			if hb.Min.X < -usable/2 || hb.Max.X > usable/2 {
				t.Errorf("%s/%v: handles span [%v, %v] outside the opening ±%v", dir, ratio, hb.Min.X, hb.Max.X, usable/2)
			}
		}
	}

	// Split handles flank the meeting edge.
	d := mustNew(t, 1, Properties{KeyOpenDirection: "BOTH_SIDES", KeyDoorRatio: 0.3, KeyFrameWidth: 160})
	m := d.Geometry().Mesh()
	meet := m.MaterialBounds(SlotLeftDoor).Max.X
	var left, right int
	for _, f := range m.Faces {
		if f.Material != SlotHandle {
			continue
		}
		x := m.Vertices[f.A].X
		if x < meet {
			left++
		} else {
			right++
		}
		if math32.Abs(x-meet) > 25 {
			t.Fatalf("handle vertex x=%v is far from the meeting edge %v", x, meet)
		}
	}
	if left != right {
		t.Errorf("handle faces left/right of the meeting edge = %d/%d", left, right)
	}
}

func TestNoneHasNoHandleFaces(t *testing.T) {
	d := mustNew(t, 2, Properties{KeyHandleType: "NONE", KeyOpenDirection: "BOTH_SIDES"})
	if n := d.Geometry().CountMaterial(SlotHandle); n != 0 {
		t.Errorf("handle faces = %d, want 0", n)
	}
}

func TestGeometrySetterFiresOnce(t *testing.T) {
	setters := map[string]func(*Door) error{
		"frameWidth":     func(d *Door) error { return d.SetFrameWidth(120) },
		"frameHeight":    func(d *Door) error { return d.SetFrameHeight(210) },
		"frameThickness": func(d *Door) error { return d.SetFrameThickness(15) },
		"frameSize":      func(d *Door) error { return d.SetFrameSize(10) },
		"doorRatio":      func(d *Door) error { return d.SetDoorRatio(0.2) },
		"openDirection":  func(d *Door) error { return d.SetOpenDirection(OpenBothSides) },
		"handleType":     func(d *Door) error { return d.SetHandleType(Handle02) },
		"set":            func(d *Door) error { return d.Set(Properties{KeyFrameWidth: 90, KeyFrameHeight: 190}) },
	}
	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			d := mustNew(t, 1, nil)
			var events []Event
			d.Subscribe(func(ev Event) { events = append(events, ev) })

			before := d.Geometry()
			if err := set(d); err != nil {
				t.Fatal(err)
			}
			if len(events) != 1 || events[0].Kind != EventGeometryUpdated || events[0].Door != d {
				t.Fatalf("events = %+v, want one geometryUpdated", events)
			}
			if d.Geometry() == before {
				t.Error("geometry reference was not replaced")
			}
		})
	}
}

func TestColorSetterIsNonStructural(t *testing.T) {
	d := mustNew(t, 4, nil)
	var kinds []EventKind
	d.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	before := d.Geometry()
	faces := before.FaceCount()
	d.SetDoorColor(RGB(0x112233))
	d.SetGlassColor(RGB(0x445566))

	if d.Geometry() != before || d.Geometry().FaceCount() != faces {
		t.Error("color change rebuilt geometry")
	}
	if !reflect.DeepEqual(kinds, []EventKind{EventMaterialUpdated, EventMaterialUpdated}) {
		t.Errorf("events = %v", kinds)
	}
	mats := d.Material()
	if d.DoorColor() != RGB(0x112233) || mats[SlotDoor].Color != RGB(0x112233) ||
		mats[SlotLeftDoor].Color != RGB(0x112233) || mats[SlotRightDoor].Color != RGB(0x112233) {
		t.Errorf("door slots = %v %v %v", mats[SlotDoor].Color, mats[SlotLeftDoor].Color, mats[SlotRightDoor].Color)
	}
	if !mats[SlotGlass].Transparent || mats[SlotGlass].Opacity >= 1 || mats[SlotGlass].Color != RGB(0x445566) {
		t.Errorf("glass = %+v", mats[SlotGlass])
	}
	for i, m := range mats {
		if i != SlotGlass && (m.Transparent || m.Opacity != 1) {
			t.Errorf("slot %d is transparent", i)
		}
	}

	mats[SlotFrame].Color = Color{}
	if d.Material()[SlotFrame].Color == (Color{}) {
		t.Error("Material returned the door's own table")
	}
}

func TestSetMixedPropertiesFiresBoth(t *testing.T) {
	d := mustNew(t, 1, nil)
	var kinds []EventKind
	d.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })

	if err := d.Set(Properties{KeyFrameColor: "#000000", KeyDoorRatio: 0.4}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(kinds, []EventKind{EventGeometryUpdated, EventMaterialUpdated}) {
		t.Errorf("events = %v", kinds)
	}

	kinds = nil
	if err := d.Set(Properties{KeyName: "lobby"}); err != nil {
		t.Fatal(err)
	}
	if len(kinds) != 0 || d.Name() != "lobby" {
		t.Errorf("name change: events %v, name %q", kinds, d.Name())
	}
}

func TestInvalidSetterKeepsState(t *testing.T) {
	d := mustNew(t, 1, Properties{KeyOpenDirection: "LEFT"})
	fired := 0
	d.Subscribe(func(Event) { fired++ })
	before, params := d.Geometry(), d.Params()

	if err := d.SetOpenDirection(OpenDirection(99)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("SetOpenDirection err = %v", err)
	}
	if err := d.SetHandleType(handle.Type(0)); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("SetHandleType err = %v", err)
	}
	if err := d.Set(Properties{KeyFrameWidth: 300, KeyHandleType: "BROKEN"}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("Set err = %v", err)
	}
	if d.Geometry() != before || d.Params() != params || fired != 0 {
		t.Error("failed update changed the door")
	}
}

func TestSetterRejectsNonFinite(t *testing.T) {
	d := mustNew(t, 1, Properties{KeyOpenDirection: "BOTH_SIDES"})
	fired := 0
	d.Subscribe(func(Event) { fired++ })
	before, params := d.Geometry(), d.Params()

	nan, inf := math32.NaN(), math32.Inf(1)
	setters := []struct {
		name string
		set  func() error
	}{
		{"doorRatio NaN", func() error { return d.SetDoorRatio(nan) }},
		{"frameWidth +Inf", func() error { return d.SetFrameWidth(inf) }},
		{"frameHeight -Inf", func() error { return d.SetFrameHeight(-inf) }},
		{"frameThickness NaN", func() error { return d.SetFrameThickness(nan) }},
		{"frameSize NaN", func() error { return d.SetFrameSize(nan) }},
	}
	for _, tt := range setters {
		if err := tt.set(); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("%s: err = %v, want ErrInvalidParameter", tt.name, err)
		}
	}
	if d.Geometry() != before || d.Params() != params || fired != 0 {
		t.Error("non-finite setter changed the door")
	}
	r := d.DoorRatio()
	if r < 0 || r > 1 {
		t.Errorf("doorRatio = %v", r)
	}
}

func TestFalsyDimensionsReset(t *testing.T) {
	d := mustNew(t, 1, Properties{KeyFrameWidth: 150, KeyFrameHeight: 250, KeyFrameThickness: 30})
	_ = d.SetFrameWidth(0)
	_ = d.SetFrameHeight(-1)
	_ = d.SetFrameThickness(0)
	if d.FrameWidth() != DefaultFrameWidth || d.FrameHeight() != DefaultFrameHeight || d.FrameThickness() != DefaultFrameThickness {
		t.Errorf("dimensions = %v %v %v", d.FrameWidth(), d.FrameHeight(), d.FrameThickness())
	}
}

func TestUnsubscribe(t *testing.T) {
	d := mustNew(t, 1, nil)
	var a, b int
	idA := d.Subscribe(func(Event) { a++ })
	d.Subscribe(func(Event) { b++ })

	_ = d.SetFrameSize(8)
	if !d.Unsubscribe(idA) {
		t.Fatal("Unsubscribe returned false")
	}
	if d.Unsubscribe(idA) {
		t.Error("second Unsubscribe returned true")
	}
	_ = d.SetFrameSize(9)
	if a != 1 || b != 2 {
		t.Errorf("deliveries a=%d b=%d, want 1 2", a, b)
	}
}

func TestListenerMayReadDoor(t *testing.T) {
	d := mustNew(t, 1, nil)
	var width float32
	d.Subscribe(func(ev Event) { width = ev.Door.FrameWidth() })
	_ = d.SetFrameWidth(130)
	if width != 130 {
		t.Errorf("listener saw width %v", width)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	props := Properties{
		KeyName:           "office",
		KeyFrameSize:      12,
		KeyFrameWidth:     140,
		KeyFrameHeight:    220,
		KeyFrameThickness: 16,
		KeyDoorRatio:      0.35,
		KeyOpenDirection:  "BOTH_SIDES",
		KeyHandleType:     "HANDLE_04",
		KeyFrameColor:     "#101010",
		KeyDoorColor:      "#202020",
		KeyHandleColor:    "#303030",
		KeyGlassColor:     "#404040",
	}
	d := mustNew(t, 5, props)
	md := d.Metadata()

	if md.Type != 5 || md.ID != d.ID().String() || md.Variant != "rails" {
		t.Errorf("identity = %d %s %s", md.Type, md.ID, md.Variant)
	}
	if md.Name != "office" || md.FrameSize != 12 || md.FrameWidth != 140 || md.FrameHeight != 220 ||
		md.FrameThickness != 16 || md.DoorRatio != 0.35 || md.OpenDirection != "BOTH_SIDES" || md.HandleType != "HANDLE_04" {
		t.Errorf("metadata = %+v", md)
	}
	if md.FrameColor.Hex() != "#101010" || md.GlassColor.Hex() != "#404040" {
		t.Errorf("colors = %s %s", md.FrameColor, md.GlassColor)
	}
	if md.Faces != d.Geometry().FaceCount() {
		t.Errorf("faces = %d", md.Faces)
	}

	again, err := New(d.Variant(), md.Properties())
	if err != nil {
		t.Fatal(err)
	}
	if again.Params() != d.Params() {
		t.Errorf("rebuilt params = %+v, want %+v", again.Params(), d.Params())
	}
	if !reflect.DeepEqual(again.Geometry().Mesh().Vertices, d.Geometry().Mesh().Vertices) {
		t.Error("rebuilt door has different vertices")
	}
}

func TestSetterIdempotent(t *testing.T) {
	d := mustNew(t, 3, nil)
	_ = d.SetFrameWidth(125)
	first := d.Geometry()
	_ = d.SetFrameWidth(125)
	second := d.Geometry()
	if first == second {
		t.Error("rebuild reused the geometry value")
	}
	if !reflect.DeepEqual(first.Mesh().Vertices, second.Mesh().Vertices) || !reflect.DeepEqual(first.Mesh().Faces, second.Mesh().Faces) {
		t.Error("same setter twice produced different meshes")
	}
	if !reflect.DeepEqual(first.Buffer(), second.Buffer()) {
		t.Error("same setter twice produced different buffers")
	}
}

func TestGeometryMeshIsACopy(t *testing.T) {
	d := mustNew(t, 4, Properties{KeyOpenDirection: "BOTH_SIDES"})
	g := d.Geometry()
	faces, bounds := g.FaceCount(), g.Bounds()
	triangles := g.Buffer().TriangleCount()

	m := g.Mesh()
	m.Merge(mesh.Box(vec(0, 0, 0), vec(1000, 1000, 1000), SlotFrame))
	m.Finalize(mesh.FinalizeOptions{})

	if g.FaceCount() != faces || g.Bounds() != bounds {
		t.Errorf("published geometry changed: %d faces, bounds %+v", g.FaceCount(), g.Bounds())
	}
	if g.Buffer().TriangleCount() != triangles {
		t.Errorf("buffer triangles = %d, want %d", g.Buffer().TriangleCount(), triangles)
	}
	if n := len(g.Mesh().Faces); n != faces {
		t.Errorf("fresh copy has %d faces, want %d", n, faces)
	}
}

func TestBufferNormalsAreUnit(t *testing.T) {
	for _, opts := range [][]Option{nil, {WithSmoothNormals()}} {
		d, err := NewOfType(6, Properties{KeyOpenDirection: "BOTH_SIDES"}, opts...)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range d.Geometry().Buffer().Vertices {
			n := v.Normal
			l := math32.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
			if math32.Abs(l-1) > 1e-4 {
				t.Fatalf("vertex %d normal length %v", i, l)
			}
		}
	}
}

func TestBuildLogsAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	d, err := NewOfType(1, nil, WithLogger(zap.New(core)))
	if err != nil {
		t.Fatal(err)
	}
	_ = d.SetDoorRatio(0.1)
	entries := logs.FilterMessage("Door rebuilt").All()
	if len(entries) != 2 {
		t.Fatalf("got %d build log entries, want 2", len(entries))
	}
	if _, ok := entries[0].ContextMap()["faces"]; !ok {
		t.Error("build log carries no face count")
	}
}

func TestConcurrentReadersSeeWholeGeometry(t *testing.T) {
	d := mustNew(t, 2, Properties{KeyOpenDirection: "BOTH_SIDES"})
	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				g := d.Geometry()
				if err := g.Mesh().Validate(SlotCount); err != nil {
					t.Error(err)
					return
				}
				if g.Buffer().TriangleCount() != len(g.Mesh().Faces) {
					t.Error("buffer and mesh disagree")
					return
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		_ = d.SetDoorRatio(float32(i%10) / 10)
		d.SetHandleColor(RGB(uint32(i)))
	}
	close(stop)
	wg.Wait()
}
