package door

import (
	"github.com/Faultbox/doorsmith/pkg/math"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

// Proportions shared by the panelled and glazed leaves.
const (
	panelMargin  float32 = 0.15 // of the shorter leaf side
	panelRaise   float32 = 0.1  // of the leaf depth, capped at maxRaise
	maxRaise     float32 = 1
	railCount            = 4
	railHeight   float32 = 2
	glassDepth   float32 = 0.2 // of the leaf depth
	stileFactor  float32 = 0.12
	maxStile     float32 = 8
	visionBottom float32 = 0.55 // of the leaf height
)

type rect struct{ x0, y0, x1, y1 float32 }

func (r rect) valid() bool { return r.x1 > r.x0 && r.y1 > r.y0 }

func margin(s LeafSpec) float32 {
	return min(s.Width, s.Height) * panelMargin
}

func raise(s LeafSpec) float32 {
	return min(s.Depth*panelRaise, maxRaise)
}

// appendRaised adds a raised block over r on both faces of the leaf.
func appendRaised(m *mesh.Mesh, s LeafSpec, r rect) {
	if !r.valid() {
		return
	}
	half, h := s.Depth/2, raise(s)
	mesh.AppendBox(m, math.Vec3{X: r.x0, Y: r.y0, Z: half}, math.Vec3{X: r.x1, Y: r.y1, Z: half + h}, s.Material)
	mesh.AppendBox(m, math.Vec3{X: r.x0, Y: r.y0, Z: -half - h}, math.Vec3{X: r.x1, Y: r.y1, Z: -half}, s.Material)
}

// glazed builds a leaf body with the given windows cut out and glass panes
// filling them. Windows must not overlap and must lie inside the leaf.
func glazed(s LeafSpec, windows []rect) *mesh.Mesh {
	m := mesh.New(8*(4*len(windows)+1), 12*(4*len(windows)+1))
	half := s.Depth / 2
	body := func(r rect) {
		if r.valid() {
			mesh.AppendBox(m, math.Vec3{X: r.x0, Y: r.y0, Z: -half}, math.Vec3{X: r.x1, Y: r.y1, Z: half}, s.Material)
		}
	}

	// Rows between windows are solid; each window row gets the stiles
	// either side of it.
	top := s.Bottom + s.Height
	y := s.Bottom
	for _, w := range windows {
		body(rect{0, y, s.Width, w.y0})
		body(rect{0, w.y0, w.x0, w.y1})
		body(rect{w.x1, w.y0, s.Width, w.y1})
		g := s.Depth * glassDepth / 2
		mesh.AppendBox(m, math.Vec3{X: w.x0, Y: w.y0, Z: -g}, math.Vec3{X: w.x1, Y: w.y1, Z: g}, s.Glass)
		y = w.y1
	}
	body(rect{0, y, s.Width, top})
	return m
}

// RaisedPanelLeaf carries one raised centre panel on each face.
var RaisedPanelLeaf LeafShapeBuilder = LeafShapeFunc(func(s LeafSpec) *mesh.Mesh {
	m := PlainLeaf.Build(s)
	mg := margin(s)
	appendRaised(m, s, rect{mg, s.Bottom + mg, s.Width - mg, s.Bottom + s.Height - mg})
	return m
})

// TwoPanelLeaf carries two stacked raised panels on each face.
var TwoPanelLeaf LeafShapeBuilder = LeafShapeFunc(func(s LeafSpec) *mesh.Mesh {
	m := PlainLeaf.Build(s)
	mg := margin(s)
	mid := s.Bottom + s.Height/2
	appendRaised(m, s, rect{mg, s.Bottom + mg, s.Width - mg, mid - mg/2})
	appendRaised(m, s, rect{mg, mid + mg/2, s.Width - mg, s.Bottom + s.Height - mg})
	return m
})

// VisionPanelLeaf is solid with a glazed window in its upper part.
var VisionPanelLeaf LeafShapeBuilder = LeafShapeFunc(func(s LeafSpec) *mesh.Mesh {
	mg := margin(s)
	w := rect{mg, s.Bottom + s.Height*visionBottom, s.Width - mg, s.Bottom + s.Height - mg}
	return glazed(s, []rect{w})
})

// RailLeaf carries evenly spaced horizontal rails on each face.
var RailLeaf LeafShapeBuilder = LeafShapeFunc(func(s LeafSpec) *mesh.Mesh {
	m := PlainLeaf.Build(s)
	step := s.Height / (railCount + 1)
	for i := 1; i <= railCount; i++ {
		y := s.Bottom + step*float32(i)
		appendRaised(m, s, rect{0, y - railHeight/2, s.Width, y + railHeight/2})
	}
	return m
})

// GlassLeaf is a full-height glazed leaf: stiles, top and bottom rails and a
// mid rail framing two panes.
var GlassLeaf LeafShapeBuilder = LeafShapeFunc(func(s LeafSpec) *mesh.Mesh {
	stile := min(min(s.Width, s.Height)*stileFactor, maxStile)
	mid := s.Bottom + s.Height/2
	lower := rect{stile, s.Bottom + stile, s.Width - stile, mid - stile/2}
	upper := rect{stile, mid + stile/2, s.Width - stile, s.Bottom + s.Height - stile}
	return glazed(s, []rect{lower, upper})
})
