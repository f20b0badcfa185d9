package door

import (
	"github.com/Faultbox/doorsmith/pkg/door/handle"
	"github.com/Faultbox/doorsmith/pkg/math"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

// LeafSpec is the box a leaf shape must fill: x in [0, Width], y in
// [Bottom, Bottom+Height] and z in [-Depth/2, Depth/2]. Right-hand leaves are
// mirrored into [-Width, 0] afterwards, so shapes are built once.
type LeafSpec struct {
	Width, Height, Depth float32
	Bottom               float32
	// Material is the slot of the leaf body.
	Material int
	// Glass is the slot of any glazing.
	Glass int
}

// LeafShapeBuilder produces the solid of one leaf. Implementations differ per
// door type; frame construction, mirroring and handle merge are shared.
type LeafShapeBuilder interface {
	Build(spec LeafSpec) *mesh.Mesh
}

// LeafShapeFunc adapts a function to LeafShapeBuilder.
type LeafShapeFunc func(spec LeafSpec) *mesh.Mesh

func (f LeafShapeFunc) Build(spec LeafSpec) *mesh.Mesh { return f(spec) }

// PlainLeaf is an 8-vertex box.
var PlainLeaf LeafShapeBuilder = LeafShapeFunc(func(s LeafSpec) *mesh.Mesh {
	return mesh.Box(
		math.Vec3{X: 0, Y: s.Bottom, Z: -s.Depth / 2},
		math.Vec3{X: s.Width, Y: s.Bottom + s.Height, Z: s.Depth / 2},
		s.Material,
	)
})

// buildLeaf builds the leaf for one side of the opening, mirrors it for the
// right-hand side, adds the handle pair and moves it to its jamb. It returns nil
// when the side has no width.
func buildLeaf(p Parameters, shape LeafShapeBuilder, side handle.Side) *mesh.Mesh {
	split := p.OpenDirection == OpenBothSides
	req := handle.Request{
		Type:           p.HandleType,
		DoorSide:       side,
		Split:          split,
		DoorRatio:      p.DoorRatio,
		FrameWidth:     p.FrameWidth,
		FrameSize:      p.FrameSize,
		FrameThickness: p.FrameThickness,
		Material:       SlotHandle,
	}
	width := req.LeafWidth()
	if width <= 0 || p.UsableHeight() <= 0 || p.LeafDepth() <= 0 {
		return nil
	}

	spec := LeafSpec{
		Width:    width,
		Height:   p.UsableHeight(),
		Depth:    p.LeafDepth(),
		Bottom:   -p.FrameHeight / 2,
		Material: SlotDoor,
		Glass:    SlotGlass,
	}
	if split {
		spec.Material = SlotLeftDoor
		if side == handle.Right {
			spec.Material = SlotRightDoor
		}
	}

	leaf := shape.Build(spec)
	if side == handle.Right {
		leaf.Transform(math.Scale(-1, 1, 1))
	}

	req.Elevation = spec.Bottom + spec.Height/2
	for _, face := range [2]handle.Face{handle.Front, handle.Back} {
		req.Face = face
		leaf.Merge(handle.Place(req))
	}

	edge := p.UsableWidth() / 2
	if side == handle.Left {
		edge = -edge
	}
	leaf.Transform(math.Translate(edge, 0, 0))
	return leaf
}
