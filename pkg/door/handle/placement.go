package handle

import (
	"github.com/Faultbox/doorsmith/pkg/math"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

const (
	// Gap is the clearance between a leaf and the frame on every side.
	Gap float32 = 0.25
	// SideOffset is the distance of the handle axis from the leaf edge it
	// is mounted next to.
	SideOffset float32 = 10
)

// Face selects which side of the leaf a handle copy is mounted on.
type Face uint8

const (
	Front Face = iota + 1
	Back
)

func (f Face) String() string {
	switch f {
	case Front:
		return "FRONT"
	case Back:
		return "BACK"
	}
	return "FACE(?)"
}

// Side is the side of the opening a leaf belongs to.
type Side uint8

const (
	Left Side = iota + 1
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	}
	return "SIDE(?)"
}

// Request describes one handle copy. Coordinates of the result are leaf-local
// in X: a Right leaf spans [-w, 0] and a Left leaf spans [0, w].
type Request struct {
	Type     Type
	Face     Face
	DoorSide Side
	// Split is set when the opening carries two leaves.
	Split          bool
	DoorRatio      float32
	FrameWidth     float32
	FrameSize      float32
	FrameThickness float32
	// Material is the slot every face of the copy is tagged with.
	Material int
	// Elevation is the Y coordinate of the handle axis.
	Elevation float32
}

// Depth returns the distance of a leaf face from the frame's mid-plane.
func Depth(frameThickness float32) float32 {
	return frameThickness*0.5 - 3*Gap
}

// LeafWidth returns the width of the leaf the request refers to.
func (r Request) LeafWidth() float32 {
	usable := r.FrameWidth - 2*r.FrameSize
	if !r.Split {
		return usable
	}
	if r.DoorSide == Left {
		return usable * r.DoorRatio
	}
	return usable * (1 - r.DoorRatio)
}

// Place returns a positioned copy of the requested handle, or nil for None.
//
// The copy is turned onto its face and pushed out to the leaf surface, then
// turned and shifted towards the latch edge of its leaf, and finally lifted
// to the requested elevation. Turning a copy half-way around the vertical
// axis also carries it to the opposite face, so the front and back copies of
// a rotated pair trade places; the pair as a whole is unchanged.
func Place(req Request) *mesh.Mesh {
	m := Mesh(req.Type)
	if m == nil {
		return nil
	}
	m.SetMaterial(req.Material)

	depth := Depth(req.FrameThickness)
	if req.Face == Back {
		m.Transform(math.RotateX(-math.Pi / 2))
		m.Transform(math.Translate(0, 0, -depth))
	} else {
		m.Transform(math.RotateX(math.Pi / 2))
		m.Transform(math.Translate(0, 0, depth))
	}

	switch {
	case req.DoorSide == Right && !req.Split:
		m.Transform(math.RotateY(math.Pi))
		m.Transform(math.Translate(-SideOffset, 0, 0))
	case req.DoorSide == Left && !req.Split:
		m.Transform(math.Translate(SideOffset, 0, 0))
	case req.DoorSide != Right && req.Split:
		m.Transform(math.RotateY(-math.Pi))
	}

	if req.Split {
		shift := req.LeafWidth() - SideOffset
		if req.DoorSide == Right {
			shift = -shift
		}
		m.Transform(math.Translate(shift, 0, 0))
	}

	if req.Elevation != 0 {
		m.Transform(math.Translate(0, req.Elevation, 0))
	}
	return m
}
