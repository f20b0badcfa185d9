package door

import (
	"github.com/Faultbox/doorsmith/pkg/math"
	"github.com/Faultbox/doorsmith/pkg/mesh"
)

// Fixed frame topology: 30 quads forming one closed solid, so no seam patch
// triangles are needed.
const (
	FrameVertexCount = 32
	FrameFaceCount   = 60
)

// Profile points of one depth layer: the outer U (0-3) and the inner U (4-7),
// each running bottom-left, top-left, top-right, bottom-right.
const (
	profileOuter = 0
	profileInner = 4
	profileSize  = 8
)

// buildFrame builds the jamb-and-head solid. It is laid out lying down with
// the height along +Z and the depth along Y, then stood upright and centred
// on its height. Jambs wider than half the frame and a head taller than the
// frame are cut back so the opening closes at x=0 instead of turning the
// solid inside out.
func buildFrame(p Parameters) *mesh.Mesh {
	hw := p.FrameWidth / 2
	h := p.FrameHeight
	fs := p.FrameSize
	t := p.FrameThickness
	bevel := min(fs, t) / 4
	jamb := min(fs, hw)
	head := min(fs, h)

	layers := [4]struct{ depth, inset float32 }{
		{t / 2, bevel},
		{t/2 - bevel, 0},
		{-t/2 + bevel, 0},
		{-t / 2, bevel},
	}

	m := mesh.New(FrameVertexCount, FrameFaceCount)
	for _, l := range layers {
		e := l.inset
		profile := [profileSize][2]float32{
			{-hw + e, 0},
			{-hw + e, h - e},
			{hw - e, h - e},
			{hw - e, 0},
			{-hw + jamb - e, 0},
			{-hw + jamb - e, h - head + e},
			{hw - jamb + e, h - head + e},
			{hw - jamb + e, 0},
		}
		for _, pt := range profile {
			m.AddVertex(math.Vec3{X: pt[0], Y: l.depth, Z: pt[1]})
		}
	}

	at := func(layer, point int) int { return layer*profileSize + point }

	// End faces of the U, +Y on layer 0 and -Y on layer 3.
	for k := 0; k < 3; k++ {
		o, o1 := profileOuter+k, profileOuter+k+1
		i, i1 := profileInner+k, profileInner+k+1
		m.AddQuad(at(0, o), at(0, o1), at(0, i1), at(0, i), SlotFrame)
		m.AddQuad(at(3, i), at(3, i1), at(3, o1), at(3, o), SlotFrame)
	}

	// Strips joining consecutive layers.
	for l := 0; l < 3; l++ {
		for k := 0; k < 3; k++ {
			o, o1 := profileOuter+k, profileOuter+k+1
			i, i1 := profileInner+k, profileInner+k+1
			m.AddQuad(at(l, o), at(l+1, o), at(l+1, o1), at(l, o1), SlotFrame)
			m.AddQuad(at(l, i), at(l, i1), at(l+1, i1), at(l+1, i), SlotFrame)
		}
		// feet
		m.AddQuad(at(l, profileOuter), at(l, profileInner), at(l+1, profileInner), at(l+1, profileOuter), SlotFrame)
		m.AddQuad(at(l, profileInner+3), at(l, profileOuter+3), at(l+1, profileOuter+3), at(l+1, profileInner+3), SlotFrame)
	}

	m.Transform(math.RotateX(-math.Pi / 2))
	m.Transform(math.Translate(0, -h/2, 0))
	return m
}
