package door

// Material table slots. Every face of a door mesh carries one of these.
const (
	SlotFrame = iota
	SlotDoor
	SlotLeftDoor
	SlotRightDoor
	SlotHandle
	SlotGlass

	SlotCount
)

// MaterialSide tells the renderer which faces of a slot are visible.
type MaterialSide uint8

const (
	SideFront MaterialSide = iota
	SideDouble
)

// GlassOpacity is the opacity of the glass slot.
const GlassOpacity float32 = 0.35

// Material describes how the faces of one slot are drawn.
type Material struct {
	Name        string
	Color       Color
	Side        MaterialSide
	Transparent bool
	Opacity     float32
}

var slotNames = [SlotCount]string{"frame", "door", "leftDoor", "rightDoor", "handle", "glass"}

// SlotName returns the material name of a slot, as used in exports.
func SlotName(slot int) string {
	if slot < 0 || slot >= SlotCount {
		return "unknown"
	}
	return slotNames[slot]
}

func materialsFor(p Parameters) [SlotCount]Material {
	var t [SlotCount]Material
	for i := range t {
		t[i] = Material{Name: slotNames[i], Side: SideFront, Opacity: 1}
	}
	t[SlotFrame].Color = p.FrameColor
	t[SlotDoor].Color = p.DoorColor
	t[SlotLeftDoor].Color = p.DoorColor
	t[SlotRightDoor].Color = p.DoorColor
	t[SlotHandle].Color = p.HandleColor
	t[SlotGlass] = Material{
		Name:        slotNames[SlotGlass],
		Color:       p.GlassColor,
		Side:        SideDouble,
		Transparent: true,
		Opacity:     GlassOpacity,
	}
	return t
}
