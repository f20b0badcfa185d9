package door

import "github.com/Faultbox/doorsmith/pkg/door/handle"

// WidgetKind is the editor widget a property is shown with.
type WidgetKind string

const (
	WidgetText   WidgetKind = "text"
	WidgetNumber WidgetKind = "number"
	WidgetRange  WidgetKind = "range"
	WidgetColor  WidgetKind = "color"
	WidgetChoice WidgetKind = "choice"
)

// PropertySchema describes how one property is edited. Min, Max and Step are
// set for WidgetRange and Options for WidgetChoice.
type PropertySchema struct {
	Key     string     `yaml:"key" toml:"key"`
	Label   string     `yaml:"label" toml:"label"`
	Kind    WidgetKind `yaml:"kind" toml:"kind"`
	Min     float32    `yaml:"min,omitempty" toml:"min,omitempty"`
	Max     float32    `yaml:"max,omitempty" toml:"max,omitempty"`
	Step    float32    `yaml:"step,omitempty" toml:"step,omitempty"`
	Options []string   `yaml:"options,omitempty" toml:"options,omitempty"`
	// Geometry is set when editing the property rebuilds the mesh.
	Geometry bool `yaml:"geometry" toml:"geometry"`
}

// Parameters returns the edit schema of every exposed property, in display
// order.
func (d *Door) Parameters() []PropertySchema {
	return Schema()
}

// Schema is the property schema shared by all door types.
func Schema() []PropertySchema {
	directions := make([]string, 0, 4)
	for _, dir := range OpenDirections() {
		directions = append(directions, dir.String())
	}
	handles := make([]string, 0, 5)
	for _, t := range handle.Types() {
		handles = append(handles, t.String())
	}

	return []PropertySchema{
		{Key: KeyName, Label: "Name", Kind: WidgetText},
		{Key: KeyFrameWidth, Label: "Frame width", Kind: WidgetNumber, Geometry: true},
		{Key: KeyFrameHeight, Label: "Frame height", Kind: WidgetNumber, Geometry: true},
		{Key: KeyFrameThickness, Label: "Frame thickness", Kind: WidgetNumber, Geometry: true},
		{Key: KeyFrameSize, Label: "Frame size", Kind: WidgetRange, Min: MinFrameSize, Max: MaxFrameSize, Step: 1, Geometry: true},
		{Key: KeyDoorRatio, Label: "Door ratio", Kind: WidgetRange, Min: 0, Max: 1, Step: 0.01, Geometry: true},
		{Key: KeyOpenDirection, Label: "Open direction", Kind: WidgetChoice, Options: directions, Geometry: true},
		{Key: KeyHandleType, Label: "Handle", Kind: WidgetChoice, Options: handles, Geometry: true},
		{Key: KeyFrameColor, Label: "Frame color", Kind: WidgetColor},
		{Key: KeyDoorColor, Label: "Door color", Kind: WidgetColor},
		{Key: KeyHandleColor, Label: "Handle color", Kind: WidgetColor},
		{Key: KeyGlassColor, Label: "Glass color", Kind: WidgetColor},
	}
}
