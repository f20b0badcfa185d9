package door

// Metadata is a flattened snapshot of a door for property editors and
// serialization. Enums are carried as their tags.
type Metadata struct {
	ID             string  `yaml:"id" toml:"id"`
	Type           int     `yaml:"type" toml:"type"`
	Variant        string  `yaml:"variant" toml:"variant"`
	Name           string  `yaml:"name" toml:"name"`
	FrameSize      float32 `yaml:"frameSize" toml:"frameSize"`
	FrameWidth     float32 `yaml:"frameWidth" toml:"frameWidth"`
	FrameHeight    float32 `yaml:"frameHeight" toml:"frameHeight"`
	FrameThickness float32 `yaml:"frameThickness" toml:"frameThickness"`
	DoorRatio      float32 `yaml:"doorRatio" toml:"doorRatio"`
	OpenDirection  string  `yaml:"openDirection" toml:"openDirection"`
	HandleType     string  `yaml:"handleType" toml:"handleType"`
	FrameColor     Color   `yaml:"frameColor" toml:"frameColor"`
	DoorColor      Color   `yaml:"doorColor" toml:"doorColor"`
	HandleColor    Color   `yaml:"handleColor" toml:"handleColor"`
	GlassColor     Color   `yaml:"glassColor" toml:"glassColor"`

	Vertices int `yaml:"vertices" toml:"vertices"`
	Faces    int `yaml:"faces" toml:"faces"`
}

// Metadata returns a snapshot of the door's parameters and mesh size.
func (d *Door) Metadata() Metadata {
	d.mu.RLock()
	p, geo := d.params, d.geometry
	d.mu.RUnlock()

	return Metadata{
		ID:             d.id.String(),
		Type:           d.variant.Code,
		Variant:        d.variant.Name,
		Name:           p.Name,
		FrameSize:      p.FrameSize,
		FrameWidth:     p.FrameWidth,
		FrameHeight:    p.FrameHeight,
		FrameThickness: p.FrameThickness,
		DoorRatio:      p.DoorRatio,
		OpenDirection:  p.OpenDirection.String(),
		HandleType:     p.HandleType.String(),
		FrameColor:     p.FrameColor,
		DoorColor:      p.DoorColor,
		HandleColor:    p.HandleColor,
		GlassColor:     p.GlassColor,
		Vertices:       geo.VertexCount(),
		Faces:          geo.FaceCount(),
	}
}

// Properties returns the snapshot as a property dictionary that rebuilds an
// identical door.
func (m Metadata) Properties() Properties {
	return Properties{
		KeyName:           m.Name,
		KeyFrameSize:      m.FrameSize,
		KeyFrameWidth:     m.FrameWidth,
		KeyFrameHeight:    m.FrameHeight,
		KeyFrameThickness: m.FrameThickness,
		KeyDoorRatio:      m.DoorRatio,
		KeyOpenDirection:  m.OpenDirection,
		KeyHandleType:     m.HandleType,
		KeyFrameColor:     m.FrameColor,
		KeyDoorColor:      m.DoorColor,
		KeyHandleColor:    m.HandleColor,
		KeyGlassColor:     m.GlassColor,
	}
}
