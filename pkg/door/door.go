// Package door builds parametric door meshes: a frame, zero to two leaves
// and their handles, regenerated whenever a parameter changes.
package door

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/doorsmith/pkg/mesh"
)

// Geometry is the result of one build. It is never modified after it is
// published; a rebuild publishes a new value. The merged mesh stays private
// and is only handed out as a copy.
type Geometry struct {
	merged *mesh.Mesh
	buffer *mesh.Buffer
}

// Mesh returns an editable deep copy of the merged mesh, with normals and
// bounds computed.
func (g *Geometry) Mesh() *mesh.Mesh { return g.merged.Clone() }

// Buffer returns the drawable buffer. It is shared by every reader of this
// geometry and must not be modified.
func (g *Geometry) Buffer() *mesh.Buffer { return g.buffer }

func (g *Geometry) Bounds() mesh.Bounds { return g.merged.Bounds }
func (g *Geometry) VertexCount() int    { return len(g.merged.Vertices) }
func (g *Geometry) FaceCount() int      { return len(g.merged.Faces) }

// CountMaterial returns how many triangles use the given slot.
func (g *Geometry) CountMaterial(slot int) int { return g.merged.CountMaterial(slot) }

// Door is a parametric door. All methods are safe for concurrent use.
type Door struct {
	id      uuid.UUID
	variant Variant
	log     *zap.Logger
	finish  mesh.FinalizeOptions

	mu        sync.RWMutex
	params    Parameters
	materials [SlotCount]Material
	geometry  *Geometry

	listeners    []subscription
	nextListener ListenerID
}

// Option configures a Door.
type Option func(*Door)

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(d *Door) {
		if l != nil {
			d.log = l
		}
	}
}

// WithSmoothNormals makes the drawable buffer carry smoothed vertex normals
// instead of flat face normals.
func WithSmoothNormals() Option {
	return func(d *Door) { d.finish.SmoothNormals = true }
}

// New builds a door of the given variant from a partial property dictionary.
// Missing keys take their defaults.
func New(v Variant, props Properties, opts ...Option) (*Door, error) {
	if v.Leaf == nil {
		return nil, fmt.Errorf("%w: variant %d has no leaf shape", ErrUnimplementedVariant, v.Code)
	}
	params, err := ParseProperties(DefaultParameters(), props)
	if err != nil {
		return nil, err
	}

	d := &Door{
		id:      uuid.New(),
		variant: v,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.log = d.log.With(zap.String("door", d.id.String()), zap.Int("type", v.Code))

	geo, err := d.build(params)
	if err != nil {
		return nil, err
	}
	d.params = params
	d.materials = materialsFor(params)
	d.geometry = geo
	return d, nil
}

// NewOfType looks up the variant for code and builds a door of it.
func NewOfType(code int, props Properties, opts ...Option) (*Door, error) {
	v, err := ClassFor(code)
	if err != nil {
		return nil, err
	}
	return New(v, props, opts...)
}

// ID returns the instance identifier.
func (d *Door) ID() uuid.UUID { return d.id }

// Type returns the door type code.
func (d *Door) Type() int { return d.variant.Code }

// Variant returns the registered variant the door was built from.
func (d *Door) Variant() Variant { return d.variant }

// Geometry returns the current geometry. Callers must not modify it.
func (d *Door) Geometry() *Geometry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.geometry
}

// Material returns a copy of the material table.
func (d *Door) Material() []Material {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Material, SlotCount)
	copy(out, d.materials[:])
	return out
}

// Params returns a copy of the current parameters.
func (d *Door) Params() Parameters {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.params
}

func (d *Door) Name() string           { return d.Params().Name }
func (d *Door) FrameSize() float32      { return d.Params().FrameSize }
func (d *Door) FrameWidth() float32     { return d.Params().FrameWidth }
func (d *Door) FrameHeight() float32    { return d.Params().FrameHeight }
func (d *Door) FrameThickness() float32 { return d.Params().FrameThickness }
func (d *Door) DoorRatio() float32      { return d.Params().DoorRatio }

func (d *Door) OpenDirection() OpenDirection { return d.Params().OpenDirection }
func (d *Door) HandleType() HandleType       { return d.Params().HandleType }

func (d *Door) FrameColor() Color  { return d.Params().FrameColor }
func (d *Door) DoorColor() Color   { return d.Params().DoorColor }
func (d *Door) HandleColor() Color { return d.Params().HandleColor }
func (d *Door) GlassColor() Color  { return d.Params().GlassColor }

// SetFrameWidth sets the outer width. A non-positive value restores the
// default.
func (d *Door) SetFrameWidth(w float32) error {
	return d.update(func(p *Parameters) { p.FrameWidth = w })
}

// SetFrameHeight sets the outer height. A non-positive value restores the
// default.
func (d *Door) SetFrameHeight(h float32) error {
	return d.update(func(p *Parameters) { p.FrameHeight = h })
}

// SetFrameThickness sets the depth of the frame. A non-positive value
// restores the default.
func (d *Door) SetFrameThickness(t float32) error {
	return d.update(func(p *Parameters) { p.FrameThickness = t })
}

// SetFrameSize sets the jamb and head width, clamped to [5, 25].
func (d *Door) SetFrameSize(s float32) error {
	return d.update(func(p *Parameters) { p.FrameSize = s })
}

// SetDoorRatio sets the share of the left leaf of a split opening, clamped
// to [0, 1]. Like every dimension setter it rejects NaN and infinities with
// ErrInvalidParameter.
func (d *Door) SetDoorRatio(r float32) error {
	return d.update(func(p *Parameters) { p.DoorRatio = r })
}

func (d *Door) SetOpenDirection(dir OpenDirection) error {
	if !dir.Valid() {
		return fmt.Errorf("%w: openDirection %d", ErrInvalidParameter, dir)
	}
	return d.update(func(p *Parameters) { p.OpenDirection = dir })
}

func (d *Door) SetHandleType(t HandleType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: handleType %d", ErrInvalidParameter, t)
	}
	return d.update(func(p *Parameters) { p.HandleType = t })
}

// SetName changes the display name. It neither rebuilds nor notifies.
func (d *Door) SetName(name string) {
	d.mu.Lock()
	d.params.Name = name
	d.mu.Unlock()
}

func (d *Door) SetFrameColor(c Color)  { d.setColor(func(p *Parameters) { p.FrameColor = c }) }
func (d *Door) SetDoorColor(c Color)   { d.setColor(func(p *Parameters) { p.DoorColor = c }) }
func (d *Door) SetHandleColor(c Color) { d.setColor(func(p *Parameters) { p.HandleColor = c }) }
func (d *Door) SetGlassColor(c Color)  { d.setColor(func(p *Parameters) { p.GlassColor = c }) }

// Set applies a partial property dictionary with at most one rebuild. On any
// invalid entry nothing changes and the aggregated error is returned.
func (d *Door) Set(props Properties) error {
	var geometry, colors bool
	for key := range props {
		geometry = geometry || geometryKeys[key]
		colors = colors || colorKeys[key]
	}

	d.mu.Lock()
	next, err := ParseProperties(d.params, props)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	if geometry {
		geo, err := d.build(next)
		if err != nil {
			d.mu.Unlock()
			return err
		}
		d.geometry = geo
	}
	d.params = next
	d.materials = materialsFor(next)
	d.mu.Unlock()

	var kinds []EventKind
	if geometry {
		kinds = append(kinds, EventGeometryUpdated)
	}
	if colors {
		kinds = append(kinds, EventMaterialUpdated)
	}
	d.emit(kinds...)
	return nil
}

// update applies a geometry change, rebuilds and notifies.
func (d *Door) update(change func(*Parameters)) error {
	d.mu.Lock()
	next := d.params
	change(&next)
	if err := next.Validate(); err != nil {
		d.mu.Unlock()
		return err
	}
	next = next.Normalize()
	geo, err := d.build(next)
	if err != nil {
		d.mu.Unlock()
		return err
	}
	d.params = next
	d.geometry = geo
	d.mu.Unlock()

	d.emit(EventGeometryUpdated)
	return nil
}

// setColor edits the material table in place.
func (d *Door) setColor(change func(*Parameters)) {
	d.mu.Lock()
	change(&d.params)
	d.materials = materialsFor(d.params)
	d.mu.Unlock()

	d.emit(EventMaterialUpdated)
}

// build runs the full pipeline for p without touching the door's state.
func (d *Door) build(p Parameters) (*Geometry, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	m := buildFrame(p)
	for _, side := range p.OpenDirection.sides() {
		m.Merge(buildLeaf(p, d.variant.Leaf, side))
	}
	if err := m.Validate(SlotCount); err != nil {
		return nil, fmt.Errorf("door: build: %w", err)
	}
	m.ComputeNormals()
	buf := m.Finalize(d.finish)

	d.log.Debug("Door rebuilt",
		zap.Stringer("openDirection", p.OpenDirection),
		zap.Stringer("handleType", p.HandleType),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("faces", len(m.Faces)),
		zap.Int("handleFaces", m.CountMaterial(SlotHandle)),
		zap.Duration("took", time.Since(start)))

	return &Geometry{merged: m, buffer: buf}, nil
}
