package door

import (
	"fmt"
	gomath "math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/doorsmith/pkg/door/handle"
)

// Property dictionary keys.
const (
	KeyName           = "name"
	KeyFrameSize      = "frameSize"
	KeyFrameWidth     = "frameWidth"
	KeyFrameHeight    = "frameHeight"
	KeyFrameThickness = "frameThickness"
	KeyDoorRatio      = "doorRatio"
	KeyOpenDirection  = "openDirection"
	KeyHandleType     = "handleType"
	KeyFrameColor     = "frameColor"
	KeyDoorColor      = "doorColor"
	KeyHandleColor    = "handleColor"
	KeyGlassColor     = "glassColor"
)

// Parameter limits and defaults.
const (
	MinFrameSize float32 = 5
	MaxFrameSize float32 = 25

	DefaultFrameSize      float32 = 5
	DefaultFrameWidth     float32 = 100
	DefaultFrameHeight    float32 = 200
	DefaultFrameThickness float32 = 20
	DefaultDoorRatio      float32 = 0.5
)

// Properties is a partial parameter dictionary. Unknown keys are ignored.
type Properties map[string]any

// Parameters is the complete, validated parameter set of a door.
type Parameters struct {
	Name           string
	FrameSize      float32
	FrameWidth     float32
	FrameHeight    float32
	FrameThickness float32
	DoorRatio      float32
	OpenDirection  OpenDirection
	HandleType     HandleType
	FrameColor     Color
	DoorColor      Color
	HandleColor    Color
	GlassColor     Color
}

// DefaultParameters returns the parameters of a door built from an empty
// dictionary.
func DefaultParameters() Parameters {
	return Parameters{
		FrameSize:      DefaultFrameSize,
		FrameWidth:     DefaultFrameWidth,
		FrameHeight:    DefaultFrameHeight,
		FrameThickness: DefaultFrameThickness,
		DoorRatio:      DefaultDoorRatio,
		OpenDirection:  OpenRight,
		HandleType:     handle.Handle01,
		FrameColor:     RGB(0xFF0000),
		DoorColor:      RGB(0xE0E0EE),
		HandleColor:    RGB(0xF0F0F0),
		GlassColor:     RGB(0x87CEEB),
	}
}

// Normalize applies the leniency rules: frame size and door ratio are
// clamped, non-positive dimensions fall back to their defaults.
func (p Parameters) Normalize() Parameters {
	p.FrameSize = clamp(p.FrameSize, MinFrameSize, MaxFrameSize)
	p.DoorRatio = clamp(p.DoorRatio, 0, 1)
	p.FrameWidth = positiveOr(p.FrameWidth, DefaultFrameWidth)
	p.FrameHeight = positiveOr(p.FrameHeight, DefaultFrameHeight)
	p.FrameThickness = positiveOr(p.FrameThickness, DefaultFrameThickness)
	return p
}

// Validate reports non-finite dimensions and enum members outside their
// enum.
func (p Parameters) Validate() error {
	var err error
	for _, dim := range []struct {
		key string
		v   float32
	}{
		{KeyFrameSize, p.FrameSize},
		{KeyFrameWidth, p.FrameWidth},
		{KeyFrameHeight, p.FrameHeight},
		{KeyFrameThickness, p.FrameThickness},
		{KeyDoorRatio, p.DoorRatio},
	} {
		if f := float64(dim.v); gomath.IsNaN(f) || gomath.IsInf(f, 0) {
			err = multierr.Append(err, fmt.Errorf("%w: %s: not a finite number: %v", ErrInvalidParameter, dim.key, f))
		}
	}
	if !p.OpenDirection.Valid() {
		err = multierr.Append(err, fmt.Errorf("%w: openDirection %d", ErrInvalidParameter, p.OpenDirection))
	}
	if !p.HandleType.Valid() {
		err = multierr.Append(err, fmt.Errorf("%w: handleType %d", ErrInvalidParameter, p.HandleType))
	}
	return err
}

// UsableWidth is the width of the opening inside the jambs.
func (p Parameters) UsableWidth() float32 {
	return p.FrameWidth - 2*p.FrameSize
}

// UsableHeight is the height of the opening below the head.
func (p Parameters) UsableHeight() float32 {
	return p.FrameHeight - p.FrameSize
}

// LeafDepth is the thickness of a leaf.
func (p Parameters) LeafDepth() float32 {
	return 2 * handle.Depth(p.FrameThickness)
}

// Properties returns the parameters as a complete property dictionary.
func (p Parameters) Properties() Properties {
	return Properties{
		KeyName:           p.Name,
		KeyFrameSize:      p.FrameSize,
		KeyFrameWidth:     p.FrameWidth,
		KeyFrameHeight:    p.FrameHeight,
		KeyFrameThickness: p.FrameThickness,
		KeyDoorRatio:      p.DoorRatio,
		KeyOpenDirection:  p.OpenDirection.String(),
		KeyHandleType:     p.HandleType.String(),
		KeyFrameColor:     p.FrameColor,
		KeyDoorColor:      p.DoorColor,
		KeyHandleColor:    p.HandleColor,
		KeyGlassColor:     p.GlassColor,
	}
}

// ParseProperties applies props over base and normalizes the result. Every
// bad entry is reported; the returned error aggregates them and each wraps
// ErrInvalidParameter. On error base is returned unchanged.
func ParseProperties(base Parameters, props Properties) (Parameters, error) {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	p := base
	var errs error
	for _, key := range keys {
		if err := p.apply(key, props[key]); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidParameter, key, err))
		}
	}
	if errs != nil {
		return base, errs
	}
	return p.Normalize(), nil
}

func (p *Parameters) apply(key string, v any) error {
	var err error
	switch key {
	case KeyName:
		p.Name = fmt.Sprint(v)
	case KeyFrameSize:
		p.FrameSize, err = toFloat32(v)
	case KeyFrameWidth:
		p.FrameWidth, err = toFloat32(v)
	case KeyFrameHeight:
		p.FrameHeight, err = toFloat32(v)
	case KeyFrameThickness:
		p.FrameThickness, err = toFloat32(v)
	case KeyDoorRatio:
		p.DoorRatio, err = toFloat32(v)
	case KeyOpenDirection:
		p.OpenDirection, err = toOpenDirection(v)
	case KeyHandleType:
		p.HandleType, err = toHandleType(v)
	case KeyFrameColor:
		p.FrameColor, err = ParseColor(v)
	case KeyDoorColor:
		p.DoorColor, err = ParseColor(v)
	case KeyHandleColor:
		p.HandleColor, err = ParseColor(v)
	case KeyGlassColor:
		p.GlassColor, err = ParseColor(v)
	}
	return err
}

// geometryKeys are the properties whose change requires a rebuild.
var geometryKeys = map[string]bool{
	KeyFrameSize:      true,
	KeyFrameWidth:     true,
	KeyFrameHeight:    true,
	KeyFrameThickness: true,
	KeyDoorRatio:      true,
	KeyOpenDirection:  true,
	KeyHandleType:     true,
}

var colorKeys = map[string]bool{
	KeyFrameColor:  true,
	KeyDoorColor:   true,
	KeyHandleColor: true,
	KeyGlassColor:  true,
}

func toOpenDirection(v any) (OpenDirection, error) {
	switch d := v.(type) {
	case OpenDirection:
		if !d.Valid() {
			return 0, fmt.Errorf("value %d outside enum", d)
		}
		return d, nil
	case string:
		parsed, err := ParseOpenDirection(d)
		if err != nil {
			return 0, fmt.Errorf("unknown tag %q", d)
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("unsupported value %v (%T)", v, v)
}

func toHandleType(v any) (HandleType, error) {
	switch t := v.(type) {
	case handle.Type:
		if !t.Valid() {
			return 0, fmt.Errorf("value %d outside enum", t)
		}
		return t, nil
	case string:
		parsed, err := handle.ParseType(t)
		if err != nil {
			return 0, err
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("unsupported value %v (%T)", v, v)
}

func toFloat32(v any) (float32, error) {
	var f float64
	switch n := v.(type) {
	case float32:
		f = float64(n)
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 32)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		f = parsed
	default:
		i, ok := toInt64(v)
		if !ok {
			return 0, fmt.Errorf("unsupported value %v (%T)", v, v)
		}
		f = float64(i)
	}
	if gomath.IsNaN(f) || gomath.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", f)
	}
	return float32(f), nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > gomath.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != gomath.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case float32:
		if float64(n) != gomath.Trunc(float64(n)) {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func positiveOr(v, def float32) float32 {
	if v <= 0 {
		return def
	}
	return v
}
