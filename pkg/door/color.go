package door

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour from a 0xRRGGBB value.
func RGB(hex uint32) Color {
	return Color{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xFF}
}

// ParseColor accepts "#RRGGBB", "#RRGGBBAA", "0xRRGGBB", bare "RRGGBB",
// integer 0xRRGGBB values of any Go integer kind, integral floats (as decoded
// from YAML/TOML numbers) and Color itself.
func ParseColor(v any) (Color, error) {
	switch c := v.(type) {
	case Color:
		return c, nil
	case *Color:
		if c == nil {
			return Color{}, fmt.Errorf("nil color")
		}
		return *c, nil
	case string:
		return parseColorString(c)
	}

	n, ok := toInt64(v)
	if !ok {
		return Color{}, fmt.Errorf("unsupported color value %v (%T)", v, v)
	}
	if n < 0 || n > 0xFFFFFF {
		return Color{}, fmt.Errorf("color %#x out of range", n)
	}
	return RGB(uint32(n)), nil
}

func parseColorString(s string) (Color, error) {
	raw := strings.TrimSpace(s)
	hex := strings.TrimPrefix(raw, "#")
	if len(hex) == len(raw) {
		hex = strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("bad color %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return RGB(uint32(n)), nil
	}
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// Hex renders the colour as #RRGGBB, or #RRGGBBAA when not fully opaque.
func (c Color) Hex() string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func (c Color) String() string { return c.Hex() }

// Float3 returns the colour channels in [0,1] for shader uniforms.
func (c Color) Float3() [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// SetFloat3 sets the colour channels from [0,1] values, keeping alpha.
func (c *Color) SetFloat3(f [3]float32) {
	c.R, c.G, c.B = unit8(f[0]), unit8(f[1]), unit8(f[2])
	if c.A == 0 {
		c.A = 0xFF
	}
}

func unit8(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 0xFF
	}
	return uint8(f*255 + 0.5)
}

// MarshalText encodes the colour as Hex so YAML and TOML documents carry
// readable strings.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText parses any string form accepted by ParseColor.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := parseColorString(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
