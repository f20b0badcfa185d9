// Package snapshot writes rendered frames to PNG or BMP files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Format is an image container.
type Format string

const (
	PNG Format = "png"
	BMP Format = "bmp"
)

// ErrUnknownFormat is returned for formats other than png and bmp.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// ParseFormat accepts "png" or "bmp", case-insensitively. Empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return PNG, nil
	case PNG, BMP:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Encode writes img to w.
func (f Format) Encode(w io.Writer, img image.Image) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// FromPixels converts bottom-up RGBA rows, as read back from OpenGL, into a
// top-down image.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// Capture names and writes snapshots into a directory.
type Capture struct {
	Dir    string
	Prefix string
	Format Format

	now func() time.Time
}

// NewCapture returns a capture writing <prefix>_<timestamp>.<format> files.
func NewCapture(dir, prefix string, format Format) *Capture {
	return &Capture{Dir: dir, Prefix: prefix, Format: format, now: time.Now}
}

// Filename returns the path the next snapshot would be written to.
func (c *Capture) Filename() string {
	name := fmt.Sprintf("%s_%s.%s", c.Prefix, c.now().Format("2006-01-02_15-04-05"), c.Format)
	if c.Dir != "" {
		name = filepath.Join(c.Dir, name)
	}
	return name
}

// Pixels writes GL read-back pixels and returns the file path.
func (c *Capture) Pixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.Image(img)
}

// Image writes img and returns the file path.
func (c *Capture) Image(img image.Image) (path string, err error) {
	if c.Dir != "" {
		if err := os.MkdirAll(c.Dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}
	path = c.Filename()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if err := c.Format.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", c.Format, err)
	}
	return path, nil
}
