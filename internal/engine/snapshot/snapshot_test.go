package snapshot

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", PNG, false},
		{"png", PNG, false},
		{" BMP ", BMP, false},
		{"jpeg", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// 1x2 image: bottom row red, top row blue in GL order.
var glPixels = []byte{
	255, 0, 0, 255,
	0, 0, 255, 255,
}

func TestFromPixelsFlips(t *testing.T) {
	img, err := FromPixels(glPixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}
}

func TestFromPixelsSizeMismatch(t *testing.T) {
	if _, err := FromPixels(glPixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestCaptureWritesDecodableFiles(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	tests := []struct {
		format Format
		decode func(*os.File) (image.Image, error)
	}{
		{PNG, func(f *os.File) (image.Image, error) { return png.Decode(f) }},
		{BMP, func(f *os.File) (image.Image, error) { return bmp.Decode(f) }},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "shots")
			c := NewCapture(dir, "door", tt.format)
			c.now = func() time.Time { return stamp }

			path, err := c.Pixels(glPixels, 1, 2)
			if err != nil {
				t.Fatalf("Pixels: %v", err)
			}
			want := filepath.Join(dir, "door_2024-05-01_12-30-00."+string(tt.format))
			if path != want {
				t.Errorf("path = %q, want %q", path, want)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := tt.decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 2 {
				t.Errorf("bounds = %v, want 1x2", b)
			}
			r, _, bl, _ := img.At(0, 0).RGBA()
			if r != 0 || bl == 0 {
				t.Errorf("top pixel not blue after round trip")
			}
		})
	}
}
