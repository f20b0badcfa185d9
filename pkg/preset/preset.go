// Package preset reads and writes door presets: a category, a type code and
// a property dictionary, stored as YAML or TOML.
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/doorsmith/pkg/door"
	"github.com/Faultbox/doorsmith/pkg/parametric"
)

// Format is a preset file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	ErrUnknownFormat = errors.New("unknown preset format")
	ErrInvalidPreset = errors.New("invalid preset")
)

// Document is one preset.
type Document struct {
	Category   string          `yaml:"category" toml:"category"`
	Type       int             `yaml:"type" toml:"type"`
	Properties door.Properties `yaml:"properties" toml:"properties"`
}

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Decode reads a document and validates it.
func Decode(r io.Reader, format Format) (*Document, error) {
	doc := &Document{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(doc)
	case FormatTOML:
		err = toml.NewDecoder(r).Decode(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s preset: %w", format, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads the preset at path.
func Load(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open preset: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate reports every problem with the document at once.
func (d *Document) Validate() error {
	var errs error
	if d.Category == "" {
		d.Category = parametric.CategoryDoor
	}
	if _, err := parametric.ClassFor(d.Category, d.Type); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := door.ParseProperties(door.DefaultParameters(), d.Properties); err != nil {
		errs = multierr.Append(errs, err)
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPreset, errs)
	}
	return nil
}

// Build constructs the door the document describes.
func (d *Document) Build(opts ...door.Option) (*door.Door, error) {
	return parametric.New(d.Category, d.Type, d.Properties, opts...)
}

// FromDoor captures a door as a document.
func FromDoor(d *door.Door) *Document {
	md := d.Metadata()
	props := md.Properties()
	// Colors are stored in their text form so both encoders write strings.
	for key, v := range props {
		if c, ok := v.(door.Color); ok {
			props[key] = c.Hex()
		}
	}
	return &Document{
		Category:   parametric.CategoryDoor,
		Type:       md.Type,
		Properties: props,
	}
}

// Encode writes the document in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml preset: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml preset: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes the document to path, picking the format from the extension.
func Save(path string, doc *Document) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preset directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	return nil
}
