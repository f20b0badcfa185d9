// Package config handles doorsmith configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Config holds all doorsmith settings.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Door    DoorConfig    `yaml:"door"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig holds window and preview settings for the viewers.
type ViewerConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	Background    string `yaml:"background"` // #RRGGBB
	SmoothNormals bool   `yaml:"smooth_normals"`
	AutoReload    bool   `yaml:"auto_reload"` // watch the preset file
}

// DoorConfig selects the door a viewer starts with.
type DoorConfig struct {
	Category string `yaml:"category"`
	Type     int    `yaml:"type"`
	Preset   string `yaml:"preset"` // YAML or TOML preset, overrides Type
}

// ExportConfig holds output settings for OBJ exports and snapshots.
type ExportConfig struct {
	Dir            string `yaml:"dir"`
	SnapshotFormat string `yaml:"snapshot_format"` // png or bmp
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			VSync:      true,
			Background: "#1E1E24",
			AutoReload: true,
		},
		Door: DoorConfig{
			Category: "DOOR",
			Type:     1,
		},
		Export: ExportConfig{
			Dir:            "export",
			SnapshotFormat: "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("viewer size %dx%d must be positive", c.Viewer.Width, c.Viewer.Height))
	}
	if c.Door.Type <= 0 && c.Door.Preset == "" {
		err = multierr.Append(err, fmt.Errorf("door type %d must be positive", c.Door.Type))
	}
	switch strings.ToLower(c.Export.SnapshotFormat) {
	case "png", "bmp":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown snapshot format %q", c.Export.SnapshotFormat))
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}
	return err
}
