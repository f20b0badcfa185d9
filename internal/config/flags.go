package config

import "flag"

// Flags holds the command-line overrides shared by the doorsmith commands.
type Flags struct {
	Config     *string
	Debug      *bool
	Preset     *string
	Type       *int
	Windowed   *bool
	Fullscreen *bool
	Width      *int
	Height     *int
	Out        *string
}

// RegisterFlags defines the shared flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Config:     fs.String("config", "", "Path to config file"),
		Debug:      fs.Bool("debug", false, "Enable debug logging"),
		Preset:     fs.String("preset", "", "Door preset file (.yaml, .yml, .toml)"),
		Type:       fs.Int("type", 0, "Door type code"),
		Windowed:   fs.Bool("windowed", false, "Run in windowed mode"),
		Fullscreen: fs.Bool("fullscreen", false, "Run in fullscreen mode"),
		Width:      fs.Int("width", 0, "Window width"),
		Height:     fs.Int("height", 0, "Window height"),
		Out:        fs.String("out", "", "Export directory"),
	}
}

var commandLine = RegisterFlags(flag.CommandLine)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *commandLine.Config
}

// apply applies flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if *f.Preset != "" {
		cfg.Door.Preset = *f.Preset
	}
	if *f.Type > 0 {
		cfg.Door.Type = *f.Type
	}
	if *f.Windowed {
		cfg.Viewer.Fullscreen = false
	}
	if *f.Fullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *f.Width > 0 {
		cfg.Viewer.Width = *f.Width
	}
	if *f.Height > 0 {
		cfg.Viewer.Height = *f.Height
	}
	if *f.Out != "" {
		cfg.Export.Dir = *f.Out
	}
}
