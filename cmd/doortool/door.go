package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/doorsmith/internal/config"
	"github.com/Faultbox/doorsmith/internal/logger"
	"github.com/Faultbox/doorsmith/pkg/door"
	"github.com/Faultbox/doorsmith/pkg/parametric"
	"github.com/Faultbox/doorsmith/pkg/preset"
)

// propertyFlags collects repeated -set key=value overrides.
type propertyFlags door.Properties

func (p propertyFlags) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, p[k]))
	}
	return strings.Join(parts, ",")
}

func (p propertyFlags) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	p[key] = strings.TrimSpace(value)
	return nil
}

// doorFlags are the flags shared by every command that builds a door.
type doorFlags struct {
	cfg    *config.Flags
	sets   propertyFlags
	smooth *bool
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *doorFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	df := &doorFlags{
		cfg:  config.RegisterFlags(fs),
		sets: propertyFlags{},
	}
	fs.Var(df.sets, "set", "Property override key=value (repeatable)")
	df.smooth = fs.Bool("smooth", false, "Smooth vertex normals")
	return fs, df
}

// setup loads the config and initialises logging on stderr.
func (df *doorFlags) setup(stderr io.Writer) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadWithFlags(df.cfg)
	if err != nil {
		return nil, nil, err
	}
	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, stderr); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger.Named("doortool"), nil
}

func (df *doorFlags) options(cfg *config.Config, log *zap.Logger) []door.Option {
	opts := []door.Option{door.WithLogger(log)}
	if *df.smooth || cfg.Viewer.SmoothNormals {
		opts = append(opts, door.WithSmoothNormals())
	}
	return opts
}

// open builds the door selected by the preset or the type code, then applies
// the -set overrides in one update.
func (df *doorFlags) open(cfg *config.Config, log *zap.Logger) (*door.Door, error) {
	var (
		d   *door.Door
		err error
	)
	if cfg.Door.Preset != "" {
		d, err = buildPreset(cfg.Door.Preset, df.options(cfg, log))
	} else {
		d, err = parametric.New(cfg.Door.Category, cfg.Door.Type, nil, df.options(cfg, log)...)
	}
	if err != nil {
		return nil, err
	}
	if len(df.sets) > 0 {
		if err := d.Set(door.Properties(df.sets)); err != nil {
			return nil, err
		}
	}
	log.Debug("door ready",
		zap.Stringer("id", d.ID()),
		zap.Int("type", d.Type()),
		zap.String("preset", cfg.Door.Preset),
	)
	return d, nil
}

func buildPreset(path string, opts []door.Option) (*door.Door, error) {
	doc, err := preset.Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Build(opts...)
}

// summary is the one-line description printed by build and watch.
func summary(d *door.Door) string {
	md := d.Metadata()
	geo := d.Geometry()
	return fmt.Sprintf("type=%d variant=%s open=%s handle=%s size=%gx%gx%g vertices=%d faces=%d handleFaces=%d",
		md.Type, md.Variant, md.OpenDirection, md.HandleType,
		md.FrameWidth, md.FrameHeight, md.FrameThickness,
		md.Vertices, md.Faces, geo.CountMaterial(door.SlotHandle))
}
