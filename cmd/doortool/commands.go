package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/doorsmith/pkg/door"
	"github.com/Faultbox/doorsmith/pkg/export"
	"github.com/Faultbox/doorsmith/pkg/mesh"
	"github.com/Faultbox/doorsmith/pkg/parametric"
	"github.com/Faultbox/doorsmith/pkg/preset"
)

func cmdTypes(args []string, stdout, stderr io.Writer) error {
	fs, _ := newFlagSet("types", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, category := range parametric.Categories() {
		fmt.Fprintf(stdout, "%s\n", category)
		for _, v := range door.Variants() {
			fmt.Fprintf(stdout, "  %-3d %s\n", v.Code, v.Name)
		}
	}
	return nil
}

func cmdBuild(args []string, stdout, stderr io.Writer) error {
	fs, df := newFlagSet("build", stderr)
	groups := fs.Bool("groups", false, "Also print material groups")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, log, err := df.setup(stderr)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	d, err := df.open(cfg, log)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, summary(d))
	if *groups {
		printGroups(stdout, d.Geometry().Buffer())
	}
	return nil
}

func printGroups(w io.Writer, buf *mesh.Buffer) {
	for _, g := range buf.Groups {
		fmt.Fprintf(w, "  %-10s triangles=%d\n", door.SlotName(g.Material), g.IndexCount/3)
	}
}

func cmdMetadata(args []string, stdout, stderr io.Writer) error {
	fs, df := newFlagSet("metadata", stderr)
	format := fs.String("format", "yaml", "Output format: yaml or toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, log, err := df.setup(stderr)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	d, err := df.open(cfg, log)
	if err != nil {
		return err
	}
	return encode(stdout, *format, d.Metadata())
}

func cmdSchema(args []string, stdout, stderr io.Writer) error {
	fs, _ := newFlagSet("schema", stderr)
	format := fs.String("format", "yaml", "Output format: yaml or toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// TOML has no top-level arrays.
	return encode(stdout, *format, struct {
		Properties []door.PropertySchema `yaml:"properties" toml:"properties"`
	}{door.Schema()})
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "toml":
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func cmdExport(args []string, stdout, stderr io.Writer) error {
	fs, df := newFlagSet("export", stderr)
	name := fs.String("name", "", "Base file name (default door-<type>-<id>)")
	save := fs.String("save", "", "Also save the door as a preset (.yaml or .toml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, log, err := df.setup(stderr)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	d, err := df.open(cfg, log)
	if err != nil {
		return err
	}
	path, err := export.Door(cfg.Export.Dir, *name, d)
	if err != nil {
		return err
	}
	log.Info("exported", zap.String("path", path))
	fmt.Fprintln(stdout, path)

	if *save != "" {
		if err := preset.Save(*save, preset.FromDoor(d)); err != nil {
			return err
		}
		fmt.Fprintln(stdout, *save)
	}
	return nil
}

func cmdWatch(args []string, stdout, stderr io.Writer) error {
	fs, df := newFlagSet("watch", stderr)
	exportOnChange := fs.Bool("export", false, "Export OBJ/MTL on every change")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, log, err := df.setup(stderr)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if cfg.Door.Preset == "" {
		return fmt.Errorf("watch needs -preset")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := df.options(cfg, log)
	onLoad := func(doc *preset.Document, err error) {
		if err != nil {
			log.Warn("preset rejected", zap.String("path", cfg.Door.Preset), zap.Error(err))
			return
		}
		d, err := doc.Build(opts...)
		if err != nil {
			log.Warn("door build failed", zap.Error(err))
			return
		}
		fmt.Fprintln(stdout, summary(d))
		if *exportOnChange {
			path, err := export.Door(cfg.Export.Dir, "", d)
			if err != nil {
				log.Error("export failed", zap.Error(err))
				return
			}
			log.Info("exported", zap.String("path", path))
		}
	}

	onLoad(preset.Load(cfg.Door.Preset))
	log.Info("watching preset", zap.String("path", cfg.Door.Preset))
	err = preset.Watch(ctx, cfg.Door.Preset, preset.DefaultDebounce, onLoad)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
