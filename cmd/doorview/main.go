// doorview is a minimal keyboard-driven door viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/doorsmith/internal/config"
	"github.com/Faultbox/doorsmith/internal/engine/camera"
	"github.com/Faultbox/doorsmith/internal/engine/input"
	"github.com/Faultbox/doorsmith/internal/engine/renderer"
	"github.com/Faultbox/doorsmith/internal/engine/snapshot"
	"github.com/Faultbox/doorsmith/internal/engine/window"
	"github.com/Faultbox/doorsmith/internal/logger"
	"github.com/Faultbox/doorsmith/pkg/door"
	"github.com/Faultbox/doorsmith/pkg/parametric"
	"github.com/Faultbox/doorsmith/pkg/preset"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger.Named("doorview")); err != nil {
		logger.Fatal("doorview failed", zap.Error(err))
	}
}

type viewer struct {
	log    *zap.Logger
	cfg    *config.Config
	opts   []door.Option
	win    *window.Window
	door   *door.Door
	sub    door.ListenerID
	render *renderer.DoorRenderer
	cam    *camera.OrbitCamera
	shots  *snapshot.Capture

	geometryDirty atomic.Bool
	materialDirty atomic.Bool
	wantSnapshot  bool
	showBounds    bool
	reloads       chan *preset.Document
}

func run(cfg *config.Config, log *zap.Logger) error {
	bg, err := door.ParseColor(cfg.Viewer.Background)
	if err != nil {
		return fmt.Errorf("viewer background: %w", err)
	}
	format, err := snapshot.ParseFormat(cfg.Export.SnapshotFormat)
	if err != nil {
		return err
	}

	win, err := window.New(window.Config{
		Title:      "Door View",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	}, log)
	if err != nil {
		return err
	}
	defer win.Close()

	if err := renderer.Init(log); err != nil {
		return err
	}
	r, err := renderer.New(log)
	if err != nil {
		return err
	}
	defer r.Destroy()
	overlay, err := renderer.NewBoundsOverlay()
	if err != nil {
		return err
	}
	defer overlay.Destroy()

	v := &viewer{
		log:     log,
		cfg:     cfg,
		opts:    []door.Option{door.WithLogger(log.Named("door"))},
		win:     win,
		render:  r,
		cam:     camera.NewOrbitCamera(),
		shots:   snapshot.NewCapture(filepath.Join(cfg.Export.Dir, "snapshots"), "doorview", format),
		reloads: make(chan *preset.Document, 1),
	}
	if cfg.Viewer.SmoothNormals {
		v.opts = append(v.opts, door.WithSmoothNormals())
	}

	d, err := v.initialDoor()
	if err != nil {
		return err
	}
	v.setDoor(d)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Door.Preset != "" && cfg.Viewer.AutoReload {
		go v.watch(ctx, cfg.Door.Preset)
	}

	in := input.New()
	background := bg.Float3()
	last := time.Now()
	for {
		if in.Update() {
			return nil
		}
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if quit := v.handleInput(in, dt); quit {
			return nil
		}
		v.applyReloads()

		width, height := win.DrawableSize()
		gl.Viewport(0, 0, int32(width), int32(height))
		gl.ClearColor(background[0], background[1], background[2], 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		if v.geometryDirty.Swap(false) {
			r.Upload(v.door.Geometry())
		}
		if v.materialDirty.Swap(false) {
			r.SetMaterials(v.door.Material())
		}
		aspect := float32(width) / float32(max(height, 1))
		view, projection := v.cam.ViewMatrix(), v.cam.ProjectionMatrix(aspect)
		r.Draw(view, projection)
		if v.showBounds {
			overlay.Draw(r.Bounds(), view, projection)
		}
		if v.wantSnapshot {
			v.snapshot(width, height)
			v.wantSnapshot = false
		}

		win.SwapBuffers()
	}
}

func (v *viewer) initialDoor() (*door.Door, error) {
	if v.cfg.Door.Preset != "" {
		doc, err := preset.Load(v.cfg.Door.Preset)
		if err != nil {
			return nil, err
		}
		return doc.Build(v.opts...)
	}
	return parametric.New(v.cfg.Door.Category, v.cfg.Door.Type, nil, v.opts...)
}

func (v *viewer) setDoor(d *door.Door) {
	if v.door != nil {
		v.door.Unsubscribe(v.sub)
	}
	v.door = d
	v.sub = d.Subscribe(func(e door.Event) {
		switch e.Kind {
		case door.EventGeometryUpdated:
			v.geometryDirty.Store(true)
		case door.EventMaterialUpdated:
			v.materialDirty.Store(true)
		}
	})
	v.render.Upload(d.Geometry())
	v.render.SetMaterials(d.Material())
	v.cam.FitToBounds(d.Geometry().Buffer().Bounds)
	v.updateTitle()
}

func (v *viewer) updateTitle() {
	md := v.door.Metadata()
	v.win.SetTitle(fmt.Sprintf("Door View - %d %s | %s | %s | ratio %.2f",
		md.Type, md.Variant, md.OpenDirection, md.HandleType, md.DoorRatio))
}

// watch forwards preset changes to the render loop, keeping only the newest.
func (v *viewer) watch(ctx context.Context, path string) {
	err := preset.Watch(ctx, path, preset.DefaultDebounce, func(doc *preset.Document, err error) {
		if err != nil {
			v.log.Warn("preset rejected", zap.String("path", path), zap.Error(err))
			return
		}
		select {
		case <-v.reloads:
		default:
		}
		v.reloads <- doc
	})
	if err != nil && ctx.Err() == nil {
		v.log.Warn("preset watch stopped", zap.Error(err))
	}
}

func (v *viewer) applyReloads() {
	select {
	case doc := <-v.reloads:
		d, err := doc.Build(v.opts...)
		if err != nil {
			v.log.Warn("reload failed", zap.Error(err))
			return
		}
		v.setDoor(d)
		v.log.Info("preset reloaded")
	default:
	}
}

func (v *viewer) handleInput(in *input.Input, dt float32) (quit bool) {
	for _, e := range in.Events() {
		switch e.Type {
		case input.EventMouseDrag:
			v.cam.HandleDrag(e.DX, e.DY)
		case input.EventMouseWheel:
			v.cam.HandleZoom(e.Wheel * 0.5)
		case input.EventKeyDown:
			if e.Key == sdl.SCANCODE_ESCAPE {
				return true
			}
			v.handleKey(e.Key, e.Shift)
		}
	}

	keys := sdl.GetKeyboardState()
	var forward, right float32
	if keys[sdl.SCANCODE_UP] != 0 {
		forward++
	}
	if keys[sdl.SCANCODE_DOWN] != 0 {
		forward--
	}
	if keys[sdl.SCANCODE_RIGHT] != 0 {
		right++
	}
	if keys[sdl.SCANCODE_LEFT] != 0 {
		right--
	}
	if forward != 0 || right != 0 {
		v.cam.HandleMovement(forward*dt*10, right*dt*10, 0)
	}
	return false
}
