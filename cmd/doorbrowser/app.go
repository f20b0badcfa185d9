package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/AllenDang/cimgui-go/imgui"
	"go.uber.org/zap"

	"github.com/Faultbox/doorsmith/internal/config"
	"github.com/Faultbox/doorsmith/internal/engine/camera"
	"github.com/Faultbox/doorsmith/internal/engine/renderer"
	"github.com/Faultbox/doorsmith/internal/engine/snapshot"
	"github.com/Faultbox/doorsmith/internal/engine/ui"
	"github.com/Faultbox/doorsmith/pkg/door"
	"github.com/Faultbox/doorsmith/pkg/parametric"
	"github.com/Faultbox/doorsmith/pkg/preset"
)

// App is the door browser state. Everything except the pending queue is
// touched only from the render loop.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	backend *ui.Backend

	door         *door.Door
	subscription door.ListenerID
	doorOpts     []door.Option

	renderer *renderer.DoorRenderer
	overlay  *renderer.BoundsOverlay
	target   *renderer.Target
	camera   *camera.OrbitCamera
	capture  *snapshot.Capture

	background    [3]float32
	geometryDirty atomic.Bool
	materialDirty atomic.Bool
	refit         bool
	showBounds    bool
	lastMouse     imgui.Vec2

	presetPath  string
	stopWatch   context.CancelFunc
	autoReload  bool
	status      string
	lastProblem string

	// pending carries work from dialog and watcher goroutines to the
	// render loop.
	pending chan func()
}

// NewApp opens the window and builds the initial door.
func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	bgColor, err := door.ParseColor(cfg.Viewer.Background)
	if err != nil {
		return nil, fmt.Errorf("viewer background: %w", err)
	}
	format, err := snapshot.ParseFormat(cfg.Export.SnapshotFormat)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:        cfg,
		log:        log,
		camera:     camera.NewOrbitCamera(),
		capture:    snapshot.NewCapture(filepath.Join(cfg.Export.Dir, "snapshots"), "door", format),
		background: bgColor.Float3(),
		autoReload: cfg.Viewer.AutoReload,
		pending:    make(chan func(), 16),
		doorOpts:   []door.Option{door.WithLogger(log.Named("door"))},
	}
	if cfg.Viewer.SmoothNormals {
		app.doorOpts = append(app.doorOpts, door.WithSmoothNormals())
	}

	app.backend, err = ui.NewBackend(ui.Options{
		Title:      "Door Browser",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Background: app.background,
	}, log)
	if err != nil {
		return nil, err
	}

	if app.renderer, err = renderer.New(log); err != nil {
		return nil, err
	}
	if app.overlay, err = renderer.NewBoundsOverlay(); err != nil {
		return nil, err
	}
	if app.target, err = renderer.NewTarget(640, 640); err != nil {
		return nil, err
	}

	if cfg.Door.Preset != "" {
		if err := app.openPreset(cfg.Door.Preset); err != nil {
			return nil, err
		}
	} else {
		d, err := parametric.New(cfg.Door.Category, cfg.Door.Type, nil, app.doorOpts...)
		if err != nil {
			return nil, err
		}
		app.setDoor(d)
	}
	return app, nil
}

// setDoor swaps the edited door and re-subscribes to its events.
func (app *App) setDoor(d *door.Door) {
	if app.door != nil {
		app.door.Unsubscribe(app.subscription)
	}
	app.door = d
	app.subscription = d.Subscribe(func(e door.Event) {
		switch e.Kind {
		case door.EventGeometryUpdated:
			app.geometryDirty.Store(true)
		case door.EventMaterialUpdated:
			app.materialDirty.Store(true)
		}
	})
	app.geometryDirty.Store(true)
	app.materialDirty.Store(true)
	app.refit = true
	app.updateTitle()
}

// setType rebuilds the current door as another variant, keeping its
// properties.
func (app *App) setType(code int) {
	if code == app.door.Type() {
		return
	}
	d, err := parametric.New(parametric.CategoryDoor, code, app.door.Metadata().Properties(), app.doorOpts...)
	if err != nil {
		app.fail("change type", err)
		return
	}
	app.setDoor(d)
}

// openPreset loads a preset and, with auto reload on, follows its changes.
func (app *App) openPreset(path string) error {
	doc, err := preset.Load(path)
	if err != nil {
		return err
	}
	d, err := doc.Build(app.doorOpts...)
	if err != nil {
		return err
	}
	app.presetPath = path
	app.setDoor(d)
	app.setStatus("Opened " + filepath.Base(path))
	if app.autoReload {
		app.watchPreset()
	}
	return nil
}

func (app *App) watchPreset() {
	app.unwatch()
	if app.presetPath == "" {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	app.stopWatch = cancel
	path := app.presetPath

	go func() {
		err := preset.Watch(ctx, path, preset.DefaultDebounce, func(doc *preset.Document, err error) {
			app.post(func() { app.reload(path, doc, err) })
		})
		if err != nil && ctx.Err() == nil {
			app.log.Warn("preset watch stopped", zap.String("path", path), zap.Error(err))
		}
	}()
}

func (app *App) unwatch() {
	if app.stopWatch != nil {
		app.stopWatch()
		app.stopWatch = nil
	}
}

// reload applies a watched preset change. A same-type change is applied
// in place so the camera stays put.
func (app *App) reload(path string, doc *preset.Document, err error) {
	if path != app.presetPath {
		return
	}
	if err != nil {
		app.fail("reload preset", err)
		return
	}
	if doc.Type == app.door.Type() {
		if err := app.door.Set(doc.Properties); err != nil {
			app.fail("reload preset", err)
			return
		}
	} else {
		d, err := doc.Build(app.doorOpts...)
		if err != nil {
			app.fail("reload preset", err)
			return
		}
		app.setDoor(d)
	}
	app.setStatus("Reloaded " + filepath.Base(path))
}

// post queues fn for the render loop; it blocks while the queue is full.
func (app *App) post(fn func()) {
	app.pending <- fn
}

func (app *App) drainPending() {
	for {
		select {
		case fn := <-app.pending:
			fn()
		default:
			return
		}
	}
}

func (app *App) setStatus(msg string) {
	app.status = msg
	app.lastProblem = ""
}

func (app *App) fail(action string, err error) {
	app.log.Warn(action+" failed", zap.Error(err))
	app.lastProblem = fmt.Sprintf("%s: %v", action, err)
}

func (app *App) updateTitle() {
	title := fmt.Sprintf("Door Browser - %s", app.door.Variant().Name)
	if app.presetPath != "" {
		title += " - " + filepath.Base(app.presetPath)
	}
	app.backend.SetWindowTitle(title)
}

// Run starts the render loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// Close stops watchers and frees GL resources.
func (app *App) Close() {
	app.unwatch()
	if app.door != nil {
		app.door.Unsubscribe(app.subscription)
	}
	if app.renderer != nil {
		app.renderer.Destroy()
	}
	if app.overlay != nil {
		app.overlay.Destroy()
	}
	if app.target != nil {
		app.target.Destroy()
	}
}
