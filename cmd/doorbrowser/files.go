package main

import (
	"path/filepath"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/doorsmith/pkg/export"
	"github.com/Faultbox/doorsmith/pkg/preset"
)

// Native dialogs block, so they run on their own goroutine and hand the
// chosen path back through post.

func (app *App) openPresetDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Door presets", "yaml", "yml", "toml").
			Filter("All Files", "*").
			Title("Open Door Preset").
			Load()
		if err != nil {
			app.dialogError(err)
			return
		}
		app.post(func() {
			if err := app.openPreset(path); err != nil {
				app.fail("open preset", err)
			}
		})
	}()
}

func (app *App) savePresetDialog() {
	doc := preset.FromDoor(app.door)
	start := app.presetPath
	go func() {
		b := dialog.File().
			Filter("YAML preset", "yaml", "yml").
			Filter("TOML preset", "toml").
			Title("Save Door Preset")
		if start != "" {
			b = b.SetStartDir(filepath.Dir(start))
		}
		path, err := b.Save()
		if err != nil {
			app.dialogError(err)
			return
		}
		if filepath.Ext(path) == "" {
			path += ".yaml"
		}
		err = preset.Save(path, doc)
		app.post(func() {
			if err != nil {
				app.fail("save preset", err)
				return
			}
			app.presetPath = path
			app.updateTitle()
			if app.autoReload {
				app.watchPreset()
			}
			app.setStatus("Saved " + filepath.Base(path))
		})
	}()
}

func (app *App) exportDialog() {
	d := app.door
	go func() {
		dir, err := dialog.Directory().Title("Export OBJ To").Browse()
		if err != nil {
			app.dialogError(err)
			return
		}
		path, err := export.Door(dir, "", d)
		app.post(func() {
			if err != nil {
				app.fail("export", err)
				return
			}
			app.log.Info("exported", zap.String("path", path))
			app.setStatus("Exported " + path)
		})
	}()
}

func (app *App) dialogError(err error) {
	if err == dialog.ErrCancelled {
		return
	}
	app.post(func() { app.fail("file dialog", err) })
}

func (app *App) takeSnapshot() {
	w, h := app.target.Size()
	path, err := app.capture.Pixels(app.target.ReadPixels(), int(w), int(h))
	if err != nil {
		app.fail("snapshot", err)
		return
	}
	app.log.Info("snapshot saved", zap.String("path", path))
	app.setStatus("Saved " + path)
}
