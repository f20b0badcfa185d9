package main

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/doorsmith/internal/engine/ui"
	"github.com/Faultbox/doorsmith/pkg/door"
)

const (
	leftPanelWidth  = float32(180)
	rightPanelWidth = float32(320)
	statusBarHeight = float32(26)
)

func (app *App) render() {
	app.drainPending()
	app.handleShortcuts()
	app.renderMenuBar()

	pos, size := ui.Viewport()
	contentHeight := size.Y - statusBarHeight
	previewWidth := size.X - leftPanelWidth - rightPanelWidth
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Types", nil, flags) {
		app.renderTypeList()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+leftPanelWidth, pos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(previewWidth, contentHeight))
	if imgui.BeginV("Preview", nil, flags) {
		app.renderPreview()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(pos.X+leftPanelWidth+previewWidth, pos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(rightPanelWidth, contentHeight))
	if imgui.BeginV("Properties", nil, flags) {
		app.renderProperties()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(pos.X, pos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(size.X, statusBarHeight))
	if imgui.BeginV("Status", nil, flags|imgui.WindowFlagsNoTitleBar) {
		app.renderStatusBar()
	}
	imgui.End()
}

func (app *App) handleShortcuts() {
	switch {
	case ui.IsShortcut(imgui.KeyO):
		app.openPresetDialog()
	case ui.IsShortcut(imgui.KeyS):
		app.savePresetDialog()
	case ui.IsShortcut(imgui.KeyE):
		app.exportDialog()
	case ui.IsKeyPressed(imgui.KeyF12):
		app.takeSnapshot()
	}
}

func (app *App) renderMenuBar() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open Preset...") {
			app.openPresetDialog()
		}
		if imgui.MenuItemBool("Save Preset...") {
			app.savePresetDialog()
		}
		imgui.Separator()
		if imgui.MenuItemBool("Export OBJ...") {
			app.exportDialog()
		}
		if imgui.MenuItemBool("Snapshot") {
			app.takeSnapshot()
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("View") {
		if imgui.MenuItemBool("Reset Camera") {
			app.refit = true
		}
		imgui.Checkbox("Show Bounds", &app.showBounds)
		if imgui.Checkbox("Auto Reload Preset", &app.autoReload) {
			if app.autoReload {
				app.watchPreset()
			} else {
				app.unwatch()
			}
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

func (app *App) renderTypeList() {
	current := app.door.Type()
	for _, v := range door.Variants() {
		label := fmt.Sprintf("%d  %s", v.Code, v.Name)
		if imgui.SelectableBoolV(label, v.Code == current, 0, imgui.NewVec2(0, 0)) {
			app.setType(v.Code)
		}
	}
}

func (app *App) renderStatusBar() {
	md := app.door.Metadata()
	imgui.Text(fmt.Sprintf("%s | %d vertices | %d faces", md.Variant, md.Vertices, md.Faces))
	imgui.SameLine()
	if app.lastProblem != "" {
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), app.lastProblem)
	} else if app.status != "" {
		imgui.TextDisabled(app.status)
	}
}
