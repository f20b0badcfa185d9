package main

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/doorsmith/internal/engine/ui"
)

// renderPreview draws the door into the offscreen target and shows it as
// an image that takes orbit drags and wheel zoom.
func (app *App) renderPreview() {
	avail := imgui.ContentRegionAvail()
	w, h := int32(avail.X), int32(avail.Y-30)
	if w < 16 || h < 16 {
		return
	}
	app.target.Resize(w, h)

	if app.geometryDirty.Swap(false) {
		app.renderer.Upload(app.door.Geometry())
	}
	if app.materialDirty.Swap(false) {
		app.renderer.SetMaterials(app.door.Material())
	}
	if app.refit {
		app.camera.FitToBounds(app.renderer.Bounds())
		app.refit = false
	}

	view, projection := app.camera.ViewMatrix(), app.camera.ProjectionMatrix(app.target.Aspect())
	restore := app.target.Begin(app.background)
	app.renderer.Draw(view, projection)
	if app.showBounds {
		app.overlay.Draw(app.renderer.Bounds(), view, projection)
	}
	restore()

	imgui.ImageWithBgV(
		ui.TextureRef(app.target.Texture()),
		imgui.NewVec2(float32(w), float32(h)),
		imgui.NewVec2(0, 1), // GL textures are bottom-up
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mouse := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.camera.HandleDrag(mouse.X-app.lastMouse.X, mouse.Y-app.lastMouse.Y)
		}
		app.lastMouse = mouse

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			app.camera.HandleZoom(wheel)
		}
	}

	if imgui.Button("Reset View") {
		app.refit = true
	}
	imgui.SameLine()
	imgui.TextDisabled("(Drag to rotate, scroll to zoom, F12 snapshot)")
}
