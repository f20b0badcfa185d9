// Package ui wraps the cimgui-go SDL backend used by the door browser.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Backend owns the ImGui window and its GL context.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	log     *zap.Logger
}

// Options configures NewBackend.
type Options struct {
	Title      string
	Width      int
	Height     int
	Background [3]float32
}

// NewBackend creates the window, the ImGui context and loads OpenGL.
func NewBackend(opts Options, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Backend{log: log}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(func() {
		imgui.StyleColorsDark()
	})

	bg := opts.Background
	b.backend.SetBgColor(imgui.NewVec4(bg[0], bg[1], bg[2], 1.0))
	b.backend.CreateWindow(opts.Title, opts.Width, opts.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	log.Info("ui backend created",
		zap.String("title", opts.Title),
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))),
	)
	return b, nil
}

// Run starts the render loop; it returns when the window closes.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area, excluding the menu bar.
func Viewport() (pos, size imgui.Vec2) {
	vp := imgui.MainViewport()
	return vp.WorkPos(), vp.WorkSize()
}

// TextureRef wraps a GL texture name for imgui.Image calls.
func TextureRef(tex uint32) imgui.TextureRef {
	return *imgui.NewTextureRefTextureID(imgui.TextureID(tex))
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// IsShortcut reports whether ctrl (cmd on macOS) + key was pressed.
func IsShortcut(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(imgui.ModCtrl) | imgui.KeyChord(key))
}
