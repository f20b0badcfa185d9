package main

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/doorsmith/pkg/door"
	"github.com/Faultbox/doorsmith/pkg/door/handle"
	"github.com/Faultbox/doorsmith/pkg/export"
	"github.com/Faultbox/doorsmith/pkg/parametric"
)

const (
	ratioStep     = 0.05
	frameSizeStep = 1
)

// handleKey applies one key binding:
//
//	D          cycle open direction
//	H          cycle handle
//	T, Shift+T next, previous door type
//	[ ]        door ratio
//	- =        frame size
//	R          refit camera
//	B          toggle bounds overlay
//	P          snapshot
//	E          export OBJ
func (v *viewer) handleKey(key sdl.Scancode, shift bool) {
	var err error
	switch key {
	case sdl.SCANCODE_D:
		err = v.door.SetOpenDirection(next(door.OpenDirections(), v.door.OpenDirection(), 1))
	case sdl.SCANCODE_H:
		err = v.door.SetHandleType(next(handle.Types(), v.door.HandleType(), 1))
	case sdl.SCANCODE_T:
		step := 1
		if shift {
			step = -1
		}
		v.cycleType(step)
	case sdl.SCANCODE_LEFTBRACKET:
		err = v.door.SetDoorRatio(v.door.DoorRatio() - ratioStep)
	case sdl.SCANCODE_RIGHTBRACKET:
		err = v.door.SetDoorRatio(v.door.DoorRatio() + ratioStep)
	case sdl.SCANCODE_MINUS:
		err = v.door.SetFrameSize(v.door.FrameSize() - frameSizeStep)
	case sdl.SCANCODE_EQUALS:
		err = v.door.SetFrameSize(v.door.FrameSize() + frameSizeStep)
	case sdl.SCANCODE_R:
		v.cam.FitToBounds(v.door.Geometry().Buffer().Bounds)
	case sdl.SCANCODE_B:
		v.showBounds = !v.showBounds
	case sdl.SCANCODE_P:
		v.wantSnapshot = true
	case sdl.SCANCODE_E:
		v.export()
	default:
		return
	}
	if err != nil {
		v.log.Warn("edit rejected", zap.Error(err))
	}
	v.updateTitle()
}

func (v *viewer) cycleType(step int) {
	variants := door.Variants()
	codes := make([]int, len(variants))
	for i, vr := range variants {
		codes[i] = vr.Code
	}
	code := next(codes, v.door.Type(), step)
	d, err := parametric.New(parametric.CategoryDoor, code, v.door.Metadata().Properties(), v.opts...)
	if err != nil {
		v.log.Warn("type change failed", zap.Int("type", code), zap.Error(err))
		return
	}
	v.setDoor(d)
}

// snapshot saves the frame just drawn, before it is swapped away.
func (v *viewer) snapshot(width, height int) {
	pixels := make([]byte, width*height*4)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	path, err := v.shots.Pixels(pixels, width, height)
	if err != nil {
		v.log.Warn("snapshot failed", zap.Error(err))
		return
	}
	v.log.Info("snapshot saved", zap.String("path", path))
}

func (v *viewer) export() {
	path, err := export.Door(v.cfg.Export.Dir, "", v.door)
	if err != nil {
		v.log.Warn("export failed", zap.Error(err))
		return
	}
	v.log.Info("exported", zap.String("path", path))
}

// next returns the element step positions after cur, wrapping around.
// An unknown cur yields the first element.
func next[T comparable](items []T, cur T, step int) T {
	for i, it := range items {
		if it == cur {
			n := len(items)
			return items[((i+step)%n+n)%n]
		}
	}
	return items[0]
}
