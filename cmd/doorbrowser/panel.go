package main

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/doorsmith/pkg/door"
)

// renderProperties builds one widget per schema entry. Every edit goes
// through Door.Set so geometry keys rebuild and colour keys only restyle.
func (app *App) renderProperties() {
	md := app.door.Metadata()
	values := md.Properties()

	imgui.SeparatorText(md.Variant)
	imgui.TextDisabled(md.ID)

	for _, s := range app.door.Parameters() {
		imgui.PushIDStr(s.Key)
		if v, ok := app.propertyWidget(s, values[s.Key]); ok {
			if err := app.door.Set(door.Properties{s.Key: v}); err != nil {
				app.fail("set "+s.Key, err)
			}
		}
		imgui.PopID()
	}
}

// propertyWidget draws the widget for s and returns the new value when the
// user changed it.
func (app *App) propertyWidget(s door.PropertySchema, current any) (any, bool) {
	switch s.Kind {
	case door.WidgetText:
		text, _ := current.(string)
		if imgui.InputTextWithHint(s.Label, "unnamed", &text, 0, nil) {
			return text, true
		}

	case door.WidgetNumber:
		f, _ := current.(float32)
		if imgui.InputFloat(s.Label, &f) && f > 0 {
			return f, true
		}

	case door.WidgetRange:
		f, _ := current.(float32)
		format := "%.0f"
		if s.Step < 1 {
			format = "%.2f"
		}
		if imgui.SliderFloatV(s.Label, &f, s.Min, s.Max, format, imgui.SliderFlagsNone) {
			return f, true
		}

	case door.WidgetChoice:
		selected := choiceLabel(current)
		if imgui.BeginCombo(s.Label, selected) {
			defer imgui.EndCombo()
			for _, opt := range s.Options {
				if imgui.SelectableBoolV(opt, opt == selected, 0, imgui.NewVec2(0, 0)) && opt != selected {
					return opt, true
				}
			}
		}

	case door.WidgetColor:
		c, _ := current.(door.Color)
		rgb := c.Float3()
		if imgui.ColorEdit3(s.Label, &rgb) {
			c.SetFloat3(rgb)
			return c, true
		}
	}
	return nil, false
}

func choiceLabel(v any) string {
	switch t := v.(type) {
	case door.OpenDirection:
		return t.String()
	case door.HandleType:
		return t.String()
	case string:
		return t
	}
	return ""
}
