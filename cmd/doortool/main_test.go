package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/doorsmith/pkg/door"
	"github.com/Faultbox/doorsmith/pkg/preset"
)

// isolate keeps user config files out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func runTool(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), err
}

func TestUnknownCommand(t *testing.T) {
	isolate(t)
	if _, err := runTool(t, "frobnicate"); !errors.Is(err, errUsage) {
		t.Errorf("err = %v, want errUsage", err)
	}
	if _, err := runTool(t); !errors.Is(err, errUsage) {
		t.Errorf("no args: err = %v, want errUsage", err)
	}
}

func TestTypes(t *testing.T) {
	isolate(t)
	out, err := runTool(t, "types")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "DOOR\n") {
		t.Errorf("output does not start with category: %q", out)
	}
	for _, v := range door.Variants() {
		if !strings.Contains(out, v.Name) {
			t.Errorf("output missing variant %q", v.Name)
		}
	}
}

func TestBuild(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"defaults", []string{"build"}, []string{"type=1", "open=RIGHT", "handle=HANDLE_01"}},
		{"type flag", []string{"build", "-type", "4"}, []string{"type=4", "variant=vision-panel"}},
		{"overrides", []string{"build", "-set", "openDirection=both_sides", "-set", "handleType=NONE"},
			[]string{"open=BOTH_SIDES", "handle=NONE", "handleFaces=0"}},
		{"no doors", []string{"build", "-set", "openDirection=NO_DOORS", "-groups"},
			[]string{"open=NO_DOORS", "faces=60", "frame"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runTool(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestBuildRejectsBadProperty(t *testing.T) {
	isolate(t)
	_, err := runTool(t, "build", "-set", "openDirection=UP")
	if !errors.Is(err, door.ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
	if _, err := runTool(t, "build", "-set", "novalue"); err == nil {
		t.Error("expected malformed -set to fail")
	}
}

func TestMetadataYAML(t *testing.T) {
	isolate(t)
	out, err := runTool(t, "metadata", "-set", "frameWidth=120", "-set", "doorColor=#112233")
	if err != nil {
		t.Fatal(err)
	}
	var md map[string]any
	if err := yaml.Unmarshal([]byte(out), &md); err != nil {
		t.Fatalf("metadata is not YAML: %v\n%s", err, out)
	}
	if md["frameWidth"] != 120 {
		t.Errorf("frameWidth = %v, want 120", md["frameWidth"])
	}
	if md["doorColor"] != "#112233" {
		t.Errorf("doorColor = %v, want #112233", md["doorColor"])
	}
}

func TestSchema(t *testing.T) {
	isolate(t)
	for _, format := range []string{"yaml", "toml"} {
		out, err := runTool(t, "schema", "-format", format)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		for _, key := range []string{door.KeyDoorRatio, door.KeyOpenDirection, "BOTH_SIDES", "HANDLE_04"} {
			if !strings.Contains(out, key) {
				t.Errorf("%s schema missing %q", format, key)
			}
		}
	}
	if _, err := runTool(t, "schema", "-format", "xml"); err == nil {
		t.Error("expected unknown format error")
	}
}

func TestExportWithPreset(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	savePath := filepath.Join(dir, "presets", "saved.toml")

	out, err := runTool(t, "export", "-type", "6", "-out", dir, "-name", "glass", "-save", savePath)
	if err != nil {
		t.Fatal(err)
	}
	objPath := filepath.Join(dir, "glass.obj")
	if !strings.Contains(out, objPath) {
		t.Errorf("output %q missing %q", out, objPath)
	}
	for _, p := range []string{objPath, filepath.Join(dir, "glass.mtl"), savePath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}

	doc, err := preset.Load(savePath)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Type != 6 {
		t.Errorf("saved type = %d, want 6", doc.Type)
	}

	// The saved preset drives the next build.
	out, err = runTool(t, "build", "-preset", savePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "type=6") {
		t.Errorf("preset build = %q, want type=6", out)
	}
}

func TestWatchNeedsPreset(t *testing.T) {
	isolate(t)
	if _, err := runTool(t, "watch"); err == nil {
		t.Error("expected error without -preset")
	}
}

func TestPropertyFlagsString(t *testing.T) {
	p := propertyFlags{}
	for _, s := range []string{"b=2", " a = 1 "} {
		if err := p.Set(s); err != nil {
			t.Fatal(err)
		}
	}
	if got := p.String(); got != "a=1,b=2" {
		t.Errorf("String() = %q", got)
	}
}
