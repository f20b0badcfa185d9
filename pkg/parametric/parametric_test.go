package parametric

import (
	"errors"
	"testing"

	"github.com/Faultbox/doorsmith/pkg/door"
)

func TestClassFor(t *testing.T) {
	tests := []struct {
		category string
		code     int
		wantErr  error
	}{
		{"DOOR", 1, nil},
		{"door", 6, nil},
		{" Door ", 3, nil},
		{"DOOR", 7, door.ErrUnimplementedVariant},
		{"WINDOW", 1, ErrUnimplementedParametricClass},
		{"", 1, ErrUnimplementedParametricClass},
	}
	for _, tt := range tests {
		v, err := ClassFor(tt.category, tt.code)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ClassFor(%q, %d) err = %v, want %v", tt.category, tt.code, err, tt.wantErr)
			}
			continue
		}
		if err != nil || v.Code != tt.code {
			t.Errorf("ClassFor(%q, %d) = %+v, %v", tt.category, tt.code, v, err)
		}
	}
}

func TestNew(t *testing.T) {
	d, err := New("door", 4, door.Properties{door.KeyFrameWidth: 90})
	if err != nil {
		t.Fatal(err)
	}
	if d.Type() != 4 || d.FrameWidth() != 90 {
		t.Errorf("door = type %d width %v", d.Type(), d.FrameWidth())
	}
	if _, err := New("lamp", 1, nil); !errors.Is(err, ErrUnimplementedParametricClass) {
		t.Errorf("err = %v", err)
	}
}

func TestCategories(t *testing.T) {
	if c := Categories(); len(c) != 1 || c[0] != CategoryDoor {
		t.Errorf("Categories = %v", c)
	}
}
