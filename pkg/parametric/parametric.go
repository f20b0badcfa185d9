// Package parametric resolves parametric object classes by category and type
// code. DOOR is the only category.
package parametric

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/doorsmith/pkg/door"
)

// ErrUnimplementedParametricClass is returned for unknown categories.
var ErrUnimplementedParametricClass = errors.New("unimplemented parametric class")

// CategoryDoor is the category token of doors.
const CategoryDoor = "DOOR"

// Factory resolves type codes within one category.
type Factory interface {
	ClassFor(code int) (door.Variant, error)
	New(code int, props door.Properties, opts ...door.Option) (*door.Door, error)
}

type doorFactory struct{}

func (doorFactory) ClassFor(code int) (door.Variant, error) { return door.ClassFor(code) }

func (doorFactory) New(code int, props door.Properties, opts ...door.Option) (*door.Door, error) {
	return door.NewOfType(code, props, opts...)
}

var categories = map[string]Factory{
	CategoryDoor: doorFactory{},
}

// Categories lists the registered category tokens.
func Categories() []string {
	out := make([]string, 0, len(categories))
	for c := range categories {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// FactoryFor returns the sub-factory of a category. Tokens are matched
// case-insensitively.
func FactoryFor(category string) (Factory, error) {
	f, ok := categories[strings.ToUpper(strings.TrimSpace(category))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnimplementedParametricClass, category)
	}
	return f, nil
}

// ClassFor resolves a category and type code to a door variant.
func ClassFor(category string, code int) (door.Variant, error) {
	f, err := FactoryFor(category)
	if err != nil {
		return door.Variant{}, err
	}
	return f.ClassFor(code)
}

// New resolves and constructs in one step.
func New(category string, code int, props door.Properties, opts ...door.Option) (*door.Door, error) {
	f, err := FactoryFor(category)
	if err != nil {
		return nil, err
	}
	return f.New(code, props, opts...)
}
