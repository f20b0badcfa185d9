package door

import (
	"fmt"
	"strings"

	"github.com/Faultbox/doorsmith/pkg/door/handle"
)

// OpenDirection selects which side(s) of the opening carry a leaf.
type OpenDirection uint8

const (
	OpenRight OpenDirection = iota + 1
	OpenLeft
	OpenBothSides
	OpenNoDoors
)

var directionTags = [...]string{
	OpenRight:     "RIGHT",
	OpenLeft:      "LEFT",
	OpenBothSides: "BOTH_SIDES",
	OpenNoDoors:   "NO_DOORS",
}

// OpenDirections lists the enum in declaration order.
func OpenDirections() []OpenDirection {
	return []OpenDirection{OpenRight, OpenLeft, OpenBothSides, OpenNoDoors}
}

func (d OpenDirection) Valid() bool {
	return d >= OpenRight && d <= OpenNoDoors
}

func (d OpenDirection) String() string {
	if !d.Valid() {
		return fmt.Sprintf("OpenDirection(%d)", uint8(d))
	}
	return directionTags[d]
}

// ParseOpenDirection resolves a tag such as "BOTH_SIDES" (case-insensitive).
func ParseOpenDirection(tag string) (OpenDirection, error) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	for _, d := range OpenDirections() {
		if directionTags[d] == tag {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: openDirection %q", ErrInvalidParameter, tag)
}

// sides returns the leaves an opening carries.
func (d OpenDirection) sides() []handle.Side {
	switch d {
	case OpenLeft:
		return []handle.Side{handle.Left}
	case OpenRight:
		return []handle.Side{handle.Right}
	case OpenBothSides:
		return []handle.Side{handle.Left, handle.Right}
	}
	return nil
}

// HandleType is the handle shape mounted on each leaf.
type HandleType = handle.Type

const (
	HandleNone = handle.None
	Handle01   = handle.Handle01
	Handle02   = handle.Handle02
	Handle03   = handle.Handle03
	Handle04   = handle.Handle04
)
