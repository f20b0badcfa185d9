package door

import "fmt"

// Variant is a registered door type: a code and the leaf shape it builds.
type Variant struct {
	Code int
	Name string
	Leaf LeafShapeBuilder
}

var variants = []Variant{
	{Code: 1, Name: "plain", Leaf: PlainLeaf},
	{Code: 2, Name: "raised-panel", Leaf: RaisedPanelLeaf},
	{Code: 3, Name: "two-panel", Leaf: TwoPanelLeaf},
	{Code: 4, Name: "vision-panel", Leaf: VisionPanelLeaf},
	{Code: 5, Name: "rails", Leaf: RailLeaf},
	{Code: 6, Name: "full-glass", Leaf: GlassLeaf},
}

// ClassFor returns the variant registered for a door type code.
func ClassFor(code int) (Variant, error) {
	for _, v := range variants {
		if v.Code == code {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: door type %d", ErrUnimplementedVariant, code)
}

// Variants lists the registered variants in code order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}
