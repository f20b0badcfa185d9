package door

import "errors"

// Sentinel errors. Callers match with errors.Is; aggregated property errors
// (see ParseProperties) match every sentinel they contain.
var (
	ErrInvalidParameter     = errors.New("invalid door parameter")
	ErrUnimplementedVariant = errors.New("unimplemented door variant")
)
