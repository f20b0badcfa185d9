// Package glsl embeds the GLSL sources of the viewer programs.
package glsl

import (
	"embed"
	"fmt"
)

//go:embed *.vert *.frag
var sources embed.FS

// Source returns an embedded shader source by file name, e.g. "door.vert".
func Source(name string) (string, error) {
	b, err := sources.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("shader source %s: %w", name, err)
	}
	return string(b), nil
}
