// Package shader compiles GLSL programs and carries the door shading program.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/doorsmith/internal/engine/shader/glsl"
)

// LoadProgram compiles the embedded <name>.vert and <name>.frag pair.
func LoadProgram(name string) (uint32, error) {
	vs, err := glsl.Source(name + ".vert")
	if err != nil {
		return 0, err
	}
	fs, err := glsl.Source(name + ".frag")
	if err != nil {
		return 0, err
	}
	prog, err := CompileProgram(vs, fs)
	if err != nil {
		return 0, fmt.Errorf("program %s: %w", name, err)
	}
	return prog, nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compile(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compile(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", msg)
	}
	return program, nil
}

func compile(source string, kind uint32, name string) (uint32, error) {
	sh := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csource, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(sh, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("%s shader: %s", name, msg)
	}
	return sh, nil
}

func infoLog(obj uint32, param func(uint32, uint32, *int32), read func(uint32, int32, *int32, *uint8)) string {
	var n int32
	param(obj, gl.INFO_LOG_LENGTH, &n)
	if n == 0 {
		return "unknown error"
	}
	buf := make([]byte, n)
	read(obj, n, nil, &buf[0])
	return string(buf)
}

// Uniform returns the uniform location for name, or -1 if it is inactive.
func Uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// MustUniform is Uniform but panics when the uniform is missing.
func MustUniform(program uint32, name string) int32 {
	loc := Uniform(program, name)
	if loc < 0 {
		panic(fmt.Sprintf("uniform %q not found in program %d", name, program))
	}
	return loc
}
