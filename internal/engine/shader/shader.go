// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrMissingUniform is returned when a required uniform is not active in a program.
var ErrMissingUniform = errors.New("uniform not found")

// Source is a vertex/fragment pair plus preprocessor defines applied to both.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
	Defines  []string
}

// WithDefines inserts one #define line per entry right after the #version
// directive. Entries may be "NAME" or "NAME VALUE".
func WithDefines(src string, defines ...string) string {
	if len(defines) == 0 {
		return src
	}
	var block strings.Builder
	for _, d := range defines {
		block.WriteString("#define ")
		block.WriteString(d)
		block.WriteByte('\n')
	}

	trimmed := strings.TrimLeft(src, " \t\r\n")
	if !strings.HasPrefix(trimmed, "#version") {
		return block.String() + src
	}
	end := strings.IndexByte(trimmed, '\n')
	if end < 0 {
		return trimmed + "\n" + block.String()
	}
	return trimmed[:end+1] + block.String() + trimmed[end+1:]
}

// Compile builds the program described by s.
func Compile(s Source) (uint32, error) {
	p, err := CompileProgram(WithDefines(s.Vertex, s.Defines...), WithDefines(s.Fragment, s.Defines...))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.Name, err)
	}
	return p, nil
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
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

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, msg)
	}

	return shader, nil
}

func infoLog(id uint32, param func(uint32, uint32, *int32), read func(uint32, int32, *int32, *uint8)) string {
	var logLen int32
	param(id, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return "(no log)"
	}
	log := make([]byte, logLen)
	read(id, logLen, nil, &log[0])
	return strings.TrimRight(string(log), "\x00\n")
}

// Uniform returns the uniform location for name, or -1 if it is inactive.
func Uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// Locations resolves every name in one pass. A name missing from the
// program yields ErrMissingUniform listing all absent names.
func Locations(program uint32, names ...string) (map[string]int32, error) {
	locs := make(map[string]int32, len(names))
	var missing []string
	for _, n := range names {
		loc := Uniform(program, n)
		if loc < 0 {
			missing = append(missing, n)
			continue
		}
		locs[n] = loc
	}
	if len(missing) > 0 {
		return locs, fmt.Errorf("%w: %s", ErrMissingUniform, strings.Join(missing, ", "))
	}
	return locs, nil
}
