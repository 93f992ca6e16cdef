package gl

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// ShaderSource holds null-terminated vertex/fragment source strings.
type ShaderSource struct {
	Vertex       string
	Fragment     string
	Include      string
	CompileFlags CompileFlags
}

// CompileFlags controls how strict shader compilation/link error checking is.
type CompileFlags uint64

const (
	CompileFlagValidateProgram CompileFlags = 1 << iota
	CompileFlagNoCompileCheck
	CompileFlagNoLinkCheck
)

const CompileFlagsStrict = CompileFlagValidateProgram

func (cf CompileFlags) checkCompile() bool    { return cf&CompileFlagNoCompileCheck == 0 }
func (cf CompileFlags) checkLink() bool       { return cf&CompileFlagNoLinkCheck == 0 }
func (cf CompileFlags) validateProgram() bool { return cf&CompileFlagValidateProgram != 0 }

// ParseCombined splits a file with `#shader vertex` / `#shader fragment` /
// `#shader includeashead` pragmas into a ShaderSource, in the style of The
// Cherno's single-file shader convention used by soypat/glgl.
func ParseCombined(r io.Reader) (ShaderSource, error) {
	const (
		none = iota
		vertex
		fragment
		header
		numKinds
	)
	bufs := [numKinds]*bytes.Buffer{
		none: bytes.NewBuffer(nil), vertex: bytes.NewBuffer(nil),
		fragment: bytes.NewBuffer(nil), header: bytes.NewBuffer(nil),
	}
	scanner := bufio.NewScanner(r)
	cur := none
	for scanner.Scan() {
		line := scanner.Bytes()
		if cur != none && !bytes.HasPrefix(bytes.TrimSpace(line), []byte("#shader ")) {
			bufs[cur].Write(line)
			bufs[cur].WriteByte('\n')
			continue
		}
		fields := bytes.Fields(line)
		if len(fields) != 2 {
			continue
		}
		switch string(fields[1]) {
		case "includeashead":
			cur = header
		case "vertex":
			cur = vertex
		case "fragment", "pixel":
			cur = fragment
		default:
			return ShaderSource{}, fmt.Errorf("unexpected #shader pragma: %s", fields[1])
		}
	}
	inc := bufs[header].Bytes()
	join := func(b *bytes.Buffer) string {
		if b.Len() == 0 {
			return ""
		}
		out := append([]byte{}, inc...)
		b.WriteByte(0)
		return string(append(out, b.Bytes()...))
	}
	return ShaderSource{
		Vertex:   join(bufs[vertex]),
		Fragment: join(bufs[fragment]),
		Include:  string(inc),
	}, scanner.Err()
}

// Program is a linked GL shader program.
type Program struct{ rid uint32 }

func (p Program) ID() uint32 { return p.rid }
func (p Program) Bind()      { gl.UseProgram(p.rid) }
func (p Program) Unbind()    { gl.UseProgram(0) }
func (p Program) Delete() {
	p.Unbind()
	gl.DeleteProgram(p.rid)
}

// CompileProgram compiles and links a vertex+fragment program.
func CompileProgram(ss ShaderSource) (Program, error) {
	if ss.Vertex == "" || ss.Fragment == "" {
		return Program{}, errors.New("CompileProgram requires both vertex and fragment source")
	}
	return compileSources(ss)
}

func compileSources(ss ShaderSource) (program Program, err error) {
	program.rid = gl.CreateProgram()
	if program.rid == 0 {
		return Program{}, errors.New("got invalid program id; is the GL context current on this thread?")
	}
	var shaders []uint32
	var linked bool
	defer func() {
		for _, sid := range shaders {
			if linked {
				gl.DetachShader(program.rid, sid)
			}
			gl.DeleteShader(sid)
		}
	}()
	flags := ss.CompileFlags
	vid, err := compile(gl.VERTEX_SHADER, flags, ss.Vertex)
	if err != nil {
		return Program{}, fmt.Errorf("vertex shader: %w", err)
	}
	gl.AttachShader(program.rid, vid)
	shaders = append(shaders, vid)

	fid, err := compile(gl.FRAGMENT_SHADER, flags, ss.Fragment)
	if err != nil {
		return Program{}, fmt.Errorf("fragment shader: %w", err)
	}
	gl.AttachShader(program.rid, fid)
	shaders = append(shaders, fid)

	gl.LinkProgram(program.rid)
	if flags.checkLink() {
		if err := ivLogErr(program.rid, gl.LINK_STATUS, gl.GetProgramiv, gl.GetProgramInfoLog); err != nil {
			return Program{}, fmt.Errorf("link failed: %w", err)
		}
	}
	linked = true
	if flags.validateProgram() {
		gl.ValidateProgram(program.rid)
		if err := ivLogErr(program.rid, gl.VALIDATE_STATUS, gl.GetProgramiv, gl.GetProgramInfoLog); err != nil {
			return Program{}, fmt.Errorf("validation failed: %w", err)
		}
	}
	return program, nil
}

func compile(shaderType uint32, flags CompileFlags, source string) (uint32, error) {
	if !strings.HasSuffix(source, "\x00") {
		return 0, errors.New("shader source missing null terminator")
	}
	id := gl.CreateShader(shaderType)
	if id == 0 {
		return 0, errors.New("got invalid shader id 0")
	}
	srcs, free := gl.Strs(source)
	length := int32(len(source))
	gl.ShaderSource(id, 1, srcs, &length)
	free()
	gl.CompileShader(id)
	if flags.checkCompile() {
		if err := ivLogErr(id, gl.COMPILE_STATUS, gl.GetShaderiv, gl.GetShaderInfoLog); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (p Program) UniformLocation(name string) (int32, error) {
	if !strings.HasSuffix(name, "\x00") {
		return -1, ErrStringNotNullTerminated
	}
	loc := gl.GetUniformLocation(p.rid, gl.Str(name))
	if loc < 0 {
		return loc, fmt.Errorf("uniform not found: %s", name[:len(name)-1])
	}
	return loc, nil
}

func (p Program) SetUniformMatrix4(loc int32, m [16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (p Program) SetUniformf(loc int32, floats ...float32) error {
	switch len(floats) {
	case 1:
		gl.Uniform1f(loc, floats[0])
	case 2:
		gl.Uniform2f(loc, floats[0], floats[1])
	case 3:
		gl.Uniform3f(loc, floats[0], floats[1], floats[2])
	case 4:
		gl.Uniform4f(loc, floats[0], floats[1], floats[2], floats[3])
	default:
		return errors.New("bad number of floats")
	}
	return Err()
}

func (p Program) SetUniformi(loc int32, ints ...int32) error {
	switch len(ints) {
	case 1:
		gl.Uniform1i(loc, ints[0])
	case 2:
		gl.Uniform2i(loc, ints[0], ints[1])
	default:
		return errors.New("bad number of ints")
	}
	return Err()
}

func ivLogErr(id, pname uint32, getIV func(program uint32, pname uint32, params *int32), getInfo func(program uint32, bufSize int32, length *int32, infoLog *uint8)) error {
	log := ivLog(id, pname, getIV, getInfo)
	if len(log) > 0 {
		err := errors.New(log)
		if err2 := Err(); err2 != nil {
			return errors.Join(err, err2)
		}
		return err
	}
	return nil
}

func ivLog(id, pname uint32, getIV func(program uint32, pname uint32, params *int32), getInfo func(program uint32, bufSize int32, length *int32, infoLog *uint8)) string {
	var iv int32
	getIV(id, pname, &iv)
	if iv == gl.FALSE {
		var logLength int32
		getIV(id, gl.INFO_LOG_LENGTH, &logLength)
		if logLength == 0 {
			return ""
		}
		log := make([]byte, logLength)
		getInfo(id, logLength, &logLength, &log[0])
		return string(log[:len(log)-1])
	}
	return ""
}
