// Package wavefront reads and writes meshes in the Wavefront OBJ format.
//
// Only geometry is supported: vertex positions ("v"), faces ("f") and the
// object/group name ("o", "g"). Texture coordinates, normals, materials
// and smoothing statements are accepted and ignored.
package wavefront

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/gridkit/mesh"
	"github.com/hupe1980/gridkit/num"
)

// ParseError reports a malformed line.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wavefront: line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("wavefront: line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes an OBJ stream into a mesh. Float coordinates are
// truncated toward zero for integer T.
func Parse[T num.Scalar](r io.Reader, optFns ...Option) (*mesh.Mesh[T], error) {
	p := &parser[T]{
		opts: applyOptions(optFns),
		mesh: mesh.New[T](),
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("wavefront: read: %w", err)
	}
	return p.mesh, nil
}

type parser[T num.Scalar] struct {
	opts options
	mesh *mesh.Mesh[T]
	line int
}

func (p *parser[T]) errorf(err error, format string, args ...any) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...), Err: err}
}

func (p *parser[T]) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	switch fields[0] {
	case "v":
		return p.parseVertex(fields[1:])
	case "f":
		return p.parseFace(fields[1:])
	case "o", "g":
		// The first name wins; a mesh has exactly one.
		if len(fields) > 1 && p.mesh.Name() == "" {
			p.mesh.SetName(strings.Join(fields[1:], " "))
		}
	}
	return nil
}

// v <x> <y> <z> [w]
func (p *parser[T]) parseVertex(fields []string) error {
	if len(fields) < 3 {
		return p.errorf(nil, "vertex needs 3 coordinates, got %d", len(fields))
	}

	var c [3]T
	for i, f := range fields[:3] {
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return p.errorf(err, "invalid vertex coordinate %q", f)
		}
		c[i] = num.FromFloat64[T](val)
	}
	if p.opts.swapYZ {
		c[1], c[2] = c[2], c[1]
	}

	p.mesh.AddVertex(mesh.Vertex[T]{X: c[0], Y: c[1], Z: c[2]})
	return nil
}

// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (p *parser[T]) parseFace(fields []string) error {
	if len(fields) < 3 {
		return p.errorf(nil, "face needs at least 3 vertices, got %d", len(fields))
	}

	var face mesh.Face
	for _, f := range fields {
		ref, _, _ := strings.Cut(f, "/")
		val, err := strconv.Atoi(ref)
		if err != nil {
			return p.errorf(err, "invalid face vertex %q", f)
		}

		var idx int
		switch {
		case val > 0:
			idx = val - 1
		case val < 0:
			// Relative to the last vertex read so far.
			idx = p.mesh.NumVertices() + val
		default:
			return p.errorf(nil, "face vertex index 0")
		}
		if idx < 0 || idx >= p.mesh.NumVertices() {
			return p.errorf(nil, "face vertex %d out of range (%d vertices)", val, p.mesh.NumVertices())
		}
		face.AddVertex(mesh.VertexIndex(idx))
	}

	p.mesh.AddFace(face)
	return nil
}
