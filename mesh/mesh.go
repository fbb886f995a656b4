// Package mesh provides a minimal polygon mesh: a vertex list plus faces
// that reference vertices by index.
//
// Transforms (Translate, InvertX/Y/Z, MapVertices) mutate the mesh in
// place.
package mesh

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/num"
)

// ErrInvalidFace is returned by Validate when a face references a vertex
// that is not part of the mesh.
var ErrInvalidFace = errors.New("mesh: face references missing vertex")

// Vertex is a mesh vertex position.
type Vertex[T num.Scalar] = geom.Vec3[T]

// Mesh is a named collection of vertices and faces.
type Mesh[T num.Scalar] struct {
	name     string
	vertices []Vertex[T]
	faces    []Face
}

// New returns an empty, unnamed mesh.
func New[T num.Scalar]() *Mesh[T] {
	return &Mesh[T]{}
}

// SetName sets the mesh name.
func (m *Mesh[T]) SetName(name string) { m.name = name }

// Name returns the mesh name; empty when unset.
func (m *Mesh[T]) Name() string { return m.name }

// AddVertex appends a vertex and returns its index.
func (m *Mesh[T]) AddVertex(v Vertex[T]) VertexIndex {
	m.vertices = append(m.vertices, v)
	return VertexIndex(len(m.vertices) - 1)
}

// AddFace appends a face. The referenced vertices are expected to exist
// already; use Validate to check.
func (m *Mesh[T]) AddFace(f Face) FaceIndex {
	m.faces = append(m.faces, f)
	return FaceIndex(len(m.faces) - 1)
}

// MakeFace adds every vertex and a face over them.
func (m *Mesh[T]) MakeFace(verts ...Vertex[T]) FaceIndex {
	f := Face{verts: make([]VertexIndex, 0, len(verts))}
	for _, v := range verts {
		f.AddVertex(m.AddVertex(v))
	}
	return m.AddFace(f)
}

// Vertices returns the vertex slice. It is shared with the mesh.
func (m *Mesh[T]) Vertices() []Vertex[T] { return m.vertices }

// Faces returns the face slice. It is shared with the mesh.
func (m *Mesh[T]) Faces() []Face { return m.faces }

// NumVertices returns the number of vertices.
func (m *Mesh[T]) NumVertices() int { return len(m.vertices) }

// NumFaces returns the number of faces.
func (m *Mesh[T]) NumFaces() int { return len(m.faces) }

// Vertex returns the vertex at i.
func (m *Mesh[T]) Vertex(i VertexIndex) (Vertex[T], bool) {
	if i < 0 || int(i) >= len(m.vertices) {
		return Vertex[T]{}, false
	}
	return m.vertices[i], true
}

// SetVertex overwrites the vertex at i.
func (m *Mesh[T]) SetVertex(i VertexIndex, v Vertex[T]) bool {
	if i < 0 || int(i) >= len(m.vertices) {
		return false
	}
	m.vertices[i] = v
	return true
}

// Face returns the face at i.
func (m *Mesh[T]) Face(i FaceIndex) (Face, bool) {
	if i < 0 || int(i) >= len(m.faces) {
		return Face{}, false
	}
	return m.faces[i], true
}

// MapVertices replaces every vertex v by f(v).
func (m *Mesh[T]) MapVertices(f func(Vertex[T]) Vertex[T]) {
	for i, v := range m.vertices {
		m.vertices[i] = f(v)
	}
}

// Translate moves every vertex by offset.
func (m *Mesh[T]) Translate(offset geom.Vec3[T]) {
	m.MapVertices(func(v Vertex[T]) Vertex[T] { return v.Add(offset) })
}

// InvertX negates the X component of every vertex.
func (m *Mesh[T]) InvertX() { m.invert(geom.X) }

// InvertY negates the Y component of every vertex.
func (m *Mesh[T]) InvertY() { m.invert(geom.Y) }

// InvertZ negates the Z component of every vertex.
func (m *Mesh[T]) InvertZ() { m.invert(geom.Z) }

func (m *Mesh[T]) invert(a geom.Axis) {
	m.MapVertices(func(v Vertex[T]) Vertex[T] {
		v.SetDim(a, -v.Dim(a))
		return v
	})
}

// Bounds returns the tightest box around all vertices. It reports false
// for a mesh without vertices.
func (m *Mesh[T]) Bounds() (geom.BoundingBox[T], bool) {
	return geom.BoundsOf(m.vertices...)
}

// Clone returns a deep copy of m.
func (m *Mesh[T]) Clone() *Mesh[T] {
	c := &Mesh[T]{
		name:     m.name,
		vertices: slices.Clone(m.vertices),
		faces:    make([]Face, len(m.faces)),
	}
	for i, f := range m.faces {
		c.faces[i] = NewFace(f.verts...)
	}
	return c
}

// Validate reports the first face that references a vertex outside the
// mesh, wrapped around ErrInvalidFace.
func (m *Mesh[T]) Validate() error {
	for fi, f := range m.faces {
		for _, v := range f.verts {
			if v < 0 || int(v) >= len(m.vertices) {
				return fmt.Errorf("%w: face %v references %v (mesh has %d vertices)", ErrInvalidFace, FaceIndex(fi), v, len(m.vertices))
			}
		}
	}
	return nil
}
