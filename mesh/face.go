package mesh

import "slices"

// Face is an ordered list of vertex references into a mesh.
type Face struct {
	verts []VertexIndex
}

// NewFace returns a face over the given vertices.
func NewFace(verts ...VertexIndex) Face {
	return Face{verts: slices.Clone(verts)}
}

// AddVertex appends a vertex reference.
func (f *Face) AddVertex(v VertexIndex) {
	f.verts = append(f.verts, v)
}

// Vertices returns a copy of the vertex references.
func (f Face) Vertices() []VertexIndex {
	return slices.Clone(f.verts)
}

// Len returns the number of vertices of the face.
func (f Face) Len() int { return len(f.verts) }
