package gridkit

import (
	"errors"

	"github.com/hupe1980/gridkit/grid"
	"github.com/hupe1980/gridkit/mesh"
	"github.com/hupe1980/gridkit/num"
)

// MeshIndex is a grid of the vertices of a mesh, keyed by vertex index.
type MeshIndex[T num.Scalar] struct {
	*grid.GridMap[mesh.VertexIndex, T]

	// Duplicates lists the vertices that fell into a cell already taken by
	// an earlier vertex, in mesh order.
	Duplicates []mesh.VertexIndex
}

// IndexMesh places every vertex of m into a grid covering the mesh bounds.
// A vertex whose cell is already taken is recorded in Duplicates instead.
func IndexMesh[T num.Scalar](m *mesh.Mesh[T], optFns ...grid.Option) (*MeshIndex[T], error) {
	bounds, ok := m.Bounds()
	if !ok {
		return nil, ErrEmptyMesh
	}

	g, err := grid.FromBoundingBox[mesh.VertexIndex](bounds, optFns...)
	if err != nil {
		return nil, err
	}

	mi := &MeshIndex[T]{GridMap: g}
	for i, v := range m.Vertices() {
		vi := mesh.VertexIndex(i)
		if _, err := g.Add(vi, v); err != nil {
			if errors.Is(err, grid.ErrSpaceOccupied) {
				mi.Duplicates = append(mi.Duplicates, vi)
				continue
			}
			return nil, err
		}
	}
	return mi, nil
}

// Vertex returns the mesh vertex stored at index.
func (mi *MeshIndex[T]) Vertex(index grid.Index) (mesh.VertexIndex, bool) {
	v, ok := mi.Item(index)
	if !ok {
		return mesh.EndVertex, false
	}
	return v, true
}

// Connected returns the vertices stored in the cells around vertex v of m.
func (mi *MeshIndex[T]) Connected(m *mesh.Mesh[T], v mesh.VertexIndex, diagonal bool) []mesh.VertexIndex {
	pos, ok := m.Vertex(v)
	if !ok {
		return nil
	}
	var out []mesh.VertexIndex
	for _, i := range mi.Neighbors(pos, diagonal) {
		if n, ok := mi.Item(i); ok {
			out = append(out, n)
		}
	}
	return out
}
