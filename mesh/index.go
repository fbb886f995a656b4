package mesh

import (
	"fmt"
	"math"
)

// VertexIndex addresses a vertex of a [Mesh].
type VertexIndex int

// FaceIndex addresses a face of a [Mesh].
type FaceIndex int

const (
	// EndVertex is the sentinel for "no vertex".
	EndVertex VertexIndex = math.MaxInt
	// EndFace is the sentinel for "no face".
	EndFace FaceIndex = math.MaxInt
)

// IsEnd reports whether i is the EndVertex sentinel.
func (i VertexIndex) IsEnd() bool { return i == EndVertex }

func (i VertexIndex) String() string {
	if i.IsEnd() {
		return "v(end)"
	}
	return fmt.Sprintf("v%d", int(i))
}

// IsEnd reports whether i is the EndFace sentinel.
func (i FaceIndex) IsEnd() bool { return i == EndFace }

func (i FaceIndex) String() string {
	if i.IsEnd() {
		return "f(end)"
	}
	return fmt.Sprintf("f%d", int(i))
}
