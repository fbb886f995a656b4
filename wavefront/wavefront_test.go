package wavefront

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/gridkit/geom"
	"github.com/hupe1980/gridkit/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cube = `# a unit cube corner
mtllib cube.mtl
o Cube
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 1.0 1.0 0.0
v 0.0 1.0 2.5
vt 0.0 0.0
vn 0.0 0.0 1.0
usemtl Material
s off
f 1 2 3
f 1/1 3/1 4/1
f 2//1 3//1 4//1
f -4/1/1 -3/1/1 -1/1/1
`

func TestParse(t *testing.T) {
	m, err := Parse[float64](strings.NewReader(cube))
	require.NoError(t, err)

	assert.Equal(t, "Cube", m.Name())
	assert.Equal(t, 4, m.NumVertices())
	require.Equal(t, 4, m.NumFaces())
	require.NoError(t, m.Validate())

	v, _ := m.Vertex(3)
	assert.Equal(t, geom.V3(0.0, 1.0, 2.5), v)

	want := [][]mesh.VertexIndex{{0, 1, 2}, {0, 2, 3}, {1, 2, 3}, {0, 1, 3}}
	for i, w := range want {
		f, ok := m.Face(mesh.FaceIndex(i))
		require.True(t, ok)
		assert.Equal(t, w, f.Vertices(), "face %d", i)
	}
}

func TestParseSwapYZ(t *testing.T) {
	m, err := Parse[float64](strings.NewReader(cube), WithSwapYZ())
	require.NoError(t, err)

	v, _ := m.Vertex(3)
	assert.Equal(t, geom.V3(0.0, 2.5, 1.0), v)
}

func TestParseIntegerTruncates(t *testing.T) {
	m, err := Parse[int](strings.NewReader("v 1.9 -2.7 3\n"))
	require.NoError(t, err)

	v, _ := m.Vertex(0)
	assert.Equal(t, geom.V3(1, -2, 3), v)
}

func TestParsePointCloud(t *testing.T) {
	m, err := Parse[float64](strings.NewReader("v 1 2 3\nv 4 5 6\nv 7 8 9\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, m.NumVertices())
	assert.Zero(t, m.NumFaces())
	v, _ := m.Vertex(2)
	assert.Equal(t, geom.V3(7.0, 8.0, 9.0), v)
}

func TestParseKeepsPolygons(t *testing.T) {
	input := `v 0 0 0
v 2 0 0
v 3 1 0
v 1 2 0
v -1 1 0
v 9 9 9
f 1 2 3 4 5
f 1/1/1 2/1/1 3/1/1 4/1/1
l 1 6
vp 0.5
f -6 -5 -1
`
	m, err := Parse[float64](strings.NewReader(input))
	require.NoError(t, err)

	// Vertices keep the numbering of the v lines, unused ones included.
	require.Equal(t, 6, m.NumVertices())
	v, _ := m.Vertex(5)
	assert.Equal(t, geom.V3(9.0, 9.0, 9.0), v)

	want := [][]mesh.VertexIndex{{0, 1, 2, 3, 4}, {0, 1, 2, 3}, {0, 1, 5}}
	require.Equal(t, len(want), m.NumFaces())
	for i, w := range want {
		f, ok := m.Face(mesh.FaceIndex(i))
		require.True(t, ok)
		assert.Equal(t, w, f.Vertices(), "face %d", i)
	}
}

func TestParseIntegerPrecision(t *testing.T) {
	// 2^24+1 has no exact float32 representation.
	m, err := Parse[int64](strings.NewReader("v 16777217 -16777217 3\n"))
	require.NoError(t, err)

	v, _ := m.Vertex(0)
	assert.Equal(t, geom.V3[int64](16777217, -16777217, 3), v)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"short vertex", "v 1 2\n", 1},
		{"bad coordinate", "v 1 x 2\n", 1},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n", 3},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 0 1 2\n", 4},
		{"index past end", "v 0 0 0\nv 1 0 0\nv 1 1 0\n\nf 1 2 9\n", 5},
		{"relative before start", "v 0 0 0\nf -1 -2 -3\n", 2},
		{"bad index", "v 0 0 0\nf a b c\n", 2},
		{"bad coordinate after comments", "# header\n\nv 0 0 0\nv 1 1 nan?\n", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse[float64](strings.NewReader(tt.input))
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.line, pe.Line)
		})
	}
}

func TestExport(t *testing.T) {
	m := mesh.New[int]()
	m.SetName("tri")
	m.MakeFace(geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 2))

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, m, WithMaterialLib("tri.mtl")))

	want := `# generated by gridkit
mtllib tri.mtl
o tri
v 0 0 0
v 1 0 0
v 0 1 2
f 1 2 3
`
	assert.Equal(t, want, buf.String())
}

func TestExportParseRoundTrip(t *testing.T) {
	m, err := Parse[float64](strings.NewReader(cube))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, m, WithSwapYZ()))

	back, err := Parse[float64](&buf, WithSwapYZ())
	require.NoError(t, err)
	assert.Equal(t, m.Vertices(), back.Vertices())
	assert.Equal(t, m.Faces(), back.Faces())
	assert.Equal(t, m.Name(), back.Name())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	m := mesh.New[int]()
	m.MakeFace(geom.V3(0, 0, 0), geom.V3(1, 0, 0), geom.V3(0, 1, 0))

	require.NoError(t, WriteFile(filepath.Join(dir, "shape"), m))

	data, err := os.ReadFile(filepath.Join(dir, "shape.obj"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "o shape\n")

	back, err := ReadFile[int](filepath.Join(dir, "shape.obj"))
	require.NoError(t, err)
	assert.Equal(t, "shape", back.Name())
	assert.Equal(t, m.Vertices(), back.Vertices())
}
