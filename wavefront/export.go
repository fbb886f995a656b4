package wavefront

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/gridkit/mesh"
	"github.com/hupe1980/gridkit/num"
)

// Export writes m as OBJ. Face indices are written 1-based.
func Export[T num.Scalar](w io.Writer, m *mesh.Mesh[T], optFns ...Option) error {
	o := applyOptions(optFns)

	bw := bufio.NewWriter(w)
	if o.comment != "" {
		fmt.Fprintf(bw, "# %s\n", o.comment)
	}
	if o.mtllib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", o.mtllib)
	}

	name := o.name
	if name == "" {
		name = m.Name()
	}
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	for _, v := range m.Vertices() {
		y, z := v.Y, v.Z
		if o.swapYZ {
			y, z = z, y
		}
		fmt.Fprintf(bw, "v %v %v %v\n", v.X, y, z)
	}

	for _, f := range m.Faces() {
		bw.WriteString("f")
		for _, v := range f.Vertices() {
			fmt.Fprintf(bw, " %d", int(v)+1)
		}
		bw.WriteString("\n")
	}

	return bw.Flush()
}

// WriteFile exports m to path, appending ".obj" when missing. The file
// base name is used as object name for unnamed meshes.
func WriteFile[T num.Scalar](path string, m *mesh.Mesh[T], optFns ...Option) error {
	if !strings.EqualFold(filepath.Ext(path), ".obj") {
		path += ".obj"
	}
	if m.Name() == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		optFns = append([]Option{WithName(base)}, optFns...)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Export(f, m, optFns...); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadFile parses the OBJ file at path.
func ReadFile[T num.Scalar](path string, optFns ...Option) (*mesh.Mesh[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse[T](f, optFns...)
}
