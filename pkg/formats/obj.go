package formats

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/marching-terrain/pkg/math"
)

// OBJObject is one named object of a Wavefront OBJ file. Indices are 0-based
// into the object's own vertex list.
type OBJObject struct {
	Name     string
	Vertices []math.Vec3
	Colors   [][3]float32 // Optional per-vertex color, written as "v x y z r g b"
	Faces    []uint32     // 3 indices per triangle
	Lines    []uint32     // 2 indices per segment
}

// WriteOBJ writes objects as a single OBJ file. Vertex numbering continues
// across objects, as the format requires.
func WriteOBJ(w io.Writer, objects []OBJObject) error {
	bw := bufio.NewWriter(w)
	base := 1
	for i := range objects {
		obj := &objects[i]
		if len(obj.Colors) != 0 && len(obj.Colors) != len(obj.Vertices) {
			return fmt.Errorf("obj %q: %d colors for %d vertices", obj.Name, len(obj.Colors), len(obj.Vertices))
		}
		if len(obj.Faces)%3 != 0 || len(obj.Lines)%2 != 0 {
			return fmt.Errorf("obj %q: incomplete face or line list", obj.Name)
		}

		fmt.Fprintf(bw, "o %s\n", obj.Name)
		for vi, v := range obj.Vertices {
			if len(obj.Colors) != 0 {
				c := obj.Colors[vi]
				fmt.Fprintf(bw, "v %g %g %g %g %g %g\n", v.X, v.Y, v.Z, c[0], c[1], c[2])
			} else {
				fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
			}
		}
		for f := 0; f < len(obj.Faces); f += 3 {
			fmt.Fprintf(bw, "f %d %d %d\n",
				base+int(obj.Faces[f]), base+int(obj.Faces[f+1]), base+int(obj.Faces[f+2]))
		}
		for l := 0; l < len(obj.Lines); l += 2 {
			fmt.Fprintf(bw, "l %d %d\n", base+int(obj.Lines[l]), base+int(obj.Lines[l+1]))
		}
		base += len(obj.Vertices)
	}
	return bw.Flush()
}
