package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/hexterrain/pkg/hexmesh"
)

// WriteOBJ writes m as Wavefront OBJ with per-vertex colors appended to
// the v lines. Normals are written when present.
func WriteOBJ(w io.Writer, m hexmesh.Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# hexterrain: %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	for i, p := range m.Positions {
		c := m.Colors[i]
		fmt.Fprintf(bw, "v %g %g %g %.4f %.4f %.4f\n", p.X, p.Y, p.Z, c.R, c.G, c.B)
	}

	hasNormals := len(m.Normals) == len(m.Positions)
	if hasNormals {
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i]+1, m.Indices[i+1]+1, m.Indices[i+2]+1
		if hasNormals {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		} else {
			fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
		}
	}
	return bw.Flush()
}
