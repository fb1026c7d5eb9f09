package export

import (
	"fmt"
	"io"
	"sort"

	svg "github.com/ajstarks/svgo"

	"github.com/Faultbox/hexterrain/internal/engine/lighting"
	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/hexmesh"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// SVGOptions controls the top-down preview.
type SVGOptions struct {
	// Scale is SVG pixels per world unit.
	Scale float32 `yaml:"scale"`
	// Margin in pixels around the mesh.
	Margin int `yaml:"margin"`
	// Sun flat-shades each face.
	Sun lighting.Sun `yaml:"sun"`
	// Background fill, as accepted by hex.ParseColor.
	Background string `yaml:"background"`
}

// DefaultSVGOptions returns options for a 2px-per-unit preview.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Scale:      2,
		Margin:     10,
		Sun:        lighting.DefaultSun(),
		Background: "white",
	}
}

type svgFace struct {
	xs, ys []int
	height float32
	fill   string
}

// WriteSVG renders m seen from above: +X to the right and +Z up. Each
// triangle is filled with its average vertex color, shaded by its face
// normal, and drawn lowest first so higher terrain covers lower terrain.
func WriteSVG(w io.Writer, m hexmesh.Mesh, opts SVGOptions) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if opts.Scale <= 0 {
		return fmt.Errorf("svg scale must be positive, got %v", opts.Scale)
	}
	background, err := hex.ParseColor(opts.Background)
	if err != nil {
		return err
	}
	size := m.Bounds.Size()
	width := int(size.X*opts.Scale) + 2*opts.Margin
	height := int(size.Z*opts.Scale) + 2*opts.Margin
	project := func(p math.Vec3) (int, int) {
		x := (p.X-m.Bounds.Min.X)*opts.Scale + float32(opts.Margin)
		y := (m.Bounds.Max.Z-p.Z)*opts.Scale + float32(opts.Margin)
		return int(x + 0.5), int(y + 0.5)
	}

	faces := make([]svgFace, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0, p1, p2 := m.Positions[a], m.Positions[b], m.Positions[c]

		normal := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		if normal.Y <= 0 {
			// Vertical or facing down: invisible from above.
			continue
		}
		shade := opts.Sun.Shade(normal)

		col := m.Colors[a].Lerp(m.Colors[b], 0.5).Lerp(m.Colors[c], 1.0/3)
		col = hex.Color{R: col.R * shade, G: col.G * shade, B: col.B * shade, A: 1}

		f := svgFace{height: (p0.Y + p1.Y + p2.Y) / 3, fill: "fill:" + col.Hex()}
		for _, p := range []math.Vec3{p0, p1, p2} {
			x, y := project(p)
			f.xs = append(f.xs, x)
			f.ys = append(f.ys, y)
		}
		faces = append(faces, f)
	}
	sort.SliceStable(faces, func(i, j int) bool { return faces[i].height < faces[j].height })

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+background.Hex())
	for _, f := range faces {
		canvas.Polygon(f.xs, f.ys, f.fill)
	}
	canvas.End()
	return nil
}
