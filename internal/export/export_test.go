package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/hexmesh"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// slopeMesh triangulates two cells one elevation level apart.
func slopeMesh(t *testing.T) hexmesh.Mesh {
	t.Helper()
	m := hex.DefaultMetrics()
	b := hexmesh.NewBuilder()
	b.AddTriangleColor(math.Vec3{}, math.Vec3{Z: 10}, math.Vec3{X: 8.66, Z: 5}, hex.ColorGrass)
	b.AddQuadBlend(
		math.Vec3{X: 8.66, Z: 5}, math.Vec3{X: 8.66, Z: -5},
		math.Vec3{X: 11.2, Y: m.ElevationStep(), Z: 5}, math.Vec3{X: 11.2, Y: m.ElevationStep(), Z: -5},
		hex.ColorGrass, hex.ColorRock,
	)
	mesh := b.Mesh()
	if err := mesh.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	return mesh
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"obj", FormatOBJ, false},
		{".OBJ", FormatOBJ, false},
		{"pb", FormatProto, false},
		{"proto", FormatProto, false},
		{"svg", FormatSVG, false},
		{"stl", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteOBJ(t *testing.T) {
	mesh := slopeMesh(t)
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, mesh); err != nil {
		t.Fatalf("WriteOBJ() error = %v", err)
	}

	var v, vn, f int
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		switch {
		case strings.HasPrefix(line, "v "):
			v++
			if fields := strings.Fields(line); len(fields) != 7 {
				t.Errorf("vertex line %q has %d fields, want 7", line, len(fields))
			}
		case strings.HasPrefix(line, "vn "):
			vn++
		case strings.HasPrefix(line, "f "):
			f++
		}
	}
	if v != 7 || vn != 7 || f != 3 {
		t.Errorf("got %d v, %d vn, %d f; want 7, 7, 3", v, vn, f)
	}
	if !strings.Contains(buf.String(), "f 1//1 2//2 3//3\n") {
		t.Errorf("first face not 1-based:\n%s", buf.String())
	}
}

func TestWriteOBJRejectsInvalidMesh(t *testing.T) {
	mesh := slopeMesh(t)
	mesh.Indices = mesh.Indices[:4]
	if err := WriteOBJ(&bytes.Buffer{}, mesh); !errors.Is(err, hexmesh.ErrPartialTriangle) {
		t.Errorf("WriteOBJ() error = %v, want ErrPartialTriangle", err)
	}
}

func TestProtoRoundTrip(t *testing.T) {
	mesh := slopeMesh(t)

	var buf bytes.Buffer
	if err := WriteProto(&buf, mesh); err != nil {
		t.Fatalf("WriteProto() error = %v", err)
	}
	got, err := ReadProto(&buf)
	if err != nil {
		t.Fatalf("ReadProto() error = %v", err)
	}
	if diff := cmp.Diff(mesh, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestProtoWithoutNormals(t *testing.T) {
	mesh := slopeMesh(t)
	want := mesh.Normals
	mesh.Normals = nil

	b, err := MarshalProto(mesh)
	if err != nil {
		t.Fatalf("MarshalProto() error = %v", err)
	}
	got, err := UnmarshalProto(b)
	if err != nil {
		t.Fatalf("UnmarshalProto() error = %v", err)
	}
	if diff := cmp.Diff(want, got.Normals); diff != "" {
		t.Errorf("recomputed normals mismatch (-want +got):\n%s", diff)
	}
}

func TestProtoSkipsUnknownFields(t *testing.T) {
	mesh := slopeMesh(t)
	b, err := MarshalProto(mesh)
	if err != nil {
		t.Fatalf("MarshalProto() error = %v", err)
	}
	b = protowire.AppendTag(b, 15, protowire.VarintType)
	b = protowire.AppendVarint(b, 12345)
	b = protowire.AppendTag(b, 16, protowire.BytesType)
	b = protowire.AppendString(b, "hexterrain")

	got, err := UnmarshalProto(b)
	if err != nil {
		t.Fatalf("UnmarshalProto() error = %v", err)
	}
	if got.VertexCount() != mesh.VertexCount() {
		t.Errorf("VertexCount() = %d, want %d", got.VertexCount(), mesh.VertexCount())
	}
}

func TestProtoMalformed(t *testing.T) {
	mesh := slopeMesh(t)
	good, err := MarshalProto(mesh)
	if err != nil {
		t.Fatalf("MarshalProto() error = %v", err)
	}

	badIndex := protowire.AppendTag(append([]byte(nil), good...), fieldIndices, protowire.BytesType)
	badIndex = protowire.AppendBytes(badIndex, protowire.AppendVarint(nil, 999))

	tests := []struct {
		name string
		data []byte
	}{
		{"truncated", good[:len(good)-3]},
		{"bad tag", []byte{0xff}},
		{"index out of range", badIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalProto(tt.data); !errors.Is(err, ErrMalformedMesh) {
				t.Errorf("UnmarshalProto() error = %v, want ErrMalformedMesh", err)
			}
		})
	}
}

func TestWriteSVG(t *testing.T) {
	mesh := slopeMesh(t)
	var buf bytes.Buffer
	if err := WriteSVG(&buf, mesh, DefaultSVGOptions()); err != nil {
		t.Fatalf("WriteSVG() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("output is not an SVG document:\n%s", out)
	}
	if n := strings.Count(out, "<polygon"); n != 3 {
		t.Errorf("got %d polygons, want 3", n)
	}
}

func TestWriteSVGBadOptions(t *testing.T) {
	opts := DefaultSVGOptions()
	opts.Scale = 0
	if err := WriteSVG(&bytes.Buffer{}, slopeMesh(t), opts); err == nil {
		t.Error("WriteSVG() with zero scale returned nil error")
	}
	opts = DefaultSVGOptions()
	opts.Background = "plaid"
	if err := WriteSVG(&bytes.Buffer{}, slopeMesh(t), opts); err == nil {
		t.Error("WriteSVG() with bad background returned nil error")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "terrain.pb")
	format, err := FormatFromPath(path)
	if err != nil {
		t.Fatalf("FormatFromPath() error = %v", err)
	}
	mesh := slopeMesh(t)
	if err := WriteFile(path, format, mesh); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()
	got, err := ReadProto(f)
	if err != nil {
		t.Fatalf("ReadProto() error = %v", err)
	}
	if got.TriangleCount() != mesh.TriangleCount() {
		t.Errorf("TriangleCount() = %d, want %d", got.TriangleCount(), mesh.TriangleCount())
	}
}
