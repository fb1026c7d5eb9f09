package export

import (
	"fmt"
	"io"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/hexmesh"
	hmath "github.com/Faultbox/hexterrain/pkg/math"
)

// Field numbers of the mesh message:
//
//	message Mesh {
//	  repeated float  positions = 1; // x, y, z
//	  repeated float  colors    = 2; // r, g, b, a
//	  repeated float  normals   = 3; // x, y, z
//	  repeated uint32 indices   = 4;
//	}
const (
	fieldPositions protowire.Number = 1
	fieldColors    protowire.Number = 2
	fieldNormals   protowire.Number = 3
	fieldIndices   protowire.Number = 4
)

// MarshalProto encodes m in protobuf wire format with packed fields.
func MarshalProto(m hexmesh.Mesh) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var b []byte
	b = appendPackedVec3(b, fieldPositions, m.Positions)

	colors := make([]byte, 0, len(m.Colors)*16)
	for _, c := range m.Colors {
		colors = appendFloats(colors, c.R, c.G, c.B, c.A)
	}
	b = protowire.AppendTag(b, fieldColors, protowire.BytesType)
	b = protowire.AppendBytes(b, colors)

	if len(m.Normals) > 0 {
		b = appendPackedVec3(b, fieldNormals, m.Normals)
	}

	var indices []byte
	for _, idx := range m.Indices {
		indices = protowire.AppendVarint(indices, uint64(idx))
	}
	b = protowire.AppendTag(b, fieldIndices, protowire.BytesType)
	b = protowire.AppendBytes(b, indices)
	return b, nil
}

// WriteProto writes m to w in protobuf wire format.
func WriteProto(w io.Writer, m hexmesh.Mesh) error {
	b, err := MarshalProto(m)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// UnmarshalProto decodes a mesh written by MarshalProto. Unknown fields are
// skipped. Bounds are recomputed, and normals too when absent.
func UnmarshalProto(b []byte) (hexmesh.Mesh, error) {
	var (
		m         hexmesh.Mesh
		positions []float32
		colors    []float32
		normals   []float32
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return m, fmt.Errorf("%w: %w", ErrMalformedMesh, protowire.ParseError(n))
		}
		b = b[n:]

		if typ != protowire.BytesType || num < fieldPositions || num > fieldIndices {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return m, fmt.Errorf("%w: field %d: %w", ErrMalformedMesh, num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return m, fmt.Errorf("%w: field %d: %w", ErrMalformedMesh, num, protowire.ParseError(n))
		}
		b = b[n:]

		var err error
		switch num {
		case fieldPositions:
			positions, err = consumeFloats(positions, v)
		case fieldColors:
			colors, err = consumeFloats(colors, v)
		case fieldNormals:
			normals, err = consumeFloats(normals, v)
		case fieldIndices:
			m.Indices, err = consumeVarints(m.Indices, v)
		}
		if err != nil {
			return m, fmt.Errorf("%w: field %d: %w", ErrMalformedMesh, num, err)
		}
	}

	if len(positions)%3 != 0 || len(normals)%3 != 0 || len(colors)%4 != 0 {
		return m, fmt.Errorf("%w: truncated vector data", ErrMalformedMesh)
	}
	m.Positions = toVec3(positions)
	m.Normals = toVec3(normals)
	for i := 0; i < len(colors); i += 4 {
		m.Colors = append(m.Colors, hex.Color{R: colors[i], G: colors[i+1], B: colors[i+2], A: colors[i+3]})
	}

	if err := m.Validate(); err != nil {
		return m, fmt.Errorf("%w: %w", ErrMalformedMesh, err)
	}
	if len(m.Normals) == 0 {
		m.RecalculateNormals()
	}
	m.RecalculateBounds()
	return m, nil
}

// ReadProto reads a whole protobuf-encoded mesh from r.
func ReadProto(r io.Reader) (hexmesh.Mesh, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return hexmesh.Mesh{}, err
	}
	return UnmarshalProto(b)
}

func appendPackedVec3(b []byte, num protowire.Number, vs []hmath.Vec3) []byte {
	packed := make([]byte, 0, len(vs)*12)
	for _, v := range vs {
		packed = appendFloats(packed, v.X, v.Y, v.Z)
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func appendFloats(b []byte, fs ...float32) []byte {
	for _, f := range fs {
		b = protowire.AppendFixed32(b, math.Float32bits(f))
	}
	return b
}

func consumeFloats(dst []float32, b []byte) ([]float32, error) {
	for len(b) > 0 {
		v, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return dst, protowire.ParseError(n)
		}
		dst = append(dst, math.Float32frombits(v))
		b = b[n:]
	}
	return dst, nil
}

func consumeVarints(dst []uint32, b []byte) ([]uint32, error) {
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return dst, protowire.ParseError(n)
		}
		if v > math.MaxUint32 {
			return dst, fmt.Errorf("index %d overflows uint32", v)
		}
		dst = append(dst, uint32(v))
		b = b[n:]
	}
	return dst, nil
}

func toVec3(fs []float32) []hmath.Vec3 {
	if len(fs) == 0 {
		return nil
	}
	vs := make([]hmath.Vec3, len(fs)/3)
	for i := range vs {
		vs[i] = hmath.Vec3{X: fs[3*i], Y: fs[3*i+1], Z: fs[3*i+2]}
	}
	return vs
}
