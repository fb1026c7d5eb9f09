// Package hexmesh triangulates hexagonal terrain cells into a vertex-colored
// triangle mesh with terraced slopes and cliff faces between cells of
// different elevation.
package hexmesh

import (
	"errors"

	"github.com/Faultbox/hexterrain/pkg/hex"
	"github.com/Faultbox/hexterrain/pkg/math"
)

var (
	ErrMisalignedBuffers = errors.New("position and color buffers differ in length")
	ErrPartialTriangle   = errors.New("index count is not a multiple of three")
	ErrIndexOutOfRange   = errors.New("index references a missing vertex")
)

// Geometry is the read-only geometry table the triangulator consumes.
// hex.Metrics implements it.
type Geometry interface {
	FirstSolidCorner(d hex.Direction) math.Vec3
	SecondSolidCorner(d hex.Direction) math.Vec3
	Bridge(d hex.Direction) math.Vec3
	ElevationStep() float32
	// TerraceSteps must be at least one.
	TerraceSteps() int
	TerraceLerp(a, b math.Vec3, step int) math.Vec3
	TerraceLerpColor(a, b hex.Color, step int) hex.Color
}

var _ Geometry = hex.Metrics{}

// Mesh holds index-aligned vertex buffers ready for upload or export.
type Mesh struct {
	Positions []math.Vec3
	Colors    []hex.Color
	Normals   []math.Vec3
	Indices   []uint32
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Stats counts what a triangulation pass emitted.
type Stats struct {
	Cells         int
	FanTriangles  int
	BridgeQuads   int
	TerraceQuads  int
	CornerFans    int // terraced corners
	BoundaryFans  int // slope/cliff corners
	OpenCorners   int // corners left to the abutting bridge quads
	CornerSkipped int // NE/E corners without a next neighbor
}

// Add accumulates the counters of other into s.
func (s *Stats) Add(other Stats) {
	s.Cells += other.Cells
	s.FanTriangles += other.FanTriangles
	s.BridgeQuads += other.BridgeQuads
	s.TerraceQuads += other.TerraceQuads
	s.CornerFans += other.CornerFans
	s.BoundaryFans += other.BoundaryFans
	s.OpenCorners += other.OpenCorners
	s.CornerSkipped += other.CornerSkipped
}
