// Package scene draws triangulated hex terrain.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/hexterrain/internal/engine/lighting"
	"github.com/Faultbox/hexterrain/internal/engine/shader"
	"github.com/Faultbox/hexterrain/pkg/hexmesh"
	"github.com/Faultbox/hexterrain/pkg/math"
)

// Vertex is the interleaved GPU vertex layout.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Interleave packs the mesh buffers into GPU vertices.
func Interleave(m hexmesh.Mesh) []Vertex {
	vs := make([]Vertex, len(m.Positions))
	for i, p := range m.Positions {
		c := m.Colors[i]
		vs[i] = Vertex{
			Position: p.Array(),
			Color:    [4]float32{c.R, c.G, c.B, c.A},
		}
		if i < len(m.Normals) {
			vs[i].Normal = m.Normals[i].Array()
		}
	}
	return vs
}

type chunkBuffers struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// TerrainRenderer keeps one vertex array per grid chunk, so editing a
// cell only re-uploads the chunks around it.
type TerrainRenderer struct {
	program *shader.Program
	chunks  map[int]*chunkBuffers

	Sun lighting.Sun
}

// NewTerrainRenderer compiles the terrain shader.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	program, err := shader.NewProgram(terrainVertexShader, terrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	return &TerrainRenderer{
		program: program,
		chunks:  make(map[int]*chunkBuffers),
		Sun:     lighting.DefaultSun(),
	}, nil
}

// UploadChunk replaces the GPU buffers of chunk index with m.
func (tr *TerrainRenderer) UploadChunk(index int, m hexmesh.Mesh) {
	tr.deleteChunk(index)
	if len(m.Indices) == 0 {
		return
	}

	vertices := Interleave(m)
	cb := &chunkBuffers{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &cb.vao)
	gl.BindVertexArray(cb.vao)

	gl.GenBuffers(1, &cb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, cb.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// Color (location 2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &cb.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, cb.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	tr.chunks[index] = cb
}

// Render draws every uploaded chunk. highlight marks the selected cell
// center; a radius of zero disables the ring.
func (tr *TerrainRenderer) Render(viewProj mgl32.Mat4, highlight math.Vec3, radius float32) {
	tr.program.Use()
	tr.program.SetMat4("uViewProj", viewProj)
	sun := tr.Sun.Direction()
	tr.program.SetVec3("uLightDir", mgl32.Vec3{sun.X, sun.Y, sun.Z})
	tr.program.SetFloat("uAmbient", tr.Sun.Ambient)
	tr.program.SetVec3("uHighlight", mgl32.Vec3{highlight.X, highlight.Y, highlight.Z})
	tr.program.SetFloat("uHighlightRadius", radius)

	for _, cb := range tr.chunks {
		gl.BindVertexArray(cb.vao)
		gl.DrawElements(gl.TRIANGLES, cb.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)
}

// TriangleCount returns the number of uploaded triangles.
func (tr *TerrainRenderer) TriangleCount() int {
	n := 0
	for _, cb := range tr.chunks {
		n += int(cb.indexCount) / 3
	}
	return n
}

func (tr *TerrainRenderer) deleteChunk(index int) {
	cb, ok := tr.chunks[index]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &cb.vao)
	gl.DeleteBuffers(1, &cb.vbo)
	gl.DeleteBuffers(1, &cb.ebo)
	delete(tr.chunks, index)
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	for index := range tr.chunks {
		tr.deleteChunk(index)
	}
	tr.program.Delete()
}
