// Package renderer sets up OpenGL state for the terrain viewer.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/logger"
	"github.com/Faultbox/hexterrain/pkg/hex"
)

// Renderer owns global GL state.
type Renderer struct {
	clear hex.Color
}

// New initializes OpenGL. Call it after the GL context exists.
func New(clear hex.Color) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	// Terrain triangles wind counter-clockwise seen from above.
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)

	return &Renderer{clear: clear}, nil
}

// BeginFrame clears the framebuffer and sets the viewport.
func (r *Renderer) BeginFrame(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(r.clear.R, r.clear.G, r.clear.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetWireframe toggles polygon line mode.
func (r *Renderer) SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}
