// Package viewer implements the interactive terrain viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hexterrain/internal/config"
	"github.com/Faultbox/hexterrain/internal/engine/camera"
	"github.com/Faultbox/hexterrain/internal/engine/debug"
	"github.com/Faultbox/hexterrain/internal/engine/input"
	"github.com/Faultbox/hexterrain/internal/engine/picking"
	"github.com/Faultbox/hexterrain/internal/engine/renderer"
	"github.com/Faultbox/hexterrain/internal/engine/scene"
	"github.com/Faultbox/hexterrain/internal/engine/window"
	"github.com/Faultbox/hexterrain/internal/grid"
	"github.com/Faultbox/hexterrain/internal/logger"
	"github.com/Faultbox/hexterrain/internal/terrain"
	"github.com/Faultbox/hexterrain/pkg/hex"
)

// panSpeed is the focus movement in world units per second at the default
// camera distance.
const panSpeed = 80

// Viewer is the main viewer instance.
type Viewer struct {
	cfg      *config.Config
	grid     *grid.Grid
	seed     int64
	running  bool
	wire     bool
	shoot    bool
	selected *grid.Cell

	window   *window.Window
	renderer *renderer.Renderer
	terrain  *scene.TerrainRenderer
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *debug.ScreenshotCapture
	log      *zap.Logger
}

// New opens the window and uploads the initial terrain of g.
func New(cfg *config.Config, g *grid.Grid, seed int64) (*Viewer, error) {
	v := &Viewer{
		cfg:  cfg,
		grid: g,
		seed: seed,
		log:  logger.Named("viewer"),
	}
	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Viewer.Width),
		zap.Int("height", cfg.Viewer.Height),
		zap.Int("cells", len(g.Cells())),
	)

	var err error
	// Window first: the GL context must exist before the renderer.
	v.window, err = window.New(window.Config{
		Title:      "hexview",
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.renderer, err = renderer.New(hex.Color{R: 0.53, G: 0.71, B: 0.86, A: 1})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.terrain, err = scene.NewTerrainRenderer()
	if err != nil {
		v.window.Close()
		return nil, err
	}

	v.terrain.Sun = cfg.Viewer.Sun

	v.shots, err = debug.NewScreenshotCapture(cfg.Viewer.ScreenshotDir, "hexview", cfg.Viewer.ScreenshotFormat)
	if err != nil {
		v.Close()
		return nil, err
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera(cfg.Viewer.FOV)

	v.grid.MarkAllDirty()
	v.refresh()
	v.camera.FitToBounds(v.grid.Mesh().Bounds)

	v.log.Info("viewer initialized")
	return v, nil
}

// Run starts the main loop and returns when the window closes.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			if err := v.handleEvent(event); err != nil {
				return err
			}
		}
		v.pan(dt)

		width, height := v.window.DrawableSize()
		v.renderer.BeginFrame(width, height)
		var radius float32
		focus := v.camera.Focus
		if v.selected != nil {
			focus = v.selected.Position()
			radius = v.grid.Metrics().InnerRadius() * v.grid.Metrics().SolidFactor()
		}
		v.terrain.Render(v.camera.ViewProjection(width, height), focus, radius)
		if v.shoot {
			v.screenshot(width, height)
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.cfg.Viewer.ShowStats {
				v.window.SetTitle(fmt.Sprintf("hexview  seed %d  %d fps  %d triangles",
					v.seed, frameCount, v.terrain.TriangleCount()))
			}
			v.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handleEvent(event input.Event) error {
	switch event.Type {
	case input.EventQuit:
		v.running = false
	case input.EventMouseDrag:
		v.camera.HandleDrag(event.DeltaX, event.DeltaY)
	case input.EventMouseWheel:
		v.camera.HandleZoom(event.DeltaY)
	case input.EventMouseClick:
		v.pick(event.MouseX, event.MouseY)
	case input.EventKeyDown:
		switch event.Key {
		case sdl.SCANCODE_ESCAPE:
			v.running = false
		case sdl.SCANCODE_F:
			v.wire = !v.wire
			v.renderer.SetWireframe(v.wire)
		case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
			v.raise(1)
		case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
			v.raise(-1)
		case sdl.SCANCODE_N:
			return v.regenerate()
		case sdl.SCANCODE_F12:
			v.shoot = true
		}
	}
	return nil
}

// pan moves the focus with WASD relative to the camera yaw.
func (v *Viewer) pan(dt float32) {
	var forward, right float32
	if input.IsKeyDown(sdl.SCANCODE_W) {
		forward++
	}
	if input.IsKeyDown(sdl.SCANCODE_S) {
		forward--
	}
	if input.IsKeyDown(sdl.SCANCODE_D) {
		right++
	}
	if input.IsKeyDown(sdl.SCANCODE_A) {
		right--
	}
	if forward == 0 && right == 0 {
		return
	}
	speed := panSpeed * dt * v.camera.Distance / 150
	v.camera.HandleMovement(forward*speed, right*speed)
}

// pick selects the cell under the window position and centers on it.
// Mouse coordinates are in window points; the viewport may be larger on
// high-DPI displays, so the ray uses the window size.
func (v *Viewer) pick(x, y int) {
	width, height := v.window.Size()
	inv := v.camera.ViewProjection(width, height).Inv()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(width), float32(height), inv)

	cell := picking.PickCell(ray, v.grid, v.maxElevation())
	if cell == nil {
		v.selected = nil
		return
	}
	v.selected = cell
	v.camera.Focus = cell.Position()
	cx, cz := cell.Offset()
	v.log.Debug("cell selected",
		zap.Int("x", cx), zap.Int("z", cz),
		zap.Int("elevation", cell.Elevation()),
		zap.Stringer("color", cell.Color()))
}

// maxElevation returns the highest elevation present; edits can exceed
// the generator range.
func (v *Viewer) maxElevation() int {
	top := 0
	for _, c := range v.grid.Cells() {
		top = max(top, c.Elevation())
	}
	return top
}

// raise changes the elevation of the cell under the camera focus by delta
// and selects it.
func (v *Viewer) raise(delta int) {
	cell := v.grid.RaiseAt(v.camera.Focus, delta)
	if cell == nil {
		return
	}
	v.selected = cell
	v.refresh()
	v.camera.Focus = cell.Position()
}

// regenerate replaces the terrain with a fresh random seed.
func (v *Viewer) regenerate() error {
	gen := v.cfg.Generator
	gen.Seed = 0
	seed, err := terrain.Generate(v.grid, gen)
	if err != nil {
		return fmt.Errorf("regenerate terrain: %w", err)
	}
	v.seed = seed
	v.selected = nil
	v.refresh()
	return nil
}

// refresh re-triangulates dirty chunks and re-uploads them.
func (v *Viewer) refresh() {
	for _, i := range v.grid.Refresh(v.cfg.Grid.Workers) {
		v.terrain.UploadChunk(i, v.grid.ChunkMesh(i))
	}
	v.log.Debug("terrain refreshed", zap.Any("stats", v.grid.Stats()))
}

// screenshot saves the frame just rendered.
func (v *Viewer) screenshot(width, height int) {
	v.shoot = false
	name, err := v.shots.CaptureFromPixels(v.renderer.ReadPixels(width, height), width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}

// Close releases GL and window resources.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")
	if v.terrain != nil {
		v.terrain.Destroy()
	}
	if v.window != nil {
		v.window.Close()
	}
}
