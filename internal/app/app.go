// Package app runs the orrery: window, scene, renderer and the frame loop.
package app

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/renderer"
	"github.com/Faultbox/orrery/internal/engine/window"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/mesh"
	"github.com/Faultbox/orrery/internal/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

// App is the running orrery.
type App struct {
	config  *config.Config
	running bool

	scene    *scene.Scene
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	gpuMeshes map[*mesh.Mesh]*renderer.GPUMesh
	draws     []scene.Draw
}

// New validates the scene and then creates the window, GL context and
// GPU resources. A bad scene configuration fails before any window opens.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing orrery",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("bodies", len(cfg.Scene.Bodies)),
	)

	sc, err := scene.Build(cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	a := &App{
		config:    cfg,
		scene:     sc,
		gpuMeshes: make(map[*mesh.Mesh]*renderer.GPUMesh),
		draws:     make([]scene.Draw, 0, sc.Len()),
	}

	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.DrawableSize()

	// Renderer needs the GL context from the window.
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Window.ClearColor,
		Wireframe:  cfg.Window.Wireframe,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	for _, m := range sc.Meshes() {
		g, err := a.renderer.Upload(m)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to upload sphere r=%g: %w", m.Radius, err)
		}
		a.gpuMeshes[m] = g
	}

	cc := cfg.Camera
	a.camera = camera.NewOrbitCamera(
		math.Vec3{X: cc.Position[0], Y: cc.Position[1], Z: cc.Position[2]},
		math.Vec3{X: cc.Target[0], Y: cc.Target[1], Z: cc.Target[2]},
	)
	a.camera.FOV = cc.FOV
	a.camera.Near = cc.Near
	a.camera.Far = cc.Far
	a.camera.SetViewport(width, height)

	a.input = input.New()

	logger.Info("orrery initialized",
		zap.Int("meshes", len(a.gpuMeshes)),
		zap.Int("drawable_width", width),
		zap.Int("drawable_height", height),
	)
	return a, nil
}

// Run executes the frame loop until the window is closed or a quit key
// is pressed.
func (a *App) Run() error {
	a.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	logger.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		if !a.running {
			break
		}

		// Every body in a frame sees the same time.
		t := now.Sub(start).Seconds()
		a.render(t)

		a.window.SwapBuffers()

		frameCount++
		if now.Sub(fpsTimer) >= time.Second {
			a.window.SetTitle(fmt.Sprintf("%s - %d fps", a.config.Window.Title, frameCount))
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
				zap.Float64("t", t),
			)
			frameCount = 0
			fpsTimer = now
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			// Event sizes are in window points; the viewport wants pixels.
			width, height := a.window.DrawableSize()
			a.renderer.Resize(width, height)
			a.camera.SetViewport(width, height)
		case input.EventKeyDown:
			a.handleKey(event.Key)
		case input.EventMouseDrag:
			a.camera.HandleDrag(event.DX, event.DY)
		case input.EventMouseWheel:
			a.camera.HandleZoom(event.DY)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_W:
		a.renderer.SetWireframe(true)
		logger.Debug("polygon mode", zap.String("mode", "line"))
	case sdl.SCANCODE_F:
		a.renderer.SetWireframe(false)
		logger.Debug("polygon mode", zap.String("mode", "fill"))
	case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
		a.running = false
	}
}

func (a *App) render(t float64) {
	a.draws = a.scene.Frame(t, a.draws[:0])

	view := a.camera.ViewMatrix()
	projection := a.camera.ProjectionMatrix()

	a.renderer.Begin()
	a.renderer.SetCameraPosition(a.camera.Position())
	for _, d := range a.draws {
		if d.Emissive {
			a.renderer.SetLightPosition(d.Center)
		}
		a.renderer.Submit(a.gpuMeshes[d.Mesh], d.Model, view, projection, renderer.Flags{
			Emissive: d.Emissive,
			Color:    d.Color,
		})
	}
	a.renderer.End()
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	logger.Info("closing orrery")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
