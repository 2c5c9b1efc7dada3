// Package renderer submits body meshes to OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/renderer/shaders"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/mesh"
	"github.com/Faultbox/orrery/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
	Wireframe  bool
}

// Flags control how a submitted body is shaded.
type Flags struct {
	Emissive bool
	Color    [3]float32
}

// GPUMesh is a mesh uploaded to vertex and index buffers.
type GPUMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program uint32

	locModel      int32
	locView       int32
	locProjection int32
	locColor      int32
	locLightPos   int32
	locCamPos     int32
	locEmissive   int32

	meshes []*GPUMesh
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	program, err := shader.CompileProgram(shaders.BodyVertexShader, shaders.BodyFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("body shader: %w", err)
	}
	r.program = program

	r.locModel = shader.MustGetUniform(program, "uModel")
	r.locView = shader.MustGetUniform(program, "uView")
	r.locProjection = shader.MustGetUniform(program, "uProjection")
	r.locColor = shader.GetUniform(program, "uColor")
	r.locLightPos = shader.GetUniform(program, "uLightPos")
	r.locCamPos = shader.GetUniform(program, "uCamPos")
	r.locEmissive = shader.GetUniform(program, "uEmissive")

	gl.UseProgram(r.program)
	gl.Uniform3f(r.locLightPos, 0, 0, 0)

	r.SetWireframe(cfg.Wireframe)
	return r, nil
}

// Close releases every uploaded mesh and the shader program.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("meshes", len(r.meshes)))
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	r.meshes = nil
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetWireframe switches between line and fill rasterization.
func (r *Renderer) SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// SetCameraPosition sets the eye position used for specular highlights.
func (r *Renderer) SetCameraPosition(p math.Vec3) {
	gl.UseProgram(r.program)
	gl.Uniform3f(r.locCamPos, p.X, p.Y, p.Z)
}

// SetLightPosition moves the point light, normally the emissive root's center.
func (r *Renderer) SetLightPosition(p math.Vec3) {
	gl.UseProgram(r.program)
	gl.Uniform3f(r.locLightPos, p.X, p.Y, p.Z)
}

// Upload copies a mesh into GPU buffers. The renderer owns the result.
func (r *Renderer) Upload(m *mesh.Mesh) (*GPUMesh, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	vertices := m.Interleaved()
	g := &GPUMesh{indexCount: int32(len(m.Indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	stride := int32(mesh.FloatsPerVertex * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.meshes = append(r.meshes, g)
	logger.Debug("mesh uploaded",
		zap.Uint32("vao", g.vao),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)
	return g, nil
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// Submit draws one mesh with the given transforms.
func (r *Renderer) Submit(m *GPUMesh, model, view, projection math.Mat4, flags Flags) {
	gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.locProjection, 1, false, projection.Ptr())
	gl.Uniform3f(r.locColor, flags.Color[0], flags.Color[1], flags.Color[2])
	emissive := int32(0)
	if flags.Emissive {
		emissive = 1
	}
	gl.Uniform1i(r.locEmissive, emissive)

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}
