// Package renderer draws the scene with OpenGL: a shadow depth pass followed
// by a lit color pass, with the water blended last.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/procterrain/internal/engine/board"
	"github.com/Faultbox/procterrain/internal/engine/lighting"
	"github.com/Faultbox/procterrain/internal/engine/shader"
	"github.com/Faultbox/procterrain/internal/engine/shadow"
	"github.com/Faultbox/procterrain/internal/engine/terrain"
	"github.com/Faultbox/procterrain/internal/engine/water"
	"github.com/Faultbox/procterrain/internal/logger"
	"github.com/Faultbox/procterrain/internal/scene"
)

// Config holds renderer configuration.
type Config struct {
	Shadows       bool
	ShadowMapSize int32
	FitShadow     bool
}

// Renderer owns the GL programs and the GPU copies of the scene meshes.
type Renderer struct {
	config Config

	lit   *shader.Program
	depth *shader.Program

	shadowMap *shadow.Map

	terrain *gpuMesh
	water   *gpuMesh
	board   *gpuMesh
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

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
	gl.ClearColor(0.66, 0.78, 0.89, 1.0)

	var err error
	if r.lit, err = shader.CompileProgram(litVertexShader, litFragmentShader); err != nil {
		return nil, fmt.Errorf("lit shader: %w", err)
	}
	if r.depth, err = shader.CompileProgram(depthVertexShader, depthFragmentShader); err != nil {
		r.lit.Delete()
		return nil, fmt.Errorf("depth shader: %w", err)
	}

	if cfg.Shadows {
		r.shadowMap, err = shadow.NewMap(cfg.ShadowMapSize)
		if err != nil {
			// Rendering continues unshadowed.
			logger.Warn("shadows disabled", zap.Error(err))
			r.config.Shadows = false
		}
	}

	return r, nil
}

// Close releases every GPU resource.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.terrain.destroy()
	r.water.destroy()
	r.board.destroy()
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	r.lit.Delete()
	r.depth.Delete()
}

// Resize sets the drawable viewport in physical pixels.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Upload copies every scene mesh to the GPU. Call once after scene.New.
func (r *Renderer) Upload(s *scene.Scene) {
	r.uploadTerrain(s.Terrain)
	r.uploadBoard(s.Board)

	w := s.Water
	r.water.destroy()
	r.water = newGPUMesh(unsafe.Pointer(&w.Vertices[0]), len(w.Vertices)*int(unsafe.Sizeof(water.Vertex{})),
		int32(unsafe.Sizeof(water.Vertex{})), 4, w.Indices, gl.DYNAMIC_DRAW)
}

func (r *Renderer) uploadTerrain(m *terrain.Mesh) {
	size := int(unsafe.Sizeof(terrain.Vertex{}))
	bytes := len(m.Vertices) * size
	if r.terrain != nil && r.terrain.bytes == bytes {
		r.terrain.update(unsafe.Pointer(&m.Vertices[0]), bytes)
		return
	}
	r.terrain.destroy()
	r.terrain = newGPUMesh(unsafe.Pointer(&m.Vertices[0]), bytes, int32(size), 3, m.Indices, gl.STATIC_DRAW)
}

func (r *Renderer) uploadBoard(m *board.Mesh) {
	size := int(unsafe.Sizeof(board.Vertex{}))
	r.board.destroy()
	r.board = newGPUMesh(unsafe.Pointer(&m.Vertices[0]), len(m.Vertices)*size, int32(size), 3, m.Indices, gl.STATIC_DRAW)
}

// Draw renders one frame. Terrain is re-uploaded when the frame rebuilt it;
// water vertices are streamed every frame.
func (r *Renderer) Draw(s *scene.Scene, f scene.Frame) {
	if f.TerrainRebuilt {
		r.uploadTerrain(s.Terrain)
	}
	w := s.Water
	r.water.update(unsafe.Pointer(&w.Vertices[0]), len(w.Vertices)*int(unsafe.Sizeof(water.Vertex{})))

	lightViewProj := r.lightMatrix(s)

	if r.config.Shadows {
		r.shadowMap.Begin()
		r.depth.Use()
		r.depth.SetMat4("uLightViewProj", lightViewProj)
		r.terrain.draw()
		r.board.draw()
		r.shadowMap.End()
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	r.lit.Use()
	r.setLighting(s.Sun, s.Camera.ViewProjection(), lightViewProj)

	r.terrain.draw()
	r.board.draw()

	// Water is translucent and double-sided.
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	r.water.draw()
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (r *Renderer) lightMatrix(s *scene.Scene) mgl32.Mat4 {
	if r.config.FitShadow {
		return shadow.FitMatrix(s.Sun.Direction(), s.Bounds())
	}
	return s.Sun.Matrix()
}

func (r *Renderer) setLighting(sun lighting.Sun, viewProj, lightViewProj mgl32.Mat4) {
	r.lit.SetMat4("uViewProj", viewProj)
	r.lit.SetMat4("uLightViewProj", lightViewProj)
	r.lit.SetVec3("uLightDir", sun.DirectionArray())
	r.lit.SetVec3("uLightColor", sun.Color.Array32())
	r.lit.SetFloat("uIntensity", float32(sun.Intensity))
	r.lit.SetFloat("uAmbient", lighting.Ambient)

	if r.config.Shadows {
		r.lit.SetInt("uShadows", 1)
		r.shadowMap.BindTexture(gl.TEXTURE0)
		r.lit.SetInt("uShadowMap", 0)
	} else {
		r.lit.SetInt("uShadows", 0)
	}
}

// ReadPixels returns the backbuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}
