package points

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxfill/internal/viewer/shader"
	"github.com/Faultbox/voxfill/internal/viewer/shaders"
)

// Renderer uploads a Cloud once and draws it as GL points, optionally with
// the outline of the volume. It must be created after the OpenGL context.
type Renderer struct {
	program   uint32
	vao       uint32
	vbo       uint32
	count     int32
	uMVP      int32
	uPointSz  int32
	pointSize float32

	outlineVAO  uint32
	outlineVBO  uint32
	ShowOutline bool
}

var outlineColor = mgl32.Vec3{0.45, 0.45, 0.55}

// NewRenderer initializes OpenGL, compiles the point program and uploads cloud.
func NewRenderer(cloud *Cloud, pointSize float32, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	program, err := shader.CompileProgram(shaders.PointsVertexShader, shaders.PointsFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("points shader: %w", err)
	}

	r := &Renderer{
		program:   program,
		count:     int32(cloud.Len()),
		uMVP:      shader.Uniform(program, "uMVP"),
		uPointSz:  shader.Uniform(program, "uPointSize"),
		pointSize: pointSize,
	}

	r.vao, r.vbo = upload(cloud.Data)
	r.outlineVAO, r.outlineVBO = upload(Outline(cloud.Min, cloud.Max, outlineColor))
	r.ShowOutline = true

	log.Debug("point cloud uploaded", zap.Int32("points", r.count))
	return r, nil
}

// upload creates a VAO/VBO pair for interleaved position+color data.
func upload(data []float32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}

	stride := int32(Stride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, uintptr(3*unsafe.Sizeof(float32(0))))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
	return vao, vbo
}

// Resize sets the viewport.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Draw clears the frame and draws every point with the given view-projection.
func (r *Renderer) Draw(mvp mgl32.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uMVP, 1, false, &mvp[0])
	gl.Uniform1f(r.uPointSz, r.pointSize)

	if r.count > 0 {
		gl.BindVertexArray(r.vao)
		gl.DrawArrays(gl.POINTS, 0, r.count)
	}
	if r.ShowOutline {
		gl.BindVertexArray(r.outlineVAO)
		gl.DrawArrays(gl.LINES, 0, OutlineVertexCount)
	}
	gl.BindVertexArray(0)
}

// ReadPixels returns the current back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Close frees GL resources.
func (r *Renderer) Close() {
	for _, vbo := range []uint32{r.vbo, r.outlineVBO} {
		if vbo != 0 {
			gl.DeleteBuffers(1, &vbo)
		}
	}
	for _, vao := range []uint32{r.vao, r.outlineVAO} {
		if vao != 0 {
			gl.DeleteVertexArrays(1, &vao)
		}
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}
