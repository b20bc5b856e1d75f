package frame

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/venusengine/venus/device"
)

type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// FullViewport covers extent with the default 0..1 depth range.
func FullViewport(extent device.Extent) Viewport {
	return Viewport{
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}
}

// Encoder writes commands into a command buffer of type C. R, B and P are the
// render pass, framebuffer and pipeline handles.
type Encoder[C, R, B, P any] interface {
	Begin(cmd C) error
	BeginRenderPass(cmd C, pass R, framebuffer B, extent device.Extent, clear mgl32.Vec4) error
	BindPipeline(cmd C, pipeline P)
	SetViewport(cmd C, viewport Viewport)
	SetScissor(cmd C, extent device.Extent)
	Draw(cmd C, vertexCount, instanceCount, firstVertex, firstInstance int)
	EndRenderPass(cmd C)
	End(cmd C) error
}

// TriangleRecorder records a single render pass that draws three vertices.
// The vertex positions come from the vertex shader.
type TriangleRecorder[C, R, B, P any] struct {
	Encoder    Encoder[C, R, B, P]
	Pipeline   P
	ClearColor mgl32.Vec4

	renderPass   R
	framebuffers []B
	extent       device.Extent
}

// SetTarget points the recorder at a (re)built render target.
func (r *TriangleRecorder[C, R, B, P]) SetTarget(pass R, framebuffers []B, extent device.Extent) {
	r.renderPass = pass
	r.framebuffers = framebuffers
	r.extent = extent
}

func (r *TriangleRecorder[C, R, B, P]) Record(cmd C, imageIndex int) error {
	if imageIndex < 0 || imageIndex >= len(r.framebuffers) {
		return errors.Newf("image index %d out of range, %d framebuffers", imageIndex, len(r.framebuffers))
	}

	err := r.Encoder.Begin(cmd)
	if err != nil {
		return errors.Wrap(err, "begin command buffer")
	}

	err = r.Encoder.BeginRenderPass(cmd, r.renderPass, r.framebuffers[imageIndex], r.extent, r.ClearColor)
	if err != nil {
		return errors.Wrap(err, "begin render pass")
	}
	r.Encoder.BindPipeline(cmd, r.Pipeline)
	r.Encoder.SetViewport(cmd, FullViewport(r.extent))
	r.Encoder.SetScissor(cmd, r.extent)
	r.Encoder.Draw(cmd, 3, 1, 0, 0)
	r.Encoder.EndRenderPass(cmd)

	err = r.Encoder.End(cmd)
	if err != nil {
		return errors.Wrap(err, "end command buffer")
	}
	return nil
}
