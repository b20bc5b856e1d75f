package vk

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/core/v3/core1_0"

	"github.com/venusengine/venus/device"
	"github.com/venusengine/venus/frame"
)

type Encoder struct {
	Driver core1_0.CoreDeviceDriver
}

var _ frame.Encoder[core1_0.CommandBuffer, core1_0.RenderPass, core1_0.Framebuffer, core1_0.Pipeline] = Encoder{}

func (e Encoder) Begin(cmd core1_0.CommandBuffer) error {
	_, err := e.Driver.BeginCommandBuffer(cmd, core1_0.CommandBufferBeginInfo{})
	return err
}

func (e Encoder) BeginRenderPass(cmd core1_0.CommandBuffer, pass core1_0.RenderPass, framebuffer core1_0.Framebuffer, extent device.Extent, clear mgl32.Vec4) error {
	return e.Driver.CmdBeginRenderPass(cmd, core1_0.SubpassContentsInline,
		core1_0.RenderPassBeginInfo{
			RenderPass:  pass,
			Framebuffer: framebuffer,
			RenderArea: core1_0.Rect2D{
				Offset: core1_0.Offset2D{X: 0, Y: 0},
				Extent: extent2D(extent),
			},
			ClearValues: []core1_0.ClearValue{
				core1_0.ClearValueFloat{clear.X(), clear.Y(), clear.Z(), clear.W()},
			},
		})
}

func (e Encoder) BindPipeline(cmd core1_0.CommandBuffer, pipeline core1_0.Pipeline) {
	e.Driver.CmdBindPipeline(cmd, core1_0.PipelineBindPointGraphics, pipeline)
}

func (e Encoder) SetViewport(cmd core1_0.CommandBuffer, viewport frame.Viewport) {
	e.Driver.CmdSetViewport(cmd, core1_0.Viewport{
		X:        viewport.X,
		Y:        viewport.Y,
		Width:    viewport.Width,
		Height:   viewport.Height,
		MinDepth: viewport.MinDepth,
		MaxDepth: viewport.MaxDepth,
	})
}

func (e Encoder) SetScissor(cmd core1_0.CommandBuffer, extent device.Extent) {
	e.Driver.CmdSetScissor(cmd, core1_0.Rect2D{
		Offset: core1_0.Offset2D{X: 0, Y: 0},
		Extent: extent2D(extent),
	})
}

func (e Encoder) Draw(cmd core1_0.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance int) {
	e.Driver.CmdDraw(cmd, vertexCount, instanceCount, uint32(firstVertex), uint32(firstInstance))
}

func (e Encoder) EndRenderPass(cmd core1_0.CommandBuffer) {
	e.Driver.CmdEndRenderPass(cmd)
}

func (e Encoder) End(cmd core1_0.CommandBuffer) error {
	_, err := e.Driver.EndCommandBuffer(cmd)
	return err
}
