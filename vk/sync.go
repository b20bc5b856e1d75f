package vk

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/venusengine/venus/frame"
)

// FrameDevice drives frame slots on a logical device. Swapchain must be set
// before the first frame and after every rebuild.
type FrameDevice struct {
	Device    *LogicalDevice
	Swapchain khr_swapchain.Swapchain
}

var _ frame.Device[core1_0.Semaphore, core1_0.Fence, core1_0.CommandBuffer] = (*FrameDevice)(nil)

func timeout(d time.Duration) time.Duration {
	if d <= 0 {
		return common.NoTimeout
	}
	return d
}

func (d *FrameDevice) CreateSemaphore() (core1_0.Semaphore, error) {
	semaphore, _, err := d.Device.Driver.CreateSemaphore(nil, core1_0.SemaphoreCreateInfo{})
	return semaphore, err
}

func (d *FrameDevice) CreateFence(signaled bool) (core1_0.Fence, error) {
	info := core1_0.FenceCreateInfo{}
	if signaled {
		info.Flags = core1_0.FenceCreateSignaled
	}
	fence, _, err := d.Device.Driver.CreateFence(nil, info)
	return fence, err
}

func (d *FrameDevice) AllocateCommandBuffers(count int) ([]core1_0.CommandBuffer, error) {
	buffers, _, err := d.Device.Driver.AllocateCommandBuffers(core1_0.CommandBufferAllocateInfo{
		CommandPool:        d.Device.CommandPool,
		Level:              core1_0.CommandBufferLevelPrimary,
		CommandBufferCount: count,
	})
	return buffers, err
}

func (d *FrameDevice) WaitForFence(fence core1_0.Fence, wait time.Duration) error {
	res, err := d.Device.Driver.WaitForFences(true, timeout(wait), fence)
	return classifyWait(res, err)
}

func (d *FrameDevice) ResetFence(fence core1_0.Fence) error {
	_, err := d.Device.Driver.ResetFences(fence)
	return err
}

func (d *FrameDevice) AcquireNextImage(signal core1_0.Semaphore, wait time.Duration) (int, error) {
	imageIndex, res, err := d.Device.SwapchainExtension.AcquireNextImage(d.Swapchain, timeout(wait), &signal, nil)
	return imageIndex, classifyAcquire(res, err)
}

func (d *FrameDevice) ResetCommandBuffer(cmd core1_0.CommandBuffer) error {
	_, err := d.Device.Driver.ResetCommandBuffer(cmd, 0)
	return err
}

func (d *FrameDevice) Submit(wait core1_0.Semaphore, cmd core1_0.CommandBuffer, signal core1_0.Semaphore, fence core1_0.Fence) error {
	_, err := d.Device.Driver.QueueSubmit(d.Device.GraphicsQueue, &fence,
		core1_0.SubmitInfo{
			WaitSemaphores:   []core1_0.Semaphore{wait},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
			CommandBuffers:   []core1_0.CommandBuffer{cmd},
			SignalSemaphores: []core1_0.Semaphore{signal},
		},
	)
	return err
}

func (d *FrameDevice) Release(wait core1_0.Semaphore, fence core1_0.Fence) error {
	_, err := d.Device.Driver.QueueSubmit(d.Device.GraphicsQueue, &fence,
		core1_0.SubmitInfo{
			WaitSemaphores:   []core1_0.Semaphore{wait},
			WaitDstStageMask: []core1_0.PipelineStageFlags{core1_0.PipelineStageColorAttachmentOutput},
		},
	)
	return err
}

func (d *FrameDevice) Present(wait core1_0.Semaphore, imageIndex int) error {
	res, err := d.Device.SwapchainExtension.QueuePresent(d.Device.PresentQueue, khr_swapchain.PresentInfo{
		WaitSemaphores: []core1_0.Semaphore{wait},
		Swapchains:     []khr_swapchain.Swapchain{d.Swapchain},
		ImageIndices:   []int{imageIndex},
	})
	return classifyPresent(res, err)
}

func (d *FrameDevice) WaitIdle() error {
	return d.Device.WaitIdle()
}

func (d *FrameDevice) DestroySemaphore(semaphore core1_0.Semaphore) {
	if semaphore.Initialized() {
		d.Device.Driver.DestroySemaphore(semaphore, nil)
	}
}

func (d *FrameDevice) DestroyFence(fence core1_0.Fence) {
	if fence.Initialized() {
		d.Device.Driver.DestroyFence(fence, nil)
	}
}

func (d *FrameDevice) FreeCommandBuffers(cmds []core1_0.CommandBuffer) {
	if len(cmds) > 0 {
		d.Device.Driver.FreeCommandBuffers(cmds...)
	}
}

func classifyWait(res common.VkResult, err error) error {
	if res == core1_0.VKTimeout {
		return errors.Mark(errors.New("fence wait timed out"), frame.ErrFenceTimeout)
	}
	return err
}

func classifyAcquire(res common.VkResult, err error) error {
	switch res {
	case khr_swapchain.VKErrorOutOfDate:
		return errors.Mark(errors.Newf("acquire: %v", res), frame.ErrOutOfDate)
	case core1_0.VKTimeout, core1_0.VKNotReady:
		return errors.Mark(errors.Newf("acquire: %v", res), frame.ErrFenceTimeout)
	case khr_swapchain.VKSuboptimal:
		return nil
	}
	return err
}

func classifyPresent(res common.VkResult, err error) error {
	if res == khr_swapchain.VKErrorOutOfDate || res == khr_swapchain.VKSuboptimal {
		return errors.Mark(errors.Newf("present: %v", res), frame.ErrOutOfDate)
	}
	return err
}
