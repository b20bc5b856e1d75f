// Package engine wires the window, Vulkan backend, device selection and frame
// synchronization into a running renderer.
package engine

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/venusengine/venus/config"
	"github.com/venusengine/venus/device"
	"github.com/venusengine/venus/frame"
	"github.com/venusengine/venus/logging"
	"github.com/venusengine/venus/present"
	"github.com/venusengine/venus/vk"
	"github.com/venusengine/venus/window"
)

const engineName = "Venus"

type triangleRecorder = frame.TriangleRecorder[core1_0.CommandBuffer, core1_0.RenderPass, core1_0.Framebuffer, core1_0.Pipeline]
type synchronizer = frame.Synchronizer[core1_0.Semaphore, core1_0.Fence, core1_0.CommandBuffer]

var (
	assembleTarget  = present.Assemble[khr_swapchain.Swapchain, core1_0.Image, core1_0.ImageView, core1_0.RenderPass, core1_0.Framebuffer]
	destroyTarget   = present.Destroy[khr_swapchain.Swapchain, core1_0.Image, core1_0.ImageView, core1_0.RenderPass, core1_0.Framebuffer]
	newSynchronizer = frame.New[core1_0.Semaphore, core1_0.Fence, core1_0.CommandBuffer]
)

// Runtime is a fully initialized renderer. Close releases everything.
type Runtime struct {
	cfg    config.Config
	logger logging.Logger

	window    *window.Window
	instance  *vk.Instance
	surface   khr_surface.Surface
	selection device.Selection[*vk.Adapter]
	device    *vk.LogicalDevice

	builder  *vk.TargetBuilder
	target   *vk.RenderTarget
	shaders  vk.Shaders
	pipeline vk.Pipeline

	frames   *vk.FrameDevice
	recorder *triangleRecorder
	sync     *synchronizer

	teardown teardown
}

// Build runs every initialization step in order. If a step fails, the steps
// that already ran are undone before the error is returned.
func Build(ctx context.Context, cfg config.Config, logger logging.Logger) (rt *Runtime, err error) {
	r := &Runtime{
		cfg:      cfg,
		logger:   logger,
		teardown: teardown{logger: logger},
	}
	defer func() {
		if err != nil {
			r.teardown.unwind()
		}
	}()

	steps := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"window", r.createWindow},
		{"instance", r.createInstance},
		{"surface", r.createSurface},
		{"adapter", r.selectAdapter},
		{"logical device", r.createDevice},
		{"shaders", r.loadShaders},
		{"render target", r.createRenderTarget},
		{"frame slots", r.createFrames},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return nil, errors.Wrapf(err, "initialize %s", step.name)
		}
	}

	logger.Infof("Venus is ready.")
	return r, nil
}

func (r *Runtime) createWindow(context.Context) error {
	w, err := window.New(r.cfg.Window, r.logger)
	if err != nil {
		return err
	}
	r.window = w
	r.teardown.push("window", w.Destroy)
	return nil
}

func (r *Runtime) createInstance(context.Context) error {
	global, err := r.window.GlobalDriver()
	if err != nil {
		return errors.Wrap(err, "load vulkan")
	}

	version := r.cfg.Identity.Version
	instance, err := vk.CreateInstance(global, vk.InstanceOptions{
		ApplicationName:    r.cfg.Identity.Name,
		ApplicationVersion: [3]uint32{version.Major, version.Minor, version.Patch},
		EngineName:         engineName,
		EngineVersion:      [3]uint32{0, 1, 0},
		APIVersion:         r.cfg.Render.MinAPIVersion,
		Extensions:         r.window.InstanceExtensions(),
		Validation:         r.cfg.Debug.Validation,
	}, r.logger)
	if err != nil {
		return err
	}
	r.instance = instance
	r.teardown.push("instance", instance.Destroy)
	return nil
}

func (r *Runtime) createSurface(context.Context) error {
	surface, err := r.window.CreateSurface(r.instance)
	if err != nil {
		return err
	}
	r.surface = surface
	r.teardown.push("surface", func() { r.instance.DestroySurface(r.surface) })
	return nil
}

func (r *Runtime) selectAdapter(ctx context.Context) error {
	adapters, err := r.instance.Adapters(r.surface)
	if err != nil {
		return err
	}

	r.selection, err = device.Select(ctx, adapters, device.Criteria{
		RequiredExtensions: vk.RequiredDeviceExtensions,
		MinAPIVersion:      r.cfg.Render.MinAPIVersion,
		Parallelism:        r.cfg.Render.ProbeParallelism,
	}, r.logger)
	return err
}

func (r *Runtime) createDevice(context.Context) error {
	ld, err := vk.CreateLogicalDevice(r.instance, r.selection.Adapter, r.selection.Capabilities.QueueFamilies, r.logger)
	if err != nil {
		return err
	}
	r.device = ld
	r.teardown.push("logical device", ld.Destroy)

	r.builder = &vk.TargetBuilder{Device: ld, Surface: r.surface}
	r.frames = &vk.FrameDevice{Device: ld}
	return nil
}

func (r *Runtime) loadShaders(context.Context) error {
	shaders, err := vk.LoadShaders(r.cfg.Render.ShaderDir)
	if err != nil {
		return err
	}
	r.shaders = shaders
	return nil
}

func (r *Runtime) createRenderTarget(context.Context) error {
	r.recorder = &triangleRecorder{
		Encoder:    vk.Encoder{Driver: r.device.Driver},
		ClearColor: r.cfg.Render.ClearColor,
	}

	if err := r.buildTarget(r.window.FramebufferExtent()); err != nil {
		return err
	}
	r.teardown.push("render target", r.releaseTarget)
	return nil
}

func (r *Runtime) createFrames(context.Context) error {
	sync, err := newSynchronizer(r.frames, r.cfg.Render.FramesInFlight, r.recorder, frame.Options{
		FenceTimeout:   r.cfg.Render.FenceTimeout,
		AcquireTimeout: r.cfg.Render.AcquireTimeout,
	}, r.logger)
	if err != nil {
		return err
	}
	sync.ResetImages(r.target.ImageCount())
	r.sync = sync
	r.teardown.push("frame slots", func() {
		if err := sync.Destroy(); err != nil {
			r.logger.Errorf("Destroying frame slots: %v", err)
		}
	})
	return nil
}

func (r *Runtime) buildTarget(framebuffer device.Extent) error {
	support, err := device.QuerySwapchainSupport(r.selection.Adapter)
	if err != nil {
		return err
	}

	plan, err := present.PlanTarget(support, r.device.Families, framebuffer, targetOptions(r.cfg.Render))
	if err != nil {
		return err
	}

	target, err := assembleTarget(r.builder, plan)
	if err != nil {
		return err
	}

	pipeline, err := vk.CreatePipeline(r.device.Driver, target.RenderPass, r.shaders)
	if err != nil {
		destroyTarget(r.builder, target)
		return err
	}

	r.target = target
	r.pipeline = pipeline
	r.frames.Swapchain = target.Swapchain
	r.recorder.Pipeline = pipeline.Pipeline
	r.recorder.SetTarget(target.RenderPass, target.Framebuffers, plan.Extent)

	r.logger.Infof("Render target: %s, %s, %d images, present mode %s.",
		plan.Extent, formatName(plan.Format.Format), target.ImageCount(), plan.PresentMode)
	return nil
}

// targetOptions caps the swapchain at one image per frame slot.
func targetOptions(render config.Render) present.Options {
	return present.Options{
		PreferredFormat: render.PreferredFormat,
		PresentModes:    render.PresentModes,
		MaxImageCount:   render.FramesInFlight,
	}
}

// releaseTarget is safe to call after a failed rebuild left no target.
func (r *Runtime) releaseTarget() {
	r.pipeline.Destroy(r.device.Driver)
	r.pipeline = vk.Pipeline{}
	destroyTarget(r.builder, r.target)
	r.target = nil
}

// Rebuild replaces the render target after the surface changed.
func (r *Runtime) Rebuild(extent device.Extent) error {
	if err := r.device.WaitIdle(); err != nil {
		return errors.Wrap(err, "wait for device idle")
	}

	r.releaseTarget()
	if err := r.buildTarget(extent); err != nil {
		return err
	}
	r.sync.ResetImages(r.target.ImageCount())
	return nil
}

func (r *Runtime) DrawFrame() error {
	return r.sync.DrawFrame()
}

// Run draws frames until the window closes or ctx is done.
func (r *Runtime) Run(ctx context.Context) error {
	timer := frame.NewLoopTimer(r.cfg.Render.LoopReportInterval, r.logger)
	return RunLoop(ctx, r.window, r, timer, r.logger)
}

// Close waits for the GPU and destroys everything in reverse creation order.
func (r *Runtime) Close() {
	r.teardown.unwind()
	r.logger.Infof("Venus has shut down.")
}

func formatName(format device.Format) string {
	switch format {
	case device.FormatB8G8R8A8SRGB:
		return "B8G8R8A8_SRGB"
	case device.FormatB8G8R8A8UNorm:
		return "B8G8R8A8_UNORM"
	}
	return fmt.Sprintf("format %d", int32(format))
}
