package vk

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/venusengine/venus/present"
)

type RenderTarget = present.Target[khr_swapchain.Swapchain, core1_0.Image, core1_0.ImageView, core1_0.RenderPass, core1_0.Framebuffer]

// TargetBuilder creates render target resources for one surface.
type TargetBuilder struct {
	Device  *LogicalDevice
	Surface khr_surface.Surface
}

var _ present.Builder[khr_swapchain.Swapchain, core1_0.Image, core1_0.ImageView, core1_0.RenderPass, core1_0.Framebuffer] = (*TargetBuilder)(nil)

func (b *TargetBuilder) CreateSwapchain(plan present.Plan) (khr_swapchain.Swapchain, []core1_0.Image, error) {
	sharingMode := core1_0.SharingModeExclusive
	if plan.SharingMode == present.SharingModeConcurrent {
		sharingMode = core1_0.SharingModeConcurrent
	}

	swapchain, _, err := b.Device.SwapchainExtension.CreateSwapchain(nil, khr_swapchain.SwapchainCreateInfo{
		Surface: b.Surface,

		MinImageCount:    plan.ImageCount,
		ImageFormat:      core1_0.Format(plan.Format.Format),
		ImageColorSpace:  khr_surface.ColorSpace(plan.Format.ColorSpace),
		ImageExtent:      extent2D(plan.Extent),
		ImageArrayLayers: 1,
		ImageUsage:       core1_0.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: plan.QueueFamilies,

		PreTransform:   khr_surface.SurfaceTransformFlags(plan.Transform),
		CompositeAlpha: khr_surface.CompositeAlphaOpaque,
		PresentMode:    khr_surface.PresentMode(plan.PresentMode),
		Clipped:        true,
	})
	if err != nil {
		return swapchain, nil, err
	}

	images, _, err := b.Device.SwapchainExtension.GetSwapchainImages(swapchain)
	if err != nil {
		b.DestroySwapchain(swapchain)
		return khr_swapchain.Swapchain{}, nil, err
	}

	b.Device.logger.Debugf("Swapchain created: %s, %s, %d images.", plan.Extent, plan.PresentMode, len(images))
	return swapchain, images, nil
}

func (b *TargetBuilder) CreateImageView(plan present.Plan, image core1_0.Image) (core1_0.ImageView, error) {
	imageView, _, err := b.Device.Driver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:    image,
		ViewType: core1_0.ImageViewType2D,
		Format:   core1_0.Format(plan.Format.Format),
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     core1_0.ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})
	return imageView, err
}

func (b *TargetBuilder) CreateRenderPass(plan present.Plan) (core1_0.RenderPass, error) {
	renderPass, _, err := b.Device.Driver.CreateRenderPass(nil, core1_0.RenderPassCreateInfo{
		Attachments: []core1_0.AttachmentDescription{
			{
				Format:         core1_0.Format(plan.Format.Format),
				Samples:        core1_0.Samples1,
				LoadOp:         core1_0.AttachmentLoadOpClear,
				StoreOp:        core1_0.AttachmentStoreOpStore,
				StencilLoadOp:  core1_0.AttachmentLoadOpDontCare,
				StencilStoreOp: core1_0.AttachmentStoreOpDontCare,
				InitialLayout:  core1_0.ImageLayoutUndefined,
				FinalLayout:    khr_swapchain.ImageLayoutPresentSrc,
			},
		},
		Subpasses: []core1_0.SubpassDescription{
			{
				PipelineBindPoint: core1_0.PipelineBindPointGraphics,
				ColorAttachments: []core1_0.AttachmentReference{
					{
						Attachment: 0,
						Layout:     core1_0.ImageLayoutColorAttachmentOptimal,
					},
				},
			},
		},
		SubpassDependencies: []core1_0.SubpassDependency{
			{
				SrcSubpass: core1_0.SubpassExternal,
				DstSubpass: 0,

				SrcStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				SrcAccessMask: 0,

				DstStageMask:  core1_0.PipelineStageColorAttachmentOutput,
				DstAccessMask: core1_0.AccessColorAttachmentWrite,
			},
		},
	})
	return renderPass, err
}

func (b *TargetBuilder) CreateFramebuffer(plan present.Plan, pass core1_0.RenderPass, view core1_0.ImageView) (core1_0.Framebuffer, error) {
	framebuffer, _, err := b.Device.Driver.CreateFramebuffer(nil, core1_0.FramebufferCreateInfo{
		RenderPass:  pass,
		Layers:      1,
		Attachments: []core1_0.ImageView{view},
		Width:       plan.Extent.Width,
		Height:      plan.Extent.Height,
	})
	return framebuffer, err
}

func (b *TargetBuilder) DestroyFramebuffer(framebuffer core1_0.Framebuffer) {
	if framebuffer.Initialized() {
		b.Device.Driver.DestroyFramebuffer(framebuffer, nil)
	}
}

func (b *TargetBuilder) DestroyRenderPass(pass core1_0.RenderPass) {
	if pass.Initialized() {
		b.Device.Driver.DestroyRenderPass(pass, nil)
	}
}

func (b *TargetBuilder) DestroyImageView(view core1_0.ImageView) {
	if view.Initialized() {
		b.Device.Driver.DestroyImageView(view, nil)
	}
}

func (b *TargetBuilder) DestroySwapchain(swapchain khr_swapchain.Swapchain) {
	if swapchain.Initialized() {
		b.Device.SwapchainExtension.DestroySwapchain(swapchain, nil)
	}
}
