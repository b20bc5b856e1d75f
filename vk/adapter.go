package vk

import (
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/venusengine/venus/device"
)

// Adapter is a physical device as seen from one surface.
type Adapter struct {
	instance         core1_0.CoreInstanceDriver
	surfaceExtension khr_surface.ExtensionDriver
	surface          khr_surface.Surface

	PhysicalDevice core1_0.PhysicalDevice
}

var _ device.Adapter = (*Adapter)(nil)

func (a *Adapter) Properties() (device.Properties, error) {
	props, err := a.instance.GetPhysicalDeviceProperties(a.PhysicalDevice)
	if err != nil {
		return device.Properties{}, err
	}

	return device.Properties{
		Name:                props.DeviceName,
		Type:                device.DeviceType(props.Type),
		APIVersion:          device.APIVersion(props.APIVersion),
		MaxImageDimension2D: props.Limits.MaxImageDimension2D,
		PipelineCacheUUID:   props.PipelineCacheUUID,
	}, nil
}

func (a *Adapter) Features() device.Features {
	features := a.instance.GetPhysicalDeviceFeatures(a.PhysicalDevice)
	return device.Features{
		GeometryShader: features.GeometryShader,
	}
}

func (a *Adapter) QueueFamilies() []device.QueueFamily {
	queueFamilies := a.instance.GetPhysicalDeviceQueueFamilyProperties(a.PhysicalDevice)

	families := make([]device.QueueFamily, 0, len(queueFamilies))
	for _, queueFamily := range queueFamilies {
		var flags device.QueueFlags
		if queueFamily.QueueFlags&core1_0.QueueGraphics != 0 {
			flags |= device.QueueGraphics
		}
		if queueFamily.QueueFlags&core1_0.QueueCompute != 0 {
			flags |= device.QueueCompute
		}
		if queueFamily.QueueFlags&core1_0.QueueTransfer != 0 {
			flags |= device.QueueTransfer
		}
		families = append(families, device.QueueFamily{
			Flags: flags,
			Count: queueFamily.QueueCount,
		})
	}
	return families
}

func (a *Adapter) SupportsPresent(family int) (bool, error) {
	supported, _, err := a.surfaceExtension.GetPhysicalDeviceSurfaceSupport(a.surface, a.PhysicalDevice, family)
	return supported, err
}

func (a *Adapter) ExtensionNames() ([]string, error) {
	extensions, _, err := a.instance.EnumerateDeviceExtensionProperties(a.PhysicalDevice)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(extensions))
	for name := range extensions {
		names = append(names, name)
	}
	return names, nil
}

func (a *Adapter) SurfaceCapabilities() (device.SurfaceCapabilities, error) {
	capabilities, _, err := a.surfaceExtension.GetPhysicalDeviceSurfaceCapabilities(a.surface, a.PhysicalDevice)
	if err != nil {
		return device.SurfaceCapabilities{}, err
	}

	return device.SurfaceCapabilities{
		MinImageCount:    capabilities.MinImageCount,
		MaxImageCount:    capabilities.MaxImageCount,
		CurrentExtent:    extent(capabilities.CurrentExtent),
		MinImageExtent:   extent(capabilities.MinImageExtent),
		MaxImageExtent:   extent(capabilities.MaxImageExtent),
		CurrentTransform: device.SurfaceTransform(capabilities.CurrentTransform),
	}, nil
}

func (a *Adapter) SurfaceFormats() ([]device.SurfaceFormat, error) {
	formats, _, err := a.surfaceExtension.GetPhysicalDeviceSurfaceFormats(a.surface, a.PhysicalDevice)
	if err != nil {
		return nil, err
	}

	result := make([]device.SurfaceFormat, 0, len(formats))
	for _, format := range formats {
		result = append(result, device.SurfaceFormat{
			Format:     device.Format(format.Format),
			ColorSpace: device.ColorSpace(format.ColorSpace),
		})
	}
	return result, nil
}

func (a *Adapter) PresentModes() ([]device.PresentMode, error) {
	modes, _, err := a.surfaceExtension.GetPhysicalDeviceSurfacePresentModes(a.surface, a.PhysicalDevice)
	if err != nil {
		return nil, err
	}

	result := make([]device.PresentMode, 0, len(modes))
	for _, mode := range modes {
		result = append(result, device.PresentMode(mode))
	}
	return result, nil
}

func extent(e core1_0.Extent2D) device.Extent {
	return device.Extent{Width: e.Width, Height: e.Height}
}

func extent2D(e device.Extent) core1_0.Extent2D {
	return core1_0.Extent2D{Width: e.Width, Height: e.Height}
}
