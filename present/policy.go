// Package present decides how the swapchain is configured and assembles the
// resources that depend on it.
package present

import (
	"github.com/cockroachdb/errors"

	"github.com/venusengine/venus/device"
)

var (
	ErrNoSurfaceFormats = errors.New("surface reports no formats")
	// ErrZeroExtent means the window has no drawable area, usually because it
	// is minimized. Planning should be retried later.
	ErrZeroExtent = errors.New("swapchain extent has no area")
)

// ChooseSurfaceFormat returns preferred when the surface offers it, otherwise
// the first format reported.
func ChooseSurfaceFormat(formats []device.SurfaceFormat, preferred device.SurfaceFormat) (device.SurfaceFormat, error) {
	if len(formats) == 0 {
		return device.SurfaceFormat{}, ErrNoSurfaceFormats
	}
	for _, format := range formats {
		if format == preferred {
			return format, nil
		}
	}
	return formats[0], nil
}

// ChoosePresentMode walks preferred in order and returns the first mode the
// surface supports. FIFO is the answer when nothing matches since every
// surface must support it.
func ChoosePresentMode(available []device.PresentMode, preferred []device.PresentMode) device.PresentMode {
	supported := make(map[device.PresentMode]struct{}, len(available))
	for _, mode := range available {
		supported[mode] = struct{}{}
	}

	for _, mode := range preferred {
		if _, ok := supported[mode]; ok {
			return mode
		}
	}
	return device.PresentModeFIFO
}

// ChooseExtent uses the surface's current extent unless the surface leaves
// the size to the swapchain, in which case the framebuffer size is clamped
// into the supported range.
func ChooseExtent(caps device.SurfaceCapabilities, framebuffer device.Extent) device.Extent {
	if !caps.CurrentExtent.Indeterminate() {
		return caps.CurrentExtent
	}

	return device.Extent{
		Width:  clamp(framebuffer.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(framebuffer.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the minimum, capped by the
// surface maximum (zero means uncapped) and by ceiling, the number of frame
// slots. The surface minimum still wins over ceiling: with MinImageCount 3
// and two slots the swapchain gets 3 images, since Vulkan rejects fewer.
// Slots then share images through the synchronizer's image ownership wait.
func ChooseImageCount(caps device.SurfaceCapabilities, ceiling int) int {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	if ceiling > 0 && count > ceiling {
		count = max(ceiling, caps.MinImageCount)
	}
	return count
}

type SharingMode int

const (
	SharingModeExclusive SharingMode = iota
	SharingModeConcurrent
)

// Plan is everything needed to create a swapchain and its dependents.
type Plan struct {
	Format      device.SurfaceFormat
	PresentMode device.PresentMode
	Extent      device.Extent
	ImageCount  int
	Transform   device.SurfaceTransform

	SharingMode SharingMode
	// QueueFamilies lists the sharing families when SharingMode is
	// concurrent.
	QueueFamilies []int
}

type Options struct {
	PreferredFormat device.SurfaceFormat
	PresentModes    []device.PresentMode
	MaxImageCount   int
}

func PlanTarget(support device.SwapchainSupport, families device.QueueFamilies, framebuffer device.Extent, options Options) (Plan, error) {
	if !families.Complete() {
		return Plan{}, errors.New("queue families are incomplete")
	}

	format, err := ChooseSurfaceFormat(support.Formats, options.PreferredFormat)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		Format:      format,
		PresentMode: ChoosePresentMode(support.PresentModes, options.PresentModes),
		Extent:      ChooseExtent(support.Capabilities, framebuffer),
		ImageCount:  ChooseImageCount(support.Capabilities, options.MaxImageCount),
		Transform:   support.Capabilities.CurrentTransform,
		SharingMode: SharingModeExclusive,
	}

	if unique := families.Unique(); len(unique) > 1 {
		plan.SharingMode = SharingModeConcurrent
		plan.QueueFamilies = unique
	}

	if plan.Extent.Empty() {
		return plan, errors.Wrapf(ErrZeroExtent, "extent %s", plan.Extent)
	}
	return plan, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
