// Package device probes graphics adapters and picks the one Venus renders
// with.
//
// The types here mirror the handful of Vulkan structures the selection logic
// reads. Their numeric values match the Vulkan enums, so the backend converts
// with plain casts.
package device

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

type Extent struct {
	Width  int
	Height int
}

// Indeterminate reports whether the extent is the surface's "size decided by
// the swapchain" sentinel (0xFFFFFFFF, which vkngwrapper hands back as -1).
func (e Extent) Indeterminate() bool {
	return uint32(e.Width) == math.MaxUint32
}

func (e Extent) Empty() bool {
	return e.Width <= 0 || e.Height <= 0
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Width, e.Height)
}

type PresentMode int32

const (
	PresentModeImmediate   PresentMode = 0
	PresentModeMailbox     PresentMode = 1
	PresentModeFIFO        PresentMode = 2
	PresentModeFIFORelaxed PresentMode = 3
)

var presentModeNames = map[PresentMode]string{
	PresentModeImmediate:   "immediate",
	PresentModeMailbox:     "mailbox",
	PresentModeFIFO:        "fifo",
	PresentModeFIFORelaxed: "fifo-relaxed",
}

func (m PresentMode) String() string {
	if name, ok := presentModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PresentMode(%d)", int32(m))
}

// ParsePresentMode accepts the names printed by PresentMode.String.
func ParsePresentMode(s string) (PresentMode, bool) {
	for mode, name := range presentModeNames {
		if name == s {
			return mode, true
		}
	}
	return 0, false
}

type Format int32

const (
	FormatUndefined     Format = 0
	FormatB8G8R8A8UNorm Format = 44
	FormatB8G8R8A8SRGB  Format = 50
)

type ColorSpace int32

const ColorSpaceSRGBNonlinear ColorSpace = 0

type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

type SurfaceTransform uint32

type SurfaceCapabilities struct {
	MinImageCount int
	// MaxImageCount of zero means the surface imposes no cap.
	MaxImageCount int

	CurrentExtent  Extent
	MinImageExtent Extent
	MaxImageExtent Extent

	CurrentTransform SurfaceTransform
}

type SwapchainSupport struct {
	Capabilities SurfaceCapabilities
	Formats      []SurfaceFormat
	PresentModes []PresentMode
}

// Adequate is true when the surface offers at least one format and one
// present mode.
func (s SwapchainSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

type DeviceType int32

const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeIntegratedGPU:
		return "integrated"
	case DeviceTypeDiscreteGPU:
		return "discrete"
	case DeviceTypeVirtualGPU:
		return "virtual"
	case DeviceTypeCPU:
		return "cpu"
	default:
		return "other"
	}
}

// APIVersion uses the Vulkan packing: major<<22 | minor<<12 | patch.
type APIVersion uint32

func MakeAPIVersion(major, minor, patch uint32) APIVersion {
	return APIVersion(major<<22 | minor<<12 | patch)
}

func (v APIVersion) Major() uint32 { return uint32(v) >> 22 }
func (v APIVersion) Minor() uint32 { return (uint32(v) >> 12) & 0x3ff }
func (v APIVersion) Patch() uint32 { return uint32(v) & 0xfff }

func (v APIVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

type Properties struct {
	Name                string
	Type                DeviceType
	APIVersion          APIVersion
	MaxImageDimension2D int
	PipelineCacheUUID   uuid.UUID
}

type Features struct {
	GeometryShader bool
}

type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
)

type QueueFamily struct {
	Flags QueueFlags
	Count int
}

// QueueFamilies records the first family index found for each role. A nil
// slot means no family qualified.
type QueueFamilies struct {
	Graphics *int
	Present  *int
	Compute  *int
}

// Complete reports whether the mandatory roles are filled.
func (q QueueFamilies) Complete() bool {
	return q.Graphics != nil && q.Present != nil
}

func (q QueueFamilies) full() bool {
	return q.Complete() && q.Compute != nil
}

// Unique lists the distinct mandatory family indices, graphics first.
func (q QueueFamilies) Unique() []int {
	if !q.Complete() {
		return nil
	}
	families := []int{*q.Graphics}
	if *q.Present != *q.Graphics {
		families = append(families, *q.Present)
	}
	return families
}

// Capabilities is a snapshot of everything selection needs to know about one
// adapter. It is not kept after selection.
type Capabilities struct {
	QueueFamilies       QueueFamilies
	ExtensionsSupported bool
	Swapchain           SwapchainSupport
	Properties          Properties
	Features            Features
}

// Candidate reports whether the adapter passes the hard requirements.
func (c Capabilities) Candidate() bool {
	return c.QueueFamilies.Complete() && c.ExtensionsSupported && c.Swapchain.Adequate()
}
