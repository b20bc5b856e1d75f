package device

import (
	"github.com/cockroachdb/errors"
)

// Adapter is the read-only view of one physical device paired with the
// presentation surface it would render to.
type Adapter interface {
	Properties() (Properties, error)
	Features() Features
	QueueFamilies() []QueueFamily
	SupportsPresent(family int) (bool, error)
	ExtensionNames() ([]string, error)
	SurfaceCapabilities() (SurfaceCapabilities, error)
	SurfaceFormats() ([]SurfaceFormat, error)
	PresentModes() ([]PresentMode, error)
}

// Probe gathers the capabilities of adapter. It only issues queries.
func Probe(adapter Adapter, requiredExtensions []string) (Capabilities, error) {
	var caps Capabilities
	var err error

	caps.Properties, err = adapter.Properties()
	if err != nil {
		return caps, errors.Wrap(err, "query properties")
	}
	caps.Features = adapter.Features()

	caps.QueueFamilies, err = FindQueueFamilies(adapter)
	if err != nil {
		return caps, err
	}

	caps.ExtensionsSupported, err = ExtensionsSupported(adapter, requiredExtensions)
	if err != nil {
		return caps, err
	}

	if caps.ExtensionsSupported {
		caps.Swapchain, err = QuerySwapchainSupport(adapter)
		if err != nil {
			return caps, err
		}
	}

	return caps, nil
}

// FindQueueFamilies walks the families in index order and keeps the first
// match for each role. The scan only stops early once compute is found as
// well, so a late compute-only family is still picked up.
func FindQueueFamilies(adapter Adapter) (QueueFamilies, error) {
	var indices QueueFamilies

	for familyIdx, family := range adapter.QueueFamilies() {
		if indices.full() {
			break
		}
		if family.Count == 0 {
			continue
		}

		if indices.Graphics == nil && family.Flags&QueueGraphics != 0 {
			indices.Graphics = intPtr(familyIdx)
		}

		if indices.Present == nil {
			supported, err := adapter.SupportsPresent(familyIdx)
			if err != nil {
				return indices, errors.Wrapf(err, "query present support for family %d", familyIdx)
			}
			if supported {
				indices.Present = intPtr(familyIdx)
			}
		}

		if indices.Compute == nil && family.Flags&QueueCompute != 0 {
			indices.Compute = intPtr(familyIdx)
		}
	}

	return indices, nil
}

// ExtensionsSupported fails closed: any missing name makes it false.
func ExtensionsSupported(adapter Adapter, required []string) (bool, error) {
	names, err := adapter.ExtensionNames()
	if err != nil {
		return false, errors.Wrap(err, "enumerate device extensions")
	}

	available := make(map[string]struct{}, len(names))
	for _, name := range names {
		available[name] = struct{}{}
	}

	for _, name := range required {
		if _, ok := available[name]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func QuerySwapchainSupport(adapter Adapter) (SwapchainSupport, error) {
	var details SwapchainSupport
	var err error

	details.Capabilities, err = adapter.SurfaceCapabilities()
	if err != nil {
		return details, errors.Wrap(err, "query surface capabilities")
	}

	details.Formats, err = adapter.SurfaceFormats()
	if err != nil {
		return details, errors.Wrap(err, "query surface formats")
	}

	details.PresentModes, err = adapter.PresentModes()
	if err != nil {
		return details, errors.Wrap(err, "query present modes")
	}
	return details, nil
}

func intPtr(i int) *int {
	return &i
}
