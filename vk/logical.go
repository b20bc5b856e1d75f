package vk

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_portability_subset"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/venusengine/venus/device"
	"github.com/venusengine/venus/logging"
)

// RequiredDeviceExtensions must be supported by every candidate adapter.
var RequiredDeviceExtensions = []string{khr_swapchain.ExtensionName}

// LogicalDevice is the device created on the selected adapter along with its
// queues and the command pool frame slots allocate from.
type LogicalDevice struct {
	Driver             core1_0.CoreDeviceDriver
	SwapchainExtension khr_swapchain.ExtensionDriver

	GraphicsQueue core1_0.Queue
	PresentQueue  core1_0.Queue
	CommandPool   core1_0.CommandPool

	Families device.QueueFamilies
	logger   logging.Logger
}

func CreateLogicalDevice(instance *Instance, adapter *Adapter, families device.QueueFamilies, logger logging.Logger) (*LogicalDevice, error) {
	if !families.Complete() {
		return nil, errors.New("queue families are incomplete")
	}

	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	queuePriority := float32(1.0)
	for _, queueFamily := range families.Unique() {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{queuePriority},
		})
	}

	var extensionNames []string
	extensionNames = append(extensionNames, RequiredDeviceExtensions...)

	// Required on portability implementations such as MoltenVK.
	extensions, _, err := instance.Driver.EnumerateDeviceExtensionProperties(adapter.PhysicalDevice)
	if err != nil {
		return nil, errors.Wrap(err, "enumerate device extensions")
	}
	if _, supported := extensions[khr_portability_subset.ExtensionName]; supported {
		extensionNames = append(extensionNames, khr_portability_subset.ExtensionName)
	}

	deviceDriver, _, err := instance.Driver.CreateDevice(adapter.PhysicalDevice, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: queueFamilyOptions,
		EnabledFeatures: &core1_0.PhysicalDeviceFeatures{
			GeometryShader: true,
		},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create logical device")
	}

	ld := &LogicalDevice{
		Driver:             deviceDriver,
		SwapchainExtension: khr_swapchain.CreateExtensionDriverFromCoreDriver(deviceDriver),
		GraphicsQueue:      deviceDriver.GetQueue(*families.Graphics, 0),
		PresentQueue:       deviceDriver.GetQueue(*families.Present, 0),
		Families:           families,
		logger:             logger,
	}

	ld.CommandPool, _, err = deviceDriver.CreateCommandPool(nil, core1_0.CommandPoolCreateInfo{
		Flags:            core1_0.CommandPoolCreateResetBuffer,
		QueueFamilyIndex: *families.Graphics,
	})
	if err != nil {
		deviceDriver.DestroyDevice(nil)
		return nil, errors.Wrap(err, "create command pool")
	}

	logger.Infof("Logical device created (graphics family %d, present family %d).", *families.Graphics, *families.Present)
	return ld, nil
}

func (d *LogicalDevice) WaitIdle() error {
	_, err := d.Driver.DeviceWaitIdle()
	return err
}

func (d *LogicalDevice) Destroy() {
	if d.CommandPool.Initialized() {
		d.Driver.DestroyCommandPool(d.CommandPool, nil)
	}
	d.Driver.DestroyDevice(nil)
	d.logger.Infof("Logical device destroyed.")
}
