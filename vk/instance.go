// Package vk implements the device, present and frame interfaces on top of
// vkngwrapper.
package vk

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"

	"github.com/venusengine/venus/device"
	"github.com/venusengine/venus/logging"
)

const validationLayer = "VK_LAYER_KHRONOS_validation"

type InstanceOptions struct {
	ApplicationName    string
	ApplicationVersion [3]uint32
	EngineName         string
	EngineVersion      [3]uint32
	APIVersion         device.APIVersion

	// Extensions the window system needs.
	Extensions []string
	Validation bool
}

// Instance owns the Vulkan instance, the optional debug messenger and the
// surface extension driver.
type Instance struct {
	Driver           core1_0.CoreInstanceDriver
	SurfaceExtension khr_surface.ExtensionDriver

	debugDriver    ext_debug_utils.ExtensionDriver
	debugMessenger ext_debug_utils.DebugUtilsMessenger
	logger         logging.Logger
}

func CreateInstance(global core1_0.GlobalDriver, options InstanceOptions, logger logging.Logger) (*Instance, error) {
	instance := &Instance{logger: logger}

	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    options.ApplicationName,
		ApplicationVersion: common.CreateVersion(options.ApplicationVersion[0], options.ApplicationVersion[1], options.ApplicationVersion[2]),
		EngineName:         options.EngineName,
		EngineVersion:      common.CreateVersion(options.EngineVersion[0], options.EngineVersion[1], options.EngineVersion[2]),
		APIVersion:         common.APIVersion(options.APIVersion),
	}

	extensions, _, err := global.AvailableExtensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate instance extensions")
	}

	for _, ext := range options.Extensions {
		_, hasExt := extensions[ext]
		if !hasExt {
			return nil, errors.Newf("missing instance extension %s", ext)
		}
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext)
	}

	_, enumerationSupported := extensions[khr_portability_enumeration.ExtensionName]
	if enumerationSupported {
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, khr_portability_enumeration.ExtensionName)
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	if options.Validation {
		layers, _, err := global.AvailableLayers()
		if err != nil {
			return nil, errors.Wrap(err, "enumerate instance layers")
		}
		if _, hasValidation := layers[validationLayer]; !hasValidation {
			return nil, errors.Newf("validation layer %s not available, install the LunarG Vulkan SDK", validationLayer)
		}

		instanceOptions.EnabledLayerNames = append(instanceOptions.EnabledLayerNames, validationLayer)
		instanceOptions.EnabledExtensionNames = append(instanceOptions.EnabledExtensionNames, ext_debug_utils.ExtensionName)
		instanceOptions.Next = instance.debugMessengerOptions()
	}

	instance.Driver, _, err = global.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, errors.Wrap(err, "create instance")
	}
	logger.Infof("Vulkan instance created (api %s, validation %t).", options.APIVersion, options.Validation)

	if options.Validation {
		instance.debugDriver = ext_debug_utils.CreateExtensionDriverFromCoreDriver(instance.Driver)
		instance.debugMessenger, _, err = instance.debugDriver.CreateDebugUtilsMessenger(nil, instance.debugMessengerOptions())
		if err != nil {
			instance.Driver.DestroyInstance(nil)
			return nil, errors.Wrap(err, "create debug messenger")
		}
	}

	instance.SurfaceExtension = khr_surface.CreateExtensionDriverFromCoreDriver(instance.Driver)
	return instance, nil
}

func (i *Instance) debugMessengerOptions() ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.SeverityError | ext_debug_utils.SeverityWarning | ext_debug_utils.SeverityInfo | ext_debug_utils.SeverityVerbose,
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback:    i.logDebug,
	}
}

func (i *Instance) logDebug(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
	level := debugMessageLevel(
		severity&(ext_debug_utils.SeverityWarning|ext_debug_utils.SeverityError) != 0,
		msgType&ext_debug_utils.TypeValidation != 0,
	)

	switch level {
	case logging.LevelCritical:
		i.logger.Criticalf("[%s] %s", msgType, data.Message)
	case logging.LevelError:
		i.logger.Errorf("[%s] %s", msgType, data.Message)
	case logging.LevelDebug:
		i.logger.Debugf("[%s] %s", msgType, data.Message)
	default:
		i.logger.Infof("[%s] %s", msgType, data.Message)
	}
	return false
}

// debugMessageLevel routes validation output: warnings and errors from the
// validation layer are critical, other warnings are errors, quieter
// validation chatter is debug and everything else is info.
func debugMessageLevel(warningOrWorse, validation bool) logging.Level {
	switch {
	case warningOrWorse && validation:
		return logging.LevelCritical
	case warningOrWorse:
		return logging.LevelError
	case validation:
		return logging.LevelDebug
	default:
		return logging.LevelInfo
	}
}

// Adapters lists the physical devices paired with surface.
func (i *Instance) Adapters(surface khr_surface.Surface) ([]*Adapter, error) {
	physicalDevices, _, err := i.Driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate physical devices")
	}

	adapters := make([]*Adapter, 0, len(physicalDevices))
	for _, physicalDevice := range physicalDevices {
		adapters = append(adapters, &Adapter{
			instance:         i.Driver,
			surfaceExtension: i.SurfaceExtension,
			surface:          surface,
			PhysicalDevice:   physicalDevice,
		})
	}
	return adapters, nil
}

func (i *Instance) DestroySurface(surface khr_surface.Surface) {
	if surface.Initialized() {
		i.SurfaceExtension.DestroySurface(surface, nil)
	}
}

func (i *Instance) Destroy() {
	if i.debugMessenger.Initialized() {
		i.debugDriver.DestroyDebugUtilsMessenger(i.debugMessenger, nil)
	}
	if i.Driver != nil {
		i.Driver.DestroyInstance(nil)
	}
	i.logger.Infof("Vulkan instance destroyed.")
}
