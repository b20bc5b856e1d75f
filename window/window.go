// Package window opens the SDL2 window Venus presents to and turns its events
// into close and resize signals.
package window

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/core/v3"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"

	"github.com/venusengine/venus/config"
	"github.com/venusengine/venus/device"
	"github.com/venusengine/venus/logging"
	"github.com/venusengine/venus/vk"
)

// idleDelay is how long Idle sleeps while there is nothing to draw, in ms.
const idleDelay = 16

type Window struct {
	window *sdl.Window
	logger logging.Logger

	closeRequested bool
	stale          bool
}

func New(cfg config.Window, logger logging.Logger) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, errors.Wrap(err, "initialize sdl")
	}

	width, height := cfg.Size(logger)
	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_VULKAN)

	switch cfg.Mode {
	case config.WindowModeFullscreen:
		if width == 0 {
			flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
		} else {
			flags |= sdl.WINDOW_FULLSCREEN
		}
	case config.WindowModeBorderless:
		flags |= sdl.WINDOW_BORDERLESS
	default:
		flags |= sdl.WINDOW_RESIZABLE
	}

	if width == 0 || height == 0 {
		mode, err := sdl.GetDesktopDisplayMode(0)
		if err != nil {
			sdl.Quit()
			return nil, errors.Wrap(err, "query desktop display mode")
		}
		width, height = int(mode.W), int(mode.H)
	}

	window, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(width), int32(height), flags)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "create window")
	}

	logger.Infof("Using Window-Mode: %s, %dx%d.", cfg.Mode, width, height)
	return &Window{window: window, logger: logger}, nil
}

// GlobalDriver loads the Vulkan entry points through SDL.
func (w *Window) GlobalDriver() (core1_0.GlobalDriver, error) {
	return core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
}

// InstanceExtensions are the instance extensions SDL needs for surfaces.
func (w *Window) InstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

func (w *Window) CreateSurface(instance *vk.Instance) (khr_surface.Surface, error) {
	surface, err := vkng_sdl2.CreateSurface(instance.Driver.Instance(), instance.SurfaceExtension, w.window)
	if err != nil {
		return surface, errors.Wrap(err, "create window surface")
	}
	w.logger.Infof("Window surface has been created.")
	return surface, nil
}

// FramebufferExtent is the drawable size in pixels. It is empty while the
// window is minimized.
func (w *Window) FramebufferExtent() device.Extent {
	if w.window.GetFlags()&sdl.WINDOW_MINIMIZED != 0 {
		return device.Extent{}
	}
	width, height := w.window.VulkanGetDrawableSize()
	return device.Extent{Width: int(width), Height: int(height)}
}

// PumpEvents drains the SDL event queue.
func (w *Window) PumpEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.closeRequested = true
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_END {
				w.logger.Debugf("End pressed, closing.")
				w.closeRequested = true
			}
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED, sdl.WINDOWEVENT_MINIMIZED, sdl.WINDOWEVENT_RESTORED:
				w.stale = true
			}
		}
	}
}

func (w *Window) CloseRequested() bool {
	return w.closeRequested
}

// TakeStale reports whether the window changed size since the last call.
func (w *Window) TakeStale() bool {
	stale := w.stale
	w.stale = false
	return stale
}

func (w *Window) Idle() {
	sdl.Delay(idleDelay)
}

func (w *Window) Destroy() {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl.Quit()
	w.logger.Infof("Venus Window has been destroyed.")
}
