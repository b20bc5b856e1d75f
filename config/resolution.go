package config

import (
	"fmt"

	"github.com/venusengine/venus/logging"
)

// Resolution packs a window size as width<<16 | height.
type Resolution uint32

// ResolutionNative asks for the monitor's own resolution. Normal windows
// cannot use it.
const ResolutionNative Resolution = 0

const (
	Resolution4x3VGA     Resolution = 640<<16 | 480
	Resolution4x3SVGA    Resolution = 800<<16 | 600
	Resolution4x3XGA     Resolution = 1024<<16 | 768
	Resolution4x3XGAPlus Resolution = 1152<<16 | 864
	Resolution4x3QXGA    Resolution = 2048<<16 | 1536
	Resolution4x3QUXGA   Resolution = 3200<<16 | 2400
	Resolution4x3HXGA    Resolution = 4096<<16 | 3072
)

const (
	Resolution16x9FWVGA      Resolution = 854<<16 | 480
	Resolution16x9QHDQuarter Resolution = 960<<16 | 540
	Resolution16x9WSVGA      Resolution = 1024<<16 | 576
	Resolution16x9HD         Resolution = 1280<<16 | 720
	Resolution16x9FWXGA      Resolution = 1366<<16 | 768
	Resolution16x9HDPlus     Resolution = 1600<<16 | 900
	Resolution16x9FHD        Resolution = 1920<<16 | 1080
	Resolution16x9QWXGA      Resolution = 2048<<16 | 1152
	Resolution16x9QHDQuad    Resolution = 2560<<16 | 1440
	Resolution16x9WQXGAPlus  Resolution = 3200<<16 | 1800
	Resolution16x9UHD        Resolution = 3840<<16 | 2160
	Resolution16x9UHDPlus    Resolution = 5120<<16 | 2880
	Resolution16x9FUHD       Resolution = 7680<<16 | 4320
)

func CustomResolution(width, height uint16) Resolution {
	return Resolution(uint32(width)<<16 | uint32(height))
}

func (r Resolution) Width() int  { return int(uint32(r) >> 16) }
func (r Resolution) Height() int { return int(uint32(r) & 0xffff) }

func (r Resolution) String() string {
	if r == ResolutionNative {
		return "native"
	}
	return fmt.Sprintf("%dx%d", r.Width(), r.Height())
}

// ParseResolution accepts "native" or WIDTHxHEIGHT.
func ParseResolution(s string) (Resolution, error) {
	if s == "native" {
		return ResolutionNative, nil
	}
	var w, h uint16
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil {
		return 0, wrapParse(err, "resolution %q", s)
	}
	return CustomResolution(w, h), nil
}

type AspectRatio uint8

const (
	AspectRatio16x9 AspectRatio = 1
	AspectRatio4x3  AspectRatio = 2
)

func (a AspectRatio) String() string {
	if a == AspectRatio4x3 {
		return "4:3"
	}
	return "16:9"
}

// MinimumResolution is the 480p floor for the aspect ratio.
func (a AspectRatio) MinimumResolution() Resolution {
	if a == AspectRatio4x3 {
		return Resolution4x3VGA
	}
	return Resolution16x9FWVGA
}

type WindowMode uint8

const (
	WindowModeNormal WindowMode = 1 << iota
	WindowModeFullscreen
	WindowModeBorderless
)

var windowModeNames = map[WindowMode]string{
	WindowModeNormal:     "normal",
	WindowModeFullscreen: "fullscreen",
	WindowModeBorderless: "borderless",
}

func (m WindowMode) String() string {
	if name, ok := windowModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("WindowMode(%d)", uint8(m))
}

func ParseWindowMode(s string) (WindowMode, error) {
	for mode, name := range windowModeNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, wrapParse(nil, "window mode %q", s)
}

// Size resolves the window size to open with. A zero result means the
// display's current mode; only fullscreen and borderless windows get one.
func (w Window) Size(logger logging.Logger) (width, height int) {
	minimum := w.AspectRatio.MinimumResolution()

	if w.Resolution == ResolutionNative {
		if w.Mode == WindowModeNormal {
			logger.Warnf("Venus does not allow native resolution for normal windows, defaulting to 480p.")
			return minimum.Width(), minimum.Height()
		}
		return 0, 0
	}

	if w.Resolution.Width() < minimum.Width() || w.Resolution.Height() < minimum.Height() {
		logger.Warnf("Default resolution set below minimum supported, defaulting to 480p.")
		return minimum.Width(), minimum.Height()
	}

	return w.Resolution.Width(), w.Resolution.Height()
}
