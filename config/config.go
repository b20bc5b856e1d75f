// Package config holds the settings Venus is built from. Values come from
// Default and are then overridden by command line flags.
package config

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/venusengine/venus/device"
	"github.com/venusengine/venus/logging"
)

// MaxFramesInFlight bounds Render.FramesInFlight and the swapchain image count.
const MaxFramesInFlight = 4

var ErrInvalid = errors.New("invalid configuration")

func wrapParse(err error, format string, args ...interface{}) error {
	if err == nil {
		return errors.Mark(errors.Newf("unrecognized "+format, args...), ErrInvalid)
	}
	return errors.Mark(errors.Wrapf(err, "parse "+format, args...), ErrInvalid)
}

type Version struct {
	Major, Minor, Patch uint32
}

type Identity struct {
	Name    string
	Version Version
}

type Window struct {
	Title       string
	Resolution  Resolution
	AspectRatio AspectRatio
	Mode        WindowMode
}

type Render struct {
	// FramesInFlight is the number of frame slots, 1..MaxFramesInFlight.
	FramesInFlight int

	PreferredFormat device.SurfaceFormat
	// PresentModes lists present modes best first. FIFO is always appended
	// as the final fallback.
	PresentModes []device.PresentMode

	// FenceTimeout bounds the wait on a frame slot. Zero waits forever.
	FenceTimeout   time.Duration
	AcquireTimeout time.Duration

	ClearColor    mgl32.Vec4
	MinAPIVersion device.APIVersion
	ShaderDir     string

	// ProbeParallelism bounds concurrent adapter probes.
	ProbeParallelism int

	// LoopReportInterval is how often the loop timer logs. Zero disables it.
	LoopReportInterval time.Duration
}

type Debug struct {
	Validation bool
	LogLevel   logging.Level
}

type Config struct {
	Identity Identity
	Window   Window
	Render   Render
	Debug    Debug
}

func Default() Config {
	return Config{
		Identity: Identity{
			Name:    "Venus",
			Version: Version{Major: 0, Minor: 1, Patch: 0},
		},
		Window: Window{
			Title:       "Venus",
			Resolution:  Resolution16x9HD,
			AspectRatio: AspectRatio16x9,
			Mode:        WindowModeNormal,
		},
		Render: Render{
			FramesInFlight: 2,
			PreferredFormat: device.SurfaceFormat{
				Format:     device.FormatB8G8R8A8SRGB,
				ColorSpace: device.ColorSpaceSRGBNonlinear,
			},
			PresentModes:       []device.PresentMode{device.PresentModeMailbox, device.PresentModeFIFORelaxed, device.PresentModeFIFO},
			FenceTimeout:       0,
			AcquireTimeout:     0,
			ClearColor:         mgl32.Vec4{0, 0, 0, 1},
			MinAPIVersion:      device.MakeAPIVersion(1, 0, 0),
			ShaderDir:          "shaders",
			ProbeParallelism:   4,
			LoopReportInterval: 5 * time.Second,
		},
		Debug: Debug{
			Validation: false,
			LogLevel:   logging.LevelInfo,
		},
	}
}

func (c Config) Validate() error {
	if c.Render.FramesInFlight < 1 || c.Render.FramesInFlight > MaxFramesInFlight {
		return errors.Mark(errors.Newf("frames in flight must be between 1 and %d, got %d", MaxFramesInFlight, c.Render.FramesInFlight), ErrInvalid)
	}
	if c.Render.FenceTimeout < 0 || c.Render.AcquireTimeout < 0 {
		return errors.Mark(errors.New("timeouts cannot be negative"), ErrInvalid)
	}
	if _, ok := windowModeNames[c.Window.Mode]; !ok {
		return errors.Mark(errors.Newf("unknown window mode %d", c.Window.Mode), ErrInvalid)
	}
	if c.Window.AspectRatio != AspectRatio16x9 && c.Window.AspectRatio != AspectRatio4x3 {
		return errors.Mark(errors.Newf("unknown aspect ratio %d", c.Window.AspectRatio), ErrInvalid)
	}
	if c.Render.ShaderDir == "" {
		return errors.Mark(errors.New("shader directory is required"), ErrInvalid)
	}
	for i := 0; i < 4; i++ {
		if c.Render.ClearColor[i] < 0 || c.Render.ClearColor[i] > 1 {
			return errors.Mark(errors.Newf("clear color component %d out of range: %v", i, c.Render.ClearColor[i]), ErrInvalid)
		}
	}
	return nil
}
