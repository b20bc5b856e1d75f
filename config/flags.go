package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/venusengine/venus/device"
	"github.com/venusengine/venus/logging"
)

// Parse applies command line flags on top of Default. A request for help
// returns flag.ErrHelp after usage is written to output.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.Window.Title, "title", cfg.Window.Title, "window title")
	fs.Func("resolution", "window resolution as WIDTHxHEIGHT, or native (default "+cfg.Window.Resolution.String()+")", func(s string) error {
		r, err := ParseResolution(s)
		if err != nil {
			return err
		}
		cfg.Window.Resolution = r
		return nil
	})
	fs.Func("aspect", "aspect ratio used for the minimum resolution: 16:9 or 4:3", func(s string) error {
		switch s {
		case "16:9":
			cfg.Window.AspectRatio = AspectRatio16x9
		case "4:3":
			cfg.Window.AspectRatio = AspectRatio4x3
		default:
			return wrapParse(nil, "aspect ratio %q", s)
		}
		return nil
	})
	fs.Func("window-mode", "normal, fullscreen or borderless", func(s string) error {
		mode, err := ParseWindowMode(s)
		if err != nil {
			return err
		}
		cfg.Window.Mode = mode
		return nil
	})

	fs.IntVar(&cfg.Render.FramesInFlight, "frames", cfg.Render.FramesInFlight, fmt.Sprintf("frames in flight (1-%d)", MaxFramesInFlight))
	fs.Func("present-modes", "comma separated present modes, best first (default mailbox,fifo-relaxed,fifo)", func(s string) error {
		modes, err := parsePresentModes(s)
		if err != nil {
			return err
		}
		cfg.Render.PresentModes = modes
		return nil
	})
	fs.DurationVar(&cfg.Render.FenceTimeout, "fence-timeout", cfg.Render.FenceTimeout, "frame fence wait timeout, 0 waits forever")
	fs.DurationVar(&cfg.Render.AcquireTimeout, "acquire-timeout", cfg.Render.AcquireTimeout, "swapchain acquire timeout, 0 waits forever")
	fs.Func("clear-color", "clear color as r,g,b,a in [0,1] (default 0,0,0,1)", func(s string) error {
		parts := strings.Split(s, ",")
		if len(parts) != 4 {
			return wrapParse(nil, "clear color %q", s)
		}
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
			if err != nil {
				return wrapParse(err, "clear color %q", s)
			}
			cfg.Render.ClearColor[i] = float32(v)
		}
		return nil
	})
	fs.Func("min-api", "minimum device Vulkan version as MAJOR.MINOR (default "+cfg.Render.MinAPIVersion.String()+")", func(s string) error {
		var major, minor uint32
		if _, err := fmt.Sscanf(s, "%d.%d", &major, &minor); err != nil {
			return wrapParse(err, "api version %q", s)
		}
		cfg.Render.MinAPIVersion = device.MakeAPIVersion(major, minor, 0)
		return nil
	})
	fs.StringVar(&cfg.Render.ShaderDir, "shaders", cfg.Render.ShaderDir, "directory holding vert.spv and frag.spv")
	fs.IntVar(&cfg.Render.ProbeParallelism, "probe-parallelism", cfg.Render.ProbeParallelism, "adapters probed concurrently")
	fs.DurationVar(&cfg.Render.LoopReportInterval, "loop-report", cfg.Render.LoopReportInterval, "interval between frame count reports, 0 disables")

	fs.BoolVar(&cfg.Debug.Validation, "validation", cfg.Debug.Validation, "enable validation layers and the debug messenger")
	fs.Func("log-level", "trace, debug, info, warn, error or critical (default info)", func(s string) error {
		level, err := logging.ParseLevel(s)
		if err != nil {
			return errors.Mark(err, ErrInvalid)
		}
		cfg.Debug.LogLevel = level
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, errors.Mark(errors.Newf("unrecognized option: %s", fs.Arg(0)), ErrInvalid)
	}

	return cfg, cfg.Validate()
}

func parsePresentModes(s string) ([]device.PresentMode, error) {
	var modes []device.PresentMode
	for _, name := range strings.Split(s, ",") {
		mode, ok := device.ParsePresentMode(strings.TrimSpace(name))
		if !ok {
			return nil, wrapParse(nil, "present mode %q", name)
		}
		modes = append(modes, mode)
	}
	return modes, nil
}
