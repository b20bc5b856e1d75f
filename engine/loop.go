package engine

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/venusengine/venus/device"
	"github.com/venusengine/venus/frame"
	"github.com/venusengine/venus/logging"
	"github.com/venusengine/venus/present"
)

// Surface is what the loop needs from the window.
type Surface interface {
	PumpEvents()
	CloseRequested() bool
	TakeStale() bool
	FramebufferExtent() device.Extent
	Idle()
}

// Renderer draws frames and rebuilds its render target on request.
type Renderer interface {
	DrawFrame() error
	Rebuild(extent device.Extent) error
}

// RunLoop draws until the window asks to close or ctx is cancelled. Out of
// date render targets are rebuilt, fence timeouts skip the frame and any
// other error stops the loop.
func RunLoop(ctx context.Context, surface Surface, renderer Renderer, timer *frame.LoopTimer, logger logging.Logger) error {
	rebuild := false

	for {
		if ctx.Err() != nil {
			logger.Infof("Render loop cancelled.")
			return nil
		}

		surface.PumpEvents()
		if surface.CloseRequested() {
			logger.Infof("Close requested after %d frames.", timer.Total())
			return nil
		}

		if surface.TakeStale() {
			rebuild = true
		}

		extent := surface.FramebufferExtent()
		if extent.Empty() {
			surface.Idle()
			continue
		}

		if rebuild {
			err := renderer.Rebuild(extent)
			if errors.Is(err, present.ErrZeroExtent) {
				surface.Idle()
				continue
			}
			if err != nil {
				return errors.Wrap(err, "rebuild render target")
			}
			rebuild = false
		}

		err := renderer.DrawFrame()
		switch {
		case err == nil:
		case errors.Is(err, frame.ErrOutOfDate):
			logger.Debugf("Render target out of date: %v", err)
			rebuild = true
		case errors.Is(err, frame.ErrFenceTimeout):
			logger.Warnf("Frame skipped: %v", err)
		default:
			return err
		}

		timer.Tick()
	}
}
