package frame

import (
	"time"

	"github.com/loov/hrtime"

	"github.com/venusengine/venus/logging"
)

// LoopTimer counts loop iterations and periodically logs how many ran.
type LoopTimer struct {
	interval time.Duration
	logger   logging.Logger
	now      func() time.Duration

	frames     int
	total      int
	lastReport time.Duration
}

// NewLoopTimer reports every interval. A zero interval only counts.
func NewLoopTimer(interval time.Duration, logger logging.Logger) *LoopTimer {
	return newLoopTimer(interval, logger, hrtime.Now)
}

func newLoopTimer(interval time.Duration, logger logging.Logger, now func() time.Duration) *LoopTimer {
	return &LoopTimer{
		interval:   interval,
		logger:     logger,
		now:        now,
		lastReport: now(),
	}
}

// Tick records one iteration and reports whether a log line was written.
func (t *LoopTimer) Tick() bool {
	t.frames++
	t.total++
	if t.interval <= 0 {
		return false
	}

	now := t.now()
	elapsed := now - t.lastReport
	if elapsed < t.interval {
		return false
	}

	t.logger.Tracef("Frames: %d in %.2fs (%.1f fps)", t.frames, elapsed.Seconds(), float64(t.frames)/elapsed.Seconds())
	t.frames = 0
	t.lastReport = now
	return true
}

// Total is the number of iterations since the timer was created.
func (t *LoopTimer) Total() int {
	return t.total
}
