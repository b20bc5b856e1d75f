package engine

import (
	"github.com/venusengine/venus/logging"
)

type teardownStep struct {
	name string
	fn   func()
}

// teardown runs cleanup steps in the reverse of the order they were pushed.
type teardown struct {
	steps  []teardownStep
	logger logging.Logger
}

func (t *teardown) push(name string, fn func()) {
	t.steps = append(t.steps, teardownStep{name: name, fn: fn})
}

func (t *teardown) unwind() {
	for i := len(t.steps) - 1; i >= 0; i-- {
		step := t.steps[i]
		t.logger.Debugf("Destroying %s.", step.name)
		step.fn()
	}
	t.steps = nil
}
