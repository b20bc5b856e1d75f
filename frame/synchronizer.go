// Package frame drives the per-frame acquire, record, submit and present
// cycle with a fixed number of frames in flight.
package frame

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/venusengine/venus/logging"
)

var (
	// ErrOutOfDate means the render target no longer matches the surface and
	// must be rebuilt before drawing again.
	ErrOutOfDate = errors.New("render target out of date")
	// ErrFenceTimeout means a frame slot was still busy when the wait timed
	// out. Nothing was submitted.
	ErrFenceTimeout = errors.New("timed out waiting for frame fence")
)

// Device is the subset of the graphics device the synchronizer drives.
// Semaphores, fences and command buffers are opaque handles.
//
// WaitForFence must return an error marked with ErrFenceTimeout on timeout.
// AcquireNextImage and Present must return errors marked with ErrOutOfDate
// when the swapchain needs rebuilding. AcquireNextImage accepts suboptimal
// results; Present reports them as out of date.
type Device[S, F, C any] interface {
	CreateSemaphore() (S, error)
	CreateFence(signaled bool) (F, error)
	AllocateCommandBuffers(count int) ([]C, error)

	// A zero timeout waits forever.
	WaitForFence(fence F, timeout time.Duration) error
	ResetFence(fence F) error
	AcquireNextImage(signal S, timeout time.Duration) (int, error)
	ResetCommandBuffer(cmd C) error
	Submit(wait S, cmd C, signal S, fence F) error
	// Release submits no work. It only waits on wait and then signals fence.
	Release(wait S, fence F) error
	Present(wait S, imageIndex int) error
	WaitIdle() error

	DestroySemaphore(semaphore S)
	DestroyFence(fence F)
	FreeCommandBuffers(cmds []C)
}

// Recorder fills a command buffer for one swapchain image.
type Recorder[C any] interface {
	Record(cmd C, imageIndex int) error
}

// Slot holds the objects owned by one frame in flight.
type Slot[S, F, C any] struct {
	ImageAvailable S
	RenderFinished S
	InFlight       F
	Commands       C
}

type Options struct {
	FenceTimeout   time.Duration
	AcquireTimeout time.Duration
}

type Synchronizer[S, F, C any] struct {
	device   Device[S, F, C]
	recorder Recorder[C]
	options  Options
	logger   logging.Logger

	slots        []Slot[S, F, C]
	currentFrame int

	// imagesInFlight maps a swapchain image to the slot that last rendered
	// to it, or -1.
	imagesInFlight []int
}

// New creates frames slots. Fences start signaled so the first wait on each
// slot returns immediately.
func New[S, F, C any](device Device[S, F, C], frames int, recorder Recorder[C], options Options, logger logging.Logger) (*Synchronizer[S, F, C], error) {
	if frames < 1 {
		return nil, errors.Newf("frames in flight must be positive, got %d", frames)
	}

	s := &Synchronizer[S, F, C]{
		device:   device,
		recorder: recorder,
		options:  options,
		logger:   logger,
	}

	cmds, err := device.AllocateCommandBuffers(frames)
	if err != nil {
		return nil, errors.Wrap(err, "allocate command buffers")
	}
	if len(cmds) != frames {
		device.FreeCommandBuffers(cmds)
		return nil, errors.AssertionFailedf("allocated %d command buffers, wanted %d", len(cmds), frames)
	}

	for i := 0; i < frames; i++ {
		slot, err := s.createSlot(cmds[i])
		if err != nil {
			s.destroySlots()
			device.FreeCommandBuffers(cmds)
			return nil, errors.Wrapf(err, "create frame slot %d", i)
		}
		s.slots = append(s.slots, slot)
	}

	logger.Debugf("Created %d frame slots.", frames)
	return s, nil
}

func (s *Synchronizer[S, F, C]) createSlot(cmd C) (Slot[S, F, C], error) {
	slot := Slot[S, F, C]{Commands: cmd}
	var err error

	slot.ImageAvailable, err = s.device.CreateSemaphore()
	if err != nil {
		return slot, err
	}

	slot.RenderFinished, err = s.device.CreateSemaphore()
	if err != nil {
		s.device.DestroySemaphore(slot.ImageAvailable)
		return slot, err
	}

	slot.InFlight, err = s.device.CreateFence(true)
	if err != nil {
		s.device.DestroySemaphore(slot.RenderFinished)
		s.device.DestroySemaphore(slot.ImageAvailable)
		return slot, err
	}

	return slot, nil
}

func (s *Synchronizer[S, F, C]) Frames() int {
	return len(s.slots)
}

// CurrentFrame is the index of the slot the next DrawFrame uses.
func (s *Synchronizer[S, F, C]) CurrentFrame() int {
	return s.currentFrame
}

// ResetImages forgets which slot used which swapchain image. Call it after
// the render target is rebuilt.
func (s *Synchronizer[S, F, C]) ResetImages(imageCount int) {
	s.imagesInFlight = make([]int, imageCount)
	for i := range s.imagesInFlight {
		s.imagesInFlight[i] = -1
	}
}

// DrawFrame renders and presents one frame using the current slot. The slot
// index advances whether or not the frame succeeded.
func (s *Synchronizer[S, F, C]) DrawFrame() error {
	current := s.currentFrame
	slot := s.slots[current]
	defer func() {
		s.currentFrame = (s.currentFrame + 1) % len(s.slots)
	}()

	err := s.device.WaitForFence(slot.InFlight, s.options.FenceTimeout)
	if err != nil {
		return errors.Wrapf(err, "wait for frame %d", current)
	}

	imageIndex, err := s.device.AcquireNextImage(slot.ImageAvailable, s.options.AcquireTimeout)
	if err != nil {
		return errors.Wrap(err, "acquire image")
	}

	if imageIndex >= len(s.imagesInFlight) {
		grown := make([]int, imageIndex+1)
		copy(grown, s.imagesInFlight)
		for i := len(s.imagesInFlight); i < len(grown); i++ {
			grown[i] = -1
		}
		s.imagesInFlight = grown
	}

	// The acquire has signaled ImageAvailable. From here until the submit
	// every failure must hand that signal to release.
	if owner := s.imagesInFlight[imageIndex]; owner >= 0 && owner != current {
		err = s.device.WaitForFence(s.slots[owner].InFlight, 0)
		if err != nil {
			return s.release(slot, errors.Wrapf(err, "wait for image %d held by frame %d", imageIndex, owner))
		}
	}
	s.imagesInFlight[imageIndex] = current

	err = s.device.ResetCommandBuffer(slot.Commands)
	if err != nil {
		return s.release(slot, errors.Wrap(err, "reset command buffer"))
	}

	err = s.recorder.Record(slot.Commands, imageIndex)
	if err != nil {
		return s.release(slot, errors.Wrapf(err, "record image %d", imageIndex))
	}

	// The fence is only reset once a submit is certain to follow.
	err = s.device.ResetFence(slot.InFlight)
	if err != nil {
		return errors.Wrap(err, "reset fence")
	}

	err = s.device.Submit(slot.ImageAvailable, slot.Commands, slot.RenderFinished, slot.InFlight)
	if err != nil {
		return errors.Wrap(err, "submit draw command buffer")
	}

	err = s.device.Present(slot.RenderFinished, imageIndex)
	if err != nil {
		return errors.Wrapf(err, "present image %d", imageIndex)
	}

	return nil
}

// release consumes the pending ImageAvailable signal of slot after a frame
// was abandoned between acquire and submit. The slot fence tracks the wait so
// the next acquire on this slot finds the semaphore unsignaled. The acquired
// image is not presented, so cause is returned as is and the caller should
// stop drawing or rebuild the render target.
func (s *Synchronizer[S, F, C]) release(slot Slot[S, F, C], cause error) error {
	if err := s.device.ResetFence(slot.InFlight); err != nil {
		return errors.CombineErrors(cause, errors.Wrap(err, "reset fence for release"))
	}
	if err := s.device.Release(slot.ImageAvailable, slot.InFlight); err != nil {
		return errors.CombineErrors(cause, errors.Wrap(err, "release image semaphore"))
	}
	return cause
}

// Destroy waits for the device to go idle and releases every slot.
func (s *Synchronizer[S, F, C]) Destroy() error {
	err := s.device.WaitIdle()

	cmds := make([]C, 0, len(s.slots))
	for _, slot := range s.slots {
		cmds = append(cmds, slot.Commands)
	}
	s.destroySlots()
	if len(cmds) > 0 {
		s.device.FreeCommandBuffers(cmds)
	}
	s.slots = nil

	if err != nil {
		return errors.Wrap(err, "wait for device idle")
	}
	return nil
}

func (s *Synchronizer[S, F, C]) destroySlots() {
	for i := len(s.slots) - 1; i >= 0; i-- {
		slot := s.slots[i]
		s.device.DestroyFence(slot.InFlight)
		s.device.DestroySemaphore(slot.RenderFinished)
		s.device.DestroySemaphore(slot.ImageAvailable)
	}
}
