package frame

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/venusengine/venus/device"
)

type fakeEncoder struct {
	calls   []string
	passErr error
}

func (e *fakeEncoder) Begin(cmd int) error {
	e.calls = append(e.calls, "begin")
	return nil
}

func (e *fakeEncoder) BeginRenderPass(cmd int, pass string, framebuffer string, extent device.Extent, clear mgl32.Vec4) error {
	e.calls = append(e.calls, fmt.Sprintf("begin pass %s %s %s %v", pass, framebuffer, extent, clear))
	return e.passErr
}

func (e *fakeEncoder) BindPipeline(cmd int, pipeline string) {
	e.calls = append(e.calls, "bind "+pipeline)
}

func (e *fakeEncoder) SetViewport(cmd int, viewport Viewport) {
	e.calls = append(e.calls, fmt.Sprintf("viewport %v", viewport))
}

func (e *fakeEncoder) SetScissor(cmd int, extent device.Extent) {
	e.calls = append(e.calls, "scissor "+extent.String())
}

func (e *fakeEncoder) Draw(cmd int, vertexCount, instanceCount, firstVertex, firstInstance int) {
	e.calls = append(e.calls, fmt.Sprintf("draw %d %d %d %d", vertexCount, instanceCount, firstVertex, firstInstance))
}

func (e *fakeEncoder) EndRenderPass(cmd int) {
	e.calls = append(e.calls, "end pass")
}

func (e *fakeEncoder) End(cmd int) error {
	e.calls = append(e.calls, "end")
	return nil
}

func TestTriangleRecorder(t *testing.T) {
	encoder := &fakeEncoder{}
	recorder := &TriangleRecorder[int, string, string, string]{
		Encoder:    encoder,
		Pipeline:   "triangle",
		ClearColor: mgl32.Vec4{0, 0, 0, 1},
	}
	recorder.SetTarget("pass", []string{"fb0", "fb1", "fb2"}, device.Extent{Width: 800, Height: 600})

	require.NoError(t, recorder.Record(7, 2))
	require.Equal(t, []string{
		"begin",
		"begin pass pass fb2 800x600 [0 0 0 1]",
		"bind triangle",
		"viewport {0 0 800 600 0 1}",
		"scissor 800x600",
		"draw 3 1 0 0",
		"end pass",
		"end",
	}, encoder.calls)
}

func TestTriangleRecorderImageOutOfRange(t *testing.T) {
	encoder := &fakeEncoder{}
	recorder := &TriangleRecorder[int, string, string, string]{Encoder: encoder}
	recorder.SetTarget("pass", []string{"fb0"}, device.Extent{Width: 1, Height: 1})

	require.Error(t, recorder.Record(0, 1))
	require.Empty(t, encoder.calls)
}

func TestTriangleRecorderRenderPassFailure(t *testing.T) {
	encoder := &fakeEncoder{passErr: errors.New("out of host memory")}
	recorder := &TriangleRecorder[int, string, string, string]{Encoder: encoder, Pipeline: "triangle"}
	recorder.SetTarget("pass", []string{"fb0"}, device.Extent{Width: 1, Height: 1})

	err := recorder.Record(0, 0)
	require.ErrorContains(t, err, "begin render pass")
	require.ErrorContains(t, err, "out of host memory")
	require.Len(t, encoder.calls, 2)
}
