package present

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// fakeBuilder hands out string handles and records every call.
type fakeBuilder struct {
	images    int
	failOn    string
	calls     []string
	live      map[string]bool
	viewCount int
}

func newFakeBuilder(images int) *fakeBuilder {
	return &fakeBuilder{images: images, live: map[string]bool{}}
}

func (b *fakeBuilder) create(kind string) (string, error) {
	if kind == b.failOn {
		return "", errors.Newf("%s failed", kind)
	}
	handle := kind
	if kind == "view" {
		handle = fmt.Sprintf("view%d", b.viewCount)
		b.viewCount++
	}
	b.calls = append(b.calls, "create "+handle)
	b.live[handle] = true
	return handle, nil
}

func (b *fakeBuilder) destroy(handle string) {
	b.calls = append(b.calls, "destroy "+handle)
	delete(b.live, handle)
}

func (b *fakeBuilder) CreateSwapchain(plan Plan) (string, []int, error) {
	handle, err := b.create("swapchain")
	if err != nil {
		return "", nil, err
	}
	images := make([]int, b.images)
	for i := range images {
		images[i] = i
	}
	return handle, images, nil
}

func (b *fakeBuilder) CreateImageView(plan Plan, image int) (string, error) {
	if b.failOn == fmt.Sprintf("view%d", image) {
		return "", errors.New("out of memory")
	}
	return b.create("view")
}

func (b *fakeBuilder) CreateRenderPass(plan Plan) (string, error) {
	return b.create("pass")
}

func (b *fakeBuilder) CreateFramebuffer(plan Plan, pass string, view string) (string, error) {
	if b.failOn == "fb:"+view {
		return "", errors.New("out of memory")
	}
	handle := "fb:" + view
	b.calls = append(b.calls, "create "+handle)
	b.live[handle] = true
	return handle, nil
}

func (b *fakeBuilder) DestroyFramebuffer(framebuffer string) { b.destroy(framebuffer) }
func (b *fakeBuilder) DestroyRenderPass(pass string)         { b.destroy(pass) }
func (b *fakeBuilder) DestroyImageView(view string)          { b.destroy(view) }
func (b *fakeBuilder) DestroySwapchain(swapchain string)     { b.destroy(swapchain) }

func TestAssemble(t *testing.T) {
	builder := newFakeBuilder(3)

	target, err := Assemble[string, int, string, string, string](builder, Plan{ImageCount: 3})
	require.NoError(t, err)
	require.Equal(t, 3, target.ImageCount())
	require.Equal(t, []string{"view0", "view1", "view2"}, target.Views)
	require.Equal(t, []string{"fb:view0", "fb:view1", "fb:view2"}, target.Framebuffers)
	require.Equal(t, "pass", target.RenderPass)

	Destroy[string, int, string, string, string](builder, target)
	require.Empty(t, builder.live)
	require.Equal(t, []string{
		"destroy fb:view2", "destroy fb:view1", "destroy fb:view0",
		"destroy pass",
		"destroy view2", "destroy view1", "destroy view0",
		"destroy swapchain",
	}, builder.calls[len(builder.calls)-8:])
}

func TestAssembleRollsBack(t *testing.T) {
	testCases := []string{"swapchain", "view1", "pass", "fb:view2"}

	for _, failOn := range testCases {
		t.Run(failOn, func(t *testing.T) {
			builder := newFakeBuilder(3)
			builder.failOn = failOn

			target, err := Assemble[string, int, string, string, string](builder, Plan{})
			require.Error(t, err)
			require.Nil(t, target)
			require.Empty(t, builder.live)
		})
	}
}

func TestAssembleNoImages(t *testing.T) {
	builder := newFakeBuilder(0)

	target, err := Assemble[string, int, string, string, string](builder, Plan{})
	require.ErrorContains(t, err, "no images")
	require.Nil(t, target)
	require.Equal(t, []string{"create swapchain", "destroy swapchain"}, builder.calls)
}
