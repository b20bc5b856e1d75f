package present

import (
	"github.com/cockroachdb/errors"
)

// Target is a built swapchain with its image views, render pass and
// framebuffers. Views and Framebuffers are indexed like Images.
type Target[S, I, V, R, F any] struct {
	Plan         Plan
	Swapchain    S
	Images       []I
	Views        []V
	RenderPass   R
	Framebuffers []F
}

func (t *Target[S, I, V, R, F]) ImageCount() int {
	return len(t.Images)
}

// Builder creates and destroys the individual resources of a Target.
type Builder[S, I, V, R, F any] interface {
	CreateSwapchain(plan Plan) (S, []I, error)
	CreateImageView(plan Plan, image I) (V, error)
	CreateRenderPass(plan Plan) (R, error)
	CreateFramebuffer(plan Plan, pass R, view V) (F, error)

	DestroyFramebuffer(framebuffer F)
	DestroyRenderPass(pass R)
	DestroyImageView(view V)
	DestroySwapchain(swapchain S)
}

// Assemble builds a Target from plan. On failure everything created so far
// is destroyed and no Target is returned.
func Assemble[S, I, V, R, F any](builder Builder[S, I, V, R, F], plan Plan) (target *Target[S, I, V, R, F], err error) {
	t := &Target[S, I, V, R, F]{Plan: plan}
	var haveSwapchain, haveRenderPass bool

	defer func() {
		if err != nil {
			for i := len(t.Framebuffers) - 1; i >= 0; i-- {
				builder.DestroyFramebuffer(t.Framebuffers[i])
			}
			if haveRenderPass {
				builder.DestroyRenderPass(t.RenderPass)
			}
			for i := len(t.Views) - 1; i >= 0; i-- {
				builder.DestroyImageView(t.Views[i])
			}
			if haveSwapchain {
				builder.DestroySwapchain(t.Swapchain)
			}
			target = nil
		}
	}()

	t.Swapchain, t.Images, err = builder.CreateSwapchain(plan)
	if err != nil {
		return nil, errors.Wrap(err, "create swapchain")
	}
	haveSwapchain = true
	if len(t.Images) == 0 {
		return nil, errors.New("swapchain has no images")
	}

	for i, image := range t.Images {
		view, err := builder.CreateImageView(plan, image)
		if err != nil {
			return nil, errors.Wrapf(err, "create image view %d", i)
		}
		t.Views = append(t.Views, view)
	}

	t.RenderPass, err = builder.CreateRenderPass(plan)
	if err != nil {
		return nil, errors.Wrap(err, "create render pass")
	}
	haveRenderPass = true

	for i, view := range t.Views {
		framebuffer, err := builder.CreateFramebuffer(plan, t.RenderPass, view)
		if err != nil {
			return nil, errors.Wrapf(err, "create framebuffer %d", i)
		}
		t.Framebuffers = append(t.Framebuffers, framebuffer)
	}

	if len(t.Framebuffers) != len(t.Views) || len(t.Views) != len(t.Images) {
		return nil, errors.AssertionFailedf("render target mismatch: %d images, %d views, %d framebuffers",
			len(t.Images), len(t.Views), len(t.Framebuffers))
	}

	return t, nil
}

// Destroy releases target in reverse creation order. The caller must make
// sure the device is idle.
func Destroy[S, I, V, R, F any](builder Builder[S, I, V, R, F], target *Target[S, I, V, R, F]) {
	if target == nil {
		return
	}
	for i := len(target.Framebuffers) - 1; i >= 0; i-- {
		builder.DestroyFramebuffer(target.Framebuffers[i])
	}
	builder.DestroyRenderPass(target.RenderPass)
	for i := len(target.Views) - 1; i >= 0; i-- {
		builder.DestroyImageView(target.Views[i])
	}
	builder.DestroySwapchain(target.Swapchain)
}
