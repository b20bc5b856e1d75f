package device

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/venusengine/venus/logging"
)

const swapchainExtension = "VK_KHR_swapchain"

type fakeAdapter struct {
	props       Properties
	features    Features
	families    []QueueFamily
	present     map[int]bool
	extensions  []string
	surfaceCaps SurfaceCapabilities
	formats     []SurfaceFormat
	modes       []PresentMode
	propsErr    error
}

func (f *fakeAdapter) Properties() (Properties, error) { return f.props, f.propsErr }
func (f *fakeAdapter) Features() Features               { return f.features }
func (f *fakeAdapter) QueueFamilies() []QueueFamily     { return f.families }
func (f *fakeAdapter) SupportsPresent(family int) (bool, error) {
	return f.present[family], nil
}
func (f *fakeAdapter) ExtensionNames() ([]string, error) { return f.extensions, nil }
func (f *fakeAdapter) SurfaceCapabilities() (SurfaceCapabilities, error) {
	return f.surfaceCaps, nil
}
func (f *fakeAdapter) SurfaceFormats() ([]SurfaceFormat, error) { return f.formats, nil }
func (f *fakeAdapter) PresentModes() ([]PresentMode, error)     { return f.modes, nil }

func suitableAdapter(name string, kind DeviceType, maxDim int) *fakeAdapter {
	return &fakeAdapter{
		props: Properties{
			Name:                name,
			Type:                kind,
			APIVersion:          MakeAPIVersion(1, 3, 0),
			MaxImageDimension2D: maxDim,
		},
		features:   Features{GeometryShader: true},
		families:   []QueueFamily{{Flags: QueueGraphics | QueueCompute, Count: 1}},
		present:    map[int]bool{0: true},
		extensions: []string{swapchainExtension},
		surfaceCaps: SurfaceCapabilities{
			MinImageCount:  2,
			MaxImageCount:  8,
			CurrentExtent:  Extent{Width: 800, Height: 600},
			MinImageExtent: Extent{Width: 1, Height: 1},
			MaxImageExtent: Extent{Width: 4096, Height: 4096},
		},
		formats: []SurfaceFormat{{Format: FormatB8G8R8A8SRGB, ColorSpace: ColorSpaceSRGBNonlinear}},
		modes:   []PresentMode{PresentModeFIFO},
	}
}

func defaultCriteria() Criteria {
	return Criteria{
		RequiredExtensions: []string{swapchainExtension},
		MinAPIVersion:      MakeAPIVersion(1, 0, 0),
		Parallelism:        4,
	}
}

func TestScore(t *testing.T) {
	caps := Capabilities{
		Properties: Properties{Type: DeviceTypeDiscreteGPU, APIVersion: MakeAPIVersion(1, 2, 0), MaxImageDimension2D: 16384},
		Features:   Features{GeometryShader: true},
	}
	require.Equal(t, DiscreteBonus+16384, Score(caps, MakeAPIVersion(1, 0, 0)))

	caps.Properties.Type = DeviceTypeIntegratedGPU
	require.Equal(t, 16384, Score(caps, MakeAPIVersion(1, 0, 0)))

	require.Zero(t, Score(caps, MakeAPIVersion(1, 3, 0)))

	caps.Features.GeometryShader = false
	require.Zero(t, Score(caps, MakeAPIVersion(1, 0, 0)))
}

func TestSelectPrefersDiscrete(t *testing.T) {
	integrated := suitableAdapter("integrated", DeviceTypeIntegratedGPU, 4096)
	discrete := suitableAdapter("discrete", DeviceTypeDiscreteGPU, 2048)

	sel, err := Select(context.Background(), []*fakeAdapter{integrated, discrete}, defaultCriteria(), logging.Discard)
	require.NoError(t, err)
	require.Equal(t, 1, sel.Index)
	require.Same(t, discrete, sel.Adapter)
	require.Equal(t, DiscreteBonus+2048, sel.Score)
}

func TestSelectTieGoesToFirst(t *testing.T) {
	first := suitableAdapter("first", DeviceTypeDiscreteGPU, 8192)
	second := suitableAdapter("second", DeviceTypeDiscreteGPU, 8192)

	sel, err := Select(context.Background(), []*fakeAdapter{first, second}, defaultCriteria(), logging.Discard)
	require.NoError(t, err)
	require.Equal(t, 0, sel.Index)
	require.Same(t, first, sel.Adapter)
}

func TestSelectExcludesZeroScore(t *testing.T) {
	noGeometry := suitableAdapter("no-geometry", DeviceTypeDiscreteGPU, 16384)
	noGeometry.features.GeometryShader = false

	_, err := Select(context.Background(), []*fakeAdapter{noGeometry}, defaultCriteria(), logging.Discard)
	require.True(t, errors.Is(err, ErrNoSuitableAdapter))

	weak := suitableAdapter("weak", DeviceTypeIntegratedGPU, 1024)
	sel, err := Select(context.Background(), []*fakeAdapter{noGeometry, weak}, defaultCriteria(), logging.Discard)
	require.NoError(t, err)
	require.Equal(t, 1, sel.Index)
}

func TestSelectFiltersNonCandidates(t *testing.T) {
	noSwapchain := suitableAdapter("no-swapchain", DeviceTypeDiscreteGPU, 16384)
	noSwapchain.extensions = []string{"VK_KHR_maintenance1"}

	noPresent := suitableAdapter("no-present", DeviceTypeDiscreteGPU, 16384)
	noPresent.present = nil

	noModes := suitableAdapter("no-modes", DeviceTypeDiscreteGPU, 16384)
	noModes.modes = nil

	broken := suitableAdapter("broken", DeviceTypeDiscreteGPU, 16384)
	broken.propsErr = errors.New("device lost")

	fallback := suitableAdapter("fallback", DeviceTypeIntegratedGPU, 512)

	adapters := []*fakeAdapter{noSwapchain, noPresent, noModes, broken, fallback}
	sel, err := Select(context.Background(), adapters, defaultCriteria(), logging.Discard)
	require.NoError(t, err)
	require.Equal(t, 4, sel.Index)
	require.Equal(t, "fallback", sel.Capabilities.Properties.Name)
}

func TestSelectNoAdapters(t *testing.T) {
	_, err := Select(context.Background(), []*fakeAdapter{}, defaultCriteria(), logging.Discard)
	require.True(t, errors.Is(err, ErrNoAdapters))
}

func TestSelectSequentialMatchesParallel(t *testing.T) {
	adapters := []*fakeAdapter{
		suitableAdapter("a", DeviceTypeIntegratedGPU, 8192),
		suitableAdapter("b", DeviceTypeVirtualGPU, 16384),
		suitableAdapter("c", DeviceTypeDiscreteGPU, 1024),
		suitableAdapter("d", DeviceTypeDiscreteGPU, 4096),
	}

	criteria := defaultCriteria()
	parallel, err := Select(context.Background(), adapters, criteria, logging.Discard)
	require.NoError(t, err)

	criteria.Parallelism = 0
	sequential, err := Select(context.Background(), adapters, criteria, logging.Discard)
	require.NoError(t, err)

	require.Equal(t, 3, parallel.Index)
	require.Equal(t, parallel.Index, sequential.Index)
}

func TestSelectCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Select(ctx, []*fakeAdapter{suitableAdapter("a", DeviceTypeDiscreteGPU, 1)}, defaultCriteria(), logging.Discard)
	require.True(t, errors.Is(err, context.Canceled))
}
