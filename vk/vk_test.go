package vk

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"

	"github.com/venusengine/venus/frame"
	"github.com/venusengine/venus/logging"
)

func TestDebugMessageLevel(t *testing.T) {
	require.Equal(t, logging.LevelCritical, debugMessageLevel(true, true))
	require.Equal(t, logging.LevelError, debugMessageLevel(true, false))
	require.Equal(t, logging.LevelDebug, debugMessageLevel(false, true))
	require.Equal(t, logging.LevelInfo, debugMessageLevel(false, false))
}

func TestBytesToBytecode(t *testing.T) {
	code := bytesToBytecode([]byte{0x03, 0x02, 0x23, 0x07, 0x00, 0x00, 0x01, 0x00})
	require.Equal(t, []uint32{0x07230203, 0x00010000}, code)
}

func TestLoadShaders(t *testing.T) {
	dir := t.TempDir()
	magic := []byte{0x03, 0x02, 0x23, 0x07}
	require.NoError(t, os.WriteFile(filepath.Join(dir, VertexShaderFile), magic, 0o644))

	_, err := LoadShaders(dir)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FragmentShaderFile), magic[:3], 0o644))
	_, err = LoadShaders(dir)
	require.ErrorContains(t, err, "multiple of 4")

	require.NoError(t, os.WriteFile(filepath.Join(dir, FragmentShaderFile), magic, 0o644))
	shaders, err := LoadShaders(dir)
	require.NoError(t, err)
	require.Equal(t, []uint32{0x07230203}, shaders.Vertex)
	require.Equal(t, []uint32{0x07230203}, shaders.Fragment)
}

func TestClassifyResults(t *testing.T) {
	require.True(t, errors.Is(classifyWait(core1_0.VKTimeout, nil), frame.ErrFenceTimeout))
	require.NoError(t, classifyWait(core1_0.VKSuccess, nil))

	require.True(t, errors.Is(classifyAcquire(khr_swapchain.VKErrorOutOfDate, errors.New("out of date")), frame.ErrOutOfDate))
	require.True(t, errors.Is(classifyAcquire(core1_0.VKTimeout, nil), frame.ErrFenceTimeout))
	require.NoError(t, classifyAcquire(khr_swapchain.VKSuboptimal, nil))

	require.True(t, errors.Is(classifyPresent(khr_swapchain.VKSuboptimal, nil), frame.ErrOutOfDate))
	require.True(t, errors.Is(classifyPresent(khr_swapchain.VKErrorOutOfDate, errors.New("out of date")), frame.ErrOutOfDate))

	lost := errors.New("device lost")
	require.Same(t, lost, classifyPresent(core1_0.VKErrorDeviceLost, lost))
}

func TestTimeout(t *testing.T) {
	require.Equal(t, common.NoTimeout, timeout(0))
	require.Equal(t, time.Second, timeout(time.Second))
}
