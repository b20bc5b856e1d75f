package vk

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/core1_0"
)

const (
	VertexShaderFile   = "vert.spv"
	FragmentShaderFile = "frag.spv"
)

// Shaders is a loaded pair of SPIR-V modules in bytecode form.
type Shaders struct {
	Vertex   []uint32
	Fragment []uint32
}

// LoadShaders reads the vertex and fragment SPIR-V files from dir.
func LoadShaders(dir string) (Shaders, error) {
	var shaders Shaders
	var err error

	shaders.Vertex, err = readSPIRV(filepath.Join(dir, VertexShaderFile))
	if err != nil {
		return shaders, err
	}

	shaders.Fragment, err = readSPIRV(filepath.Join(dir, FragmentShaderFile))
	return shaders, err
}

func readSPIRV(path string) ([]uint32, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read shader")
	}
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, errors.Newf("%s: SPIR-V size %d is not a positive multiple of 4", path, len(b))
	}
	return bytesToBytecode(b), nil
}

func bytesToBytecode(b []byte) []uint32 {
	byteCode := make([]uint32, len(b)/4)
	for i := 0; i < len(byteCode); i++ {
		byteIndex := i * 4
		byteCode[i] = 0
		byteCode[i] |= uint32(b[byteIndex])
		byteCode[i] |= uint32(b[byteIndex+1]) << 8
		byteCode[i] |= uint32(b[byteIndex+2]) << 16
		byteCode[i] |= uint32(b[byteIndex+3]) << 24
	}

	return byteCode
}

// Pipeline is the triangle pipeline and its empty layout.
type Pipeline struct {
	Layout   core1_0.PipelineLayout
	Pipeline core1_0.Pipeline
}

// CreatePipeline builds the triangle pipeline for pass. Viewport and scissor
// are dynamic, so the pipeline survives extent changes.
func CreatePipeline(driver core1_0.CoreDeviceDriver, pass core1_0.RenderPass, shaders Shaders) (Pipeline, error) {
	var pipeline Pipeline

	vertShader, _, err := driver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: shaders.Vertex,
	})
	if err != nil {
		return pipeline, errors.Wrap(err, "create vertex shader module")
	}
	defer driver.DestroyShaderModule(vertShader, nil)

	fragShader, _, err := driver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: shaders.Fragment,
	})
	if err != nil {
		return pipeline, errors.Wrap(err, "create fragment shader module")
	}
	defer driver.DestroyShaderModule(fragShader, nil)

	vertStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageVertex,
		Module: vertShader,
		Name:   "main",
	}

	fragStage := core1_0.PipelineShaderStageCreateInfo{
		Stage:  core1_0.StageFragment,
		Module: fragShader,
		Name:   "main",
	}

	inputAssembly := &core1_0.PipelineInputAssemblyStateCreateInfo{
		Topology:               core1_0.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: false,
	}

	// Counts only; the real values are set while recording.
	viewport := &core1_0.PipelineViewportStateCreateInfo{
		Viewports: []core1_0.Viewport{{MaxDepth: 1}},
		Scissors:  []core1_0.Rect2D{{}},
	}

	rasterization := &core1_0.PipelineRasterizationStateCreateInfo{
		DepthClampEnable:        false,
		RasterizerDiscardEnable: false,

		PolygonMode: core1_0.PolygonModeFill,
		CullMode:    core1_0.CullModeBack,
		FrontFace:   core1_0.FrontFaceClockwise,

		DepthBiasEnable: false,

		LineWidth: 1.0,
	}

	multisample := &core1_0.PipelineMultisampleStateCreateInfo{
		SampleShadingEnable:  false,
		RasterizationSamples: core1_0.Samples1,
		MinSampleShading:     1.0,
	}

	colorBlend := &core1_0.PipelineColorBlendStateCreateInfo{
		LogicOpEnabled: false,
		LogicOp:        core1_0.LogicOpCopy,

		BlendConstants: [4]float32{0, 0, 0, 0},
		Attachments: []core1_0.PipelineColorBlendAttachmentState{
			{
				BlendEnabled:   false,
				ColorWriteMask: core1_0.ColorComponentRed | core1_0.ColorComponentGreen | core1_0.ColorComponentBlue | core1_0.ColorComponentAlpha,
			},
		},
	}

	dynamic := &core1_0.PipelineDynamicStateCreateInfo{
		DynamicStates: []core1_0.DynamicState{
			core1_0.DynamicStateViewport,
			core1_0.DynamicStateScissor,
		},
	}

	pipeline.Layout, _, err = driver.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		return pipeline, errors.Wrap(err, "create pipeline layout")
	}

	pipelines, _, err := driver.CreateGraphicsPipelines(nil, nil,
		core1_0.GraphicsPipelineCreateInfo{
			Stages: []core1_0.PipelineShaderStageCreateInfo{
				vertStage,
				fragStage,
			},
			VertexInputState:   &core1_0.PipelineVertexInputStateCreateInfo{},
			InputAssemblyState: inputAssembly,
			ViewportState:      viewport,
			RasterizationState: rasterization,
			MultisampleState:   multisample,
			ColorBlendState:    colorBlend,
			DynamicState:       dynamic,
			Layout:             pipeline.Layout,
			RenderPass:         pass,
			Subpass:            0,
			BasePipelineIndex:  -1,
		},
	)
	if err != nil {
		driver.DestroyPipelineLayout(pipeline.Layout, nil)
		return Pipeline{}, errors.Wrap(err, "create graphics pipeline")
	}
	pipeline.Pipeline = pipelines[0]

	return pipeline, nil
}

func (p Pipeline) Destroy(driver core1_0.CoreDeviceDriver) {
	if p.Pipeline.Initialized() {
		driver.DestroyPipeline(p.Pipeline, nil)
	}
	if p.Layout.Initialized() {
		driver.DestroyPipelineLayout(p.Layout, nil)
	}
}
