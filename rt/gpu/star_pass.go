package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/rt/core"
	"github.com/gekko3d/starfield/rt/shaders"
)

// StarPass draws one mesh many times, one instance per star.
type StarPass struct {
	Device         *wgpu.Device
	Pipeline       *wgpu.RenderPipeline
	BindGroup      *wgpu.BindGroup
	VertexBuffer   *wgpu.Buffer
	IndexBuffer    *wgpu.Buffer
	IndexCount     uint32
	UniformBuffer  *wgpu.Buffer
	InstanceBuffer *wgpu.Buffer
	InstanceCap    uint32
	InstanceCount  uint32
	DepthTexture   *wgpu.Texture
	DepthView      *wgpu.TextureView
}

// NewStarPass builds the pipeline for shaderCode, which must follow the
// star.wgsl interface. An empty shaderCode uses the embedded shader.
func NewStarPass(device *wgpu.Device, format wgpu.TextureFormat, mesh *core.Mesh, shaderCode string, states core.RenderStates) (*StarPass, error) {
	if shaderCode == "" {
		shaderCode = shaders.StarWGSL
	}
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "StarShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		return nil, err
	}
	defer shaderModule.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "StarPipeline",
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(core.MeshVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
				{
					ArrayStride: core.StarInstanceSize,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 3},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 4},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 48, ShaderLocation: 5},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					Blend:     BlendState(states),
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive:    PrimitiveState(states),
		DepthStencil: DepthStencilState(states),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	p := &StarPass{
		Device:     device,
		Pipeline:   pipeline,
		IndexCount: mesh.IndexCount(),
	}

	p.VertexBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "StarMeshVertexBuffer",
		Contents: wgpu.ToBytes(mesh.Vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		p.Release()
		return nil, err
	}
	p.IndexBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "StarMeshIndexBuffer",
		Contents: wgpu.ToBytes(mesh.Indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		p.Release()
		return nil, err
	}

	p.UniformBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "StarUniformBuffer",
		Size:  core.StarUniformsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		p.Release()
		return nil, err
	}

	layout := pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "StarUniformBG",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.UniformBuffer, Size: core.StarUniformsSize},
		},
	})
	if err != nil {
		p.Release()
		return nil, err
	}

	return p, nil
}

// ResizeDepth recreates the depth attachment for a new framebuffer size.
func (p *StarPass) ResizeDepth(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("invalid depth size %dx%d", width, height)
	}
	p.releaseDepth()

	var err error
	p.DepthTexture, err = p.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "StarDepth",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return err
	}
	p.DepthView, err = p.DepthTexture.CreateView(nil)
	return err
}

func (p *StarPass) DepthAttachment() *wgpu.RenderPassDepthStencilAttachment {
	if p.DepthView == nil {
		return nil
	}
	return &wgpu.RenderPassDepthStencilAttachment{
		View:            p.DepthView,
		DepthLoadOp:     wgpu.LoadOpClear,
		DepthStoreOp:    wgpu.StoreOpStore,
		DepthClearValue: 1.0,
	}
}

// instanceHeadroom is the slack added whenever the instance buffer grows.
const instanceHeadroom = 128

// instanceCapacity returns the buffer capacity needed for count instances
// and whether the current buffer must be replaced.
func instanceCapacity(current, count uint32) (uint32, bool) {
	if count <= current {
		return current, false
	}
	return count + instanceHeadroom, true
}

// Upload writes this frame's instances and uniforms. The instance buffer
// grows with some margin and is never shrunk. On error nothing is drawn.
func (p *StarPass) Upload(queue *wgpu.Queue, instances []core.StarInstance, uniforms *core.StarUniforms) error {
	p.InstanceCount = 0
	if err := queue.WriteBuffer(p.UniformBuffer, 0, uniforms.Marshal()); err != nil {
		return fmt.Errorf("star uniforms: %w", err)
	}

	count := uint32(len(instances))
	if count == 0 {
		return nil
	}

	current := p.InstanceCap
	if p.InstanceBuffer == nil {
		current = 0
	}
	if capacity, grow := instanceCapacity(current, count); grow {
		if p.InstanceBuffer != nil {
			p.InstanceBuffer.Release()
			p.InstanceBuffer = nil
			p.InstanceCap = 0
		}
		buf, err := p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "StarInstanceBuffer",
			Size:  uint64(capacity) * core.StarInstanceSize,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("star instance buffer (%d instances): %w", capacity, err)
		}
		p.InstanceBuffer = buf
		p.InstanceCap = capacity
	}

	if err := queue.WriteBuffer(p.InstanceBuffer, 0, core.InstanceBytes(instances)); err != nil {
		return fmt.Errorf("star instances: %w", err)
	}
	p.InstanceCount = count
	return nil
}

func (p *StarPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.InstanceBuffer == nil || p.InstanceCount == 0 {
		return
	}

	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, p.InstanceBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(p.IndexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(p.IndexCount, p.InstanceCount, 0, 0, 0)
}

func (p *StarPass) releaseDepth() {
	if p.DepthView != nil {
		p.DepthView.Release()
		p.DepthView = nil
	}
	if p.DepthTexture != nil {
		p.DepthTexture.Release()
		p.DepthTexture = nil
	}
}

func (p *StarPass) Release() {
	p.releaseDepth()
	for _, b := range []*wgpu.Buffer{p.VertexBuffer, p.IndexBuffer, p.UniformBuffer, p.InstanceBuffer} {
		if b != nil {
			b.Release()
		}
	}
	p.VertexBuffer, p.IndexBuffer, p.UniformBuffer, p.InstanceBuffer = nil, nil, nil, nil
	if p.BindGroup != nil {
		p.BindGroup.Release()
		p.BindGroup = nil
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
		p.Pipeline = nil
	}
}
