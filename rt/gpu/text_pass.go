package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/rt/core"
	"github.com/gekko3d/starfield/rt/shaders"
)

// TextPass draws screen-space glyph quads from a TextRenderer atlas. It
// shares the render pass (and its depth attachment) with the star pass but
// never tests or writes depth.
type TextPass struct {
	Device       *wgpu.Device
	Renderer     *core.TextRenderer
	Pipeline     *wgpu.RenderPipeline
	BindGroup    *wgpu.BindGroup
	Sampler      *wgpu.Sampler
	AtlasTexture *wgpu.Texture
	AtlasView    *wgpu.TextureView
	VertexBuffer *wgpu.Buffer
	VertexCount  uint32
}

func NewTextPass(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, tr *core.TextRenderer, shaderCode string) (*TextPass, error) {
	if shaderCode == "" {
		shaderCode = shaders.TextWGSL
	}
	p := &TextPass{Device: device, Renderer: tr}

	w, h := tr.Atlas.Bounds().Dx(), tr.Atlas.Bounds().Dy()
	size := wgpu.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}
	var err error
	p.AtlasTexture, err = device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Text Atlas",
		Size:          size,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}
	err = queue.WriteTexture(p.AtlasTexture.AsImageCopy(), tr.Atlas.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  uint32(tr.Atlas.Stride),
		RowsPerImage: uint32(h),
	}, &size)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.AtlasView, err = p.AtlasTexture.CreateView(nil)
	if err != nil {
		p.Release()
		return nil, err
	}

	p.Sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		p.Release()
		return nil, err
	}

	textMod, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Text Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		p.Release()
		return nil, err
	}
	defer textMod.Release()

	overlay := core.RenderStates{DepthTest: core.DepthTestAlways, Cull: core.CullNone}
	p.Pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Text Pipeline",
		Vertex: wgpu.VertexState{
			Module:     textMod,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(core.GlyphVertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					{Format: wgpu.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     textMod,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOne,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive:    PrimitiveState(overlay),
		DepthStencil: DepthStencilState(overlay),
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.Release()
		return nil, err
	}

	layout := p.Pipeline.GetBindGroupLayout(0)
	defer layout.Release()
	p.BindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: p.AtlasView},
			{Binding: 1, Sampler: p.Sampler},
		},
	})
	if err != nil {
		p.Release()
		return nil, err
	}

	return p, nil
}

// Update rebuilds the glyph quads. An empty line list hides the overlay.
func (p *TextPass) Update(queue *wgpu.Queue, lines []core.TextLine, screenW, screenH int) {
	vertices := p.Renderer.BuildVertices(lines, screenW, screenH)
	p.VertexCount = uint32(len(vertices))
	if len(vertices) == 0 {
		return
	}

	vSize := uint64(len(vertices) * int(unsafe.Sizeof(core.GlyphVertex{})))
	if p.VertexBuffer == nil || p.VertexBuffer.GetSize() < vSize {
		if p.VertexBuffer != nil {
			p.VertexBuffer.Release()
		}
		var err error
		p.VertexBuffer, err = p.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Text VB",
			Size:  vSize * 2,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			p.VertexBuffer = nil
			p.VertexCount = 0
			return
		}
	}
	queue.WriteBuffer(p.VertexBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), vSize))
}

func (p *TextPass) Draw(pass *wgpu.RenderPassEncoder) {
	if p.VertexCount == 0 || p.VertexBuffer == nil {
		return
	}
	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, p.VertexBuffer, 0, wgpu.WholeSize)
	pass.Draw(p.VertexCount, 1, 0, 0)
}

func (p *TextPass) Release() {
	if p.VertexBuffer != nil {
		p.VertexBuffer.Release()
		p.VertexBuffer = nil
	}
	if p.BindGroup != nil {
		p.BindGroup.Release()
		p.BindGroup = nil
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
		p.Pipeline = nil
	}
	if p.Sampler != nil {
		p.Sampler.Release()
		p.Sampler = nil
	}
	if p.AtlasView != nil {
		p.AtlasView.Release()
		p.AtlasView = nil
	}
	if p.AtlasTexture != nil {
		p.AtlasTexture.Release()
		p.AtlasTexture = nil
	}
}
