package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/rt/core"
)

// DepthFormat is the format of the depth attachment shared by all passes.
const DepthFormat = wgpu.TextureFormatDepth24Plus

func compareFunction(t core.DepthTest) wgpu.CompareFunction {
	if t == core.DepthTestAlways {
		return wgpu.CompareFunctionAlways
	}
	return wgpu.CompareFunctionLess
}

func blendFactor(f core.BlendFactor) wgpu.BlendFactor {
	switch f {
	case core.BlendOne:
		return wgpu.BlendFactorOne
	case core.BlendSrcColor:
		return wgpu.BlendFactorSrc
	case core.BlendSrcAlpha:
		return wgpu.BlendFactorSrcAlpha
	case core.BlendOneMinusSrcAlpha:
		return wgpu.BlendFactorOneMinusSrcAlpha
	}
	return wgpu.BlendFactorZero
}

// DepthStencilState builds the depth state of a material. Stencil is unused.
func DepthStencilState(s core.RenderStates) *wgpu.DepthStencilState {
	keep := wgpu.StencilFaceState{
		Compare:     wgpu.CompareFunctionAlways,
		FailOp:      wgpu.StencilOperationKeep,
		DepthFailOp: wgpu.StencilOperationKeep,
		PassOp:      wgpu.StencilOperationKeep,
	}
	return &wgpu.DepthStencilState{
		Format:            DepthFormat,
		DepthWriteEnabled: s.DepthWrite,
		DepthCompare:      compareFunction(s.DepthTest),
		StencilFront:      keep,
		StencilBack:       keep,
		StencilReadMask:   0xFFFFFFFF,
		StencilWriteMask:  0xFFFFFFFF,
	}
}

// BlendState returns nil when the material does not blend.
func BlendState(s core.RenderStates) *wgpu.BlendState {
	if s.Blend == nil {
		return nil
	}
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: blendFactor(s.Blend.Color.Src),
			DstFactor: blendFactor(s.Blend.Color.Dst),
		},
		Alpha: wgpu.BlendComponent{
			Operation: wgpu.BlendOperationAdd,
			SrcFactor: blendFactor(s.Blend.Alpha.Src),
			DstFactor: blendFactor(s.Blend.Alpha.Dst),
		},
	}
}

func PrimitiveState(s core.RenderStates) wgpu.PrimitiveState {
	cull := wgpu.CullModeNone
	if s.Cull == core.CullBack {
		cull = wgpu.CullModeBack
	}
	return wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  cull,
	}
}
