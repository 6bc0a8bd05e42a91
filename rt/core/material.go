package core

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ShadingMode selects the fragment path in star.wgsl.
type ShadingMode uint32

const (
	ShadingGlow ShadingMode = iota
	ShadingSolid
)

// StarUniformsSize is the byte size of the Uniforms struct in star.wgsl.
const StarUniformsSize = 192

// StarUniformNames lists the Uniforms members of star.wgsl in declaration order.
var StarUniformNames = []string{"viewProj", "model", "cameraPosition", "uColor", "uIResolution", "uTime", "mode"}

// StarUniforms mirrors the WGSL Uniforms struct (192 bytes, 16-byte aligned).
type StarUniforms struct {
	ViewProj       mgl32.Mat4 // offset 0
	Model          mgl32.Mat4 // offset 64
	CameraPosition [4]float32 // offset 128, xyz used
	Color          [4]float32 // offset 144, uColor
	Resolution     [4]float32 // offset 160, uIResolution: xy framebuffer, zw pointer
	Time           float32    // offset 176, uTime
	Mode           ShadingMode
}

func (u *StarUniforms) Size() int {
	return StarUniformsSize
}

// Marshal serializes the uniforms little endian, padded to StarUniformsSize.
func (u *StarUniforms) Marshal() []byte {
	buf := make([]byte, StarUniformsSize)
	off := 0
	putFloats := func(vals []float32) {
		for _, v := range vals {
			binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
			off += 4
		}
	}
	putFloats(u.ViewProj[:])
	putFloats(u.Model[:])
	putFloats(u.CameraPosition[:])
	putFloats(u.Color[:])
	putFloats(u.Resolution[:])
	putFloats([]float32{u.Time})
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(u.Mode))
	return buf
}

type DepthTest int

const (
	DepthTestLess DepthTest = iota
	DepthTestAlways
)

type CullMode int

const (
	CullNone CullMode = iota
	CullBack
)

type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
)

// BlendComponent is src*Src + dst*Dst (the operation is always add).
type BlendComponent struct {
	Src BlendFactor
	Dst BlendFactor
}

type Blend struct {
	Color BlendComponent
	Alpha BlendComponent
}

// RenderStates is the fixed pipeline state of a material.
type RenderStates struct {
	DepthTest  DepthTest
	DepthWrite bool
	Cull       CullMode
	Blend      *Blend // nil disables blending
}

// TransparentStates adds star color onto the framebuffer for a glow look.
// Depth is written but never rejects fragments.
func TransparentStates() RenderStates {
	return RenderStates{
		DepthTest:  DepthTestAlways,
		DepthWrite: true,
		Cull:       CullBack,
		Blend: &Blend{
			Color: BlendComponent{Src: BlendSrcColor, Dst: BlendOne},
			Alpha: BlendComponent{Src: BlendZero, Dst: BlendOne},
		},
	}
}

func OpaqueStates() RenderStates {
	return RenderStates{
		DepthTest:  DepthTestLess,
		DepthWrite: true,
		Cull:       CullBack,
	}
}

type MaterialKind int

const (
	MaterialTransparent MaterialKind = iota
	MaterialOpaque
)

func (k MaterialKind) String() string {
	switch k {
	case MaterialTransparent:
		return "transparent"
	case MaterialOpaque:
		return "opaque"
	}
	return fmt.Sprintf("MaterialKind(%d)", int(k))
}

func (k MaterialKind) MarshalText() ([]byte, error) {
	switch k {
	case MaterialTransparent, MaterialOpaque:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown material kind %d", int(k))
}

func (k *MaterialKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "transparent":
		*k = MaterialTransparent
	case "opaque":
		*k = MaterialOpaque
	default:
		return fmt.Errorf("unknown material kind %q", string(text))
	}
	return nil
}

func (k MaterialKind) RenderStates() RenderStates {
	if k == MaterialOpaque {
		return OpaqueStates()
	}
	return TransparentStates()
}

func (k MaterialKind) Shading() ShadingMode {
	if k == MaterialOpaque {
		return ShadingSolid
	}
	return ShadingGlow
}

// StarMaterial carries the per-frame inputs of the star shader.
type StarMaterial struct {
	Kind  MaterialKind
	Time  float32
	Color [4]float32
}

// Uniforms assembles the uniform block for one frame.
func (m *StarMaterial) Uniforms(cam *PerspectiveCamera, model mgl32.Mat4, fbWidth, fbHeight int, pointer [2]float32) StarUniforms {
	p := cam.Position
	return StarUniforms{
		ViewProj:       cam.ViewProjection(Aspect(fbWidth, fbHeight)),
		Model:          model,
		CameraPosition: [4]float32{p[0], p[1], p[2], 1},
		Color:          m.Color,
		Resolution:     [4]float32{float32(fbWidth), float32(fbHeight), pointer[0], pointer[1]},
		Time:           m.Time,
		Mode:           m.Kind.Shading(),
	}
}
