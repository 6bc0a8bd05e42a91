package stars

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// StartRadius scales the signed start position of every star.
	StartRadius float32 = 100.0

	// Star counts of the two shipped scenes.
	GlowStarCount  = 1111
	SolidStarCount = 432
)

// DefaultAxis is the rotation axis used when a star sits exactly at the origin.
var DefaultAxis = mgl32.Vec3{0, 1, 0}

type FieldOptions struct {
	// SignedRotation draws the rotation basis with random signs, which lets
	// the initial spin angle be negative.
	SignedRotation bool
}

// Field holds per-star state as parallel slices (SoA). Index order is stable
// for the lifetime of the field and all slices share the same length.
type Field struct {
	Positions []mgl32.Vec3
	Rotations []mgl32.Quat
	Scales    []mgl32.Vec3
	Colors    [][4]uint8
}

// NewField samples n stars from the sampler.
func NewField(n int, sampler *Sampler, opts FieldOptions) *Field {
	if n < 0 {
		n = 0
	}
	f := &Field{
		Positions: make([]mgl32.Vec3, n),
		Rotations: make([]mgl32.Quat, n),
		Scales:    make([]mgl32.Vec3, n),
		Colors:    make([][4]uint8, n),
	}

	for i := 0; i < n; i++ {
		start := sampler.Vec3(true)
		colorBasis := sampler.Vec3(false)
		rotationBasis := sampler.Vec3(opts.SignedRotation)
		scaleBasis := sampler.Vec3(false)

		f.Positions[i] = start.Mul(StartRadius)
		f.Colors[i] = colorFromBasis(colorBasis)
		f.Rotations[i] = mgl32.QuatRotate(mgl32.DegToRad(rotationBasis.X()*360.0), f.Axis(i))
		f.Scales[i] = mgl32.Vec3{scaleBasis.X(), scaleBasis.X(), scaleBasis.X()}
	}

	return f
}

func colorFromBasis(c mgl32.Vec3) [4]uint8 {
	return [4]uint8{
		uint8(255.0 * c.X()),
		uint8(100.0 * c.Y()),
		80,
		255,
	}
}

func (f *Field) Len() int {
	return len(f.Positions)
}

// Axis is the normalized position of star i, the axis it spins around.
func (f *Field) Axis(i int) mgl32.Vec3 {
	p := f.Positions[i]
	if p.Len() == 0 {
		return DefaultAxis
	}
	return p.Normalize()
}

// Color returns the RGBA color of star i in the 0..1 range.
func (f *Field) Color(i int) [4]float32 {
	c := f.Colors[i]
	return [4]float32{
		float32(c[0]) / 255.0,
		float32(c[1]) / 255.0,
		float32(c[2]) / 255.0,
		float32(c[3]) / 255.0,
	}
}
