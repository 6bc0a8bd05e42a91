package stars

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField_ParallelArrays(t *testing.T) {
	for _, n := range []int{0, 1, SolidStarCount, GlowStarCount} {
		f := NewField(n, NewSampler(1), FieldOptions{})
		assert.Equal(t, n, f.Len())
		assert.Len(t, f.Rotations, n)
		assert.Len(t, f.Scales, n)
		assert.Len(t, f.Colors, n)
	}
}

func TestNewField_NegativeCountIsEmpty(t *testing.T) {
	f := NewField(-5, NewSampler(1), FieldOptions{})
	assert.Equal(t, 0, f.Len())
}

func TestNewField_PositionsScaledByRadius(t *testing.T) {
	f := NewField(SolidStarCount, NewSampler(5), FieldOptions{})
	for i, p := range f.Positions {
		for axis := 0; axis < 3; axis++ {
			assert.Less(t, p[axis], StartRadius, "star %d", i)
			assert.Greater(t, p[axis], -StartRadius, "star %d", i)
		}
	}
}

func TestNewField_RotationAroundPositionAxis(t *testing.T) {
	f := NewField(200, NewSampler(9), FieldOptions{SignedRotation: true})
	for i := 0; i < f.Len(); i++ {
		axis := f.Axis(i)
		q := f.Rotations[i]

		assert.InDelta(t, 1.0, q.Len(), 1e-4, "star %d not unit", i)
		assertVecNear(t, axis, q.Rotate(axis), 1e-4, "star %d axis moved", i)
		assert.InDelta(t, 0.0, q.V.Cross(axis).Len(), 1e-4, "star %d axis mismatch", i)
	}
}

func TestNewField_UniformScaleAndColor(t *testing.T) {
	f := NewField(100, NewSampler(4), FieldOptions{})
	for i := 0; i < f.Len(); i++ {
		s := f.Scales[i]
		assert.Equal(t, s[0], s[1])
		assert.Equal(t, s[0], s[2])
		assert.GreaterOrEqual(t, s[0], float32(0))
		assert.Less(t, s[0], float32(1))

		c := f.Colors[i]
		assert.LessOrEqual(t, c[1], uint8(100))
		assert.Equal(t, uint8(80), c[2])
		assert.Equal(t, uint8(255), c[3])
	}
}

func TestNewField_DrawOrderAndBasisComponents(t *testing.T) {
	for _, signed := range []bool{false, true} {
		f := NewField(8, NewSampler(77), FieldOptions{SignedRotation: signed})
		replay := NewSampler(77)

		for i := 0; i < f.Len(); i++ {
			start := replay.Vec3(true)
			colorBasis := replay.Vec3(false)
			rotationBasis := replay.Vec3(signed)
			scaleBasis := replay.Vec3(false)

			assert.Equal(t, start.Mul(StartRadius), f.Positions[i], "star %d position", i)

			wantColor := [4]uint8{uint8(255 * colorBasis.X()), uint8(100 * colorBasis.Y()), 80, 255}
			assert.Equal(t, wantColor, f.Colors[i], "star %d color", i)

			axis := start.Normalize()
			wantRot := mgl32.QuatRotate(mgl32.DegToRad(rotationBasis.X()*360), axis)
			assertQuatNear(t, wantRot, f.Rotations[i], 1e-5, "star %d rotation", i)

			s := scaleBasis.X()
			assert.Equal(t, mgl32.Vec3{s, s, s}, f.Scales[i], "star %d scale", i)
		}
	}
}

func TestNewField_Deterministic(t *testing.T) {
	a := NewField(50, NewSampler(123), FieldOptions{})
	b := NewField(50, NewSampler(123), FieldOptions{})
	assert.Equal(t, a, b)
}

func TestField_AxisFallsBackAtOrigin(t *testing.T) {
	f := &Field{
		Positions: []mgl32.Vec3{{0, 0, 0}, {0, 0, 5}},
		Rotations: []mgl32.Quat{mgl32.QuatIdent(), mgl32.QuatIdent()},
		Scales:    []mgl32.Vec3{{1, 1, 1}, {1, 1, 1}},
		Colors:    [][4]uint8{{0, 0, 80, 255}, {0, 0, 80, 255}},
	}

	assert.Equal(t, DefaultAxis, f.Axis(0))
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, f.Axis(1))

	sim := NewSimulation(f, PolicyAbsolute)
	sim.Step(0.5)
	require.False(t, math.IsNaN(float64(f.Rotations[0].W)), "NaN rotation at origin")
	assertVecNear(t, DefaultAxis, f.Rotations[0].Rotate(DefaultAxis), 1e-5)
}

func TestField_Color(t *testing.T) {
	f := &Field{Colors: [][4]uint8{{255, 51, 80, 255}}}
	c := f.Color(0)
	assert.InDelta(t, 1.0, c[0], 1e-6)
	assert.InDelta(t, 0.2, c[1], 1e-6)
	assert.InDelta(t, 80.0/255.0, c[2], 1e-6)
	assert.InDelta(t, 1.0, c[3], 1e-6)
}
