package core

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarInstance_Layout(t *testing.T) {
	assert.Equal(t, uint64(64), StarInstanceSize)
}

func TestPackInstances(t *testing.T) {
	q := mgl32.QuatRotate(1.0, mgl32.Vec3{0, 1, 0})
	packed := PackInstances(nil,
		[]mgl32.Vec3{{1, 2, 3}},
		[]mgl32.Quat{q},
		[]mgl32.Vec3{{0.5, 0.5, 0.5}},
		[][4]uint8{{255, 0, 80, 255}},
	)

	require.Len(t, packed, 1)
	assert.Equal(t, [4]float32{1, 2, 3, 1}, packed[0].Translation)
	assert.Equal(t, [4]float32{q.V[0], q.V[1], q.V[2], q.W}, packed[0].Rotation)
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 0}, packed[0].Scale)
	assert.InDelta(t, 1.0, packed[0].Color[0], 1e-6)
	assert.InDelta(t, 80.0/255.0, packed[0].Color[2], 1e-6)
}

func TestPackInstances_ReusesAndReplaces(t *testing.T) {
	positions := make([]mgl32.Vec3, 8)
	rotations := make([]mgl32.Quat, 8)
	scales := make([]mgl32.Vec3, 8)
	colors := make([][4]uint8, 8)

	first := PackInstances(nil, positions, rotations, scales, colors)
	require.Len(t, first, 8)

	second := PackInstances(first, positions[:3], rotations[:3], scales[:3], colors[:3])
	assert.Len(t, second, 3)
	assert.Equal(t, &first[0], &second[0])
}

func TestInstanceBytes(t *testing.T) {
	assert.Nil(t, InstanceBytes(nil))

	packed := PackInstances(nil,
		[]mgl32.Vec3{{7, 8, 9}, {1, 1, 1}},
		[]mgl32.Quat{mgl32.QuatIdent(), mgl32.QuatIdent()},
		[]mgl32.Vec3{{1, 1, 1}, {2, 2, 2}},
		[][4]uint8{{0, 0, 0, 255}, {0, 0, 0, 255}},
	)
	raw := InstanceBytes(packed)
	require.Len(t, raw, 128)

	assert.Equal(t, float32(7), math.Float32frombits(binary.LittleEndian.Uint32(raw[0:4])))
	// Second instance scale.x sits at 64 + 32.
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(raw[96:100])))
}
