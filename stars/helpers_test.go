package stars

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

func quatNear(a, b mgl32.Quat, delta float32) bool {
	if mgl32.Abs(a.W-b.W) > delta {
		return false
	}
	for i := 0; i < 3; i++ {
		if mgl32.Abs(a.V[i]-b.V[i]) > delta {
			return false
		}
	}
	return true
}

func assertQuatNear(t *testing.T, want, got mgl32.Quat, delta float32, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, quatNear(want, got, delta), append([]any{"want %v got %v", want, got}, msgAndArgs...)...)
}
