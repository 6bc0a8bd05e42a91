package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera is a fixed look-at camera.
type PerspectiveCamera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32 // degrees
	Near     float32
	Far      float32
}

func NewPerspectiveCamera() *PerspectiveCamera {
	return &PerspectiveCamera{
		Position: mgl32.Vec3{0, 30, 150},
		Target:   mgl32.Vec3{0, 30, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     45,
		Near:     0.1,
		Far:      1000,
	}
}

// glToWebGPU remaps clip-space depth from [-1,1] to [0,1].
var glToWebGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

func (c *PerspectiveCamera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection uses WebGPU depth conventions. A zero aspect falls back to 1.
func (c *PerspectiveCamera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return glToWebGPU.Mul4(mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far))
}

func (c *PerspectiveCamera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

// Aspect returns width/height, or 1 for a degenerate framebuffer.
func Aspect(width, height int) float32 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
