package starfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurfaceChange(t *testing.T) {
	in := &Input{}
	in.setSizes(800, 600, 1600, 1200, 0, 0)

	in.setSizes(800, 600, 1600, 1200, 0, 0)
	_, _, skip, resize := surfaceChange(in)
	assert.False(t, skip)
	assert.False(t, resize, "an unchanged framebuffer keeps the surface")

	in.setSizes(1024, 768, 2048, 1536, 0, 0)
	w, h, skip, resize := surfaceChange(in)
	assert.False(t, skip)
	assert.True(t, resize)
	assert.Equal(t, 2048, w)
	assert.Equal(t, 1536, h)

	in.setSizes(0, 0, 0, 0, 0, 0)
	_, _, skip, resize = surfaceChange(in)
	assert.True(t, skip, "minimized")
	assert.False(t, resize)

	in.setSizes(1024, 768, 2048, 1536, 0, 0)
	_, _, skip, resize = surfaceChange(in)
	assert.False(t, skip)
	assert.True(t, resize, "restoring reconfigures the surface")
}

func TestStarRenderer_PointerToggledByLeftClick(t *testing.T) {
	in := &Input{}
	in.setSizes(800, 600, 800, 600, 120, 40)
	r := &StarRenderer{PointerAware: true}

	assert.Equal(t, [2]float32{120, 40}, r.pointer(in))

	in.setKey(MouseButtonLeft, true)
	assert.Equal(t, [2]float32{120, 40}, r.pointer(in), "press alone does not toggle")

	in.setKey(MouseButtonLeft, false)
	assert.Equal(t, offscreenPointer, r.pointer(in))
	assert.True(t, r.PointerHidden)

	in.setKey(MouseButtonLeft, false)
	assert.Equal(t, offscreenPointer, r.pointer(in), "stays hidden until the next click")

	in.setKey(MouseButtonLeft, true)
	in.setKey(MouseButtonLeft, false)
	assert.Equal(t, [2]float32{120, 40}, r.pointer(in))
}

func TestStarRenderer_PointerIgnoredWhenNotAware(t *testing.T) {
	in := &Input{}
	in.setSizes(800, 600, 800, 600, 120, 40)
	r := &StarRenderer{}

	in.setKey(MouseButtonLeft, true)
	in.setKey(MouseButtonLeft, false)
	assert.Equal(t, offscreenPointer, r.pointer(in))
	assert.False(t, r.PointerHidden)
}
