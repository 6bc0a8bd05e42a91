package starfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_KeyEdges(t *testing.T) {
	in := &Input{}

	in.setKey(KeySpace, true)
	assert.True(t, in.Pressed[KeySpace])
	assert.True(t, in.JustPressed[KeySpace])

	in.setKey(KeySpace, true)
	assert.True(t, in.Pressed[KeySpace])
	assert.False(t, in.JustPressed[KeySpace])

	in.setKey(KeySpace, false)
	assert.False(t, in.Pressed[KeySpace])
	assert.True(t, in.JustReleased[KeySpace])

	in.setKey(KeySpace, false)
	assert.False(t, in.JustReleased[KeySpace])
}

func TestInput_PointerInFramebufferPixels(t *testing.T) {
	in := &Input{}

	in.setSizes(800, 600, 1600, 1200, 100, 50)
	assert.True(t, in.Resized)
	assert.Equal(t, 200.0, in.PointerX)
	assert.Equal(t, 100.0, in.PointerY)

	in.setSizes(800, 600, 1600, 1200, 10, 10)
	assert.False(t, in.Resized)

	in.setSizes(0, 0, 0, 0, 7, 9)
	assert.True(t, in.Resized)
	assert.Equal(t, 7.0, in.PointerX, "a minimized window keeps raw coordinates")
}

func TestInput_QuitRequested(t *testing.T) {
	in := &Input{}
	assert.False(t, in.QuitRequested(false))
	assert.True(t, in.QuitRequested(true))

	in.setKey(KeyEscape, true)
	assert.True(t, in.QuitRequested(false))
}

func TestClampWindowSize(t *testing.T) {
	w, h := ClampWindowSize(1920, 1080, 2560, 1440)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	w, h = ClampWindowSize(1920, 1080, 1366, 768)
	assert.Equal(t, 1366, w)
	assert.Equal(t, 768, h)

	w, h = ClampWindowSize(1920, 1080, 0, 0)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	w, h = ClampWindowSize(0, 0, 1280, 720)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestWindowState_TitleFollowsPause(t *testing.T) {
	s := &WindowState{windowTitle: "Rustshad"}

	_, changed := s.syncTitle(false)
	assert.False(t, changed)

	title, changed := s.syncTitle(true)
	assert.True(t, changed)
	assert.Equal(t, "Rustshad (paused)", title)

	_, changed = s.syncTitle(true)
	assert.False(t, changed, "the title is only set on transitions")

	title, changed = s.syncTitle(false)
	assert.True(t, changed)
	assert.Equal(t, "Rustshad", title)
}
