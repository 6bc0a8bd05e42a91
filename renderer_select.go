package starfield

import (
	"fmt"
)

// RendererName identifies a concrete renderer module.
type RendererName string

const (
	RendererWGPU     RendererName = "wgpu"
	RendererHeadless RendererName = "headless"
)

// Renderer is a Module that draws the star batch.
type Renderer interface {
	Module
}

// NewRenderer picks the renderer module for a scene. frames bounds a headless
// run; 0 runs until the process is stopped.
func NewRenderer(name RendererName, preset ScenePreset, frames int) (Renderer, error) {
	switch name {
	case RendererWGPU:
		return ClientModule{Preset: preset}, nil
	case RendererHeadless:
		if frames < 0 {
			return nil, fmt.Errorf("headless frame count must not be negative, got %d", frames)
		}
		return HeadlessModule{Frames: frames, FixedDt: DefaultFixedDt}, nil
	}
	return nil, fmt.Errorf("unknown renderer %q", name)
}

// ensureWindowResource creates the shared window if no module did yet.
func ensureWindowResource(app *App, cmd *Commands, preset ScenePreset) *WindowState {
	if ws, ok := Resource[WindowState](app); ok {
		return ws
	}
	NewPlatformWindow(preset).Install(app, cmd)
	ws, _ := Resource[WindowState](app)
	return ws
}
