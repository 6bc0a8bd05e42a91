package starfield

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type WindowState struct {
	windowGlfw        *glfw.Window
	WindowWidth       int
	WindowHeight      int
	FramebufferWidth  int
	FramebufferHeight int
	windowTitle       string
	titlePaused       bool
}

// PlatformWindowModule creates the single shared glfw window. Install is a
// no-op when a WindowState resource already exists.
type PlatformWindowModule struct {
	MaxWidth  int
	MaxHeight int
	Title     string
}

func NewPlatformWindow(preset ScenePreset) PlatformWindowModule {
	return PlatformWindowModule{
		MaxWidth:  preset.MaxWidth,
		MaxHeight: preset.MaxHeight,
		Title:     preset.Title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}

	ws := createWindowState(m.MaxWidth, m.MaxHeight, m.Title)
	cmd.AddResources(ws)
	cmd.Logger().Infof("window %dx%d (framebuffer %dx%d) %q",
		ws.WindowWidth, ws.WindowHeight, ws.FramebufferWidth, ws.FramebufferHeight, m.Title)

	cmd.UseSystem(
		System(windowTitleSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
	cmd.UseSystem(
		System(windowDestroySystem).
			InStage(Finale).
			InState(OnExit(StateExiting)),
	)
}

// ClampWindowSize fits the preset's maximum window into the monitor. A
// non-positive monitor size means unknown and leaves the maximum as is.
func ClampWindowSize(maxWidth, maxHeight, monitorWidth, monitorHeight int) (int, int) {
	w, h := maxWidth, maxHeight
	if w <= 0 {
		w = MaxWindowWidth
	}
	if h <= 0 {
		h = MaxWindowHeight
	}
	if monitorWidth > 0 && monitorWidth < w {
		w = monitorWidth
	}
	if monitorHeight > 0 && monitorHeight < h {
		h = monitorHeight
	}
	return w, h
}

func createWindowState(maxWidth, maxHeight int, windowTitle string) *WindowState {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		panic(err)
	}

	monitorWidth, monitorHeight := 0, 0
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			monitorWidth, monitorHeight = mode.Width, mode.Height
		}
	}
	width, height := ClampWindowSize(maxWidth, maxHeight, monitorWidth, monitorHeight)

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, windowTitle, nil, nil)
	if err != nil {
		panic(err)
	}
	win.SetSizeLimits(glfw.DontCare, glfw.DontCare, width, height)

	fbWidth, fbHeight := win.GetFramebufferSize()
	return &WindowState{
		windowGlfw:        win,
		WindowWidth:       width,
		WindowHeight:      height,
		FramebufferWidth:  fbWidth,
		FramebufferHeight: fbHeight,
		windowTitle:       windowTitle,
	}
}

// windowTitleFor is the title shown for the given pause state.
func windowTitleFor(base string, paused bool) string {
	if paused {
		return base + " (paused)"
	}
	return base
}

// syncTitle reports whether the title has to change for the pause state.
func (s *WindowState) syncTitle(paused bool) (string, bool) {
	if paused == s.titlePaused {
		return "", false
	}
	s.titlePaused = paused
	return windowTitleFor(s.windowTitle, paused), true
}

func windowTitleSystem(cmd *Commands, s *WindowState) {
	t, ok := Resource[Time](cmd.app)
	if !ok || s.windowGlfw == nil {
		return
	}
	if title, changed := s.syncTitle(t.Paused); changed {
		s.windowGlfw.SetTitle(title)
	}
}

func windowDestroySystem(s *WindowState) {
	if s.windowGlfw != nil {
		s.windowGlfw.Destroy()
		s.windowGlfw = nil
	}
	glfw.Terminate()
}
