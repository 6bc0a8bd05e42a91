package starfield

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyEscape int = iota
	KeySpace
	KeyR
	KeyF1
	MouseButtonLeft
	keyCount
)

type InputModule struct{}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	// Pointer position in framebuffer pixels, origin top-left.
	PointerX, PointerY float64

	WindowWidth, WindowHeight           int
	FramebufferWidth, FramebufferHeight int
	// Resized is set on frames where the framebuffer size changed.
	Resized bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	cmd.UseSystem(
		System(inputSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func (input *Input) setKey(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

// setSizes records the window and framebuffer sizes and maps the cursor from
// window coordinates into framebuffer pixels.
func (input *Input) setSizes(winW, winH, fbW, fbH int, cursorX, cursorY float64) {
	input.Resized = fbW != input.FramebufferWidth || fbH != input.FramebufferHeight
	input.WindowWidth, input.WindowHeight = winW, winH
	input.FramebufferWidth, input.FramebufferHeight = fbW, fbH

	input.PointerX, input.PointerY = cursorX, cursorY
	if winW > 0 && winH > 0 {
		input.PointerX = cursorX * float64(fbW) / float64(winW)
		input.PointerY = cursorY * float64(fbH) / float64(winH)
	}
}

// QuitRequested reports a close request from the window or Escape.
func (input *Input) QuitRequested(windowClosing bool) bool {
	return windowClosing || input.JustPressed[KeyEscape]
}

func inputSystem(cmd *Commands, s *WindowState, input *Input) {
	if s.windowGlfw == nil {
		return
	}
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.setKey(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	input.setKey(MouseButtonLeft, s.windowGlfw.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press)

	winW, winH := s.windowGlfw.GetSize()
	fbW, fbH := s.windowGlfw.GetFramebufferSize()
	mx, my := s.windowGlfw.GetCursorPos()
	input.setSizes(winW, winH, fbW, fbH, mx, my)
	s.WindowWidth, s.WindowHeight = winW, winH
	s.FramebufferWidth, s.FramebufferHeight = fbW, fbH

	if input.QuitRequested(s.windowGlfw.ShouldClose()) && cmd.State() == StateRunning {
		cmd.Logger().Infof("quit requested")
		cmd.ChangeState(StateExiting)
	}
}

var keyToGlfw = map[int]glfw.Key{
	KeyEscape: glfw.KeyEscape,
	KeySpace:  glfw.KeySpace,
	KeyR:      glfw.KeyR,
	KeyF1:     glfw.KeyF1,
}
