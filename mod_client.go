package starfield

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/starfield/rt/core"
	"github.com/gekko3d/starfield/rt/gpu"
)

// offscreenPointer keeps the solid shader's pointer highlight out of view.
var offscreenPointer = [2]float32{-1e6, -1e6}

// ClientModule renders the star batch into the shared window with WebGPU.
// Install it after StarsModule and AssetServerModule.
type ClientModule struct {
	Preset ScenePreset
}

type StarRenderer struct {
	Pass          *gpu.StarPass
	Camera        *core.PerspectiveCamera
	Material      core.StarMaterial
	ClearColor    wgpu.Color
	PointerAware  bool
	// PointerHidden is toggled by a left click while PointerAware is set.
	PointerHidden bool
	skipFrame     bool
}

type overlayPass interface {
	Draw(pass *wgpu.RenderPassEncoder)
	Release()
}

// RenderOverlays are drawn after the stars inside the same render pass.
type RenderOverlays struct {
	passes []overlayPass
}

func (o *RenderOverlays) Add(p overlayPass) {
	o.passes = append(o.passes, p)
}

func (mod ClientModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererWGPU)
	ws := ensureWindowResource(app, cmd, mod.Preset)
	if _, ok := Resource[Input](app); !ok {
		InputModule{}.Install(app, cmd)
	}
	// The surface starts at the window's size, so the first poll is not a resize.
	input, _ := Resource[Input](app)
	input.setSizes(ws.WindowWidth, ws.WindowHeight, ws.FramebufferWidth, ws.FramebufferHeight, 0, 0)

	server, ok := Resource[AssetServer](app)
	if !ok {
		panic("ClientModule requires AssetServerModule")
	}
	assets, _ := Resource[StarAssets](app)
	mesh, ok := server.Mesh(assets.Cube)
	if !ok {
		panic(fmt.Sprintf("cube mesh %s not loaded", assets.Cube))
	}
	shader, ok := server.Shader(assets.StarShader)
	if !ok {
		panic(fmt.Sprintf("star shader %s not loaded", assets.StarShader))
	}

	gs := createGpuState(ws)
	states := mod.Preset.Material.RenderStates()
	pass, err := gpu.NewStarPass(gs.device, gs.surfaceConfig.Format, mesh, shader.Listing, states)
	if err != nil {
		panic(fmt.Sprintf("star pass (%s): %v", shader.Name, err))
	}
	if err := pass.ResizeDepth(gs.surfaceConfig.Width, gs.surfaceConfig.Height); err != nil {
		panic(fmt.Sprintf("depth texture: %v", err))
	}

	c := mod.Preset.ClearColor
	renderer := &StarRenderer{
		Pass:   pass,
		Camera: mod.Preset.Camera.PerspectiveCamera(),
		Material: core.StarMaterial{
			Kind:  mod.Preset.Material,
			Color: mod.Preset.FlatColor,
		},
		ClearColor:   wgpu.Color{R: c[0], G: c[1], B: c[2], A: c[3]},
		PointerAware: mod.Preset.PointerAware,
	}
	cmd.AddResources(gs, renderer, &RenderOverlays{})
	cmd.Logger().Infof("wgpu renderer ready: %s material, surface %dx%d",
		mod.Preset.Material, gs.surfaceConfig.Width, gs.surfaceConfig.Height)

	cmd.UseSystem(
		System(clientResizeSystem).
			InStage(PreRender).
			RunAlways(),
	)
	cmd.UseSystem(
		System(clientRenderSystem).
			InStage(Render).
			InState(OnExecute(StateRunning)),
	)
	cmd.UseSystem(
		System(clientReleaseSystem).
			InStage(Render).
			InState(OnExit(StateExiting)),
	)
}

// surfaceChange reports the framebuffer size to render at, whether the frame
// has to be skipped and whether the surface must be reconfigured.
func surfaceChange(input *Input) (w, h int, skip, resize bool) {
	w, h = input.FramebufferWidth, input.FramebufferHeight
	skip = w <= 0 || h <= 0
	return w, h, skip, !skip && input.Resized
}

func clientResizeSystem(cmd *Commands, input *Input, gs *GpuState, r *StarRenderer) {
	fbW, fbH, skip, resize := surfaceChange(input)
	r.skipFrame = skip
	if !resize {
		return
	}
	if !gs.resize(fbW, fbH) {
		return
	}
	if err := r.Pass.ResizeDepth(uint32(fbW), uint32(fbH)); err != nil {
		cmd.Logger().Errorf("resize depth: %v", err)
		r.skipFrame = true
		return
	}
	cmd.Logger().Debugf("surface resized to %dx%d", fbW, fbH)
}

// pointer returns the pointer uniform for this frame. A left click toggles
// the highlight of pointer-aware scenes.
func (r *StarRenderer) pointer(input *Input) [2]float32 {
	if !r.PointerAware {
		return offscreenPointer
	}
	if input.JustReleased[MouseButtonLeft] {
		r.PointerHidden = !r.PointerHidden
	}
	if r.PointerHidden {
		return offscreenPointer
	}
	return [2]float32{float32(input.PointerX), float32(input.PointerY)}
}

func clientRenderSystem(cmd *Commands, gs *GpuState, r *StarRenderer, sim *StarSimulation, batch *InstanceBatch, input *Input, overlays *RenderOverlays) {
	if r.skipFrame {
		return
	}
	w, h := gs.Size()

	r.Material.Time = sim.Clock.Elapsed
	uniforms := r.Material.Uniforms(r.Camera, batch.Model, w, h, r.pointer(input))
	if err := r.Pass.Upload(gs.queue, batch.Instances, &uniforms); err != nil {
		cmd.Logger().Errorf("upload failed: %v", err)
		return
	}

	nextTexture, err := gs.surface.GetCurrentTexture()
	if err != nil {
		cmd.Logger().Errorf("GetCurrentTexture failed: %v", err)
		return
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		cmd.Logger().Errorf("CreateView failed: %v", err)
		return
	}
	defer view.Release()

	encoder, err := gs.device.CreateCommandEncoder(nil)
	if err != nil {
		cmd.Logger().Errorf("CreateCommandEncoder failed: %v", err)
		return
	}
	defer encoder.Release()

	rPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: r.ClearColor,
		}},
		DepthStencilAttachment: r.Pass.DepthAttachment(),
	})
	defer rPass.Release()
	r.Pass.Draw(rPass)
	for _, o := range overlays.passes {
		o.Draw(rPass)
	}
	if err := rPass.End(); err != nil {
		cmd.Logger().Errorf("render pass End failed: %v", err)
		return
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		cmd.Logger().Errorf("encoder Finish failed: %v", err)
		return
	}
	defer cmdBuffer.Release()

	gs.queue.Submit(cmdBuffer)
	gs.surface.Present()
}

func clientReleaseSystem(gs *GpuState, r *StarRenderer, overlays *RenderOverlays) {
	for _, o := range overlays.passes {
		o.Release()
	}
	overlays.passes = nil
	r.Pass.Release()
	gs.release()
}
