package starfield

import (
	"fmt"
	"strings"

	"github.com/gekko3d/starfield/rt/core"
	"github.com/gekko3d/starfield/rt/gpu"
)

var (
	hudColor   = [4]float32{1, 1, 0, 1}
	badgeColor = [4]float32{1, 0.3, 0.2, 1}
)

const hudMargin = 10

// HudModule shows frame rate and animation stats in the top-left corner.
// F1 toggles it. Install after the renderer; without a GPU it only keeps
// the text lines up to date.
type HudModule struct {
	Enabled  bool
	FontSize float64
}

type HudState struct {
	Enabled bool
	FPS     float32
	Lines   []core.TextLine

	frames  int
	elapsed float32
	text    *core.TextRenderer
	pass    *gpu.TextPass
}

// updateFPS averages over half-second windows.
func (h *HudState) updateFPS(dt float32) {
	h.frames++
	h.elapsed += dt
	if h.elapsed >= 0.5 {
		h.FPS = float32(h.frames) / h.elapsed
		h.frames = 0
		h.elapsed = 0
	}
}

// printable replaces runes the glyph atlas cannot draw.
func printable(tr *core.TextRenderer, text string) string {
	if tr == nil {
		return text
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == ' ' || tr.HasGlyph(r) {
			return r
		}
		return '?'
	}, text)
}

// hudLines lays out the stats block in the top-left corner. The PAUSED badge
// sits in the top-right corner, or under the stats when the screen width is
// unknown.
func hudLines(fps float32, t *Time, sim *StarSimulation, tr *core.TextRenderer, screenW int) []core.TextLine {
	text := fmt.Sprintf("FPS %.1f\nt %.2fs\nstars %d (%s)\nscene %s",
		fps, sim.Clock.Elapsed, sim.Field.Len(), sim.Policy, printable(tr, sim.Preset.Name))
	lines := []core.TextLine{{
		Text:     text,
		Position: [2]float32{hudMargin, hudMargin},
		Scale:    1,
		Color:    hudColor,
	}}
	if !t.Paused {
		return lines
	}

	const badge = "PAUSED"
	badgeW, _ := tr.MeasureText(badge, 1)
	pos := [2]float32{float32(screenW) - badgeW - hudMargin, hudMargin}
	if screenW <= 0 || pos[0] < hudMargin {
		_, statsH := tr.MeasureText(text, 1)
		pos = [2]float32{hudMargin, 2*hudMargin + statsH}
	}
	return append(lines, core.TextLine{
		Text:     badge,
		Position: pos,
		Scale:    1,
		Color:    badgeColor,
	})
}

func (m HudModule) Install(app *App, cmd *Commands) {
	state := &HudState{Enabled: m.Enabled}
	cmd.AddResources(state)

	cmd.UseSystem(
		System(hudSystem).
			InStage(PostUpdate).
			InState(OnExecute(StateRunning)),
	)

	size := m.FontSize
	if size <= 0 {
		size = 18
	}
	tr, err := core.NewDefaultTextRenderer(size)
	if err != nil {
		cmd.Logger().Warnf("HUD disabled, text renderer: %v", err)
		return
	}
	state.text = tr

	gs, ok := Resource[GpuState](app)
	if !ok {
		return
	}
	listing := ""
	if server, ok := Resource[AssetServer](app); ok {
		if assets, ok := Resource[StarAssets](app); ok {
			if shader, ok := server.Shader(assets.TextShader); ok {
				listing = shader.Listing
			}
		}
	}
	state.pass, err = gpu.NewTextPass(gs.device, gs.queue, gs.surfaceConfig.Format, tr, listing)
	if err != nil {
		cmd.Logger().Warnf("HUD disabled, text pass: %v", err)
		return
	}
	overlays, _ := Resource[RenderOverlays](app)
	overlays.Add(state.pass)

	cmd.UseSystem(
		System(hudUploadSystem).
			InStage(PreRender).
			InState(OnExecute(StateRunning)),
	)
}

func hudSystem(cmd *Commands, t *Time, sim *StarSimulation, hud *HudState) {
	screenW := 0
	if input, ok := Resource[Input](cmd.app); ok {
		if input.JustPressed[KeyF1] {
			hud.Enabled = !hud.Enabled
		}
		screenW = input.FramebufferWidth
	}

	hud.updateFPS(float32(t.Dt.Seconds()))
	if !hud.Enabled {
		hud.Lines = hud.Lines[:0]
		return
	}
	hud.Lines = hudLines(hud.FPS, t, sim, hud.text, screenW)
}

func hudUploadSystem(gs *GpuState, hud *HudState) {
	w, h := gs.Size()
	hud.pass.Update(gs.queue, hud.Lines, w, h)
}
