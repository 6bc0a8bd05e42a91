package starfield

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultFixedDt is the headless frame step, one 60 Hz frame.
const DefaultFixedDt float32 = 1.0 / 60.0

// HeadlessModule runs the simulation without a window: every frame advances
// by FixedDt and the app exits after Frames frames (0 runs forever).
// Install it after TimeModule so the fixed step overrides the wall clock.
type HeadlessModule struct {
	Frames  int
	FixedDt float32
}

type HeadlessStats struct {
	Frames    int
	Instances int
	Version   uint64
	Model     mgl32.Mat4
}

type headlessConfig struct {
	frames int
	dt     time.Duration
}

func (m HeadlessModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererHeadless)

	dt := m.FixedDt
	if dt <= 0 {
		dt = DefaultFixedDt
	}
	cmd.AddResources(
		&HeadlessStats{Model: mgl32.Ident4()},
		&headlessConfig{frames: m.Frames, dt: time.Duration(float64(dt) * float64(time.Second))},
	)

	cmd.UseSystem(
		System(headlessClockSystem).
			InStage(Prelude).
			RunAlways(),
	)
	cmd.UseSystem(
		System(headlessRenderSystem).
			InStage(Render).
			InState(OnExecute(StateRunning)),
	)
	cmd.UseSystem(
		System(headlessReportSystem).
			InStage(Finale).
			InState(OnExit(StateExiting)),
	)
}

func headlessClockSystem(t *Time, cfg *headlessConfig) {
	t.Dt = cfg.dt
}

func headlessRenderSystem(cmd *Commands, cfg *headlessConfig, stats *HeadlessStats, batch *InstanceBatch) {
	stats.Frames++
	stats.Instances = batch.Len()
	stats.Version = batch.Version
	stats.Model = batch.Model

	if cfg.frames > 0 && stats.Frames >= cfg.frames {
		cmd.ChangeState(StateExiting)
	}
}

func headlessReportSystem(cmd *Commands, stats *HeadlessStats, sim *StarSimulation) {
	cmd.Logger().Infof("headless run done: %d frames, %d instances, t=%.3fs, global scale %.4f",
		stats.Frames, stats.Instances, sim.Clock.Elapsed, stats.Model.At(1, 1))
}
