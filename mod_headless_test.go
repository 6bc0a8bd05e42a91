package starfield

import (
	"testing"

	"github.com/gekko3d/starfield/stars"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHeadless(t *testing.T, preset ScenePreset, frames int, seed int64) (*App, *StarSimulation, *HeadlessStats) {
	t.Helper()
	app := NewAppBuilder().
		UseStates(StateRunning, StateExiting).
		UseModule(
			LoggingModule{},
			TimeModule{},
			AssetServerModule{},
			StarsModule{Preset: preset, Seed: seed},
			HeadlessModule{Frames: frames, FixedDt: 0.016},
			HudModule{Enabled: true},
		).
		Build()
	app.Run()

	sim, ok := Resource[StarSimulation](app)
	require.True(t, ok)
	stats, ok := Resource[HeadlessStats](app)
	require.True(t, ok)
	return app, sim, stats
}

func TestHeadless_RunsFixedFramesAndExits(t *testing.T) {
	app, sim, stats := runHeadless(t, SolidScene(), 60, 2024)

	assert.Equal(t, StateExiting, app.State())
	assert.Equal(t, 60, stats.Frames)
	assert.Equal(t, uint64(60), app.Frame())
	assert.Equal(t, stars.SolidStarCount, stats.Instances)
	assert.InDelta(t, 0.96, sim.Clock.Elapsed, 1e-4)
	assert.Equal(t, stars.GlobalTransform(sim.Clock.Elapsed), stats.Model)
}

func TestHeadless_Reproducible(t *testing.T) {
	_, a, _ := runHeadless(t, SolidScene(), 30, 99)
	_, b, _ := runHeadless(t, SolidScene(), 30, 99)

	assert.Equal(t, a.Field.Rotations, b.Field.Rotations)
	assert.Equal(t, a.Field.Scales, b.Field.Scales)

	_, c, _ := runHeadless(t, SolidScene(), 30, 100)
	assert.NotEqual(t, a.Field.Positions, c.Field.Positions)
}

func TestHeadless_DefaultStep(t *testing.T) {
	app := NewAppBuilder().
		UseStates(StateRunning, StateExiting).
		UseModule(TimeModule{}, StarsModule{Preset: GlowScene(), Seed: 1}, HeadlessModule{Frames: 6}).
		Build()
	app.Run()

	sim, _ := Resource[StarSimulation](app)
	assert.InDelta(t, 0.1, sim.Clock.Elapsed, 1e-4)
}
