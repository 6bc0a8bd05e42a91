package starfield

import (
	"testing"
	"time"

	"github.com/gekko3d/starfield/rt/core"
	"github.com/gekko3d/starfield/stars"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallScene(count int, policy stars.RotationPolicy) ScenePreset {
	p := GlowScene()
	p.StarCount = count
	p.Policy = policy
	return p
}

func buildStarsApp(t *testing.T, preset ScenePreset, extra ...Module) *App {
	t.Helper()
	modules := append([]Module{LoggingModule{}, TimeModule{}}, extra...)
	modules = append(modules, StarsModule{Preset: preset, Seed: 7})
	return NewAppBuilder().
		UseStates(StateRunning, StateExiting).
		UseModule(modules...).
		Build()
}

func TestInstanceBatch_FullReplace(t *testing.T) {
	b := &InstanceBatch{}
	positions := []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}}
	rotations := []mgl32.Quat{mgl32.QuatIdent(), mgl32.QuatIdent()}
	scales := []mgl32.Vec3{{1, 1, 1}, {2, 2, 2}}
	colors := [][4]uint8{{255, 0, 0, 255}, {0, 255, 0, 255}}

	b.SetInstances(positions, rotations, scales, colors)
	require.Equal(t, 2, b.Len())
	assert.Equal(t, uint64(1), b.Version)
	assert.Equal(t, [4]float32{4, 5, 6, 1}, b.Instances[1].Translation)

	b.SetInstances(positions[:1], rotations[:1], scales[:1], colors[:1])
	assert.Equal(t, 1, b.Len(), "previous contents are dropped")
	assert.Equal(t, uint64(2), b.Version)

	m := mgl32.Scale3D(2, 2, 2)
	b.SetTransformation(m)
	assert.Equal(t, m, b.Model)
}

func TestInstanceBatch_IsInstanceSink(t *testing.T) {
	var _ stars.InstanceSink = &InstanceBatch{}
}

func TestStarsModule_InstallsResources(t *testing.T) {
	app := buildStarsApp(t, smallScene(16, stars.PolicyAbsolute))

	sim, ok := Resource[StarSimulation](app)
	require.True(t, ok)
	batch, ok := Resource[InstanceBatch](app)
	require.True(t, ok)

	assert.Equal(t, 16, sim.Field.Len())
	assert.Equal(t, 16, batch.Len(), "the batch is filled before the first frame")
	assert.Equal(t, stars.GlobalTransform(0), batch.Model)
}

func TestStarsModule_UpdateSystemStepsAndFlushes(t *testing.T) {
	app := buildStarsApp(t, smallScene(8, stars.PolicyAbsolute))
	sim, _ := Resource[StarSimulation](app)
	batch, _ := Resource[InstanceBatch](app)
	tm, _ := Resource[Time](app)

	app.UseSystem(System(func(t *Time) { t.Dt = 100 * time.Millisecond }).InStage(PreUpdate).RunAlways())
	for i := 0; i < 5; i++ {
		app.Step()
	}

	assert.InDelta(t, 0.5, sim.Clock.Elapsed, 1e-5)
	assert.Equal(t, uint64(6), batch.Version)
	assert.Equal(t, stars.GlobalTransform(sim.Clock.Elapsed), batch.Model)

	q := sim.Field.Rotations[3]
	assert.Equal(t, [4]float32{q.V[0], q.V[1], q.V[2], q.W}, batch.Instances[3].Rotation)

	tm.Paused = true
	scale := sim.Field.Scales[0]
	app.Step()
	assert.InDelta(t, 0.5, sim.Clock.Elapsed, 1e-5)
	assert.Equal(t, scale, sim.Field.Scales[0], "paused frames leave the stars alone")
}

func TestStarSimulation_Reset(t *testing.T) {
	sim := newStarSimulation(smallScene(32, stars.PolicyIncremental), 11)
	before := append([]mgl32.Vec3(nil), sim.Field.Positions...)
	sim.Step(0.5)

	sim.Reset()
	assert.Equal(t, 1, sim.Resets)
	assert.Zero(t, sim.Clock.Elapsed)
	assert.Equal(t, stars.PolicyIncremental, sim.Policy)
	assert.Equal(t, 32, sim.Field.Len())
	assert.NotEqual(t, before, sim.Field.Positions, "a reset samples from the next seed")

	again := newStarSimulation(smallScene(32, stars.PolicyIncremental), 12)
	assert.Equal(t, again.Field.Positions, sim.Field.Positions)
}

func TestStarSimulation_AngularSpeedFromPreset(t *testing.T) {
	p := smallScene(4, stars.PolicyAbsolute)
	p.AngularSpeed = 10
	sim := newStarSimulation(p, 1)
	assert.Equal(t, float32(10), sim.AngularSpeed)
}

func TestStarsControlSystem(t *testing.T) {
	input := &Input{}
	app := buildStarsApp(t, smallScene(8, stars.PolicyAbsolute), inputOnlyModule{input})
	sim, _ := Resource[StarSimulation](app)
	tm, _ := Resource[Time](app)

	input.setKey(KeySpace, true)
	app.Step()
	assert.True(t, tm.Paused)

	input.setKey(KeySpace, true)
	input.setKey(KeyR, true)
	app.Step()
	assert.True(t, tm.Paused, "held keys do not retrigger")
	assert.Equal(t, 1, sim.Resets)
}

// inputOnlyModule provides an Input resource without a window.
type inputOnlyModule struct {
	input *Input
}

func (m inputOnlyModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(m.input)
}

func TestStarsEndToEnd_PackedColors(t *testing.T) {
	app := buildStarsApp(t, smallScene(10, stars.PolicyAbsolute))
	sim, _ := Resource[StarSimulation](app)
	batch, _ := Resource[InstanceBatch](app)

	for i := 0; i < sim.Field.Len(); i++ {
		c := sim.Field.Color(i)
		assert.Equal(t, c, batch.Instances[i].Color)
	}
	assert.Equal(t, core.StarInstanceSize*uint64(batch.Len()), uint64(len(core.InstanceBytes(batch.Instances))))
}
