package starfield

import (
	"github.com/gekko3d/starfield/rt/core"
	"github.com/gekko3d/starfield/stars"
	"github.com/go-gl/mathgl/mgl32"
)

// StarSimulation is the animation resource: the running simulation plus the
// inputs needed to rebuild it.
type StarSimulation struct {
	*stars.Simulation
	Preset ScenePreset
	Seed   int64
	Resets int
}

func newStarSimulation(preset ScenePreset, seed int64) *StarSimulation {
	s := &StarSimulation{Preset: preset, Seed: seed}
	s.rebuild(seed)
	return s
}

func (s *StarSimulation) rebuild(seed int64) {
	field := stars.NewField(s.Preset.StarCount, stars.NewSampler(seed), stars.FieldOptions{
		SignedRotation: s.Preset.SignedRotation,
	})
	s.Simulation = stars.NewSimulation(field, s.Preset.Policy)
	s.Simulation.AngularSpeed = s.Preset.AngularSpeed
}

// Reset samples a fresh field from the next seed and restarts the clock.
func (s *StarSimulation) Reset() {
	s.Resets++
	s.rebuild(s.Seed + int64(s.Resets))
}

// InstanceBatch is the renderer-side copy of the star arrays. Each
// SetInstances fully replaces the previous contents.
type InstanceBatch struct {
	Instances []core.StarInstance
	Model     mgl32.Mat4
	Version   uint64
}

func (b *InstanceBatch) SetInstances(positions []mgl32.Vec3, rotations []mgl32.Quat, scales []mgl32.Vec3, colors [][4]uint8) {
	b.Instances = core.PackInstances(b.Instances, positions, rotations, scales, colors)
	b.Version++
}

func (b *InstanceBatch) SetTransformation(model mgl32.Mat4) {
	b.Model = model
}

func (b *InstanceBatch) Len() int {
	return len(b.Instances)
}

// StarsModule owns the star simulation. Install it after InputModule to get
// keyboard controls (Space pauses, R resets).
type StarsModule struct {
	Preset ScenePreset
	Seed   int64
}

func (m StarsModule) Install(app *App, cmd *Commands) {
	sim := newStarSimulation(m.Preset, m.Seed)
	batch := &InstanceBatch{Model: mgl32.Ident4()}
	sim.Flush(batch)
	cmd.AddResources(sim, batch)

	cmd.Logger().Infof("scene %q: %d stars, %s rotation, %s material, seed %d",
		m.Preset.Name, m.Preset.StarCount, m.Preset.Policy, m.Preset.Material, m.Seed)

	if _, ok := Resource[Input](app); ok {
		cmd.UseSystem(
			System(starsControlSystem).
				InStage(PreUpdate).
				InState(OnExecute(StateRunning)),
		)
	}
	cmd.UseSystem(
		System(starsUpdateSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
}

func starsControlSystem(cmd *Commands, input *Input, t *Time, sim *StarSimulation, batch *InstanceBatch) {
	if input.JustPressed[KeySpace] {
		t.Paused = !t.Paused
		cmd.Logger().Infof("paused: %v", t.Paused)
	}
	if input.JustPressed[KeyR] {
		sim.Reset()
		sim.Flush(batch)
		cmd.Logger().Infof("star field reset (%d)", sim.Resets)
	}
}

// Paused frames skip Step entirely: the scale drift is applied per frame,
// not per second, so even a zero dt would keep growing the stars.
func starsUpdateSystem(t *Time, sim *StarSimulation, batch *InstanceBatch) {
	if t.Paused {
		return
	}
	sim.Step(t.DeltaSeconds())
	sim.Flush(batch)
}
