package stars

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RotationPolicy selects how star rotations evolve over time.
type RotationPolicy int

const (
	// PolicyAbsolute recomputes every rotation from the elapsed time alone.
	PolicyAbsolute RotationPolicy = iota
	// PolicyIncremental composes a per-frame increment onto the previous
	// rotation. The result depends on the whole frame history.
	PolicyIncremental
)

const (
	// AbsoluteDegreesPerSecond is the spin rate of PolicyAbsolute.
	AbsoluteDegreesPerSecond float32 = 100.0
	// IncrementDegreesPerSecond scales the elapsed time into the per-frame
	// increment of PolicyIncremental (t/2 degrees).
	IncrementDegreesPerSecond float32 = 0.5

	// ScaleDriftDivisor damps the cos(2t) scale pulse added every frame.
	ScaleDriftDivisor float32 = 333.0
)

func (p RotationPolicy) String() string {
	switch p {
	case PolicyAbsolute:
		return "absolute"
	case PolicyIncremental:
		return "incremental"
	default:
		return fmt.Sprintf("RotationPolicy(%d)", int(p))
	}
}

func ParsePolicy(name string) (RotationPolicy, error) {
	switch name {
	case "absolute":
		return PolicyAbsolute, nil
	case "incremental":
		return PolicyIncremental, nil
	}
	return 0, fmt.Errorf("unknown rotation policy %q", name)
}

func (p RotationPolicy) MarshalText() ([]byte, error) {
	switch p {
	case PolicyAbsolute, PolicyIncremental:
		return []byte(p.String()), nil
	}
	return nil, fmt.Errorf("unknown rotation policy %d", int(p))
}

func (p *RotationPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// InstanceSink receives the star arrays and the batch transform once per frame.
// Implementations replace their previous contents entirely.
type InstanceSink interface {
	SetInstances(positions []mgl32.Vec3, rotations []mgl32.Quat, scales []mgl32.Vec3, colors [][4]uint8)
	SetTransformation(model mgl32.Mat4)
}

// Simulation is the animation state owned by the frame driver.
type Simulation struct {
	Field  *Field
	Clock  Clock
	Policy RotationPolicy

	// AngularSpeed overrides the policy's default rate in degrees per second
	// of elapsed time. Zero keeps the default.
	AngularSpeed float32

	// Model is the transform applied to the whole batch, updated by Step.
	Model mgl32.Mat4
}

func NewSimulation(field *Field, policy RotationPolicy) *Simulation {
	return &Simulation{
		Field:  field,
		Policy: policy,
		Model:  GlobalTransform(0),
	}
}

func (s *Simulation) angularSpeed() float32 {
	if s.AngularSpeed != 0 {
		return s.AngularSpeed
	}
	if s.Policy == PolicyIncremental {
		return IncrementDegreesPerSecond
	}
	return AbsoluteDegreesPerSecond
}

// Step advances the clock by dt seconds and updates every star in place.
func (s *Simulation) Step(dt float32) {
	t := s.Clock.Advance(dt)
	f := s.Field
	angle := mgl32.DegToRad(t * s.angularSpeed())
	drift := ScaleDrift(t)

	for i := 0; i < f.Len(); i++ {
		axis := f.Axis(i)
		switch s.Policy {
		case PolicyIncremental:
			f.Rotations[i] = mgl32.QuatRotate(angle, axis).Mul(f.Rotations[i]).Normalize()
		default:
			f.Rotations[i] = mgl32.QuatRotate(angle, axis)
		}

		sc := f.Scales[i]
		f.Scales[i] = mgl32.Vec3{sc[0] + drift, sc[1] + drift, sc[2] + drift}
	}

	s.Model = GlobalTransform(t)
}

// Flush hands the current arrays and batch transform to the renderer.
func (s *Simulation) Flush(sink InstanceSink) {
	f := s.Field
	sink.SetInstances(f.Positions, f.Rotations, f.Scales, f.Colors)
	sink.SetTransformation(s.Model)
}

// ScaleDrift is the amount added to every scale axis on a frame at time t.
func ScaleDrift(t float32) float32 {
	return float32(math.Cos(float64(2*t))) / ScaleDriftDivisor
}

// GlobalScale oscillates in [1,3].
func GlobalScale(t float32) float32 {
	return float32(math.Cos(float64(t/5))) + 2
}

// GlobalTransform scales the batch uniformly and spins it around +Y by 3t degrees.
func GlobalTransform(t float32) mgl32.Mat4 {
	s := GlobalScale(t)
	return mgl32.Scale3D(s, s, s).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(3 * t)))
}
