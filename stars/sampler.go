package stars

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Sampler draws random vectors used to seed the star field.
// The same seed always yields the same stream.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Vec3 returns three uniform values in [0,1). When signed is set, each axis
// is negated by an independent coin draw.
func (s *Sampler) Vec3(signed bool) mgl32.Vec3 {
	x := s.rng.Float32()
	y := s.rng.Float32()
	z := s.rng.Float32()

	if !signed {
		return mgl32.Vec3{x, y, z}
	}

	return mgl32.Vec3{
		x * s.sign(),
		y * s.sign(),
		z * s.sign(),
	}
}

func (s *Sampler) sign() float32 {
	if s.rng.Float32() > 0.5 {
		return 1
	}
	return -1
}
