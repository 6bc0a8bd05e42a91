package core

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// StarInstance matches the instance attributes in star.wgsl:
//
//	@location(2) translation: vec4<f32>
//	@location(3) rotation:    vec4<f32> (quaternion x, y, z, w)
//	@location(4) scale:       vec4<f32>
//	@location(5) color:       vec4<f32>
type StarInstance struct {
	Translation [4]float32
	Rotation    [4]float32
	Scale       [4]float32
	Color       [4]float32
}

const StarInstanceSize = uint64(unsafe.Sizeof(StarInstance{}))

// PackInstances rebuilds dst from the parallel star arrays and returns it,
// reusing dst's backing storage when it is large enough. Colors are
// normalized to 0..1.
func PackInstances(dst []StarInstance, positions []mgl32.Vec3, rotations []mgl32.Quat, scales []mgl32.Vec3, colors [][4]uint8) []StarInstance {
	n := len(positions)
	if cap(dst) < n {
		dst = make([]StarInstance, n)
	}
	dst = dst[:n]

	for i := 0; i < n; i++ {
		p := positions[i]
		q := rotations[i]
		s := scales[i]
		c := colors[i]
		dst[i] = StarInstance{
			Translation: [4]float32{p[0], p[1], p[2], 1},
			Rotation:    [4]float32{q.V[0], q.V[1], q.V[2], q.W},
			Scale:       [4]float32{s[0], s[1], s[2], 0},
			Color: [4]float32{
				float32(c[0]) / 255.0,
				float32(c[1]) / 255.0,
				float32(c[2]) / 255.0,
				float32(c[3]) / 255.0,
			},
		}
	}
	return dst
}

// InstanceBytes views the packed instances as raw bytes for upload.
func InstanceBytes(instances []StarInstance) []byte {
	if len(instances) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&instances[0])), len(instances)*int(StarInstanceSize))
}
