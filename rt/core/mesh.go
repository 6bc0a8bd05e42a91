package core

// MeshVertex matches the per-vertex input of star.wgsl.
type MeshVertex struct {
	Pos    [3]float32
	Normal [3]float32
}

type Mesh struct {
	Vertices []MeshVertex
	Indices  []uint16
}

// IndexCount returns the number of indices as the GPU expects it.
func (m *Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}

// NewCube builds a unit cube spanning -1..1 with one quad per face, so each
// face carries its own flat normal. Triangles wind counter-clockwise seen
// from outside.
func NewCube() *Mesh {
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	}

	m := &Mesh{
		Vertices: make([]MeshVertex, 0, 24),
		Indices:  make([]uint16, 0, 36),
	}
	for _, f := range faces {
		base := uint16(len(m.Vertices))
		for _, c := range f.corners {
			m.Vertices = append(m.Vertices, MeshVertex{Pos: c, Normal: f.normal})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
