package starfield

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gekko3d/starfield/rt/core"
	"github.com/gekko3d/starfield/stars"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuiltinScenes(t *testing.T) {
	glow := GlowScene()
	assert.Equal(t, "Rustshad", glow.Title)
	assert.Equal(t, 1111, glow.StarCount)
	assert.Equal(t, stars.PolicyAbsolute, glow.Policy)
	assert.False(t, glow.SignedRotation)
	assert.Equal(t, core.MaterialTransparent, glow.Material)
	assert.Equal(t, [4]float64{0.019, 0.003, 0.113, 1.0}, glow.ClearColor)
	assert.Equal(t, 1920, glow.MaxWidth)
	assert.Equal(t, 1080, glow.MaxHeight)
	assert.Equal(t, mgl32.Vec3{0, 30, 150}, glow.Camera.Position)
	assert.Equal(t, mgl32.Vec3{0, 30, 0}, glow.Camera.Target)
	assert.NoError(t, glow.Validate())

	solid := SolidScene()
	assert.Equal(t, 432, solid.StarCount)
	assert.Equal(t, stars.PolicyIncremental, solid.Policy)
	assert.True(t, solid.SignedRotation)
	assert.True(t, solid.PointerAware)
	assert.Equal(t, core.MaterialOpaque, solid.Material)
	assert.NoError(t, solid.Validate())
}

func TestSceneByName(t *testing.T) {
	p, err := SceneByName("solid")
	require.NoError(t, err)
	assert.Equal(t, "solid", p.Name)

	_, err = SceneByName("nebula")
	assert.ErrorContains(t, err, "unknown scene")
	assert.Equal(t, []string{"glow", "solid"}, SceneNames())
}

func TestLoadScenePreset_Overrides(t *testing.T) {
	path := writePreset(t, `{
		"star_count": 64,
		"policy": "incremental",
		"material": "opaque",
		"camera": {"position": [0, 0, 50]}
	}`)

	p, err := LoadScenePreset(path, GlowScene())
	require.NoError(t, err)

	assert.Equal(t, 64, p.StarCount)
	assert.Equal(t, stars.PolicyIncremental, p.Policy)
	assert.Equal(t, core.MaterialOpaque, p.Material)
	assert.Equal(t, mgl32.Vec3{0, 0, 50}, p.Camera.Position)

	// untouched fields keep the base values
	assert.Equal(t, "Rustshad", p.Title)
	assert.Equal(t, mgl32.Vec3{0, 30, 0}, p.Camera.Target)
	assert.Equal(t, float32(45), p.Camera.FovY)
	assert.Equal(t, ClearColor, p.ClearColor)
}

func TestLoadScenePreset_Errors(t *testing.T) {
	_, err := LoadScenePreset(filepath.Join(t.TempDir(), "missing.json"), GlowScene())
	assert.ErrorIs(t, err, os.ErrNotExist)

	cases := map[string]string{
		"bad json":       `{"star_count": `,
		"zero count":     `{"star_count": 0}`,
		"unknown policy": `{"policy": "sideways"}`,
		"bad material":   `{"material": "glass"}`,
		"bad planes":     `{"camera": {"near": 10, "far": 5}}`,
		"bad fov":        `{"camera": {"fov_y": 180}}`,
		"bad window":     `{"max_width": 0}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScenePreset(writePreset(t, content), GlowScene())
			assert.Error(t, err)
		})
	}
}

func TestCameraPreset_PerspectiveCamera(t *testing.T) {
	c := DefaultCameraPreset()
	c.FovY = 60
	cam := c.PerspectiveCamera()

	assert.Equal(t, float32(60), cam.FovY)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.Up)
	assert.Equal(t, c.Position, cam.Position)
}
