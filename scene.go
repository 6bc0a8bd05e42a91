package starfield

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/gekko3d/starfield/rt/core"
	"github.com/gekko3d/starfield/stars"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MaxWindowWidth  = 1920
	MaxWindowHeight = 1080
)

// ClearColor is the deep violet behind every scene.
var ClearColor = [4]float64{0.019, 0.003, 0.113, 1.0}

type CameraPreset struct {
	Position mgl32.Vec3 `json:"position"`
	Target   mgl32.Vec3 `json:"target"`
	FovY     float32    `json:"fov_y"`
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
}

func DefaultCameraPreset() CameraPreset {
	c := core.NewPerspectiveCamera()
	return CameraPreset{
		Position: c.Position,
		Target:   c.Target,
		FovY:     c.FovY,
		Near:     c.Near,
		Far:      c.Far,
	}
}

func (c CameraPreset) PerspectiveCamera() *core.PerspectiveCamera {
	cam := core.NewPerspectiveCamera()
	cam.Position = c.Position
	cam.Target = c.Target
	cam.FovY = c.FovY
	cam.Near = c.Near
	cam.Far = c.Far
	return cam
}

// ScenePreset is everything that differs between the two star scenes.
type ScenePreset struct {
	Name           string               `json:"name"`
	Title          string               `json:"title"`
	StarCount      int                  `json:"star_count"`
	Policy         stars.RotationPolicy `json:"policy"`
	SignedRotation bool                 `json:"signed_rotation"`
	AngularSpeed   float32              `json:"angular_speed,omitempty"`
	Material       core.MaterialKind    `json:"material"`
	FlatColor      [4]float32           `json:"flat_color"`
	PointerAware   bool                 `json:"pointer_aware"`
	MaxWidth       int                  `json:"max_width"`
	MaxHeight      int                  `json:"max_height"`
	ClearColor     [4]float64           `json:"clear_color"`
	Camera         CameraPreset         `json:"camera"`
}

// GlowScene is the additive, time-absolute star field.
func GlowScene() ScenePreset {
	return ScenePreset{
		Name:       "glow",
		Title:      "Rustshad",
		StarCount:  stars.GlowStarCount,
		Policy:     stars.PolicyAbsolute,
		Material:   core.MaterialTransparent,
		FlatColor:  [4]float32{1, 1, 1, 1},
		MaxWidth:   MaxWindowWidth,
		MaxHeight:  MaxWindowHeight,
		ClearColor: ClearColor,
		Camera:     DefaultCameraPreset(),
	}
}

// SolidScene is the opaque field whose rotations accumulate frame by frame.
func SolidScene() ScenePreset {
	return ScenePreset{
		Name:           "solid",
		Title:          "Starfield",
		StarCount:      stars.SolidStarCount,
		Policy:         stars.PolicyIncremental,
		SignedRotation: true,
		Material:       core.MaterialOpaque,
		FlatColor:      [4]float32{0.35, 0.55, 1.0, 1.0},
		PointerAware:   true,
		MaxWidth:       MaxWindowWidth,
		MaxHeight:      MaxWindowHeight,
		ClearColor:     ClearColor,
		Camera:         DefaultCameraPreset(),
	}
}

var scenes = map[string]func() ScenePreset{
	"glow":  GlowScene,
	"solid": SolidScene,
}

func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func SceneByName(name string) (ScenePreset, error) {
	mk, ok := scenes[name]
	if !ok {
		return ScenePreset{}, fmt.Errorf("unknown scene %q (want one of %v)", name, SceneNames())
	}
	return mk(), nil
}

// LoadScenePreset overlays the JSON file at path onto base. Fields missing
// from the file keep base's values.
func LoadScenePreset(path string, base ScenePreset) (ScenePreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScenePreset{}, fmt.Errorf("read scene preset: %w", err)
	}

	preset := base
	if err := json.Unmarshal(data, &preset); err != nil {
		return ScenePreset{}, fmt.Errorf("parse scene preset %s: %w", path, err)
	}
	if err := preset.Validate(); err != nil {
		return ScenePreset{}, fmt.Errorf("scene preset %s: %w", path, err)
	}
	return preset, nil
}

func (p ScenePreset) Validate() error {
	if p.StarCount <= 0 {
		return fmt.Errorf("star_count must be positive, got %d", p.StarCount)
	}
	if _, err := p.Policy.MarshalText(); err != nil {
		return err
	}
	if _, err := p.Material.MarshalText(); err != nil {
		return err
	}
	if p.MaxWidth <= 0 || p.MaxHeight <= 0 {
		return fmt.Errorf("max window size must be positive, got %dx%d", p.MaxWidth, p.MaxHeight)
	}
	c := p.Camera
	if c.FovY <= 0 || c.FovY >= 180 {
		return fmt.Errorf("camera fov_y must be in (0, 180), got %v", c.FovY)
	}
	if c.Near <= 0 || c.Far <= c.Near {
		return fmt.Errorf("camera planes must satisfy 0 < near < far, got %v..%v", c.Near, c.Far)
	}
	if c.Position == c.Target {
		return fmt.Errorf("camera position and target coincide")
	}
	return nil
}
