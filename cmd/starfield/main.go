package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/gekko3d/starfield"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	sceneName := flag.String("scene", "glow", "Scene to show: glow or solid")
	seed := flag.Int64("seed", 0, "Random seed for the star field (0 picks one from the clock)")
	presetFile := flag.String("preset", "", "JSON file overriding the scene preset")
	shaderFile := flag.String("shader", "", "WGSL file replacing the embedded star shader")
	debug := flag.Bool("debug", false, "Enable debug logging")
	hud := flag.Bool("hud", false, "Show the stats overlay at startup (F1 toggles)")
	headless := flag.Bool("headless", false, "Run the simulation without a window")
	frames := flag.Int("frames", 600, "Frames to run in headless mode (0 runs until interrupted)")
	flag.Parse()

	preset, err := starfield.SceneByName(*sceneName)
	if err != nil {
		fail(err)
	}
	if *presetFile != "" {
		if preset, err = starfield.LoadScenePreset(*presetFile, preset); err != nil {
			fail(err)
		}
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	rendererName := starfield.RendererWGPU
	if *headless {
		rendererName = starfield.RendererHeadless
	}
	renderer, err := starfield.NewRenderer(rendererName, preset, *frames)
	if err != nil {
		fail(err)
	}

	builder := starfield.NewAppBuilder().
		UseStates(starfield.StateRunning, starfield.StateExiting).
		UseModule(
			starfield.LoggingModule{Prefix: "starfield", Debug: *debug},
			starfield.TimeModule{},
		)
	if !*headless {
		builder.UseModule(
			starfield.NewPlatformWindow(preset),
			starfield.InputModule{},
		)
	}
	builder.UseModule(
		starfield.AssetServerModule{StarShaderFile: *shaderFile},
		starfield.StarsModule{Preset: preset, Seed: *seed},
		renderer,
		starfield.HudModule{Enabled: *hud},
	)

	builder.Build().Run()
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "starfield: %v\n", err)
	os.Exit(1)
}
