package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/gekko3d/lumen"
	"github.com/gekko3d/lumen/config"
)

func init() {
	// GLFW must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	scenePath := flag.String("scene", "", "scene file (YAML); the built-in demo scene when empty")
	debug := flag.Bool("debug", false, "enable debug logging")
	hudDir := flag.String("hud", "", "directory to save debug overlay snapshots to")
	hudEvery := flag.Uint64("hud-every", 60, "save an overlay snapshot every N frames")
	frames := flag.Uint64("frames", 0, "exit after N frames (0 runs until closed)")
	headless := flag.Bool("headless", false, "run without a window at a fixed 60Hz step")
	flag.Parse()

	cfg := config.Default()
	if *scenePath != "" {
		loaded, err := config.Load(*scenePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	var step time.Duration
	if *headless {
		step = time.Second / 60
	}

	app := lumen.NewApp().UseModules(
		lumen.LoggingModule{Prefix: "lumen", Debug: *debug || cfg.Debug},
		lumen.TimeModule{Step: step},
		lumen.PlatformWindowModule{
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
			Title:    cfg.Window.Title,
			Headless: *headless,
		},
		lumen.InputModule{ExitOnEscape: true},
		lumen.SceneModule{Path: *scenePath, Config: cfg},
		lumen.RenderModule{},
		lumen.DebugUIModule{HUDDir: *hudDir, SaveEvery: *hudEvery},
		lumen.HotReloadModule{},
		lumen.FrameLimitModule{Frames: *frames},
	)
	app.Run()
}
