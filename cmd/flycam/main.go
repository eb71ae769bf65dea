// Command flycam opens a window and flies a free-look camera with WASD and the mouse.
//
// Hold the right mouse button to look around, hold Left Shift to double the movement
// speed and press Escape to quit. The camera pose is logged at debug level every tick.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-flycam/engine"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/config"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/Carmen-Shannon/oxy-flycam/engine/window"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults are used when empty)")
	watch := flag.Bool("watch", false, "reload tuning and bindings when the config file changes")
	flag.Parse()

	if err := run(*configPath, *watch); err != nil {
		fmt.Fprintf(os.Stderr, "flycam: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, watch bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := cfg.Log.Build()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		return err
	}
	centerCursor(win, cfg.Camera)

	// ── Input ───────────────────────────────────────────────────────────
	bindings, err := cfg.Bindings.Resolve()
	if err != nil {
		return err
	}
	collector := input.NewCollector(
		input.WithBindings(bindings),
		input.WithLogger(logger),
	)
	win.SetKeyDownCallback(collector.KeyDown)
	win.SetKeyUpCallback(collector.KeyUp)
	win.SetMouseButtonDownCallback(collector.MouseButtonDown)
	win.SetMouseButtonUpCallback(collector.MouseButtonUp)
	win.SetMouseMoveCallback(collector.CursorMoved)

	// ── Camera ──────────────────────────────────────────────────────────
	controller := camera.NewFreeFlyController(cfg.Camera.ControllerOptions(logger)...)
	cam := camera.NewCamera(append(
		cfg.Camera.CameraOptions(float32(win.Width())/float32(win.Height())),
		camera.WithSource(controller),
	)...)
	cam.Update()

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithCamera(cam),
		engine.WithTickRate(cfg.Engine.TickRate),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithLogger(logger),
	)

	var watcher *config.Watcher
	if watch && configPath != "" {
		watcher, err = config.NewWatcher(configPath)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
	}

	poseLog := logger.Named("pose")
	eng.SetTickCallback(func(dt float32) {
		if watcher != nil {
			applyReload(watcher, eng, controller, collector, logger)
		}

		pose := controller.Update(collector.Frame(), dt)
		cam.Update()

		if ce := poseLog.Check(zap.DebugLevel, "camera"); ce != nil {
			ce.Write(
				zap.Float32s("eye", pose.Eye[:]),
				zap.Float32s("target", pose.Target[:]),
				zap.Float32("yaw", controller.Yaw()),
				zap.Float32("pitch", controller.Pitch()),
				zap.Float32("speed", controller.MoveSpeed()),
			)
		}
	})

	logger.Info("flycam ready",
		zap.String("config", configPath),
		zap.Int("width", win.Width()),
		zap.Int("height", win.Height()),
		zap.Stringer("speed_mode", controller.SpeedMode()),
	)
	eng.Run()
	return nil
}

// cursorWarper is the part of window.Window used to place the cursor.
type cursorWarper interface {
	SetCursorPosition(x, y float64)
}

// centerCursor moves the cursor to the controller's mouse center so the first look
// drag measures its delta from where the cursor really is.
func centerCursor(w cursorWarper, cam config.CameraConfig) {
	w.SetCursorPosition(float64(cam.MouseCenter[0]), float64(cam.MouseCenter[1]))
}

// applyReload applies at most one pending config reload without blocking the tick.
// Only tuning, bindings and the tick rate are hot-reloadable; pose and window settings are not.
func applyReload(w *config.Watcher, eng engine.Engine, controller camera.FreeFlyController, collector input.Collector, logger *zap.Logger) {
	select {
	case cfg, ok := <-w.Updates:
		if !ok {
			return
		}
		bindings, err := cfg.Bindings.Resolve()
		if err != nil {
			logger.Warn("config reload rejected", zap.Error(err))
			return
		}
		controller.Retune(cfg.Camera.MoveSpeed, cfg.Camera.Sensitivity)
		collector.SetBindings(bindings)
		eng.SetTickRate(cfg.Engine.TickRate)
		logger.Info("config reloaded",
			zap.Float32("move_speed", cfg.Camera.MoveSpeed),
			zap.Float32("sensitivity", cfg.Camera.Sensitivity),
			zap.Float64("tick_rate", cfg.Engine.TickRate),
		)
	case err, ok := <-w.Errors:
		if ok {
			logger.Warn("config reload failed", zap.Error(err))
		}
	default:
	}
}
