// Package config loads the flycam YAML configuration and turns it into component options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
)

var (
	// ErrInvalidConfig is wrapped by every validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrUnknownKey is wrapped when a binding names a key or button that does not exist.
	ErrUnknownKey = errors.New("unknown key")
)

// Config is the root YAML document.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Bindings BindingsConfig `yaml:"bindings"`
	Engine   EngineConfig   `yaml:"engine"`
	Log      LogConfig      `yaml:"log"`
}

// WindowConfig sets the initial window title and size in screen units.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// CameraConfig holds controller tuning and projection settings. Angles are in degrees.
type CameraConfig struct {
	MoveSpeed   float32    `yaml:"move_speed"`
	Position    [3]float32 `yaml:"position"`
	Front       [3]float32 `yaml:"front"`
	Up          [3]float32 `yaml:"up"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Sensitivity float32    `yaml:"sensitivity"`
	MouseCenter [2]float32 `yaml:"mouse_center"`
	SpeedMode   string     `yaml:"speed_mode"`
	Fov         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// BindingsConfig names the key bound to each movement action and the mouse button for look.
type BindingsConfig struct {
	Forward string `yaml:"forward"`
	Back    string `yaml:"back"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Boost   string `yaml:"boost"`
	Look    string `yaml:"look"`
}

// EngineConfig sets the tick rate in Hz and whether profiler stats are logged.
type EngineConfig struct {
	TickRate  float64 `yaml:"tick_rate"`
	Profiling bool    `yaml:"profiling"`
}

// LogConfig selects the zap level by name and console (development) or JSON output.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration; its camera section matches camera.NewFreeFlyController defaults.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Oxy Flycam",
			Width:  800,
			Height: 600,
		},
		Camera: CameraConfig{
			MoveSpeed:   5.0,
			Position:    [3]float32{0, 0, -1},
			Front:       [3]float32{0, 0, 1},
			Up:          [3]float32{0, 1, 0},
			Yaw:         -90.0,
			Pitch:       0.0,
			Sensitivity: 0.1,
			MouseCenter: [2]float32{400, 300},
			SpeedMode:   camera.SpeedModeEdge.String(),
			Fov:         45.0,
			Near:        0.1,
			Far:         100.0,
		},
		Bindings: BindingsConfig{
			Forward: "w",
			Back:    "s",
			Left:    "a",
			Right:   "d",
			Boost:   "left_shift",
			Look:    "right",
		},
		Engine: EngineConfig{
			TickRate: 60,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file and overlays it on Default. An empty path returns Default.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the loaded configuration
//   - error: read, parse or validation failure
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over Default and validates the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: parse or validation failure
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and resolves every name in the document.
//
// Returns:
//   - error: the first problem found, wrapping ErrInvalidConfig or ErrUnknownKey
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if !finite(c.Camera.MoveSpeed) || c.Camera.MoveSpeed <= 0 {
		return fmt.Errorf("%w: camera.move_speed %v must be positive", ErrInvalidConfig, c.Camera.MoveSpeed)
	}
	if !finite(c.Camera.Sensitivity) {
		return fmt.Errorf("%w: camera.sensitivity %v must be finite", ErrInvalidConfig, c.Camera.Sensitivity)
	}
	if mgl32.Vec3(c.Camera.Up).Len() == 0 {
		return fmt.Errorf("%w: camera.up must be non-zero", ErrInvalidConfig)
	}
	front, up := mgl32.Vec3(c.Camera.Front), mgl32.Vec3(c.Camera.Up)
	if front.Len() == 0 {
		return fmt.Errorf("%w: camera.front must be non-zero", ErrInvalidConfig)
	}
	// The first strafe uses normalize(cross(front, up)), which is NaN for parallel vectors.
	if front.Cross(up).Len() <= parallelEpsilon*front.Len()*up.Len() {
		return fmt.Errorf("%w: camera.front %v must not be parallel to camera.up %v", ErrInvalidConfig, c.Camera.Front, c.Camera.Up)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return fmt.Errorf("%w: camera.fov %v must be within (0, 180)", ErrInvalidConfig, c.Camera.Fov)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip planes near=%v far=%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if _, err := c.Camera.Mode(); err != nil {
		return err
	}
	if _, err := c.Bindings.Resolve(); err != nil {
		return err
	}
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("%w: engine.tick_rate %v must be positive", ErrInvalidConfig, c.Engine.TickRate)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// parallelEpsilon is the sine of the smallest accepted angle between front and up.
const parallelEpsilon = 1e-6

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// Mode parses the speed_mode name.
//
// Returns:
//   - camera.SpeedMode: the parsed mode
//   - error: wraps ErrInvalidConfig for unknown names
func (c CameraConfig) Mode() (camera.SpeedMode, error) {
	switch strings.ToLower(strings.TrimSpace(c.SpeedMode)) {
	case "", camera.SpeedModeEdge.String():
		return camera.SpeedModeEdge, nil
	case camera.SpeedModeHeld.String():
		return camera.SpeedModeHeld, nil
	default:
		return 0, fmt.Errorf("%w: camera.speed_mode %q (want edge or held)", ErrInvalidConfig, c.SpeedMode)
	}
}

// ControllerOptions converts the camera section into controller options.
// The config is expected to have been validated.
//
// Parameters:
//   - logger: logger handed to the controller
//
// Returns:
//   - []camera.FreeFlyControllerOption: options for camera.NewFreeFlyController
func (c CameraConfig) ControllerOptions(logger *zap.Logger) []camera.FreeFlyControllerOption {
	mode, _ := c.Mode()
	return []camera.FreeFlyControllerOption{
		camera.WithMoveSpeed(c.MoveSpeed),
		camera.WithPosition(c.Position[0], c.Position[1], c.Position[2]),
		camera.WithFront(c.Front[0], c.Front[1], c.Front[2]),
		camera.WithUp(c.Up[0], c.Up[1], c.Up[2]),
		camera.WithYaw(c.Yaw),
		camera.WithPitch(c.Pitch),
		camera.WithSensitivity(c.Sensitivity),
		camera.WithMouseCenter(c.MouseCenter[0], c.MouseCenter[1]),
		camera.WithSpeedMode(mode),
		camera.WithLogger(logger),
	}
}

// CameraOptions converts projection settings into camera options; fov is converted to radians.
//
// Parameters:
//   - aspect: viewport width / height
//
// Returns:
//   - []camera.CameraBuilderOption: options for camera.NewCamera
func (c CameraConfig) CameraOptions(aspect float32) []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithFov(mgl32.DegToRad(c.Fov)),
		camera.WithAspect(aspect),
		camera.WithNear(c.Near),
		camera.WithFar(c.Far),
	}
}

// Resolve maps binding names to physical controls.
//
// Returns:
//   - input.Bindings: the resolved action map
//   - error: wraps ErrUnknownKey naming the offending action
func (b BindingsConfig) Resolve() (input.Bindings, error) {
	keys := []struct {
		action camera.Action
		name   string
	}{
		{camera.ActionForward, b.Forward},
		{camera.ActionBack, b.Back},
		{camera.ActionLeft, b.Left},
		{camera.ActionRight, b.Right},
		{camera.ActionBoost, b.Boost},
	}

	out := make(input.Bindings, len(keys)+1)
	for _, k := range keys {
		code, ok := common.KeyByName(k.name)
		if !ok {
			return nil, fmt.Errorf("%w: bindings.%s %q", ErrUnknownKey, k.action, k.name)
		}
		out[k.action] = input.Key(code)
	}

	button, ok := common.MouseButtonByName(b.Look)
	if !ok {
		return nil, fmt.Errorf("%w: bindings.look %q", ErrUnknownKey, b.Look)
	}
	out[camera.ActionLook] = input.MouseButton(button)
	return out, nil
}

// Build creates a zap logger at the configured level: JSON in production, console in development.
//
// Returns:
//   - *zap.Logger: the logger
//   - error: level parse or build failure
func (l LogConfig) Build() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = true

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
