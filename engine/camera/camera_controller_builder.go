package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// FreeFlyControllerOption is a functional option for configuring a FreeFlyController.
type FreeFlyControllerOption func(*freeFlyControllerImpl)

// WithMoveSpeed sets the initial linear speed.
//
// Parameters:
//   - speed: units per second
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the move speed
func WithMoveSpeed(speed float32) FreeFlyControllerOption {
	return func(ffc *freeFlyControllerImpl) {
		ffc.camera.moveSpeed = speed
	}
}

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the position
func WithPosition(x, y, z float32) FreeFlyControllerOption {
	return func(ffc *freeFlyControllerImpl) {
		ffc.camera.position = mgl32.Vec3{x, y, z}
	}
}

// WithFront sets the initial forward vector.
// It is used as-is for the first update's movement and replaced by the yaw/pitch
// direction afterwards, so it should agree with WithYaw and WithPitch.
//
// Parameters:
//   - x, y, z: direction components (expected unit length)
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the front vector
func WithFront(x, y, z float32) FreeFlyControllerOption {
	return func(ffc *freeFlyControllerImpl) {
		ffc.camera.front = mgl32.Vec3{x, y, z}
	}
}

// WithUp sets the world up reference used for strafing and the look-at pose.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the up vector
func WithUp(x, y, z float32) FreeFlyControllerOption {
	return func(ffc *freeFlyControllerImpl) {
		ffc.camera.up = mgl32.Vec3{x, y, z}
	}
}

// WithYaw sets the initial yaw.
//
// Parameters:
//   - yaw: degrees (-90 looks down -Z)
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the yaw
func WithYaw(yaw float32) FreeFlyControllerOption {
	return func(ffc *freeFlyControllerImpl) {
		ffc.camera.yaw = yaw
	}
}

// WithPitch sets the initial pitch. It is clamped on the first update.
//
// Parameters:
//   - pitch: degrees
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the pitch
func WithPitch(pitch float32) FreeFlyControllerOption {
	return func(ffc *freeFlyControllerImpl) {
		ffc.camera.pitch = pitch
	}
}

// WithSensitivity sets the scale applied to cursor deltas before they affect yaw and pitch.
//
// Parameters:
//   - sensitivity: degrees per pixel
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the mouse sensitivity
func WithSensitivity(sensitivity float32) FreeFlyControllerOption {
	return func(ffc *freeFlyControllerImpl) {
		ffc.mouse.sensitivity = sensitivity
	}
}

// WithMouseCenter sets the assumed initial cursor position, normally the window center.
//
// Parameters:
//   - x, y: cursor coordinates in window pixels
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the initial cursor position
func WithMouseCenter(x, y float32) FreeFlyControllerOption {
	return func(ffc *freeFlyControllerImpl) {
		ffc.mouse.lastMouseX = x
		ffc.mouse.lastMouseY = y
	}
}

// WithSpeedMode selects edge-triggered (default) or held-state boost handling.
//
// Parameters:
//   - mode: SpeedModeEdge or SpeedModeHeld
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the speed mode
func WithSpeedMode(mode SpeedMode) FreeFlyControllerOption {
	return func(ffc *freeFlyControllerImpl) {
		ffc.speedMode = mode
	}
}

// WithLogger sets the logger used for boost and retune transitions. A nil logger is ignored.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - FreeFlyControllerOption: functional option to set the logger
func WithLogger(logger *zap.Logger) FreeFlyControllerOption {
	return func(ffc *freeFlyControllerImpl) {
		if logger != nil {
			ffc.logger = logger.Named("camera")
		}
	}
}
