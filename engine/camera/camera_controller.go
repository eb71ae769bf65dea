package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Action identifies a logical camera control independent of the physical key or button bound to it.
type Action int

const (
	// ActionForward moves the camera along its front vector.
	ActionForward Action = iota
	// ActionBack moves the camera against its front vector.
	ActionBack
	// ActionLeft strafes the camera to its left.
	ActionLeft
	// ActionRight strafes the camera to its right.
	ActionRight
	// ActionBoost is the speed modifier (doubles move speed while engaged).
	ActionBoost
	// ActionLook enables mouse-look while held.
	ActionLook

	actionCount
)

// String returns the lowercase name of the action.
func (a Action) String() string {
	switch a {
	case ActionForward:
		return "forward"
	case ActionBack:
		return "back"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionBoost:
		return "boost"
	case ActionLook:
		return "look"
	default:
		return "unknown"
	}
}

// Actions returns every defined action in declaration order.
//
// Returns:
//   - []Action: all actions
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := ActionForward; a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// CursorSample is one absolute cursor position reported by the host, in window pixels.
type CursorSample struct {
	X, Y float32
}

// InputState is a per-frame snapshot of input as seen by the controller.
// Implementations must scope edges and cursor samples to "since the previous frame".
type InputState interface {
	// Pressed reports whether the action is currently held.
	Pressed(action Action) bool

	// JustPressed reports whether the action went from released to held since the previous frame.
	JustPressed(action Action) bool

	// JustReleased reports whether the action went from held to released since the previous frame.
	JustReleased(action Action) bool

	// CursorSamples returns the absolute cursor positions received since the previous frame,
	// in arrival order.
	CursorSamples() []CursorSample
}

// LookAt is a camera pose expressed as eye position, target point and up vector.
type LookAt struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
}

// ViewMatrix builds the right-handed view matrix for the pose.
//
// Returns:
//   - mgl32.Mat4: the view matrix (column-major)
func (l LookAt) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(l.Eye, l.Target, l.Up)
}

// SpeedMode selects how the boost action affects move speed.
type SpeedMode int

const (
	// SpeedModeEdge doubles the speed on the boost press edge and halves it on the release edge.
	// A missed edge leaves the speed permanently scaled.
	SpeedModeEdge SpeedMode = iota
	// SpeedModeHeld derives the speed from the held state of boost each frame: base*2 while held, base otherwise.
	SpeedModeHeld
)

// String returns the configuration name of the mode.
func (m SpeedMode) String() string {
	switch m {
	case SpeedModeEdge:
		return "edge"
	case SpeedModeHeld:
		return "held"
	default:
		return "unknown"
	}
}

// FreeFlyController defines a first-person free-fly camera.
// The controller owns the camera pose and mouse tracking state and advances both once per frame.
// It is driven from a single goroutine; accessors may be read from other goroutines.
type FreeFlyController interface {
	// Update applies one frame of input and returns the resulting pose.
	// Movement uses the front vector from the previous frame, then boost edges, mouse-look
	// and direction reconstruction are applied in that order.
	//
	// Parameters:
	//   - in: the input snapshot for this frame
	//   - dt: seconds elapsed since the previous frame (not clamped)
	//
	// Returns:
	//   - LookAt: eye, target (eye + front) and up
	Update(in InputState, dt float32) LookAt

	// LookAt returns the current pose without advancing state.
	//
	// Returns:
	//   - LookAt: eye, target and up
	LookAt() LookAt

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space position
	Position() mgl32.Vec3

	// Front returns the unit forward vector.
	//
	// Returns:
	//   - mgl32.Vec3: the look direction
	Front() mgl32.Vec3

	// Up returns the world up reference.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Yaw returns the accumulated yaw in degrees.
	Yaw() float32

	// Pitch returns the accumulated pitch in degrees, always within [MinPitch, MaxPitch] after an update.
	Pitch() float32

	// MoveSpeed returns the current linear speed in units per second.
	MoveSpeed() float32

	// Sensitivity returns the mouse delta scale factor.
	Sensitivity() float32

	// Boosted reports whether the speed modifier is engaged.
	Boosted() bool

	// SpeedMode returns how the boost action is interpreted.
	SpeedMode() SpeedMode

	// Retune replaces move speed and sensitivity.
	// If the controller is boosted the new speed is doubled immediately, so releasing boost lands on moveSpeed.
	//
	// Parameters:
	//   - moveSpeed: new base speed in units per second
	//   - sensitivity: new mouse delta scale factor
	Retune(moveSpeed, sensitivity float32)
}
