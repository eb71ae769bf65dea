package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-flycam/common"
)

// Pitch limits in degrees.
const (
	MinPitch float32 = -179.0
	MaxPitch float32 = 179.0
)

// cameraState is the pose owned by a freeFlyControllerImpl.
type cameraState struct {
	position mgl32.Vec3
	front    mgl32.Vec3 // unit length, rebuilt from yaw/pitch every update
	up       mgl32.Vec3

	yaw   float32 // degrees
	pitch float32 // degrees

	moveSpeed float32
	baseSpeed float32 // speed with boost disengaged
	boosted   bool
}

// mouseState tracks the cursor between frames.
type mouseState struct {
	positionX, positionY   float32
	lastMouseX, lastMouseY float32
	sensitivity            float32
}

// freeFlyControllerImpl is the single implementation of FreeFlyController.
type freeFlyControllerImpl struct {
	mu *sync.Mutex

	camera    cameraState
	mouse     mouseState
	speedMode SpeedMode

	logger *zap.Logger
}

var _ FreeFlyController = &freeFlyControllerImpl{}

// NewFreeFlyController creates a free-fly controller.
// Defaults: speed 5, position (0,0,-1), front (0,0,1), up (0,1,0), yaw -90, pitch 0,
// sensitivity 0.1, mouse center (400,300) and edge-triggered boost.
// The tracked cursor position starts at the mouse center so the first update has no look delta.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - FreeFlyController: the newly created controller
func NewFreeFlyController(options ...FreeFlyControllerOption) FreeFlyController {
	ffc := &freeFlyControllerImpl{
		mu: &sync.Mutex{},
		camera: cameraState{
			position:  mgl32.Vec3{0, 0, -1},
			front:     mgl32.Vec3{0, 0, 1},
			up:        mgl32.Vec3{0, 1, 0},
			yaw:       -90.0,
			pitch:     0.0,
			moveSpeed: 5.0,
		},
		mouse: mouseState{
			lastMouseX:  400.0,
			lastMouseY:  300.0,
			sensitivity: 0.1,
		},
		speedMode: SpeedModeEdge,
		logger:    zap.NewNop(),
	}

	for _, option := range options {
		option(ffc)
	}

	ffc.camera.baseSpeed = ffc.camera.moveSpeed
	ffc.mouse.positionX = ffc.mouse.lastMouseX
	ffc.mouse.positionY = ffc.mouse.lastMouseY
	return ffc
}

func (ffc *freeFlyControllerImpl) Update(in InputState, dt float32) LookAt {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()

	ffc.move(in, dt)
	ffc.applySpeedModifier(in)
	ffc.sampleCursor(in)
	ffc.accumulateLook()
	ffc.camera.front = common.DirectionFromAngles(ffc.camera.yaw, ffc.camera.pitch)

	return ffc.lookAt()
}

// move translates position with the front vector left over from the previous update.
// Simultaneous keys add up; diagonals are intentionally faster than straight movement.
// Caller must hold the mutex.
func (ffc *freeFlyControllerImpl) move(in InputState, dt float32) {
	step := dt * ffc.camera.moveSpeed
	front := ffc.camera.front

	if in.Pressed(ActionForward) {
		ffc.camera.position = ffc.camera.position.Add(front.Mul(step))
	}
	if in.Pressed(ActionLeft) {
		ffc.camera.position = ffc.camera.position.Sub(ffc.right(front).Mul(step))
	}
	if in.Pressed(ActionBack) {
		ffc.camera.position = ffc.camera.position.Sub(front.Mul(step))
	}
	if in.Pressed(ActionRight) {
		ffc.camera.position = ffc.camera.position.Add(ffc.right(front).Mul(step))
	}
}

// right returns normalize(cross(front, up)).
func (ffc *freeFlyControllerImpl) right(front mgl32.Vec3) mgl32.Vec3 {
	return front.Cross(ffc.camera.up).Normalize()
}

// applySpeedModifier updates move speed from the boost action. Caller must hold the mutex.
func (ffc *freeFlyControllerImpl) applySpeedModifier(in InputState) {
	switch ffc.speedMode {
	case SpeedModeHeld:
		held := in.Pressed(ActionBoost)
		if held == ffc.camera.boosted {
			return
		}
		ffc.camera.boosted = held
		if held {
			ffc.camera.moveSpeed = ffc.camera.baseSpeed * 2.0
		} else {
			ffc.camera.moveSpeed = ffc.camera.baseSpeed
		}
		ffc.logger.Debug("camera boost changed",
			zap.Bool("boosted", held),
			zap.Float32("move_speed", ffc.camera.moveSpeed),
		)
	default:
		if in.JustPressed(ActionBoost) {
			ffc.camera.moveSpeed *= 2.0
			ffc.camera.boosted = true
			ffc.logger.Debug("camera boost engaged", zap.Float32("move_speed", ffc.camera.moveSpeed))
		}
		if in.JustReleased(ActionBoost) {
			ffc.camera.moveSpeed /= 2.0
			ffc.camera.boosted = false
			ffc.logger.Debug("camera boost released", zap.Float32("move_speed", ffc.camera.moveSpeed))
		}
	}
}

// sampleCursor adopts the last cursor sample while look is held; samples are ignored otherwise.
// Caller must hold the mutex.
func (ffc *freeFlyControllerImpl) sampleCursor(in InputState) {
	if !in.Pressed(ActionLook) {
		return
	}
	for _, sample := range in.CursorSamples() {
		ffc.mouse.positionX = sample.X
		ffc.mouse.positionY = sample.Y
	}
}

// accumulateLook turns the cursor delta into yaw and pitch and clamps pitch.
// Screen Y grows downward, hence the flipped y offset. Caller must hold the mutex.
func (ffc *freeFlyControllerImpl) accumulateLook() {
	xOffset := ffc.mouse.positionX - ffc.mouse.lastMouseX
	yOffset := ffc.mouse.lastMouseY - ffc.mouse.positionY
	ffc.mouse.lastMouseX = ffc.mouse.positionX
	ffc.mouse.lastMouseY = ffc.mouse.positionY

	ffc.camera.yaw += xOffset * ffc.mouse.sensitivity
	ffc.camera.pitch -= yOffset * ffc.mouse.sensitivity
	ffc.camera.pitch = mgl32.Clamp(ffc.camera.pitch, MinPitch, MaxPitch)
}

// lookAt builds the pose from current state. Caller must hold the mutex.
func (ffc *freeFlyControllerImpl) lookAt() LookAt {
	return LookAt{
		Eye:    ffc.camera.position,
		Target: ffc.camera.position.Add(ffc.camera.front),
		Up:     ffc.camera.up,
	}
}

func (ffc *freeFlyControllerImpl) LookAt() LookAt {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()
	return ffc.lookAt()
}

func (ffc *freeFlyControllerImpl) Position() mgl32.Vec3 {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()
	return ffc.camera.position
}

func (ffc *freeFlyControllerImpl) Front() mgl32.Vec3 {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()
	return ffc.camera.front
}

func (ffc *freeFlyControllerImpl) Up() mgl32.Vec3 {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()
	return ffc.camera.up
}

func (ffc *freeFlyControllerImpl) Yaw() float32 {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()
	return ffc.camera.yaw
}

func (ffc *freeFlyControllerImpl) Pitch() float32 {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()
	return ffc.camera.pitch
}

func (ffc *freeFlyControllerImpl) MoveSpeed() float32 {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()
	return ffc.camera.moveSpeed
}

func (ffc *freeFlyControllerImpl) Sensitivity() float32 {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()
	return ffc.mouse.sensitivity
}

func (ffc *freeFlyControllerImpl) Boosted() bool {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()
	return ffc.camera.boosted
}

func (ffc *freeFlyControllerImpl) SpeedMode() SpeedMode {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()
	return ffc.speedMode
}

func (ffc *freeFlyControllerImpl) Retune(moveSpeed, sensitivity float32) {
	ffc.mu.Lock()
	defer ffc.mu.Unlock()

	ffc.camera.baseSpeed = moveSpeed
	ffc.camera.moveSpeed = moveSpeed
	if ffc.camera.boosted {
		ffc.camera.moveSpeed = moveSpeed * 2.0
	}
	ffc.mouse.sensitivity = sensitivity

	ffc.logger.Debug("camera retuned",
		zap.Float32("move_speed", ffc.camera.moveSpeed),
		zap.Float32("sensitivity", sensitivity),
	)
}
