package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-flycam/common"
)

const tol = 1e-5

// testInput is a hand-built InputState for driving the controller.
type testInput struct {
	held     map[Action]bool
	pressed  map[Action]bool
	released map[Action]bool
	cursor   []CursorSample
}

func (t testInput) Pressed(a Action) bool         { return t.held[a] }
func (t testInput) JustPressed(a Action) bool     { return t.pressed[a] }
func (t testInput) JustReleased(a Action) bool    { return t.released[a] }
func (t testInput) CursorSamples() []CursorSample { return t.cursor }

func hold(actions ...Action) testInput {
	in := testInput{held: map[Action]bool{}}
	for _, a := range actions {
		in.held[a] = true
	}
	return in
}

func look(samples ...CursorSample) testInput {
	in := hold(ActionLook)
	in.cursor = samples
	return in
}

func assertVec3InDelta(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], tol, "component %d of %v vs %v", i, expected, actual)
	}
}

func TestNewFreeFlyControllerDefaults(t *testing.T) {
	c := NewFreeFlyController()

	assert.Equal(t, mgl32.Vec3{0, 0, -1}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, c.Front())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.Equal(t, float32(-90), c.Yaw())
	assert.Equal(t, float32(0), c.Pitch())
	assert.Equal(t, float32(5), c.MoveSpeed())
	assert.Equal(t, float32(0.1), c.Sensitivity())
	assert.Equal(t, SpeedModeEdge, c.SpeedMode())
	assert.False(t, c.Boosted())
}

func TestUpdateNoInputKeepsPose(t *testing.T) {
	// Front agrees with yaw -90 / pitch 0, so reconstruction reproduces it.
	c := NewFreeFlyController(WithFront(0, 0, -1), WithPosition(1, 2, 3))

	for _, dt := range []float32{0, 0.016, 1, 30} {
		c.Update(testInput{}, dt)
		assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Position(), "dt=%v", dt)
		assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, c.Front())
		assert.Equal(t, float32(-90), c.Yaw())
		assert.Equal(t, float32(0), c.Pitch())
	}
}

func TestUpdateForwardScenario(t *testing.T) {
	c := NewFreeFlyController()

	pose := c.Update(hold(ActionForward), 1.0)

	assert.Equal(t, mgl32.Vec3{0, 0, 4}, c.Position())
	assert.Equal(t, mgl32.Vec3{0, 0, 4}, pose.Eye)
	// Front is rebuilt from yaw -90, which faces -Z.
	assertVec3InDelta(t, common.DirectionFromAngles(-90, 0), c.Front())
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, c.Front())
}

func TestUpdateMovementUsesPreviousFront(t *testing.T) {
	c := NewFreeFlyController(WithFront(0, 0, -1), WithPosition(0, 0, 0))

	// Turn 90 degrees right in the same frame as moving forward.
	in := look(CursorSample{X: 1300, Y: 300})
	in.held[ActionForward] = true
	c.Update(in, 1.0)

	assertVec3InDelta(t, mgl32.Vec3{0, 0, -5}, c.Position())
	assert.InDelta(t, 0, c.Yaw(), tol)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, c.Front())

	// The next frame moves along the new front.
	c.Update(hold(ActionForward), 1.0)
	assertVec3InDelta(t, mgl32.Vec3{5, 0, -5}, c.Position())
}

func TestUpdateMovementDirections(t *testing.T) {
	tests := []struct {
		name     string
		in       testInput
		expected mgl32.Vec3
	}{
		{"forward", hold(ActionForward), mgl32.Vec3{0, 0, 4}},
		{"back", hold(ActionBack), mgl32.Vec3{0, 0, -6}},
		{"left", hold(ActionLeft), mgl32.Vec3{5, 0, -1}},
		{"right", hold(ActionRight), mgl32.Vec3{-5, 0, -1}},
		{"forward and back cancel", hold(ActionForward, ActionBack), mgl32.Vec3{0, 0, -1}},
		{"diagonal is not normalized", hold(ActionForward, ActionRight), mgl32.Vec3{-5, 0, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFreeFlyController()
			c.Update(tt.in, 1.0)
			assertVec3InDelta(t, tt.expected, c.Position())
		})
	}
}

func TestUpdateDiagonalSpeed(t *testing.T) {
	c := NewFreeFlyController(WithPosition(0, 0, 0))
	c.Update(hold(ActionForward, ActionLeft), 1.0)

	assert.InDelta(t, 5*math32.Sqrt(2), c.Position().Len(), tol)
}

func TestUpdateNegativeDtIsNotClamped(t *testing.T) {
	c := NewFreeFlyController()
	c.Update(hold(ActionForward), -1.0)

	assert.Equal(t, mgl32.Vec3{0, 0, -6}, c.Position())
}

func TestUpdateBoostEdgesRoundTrip(t *testing.T) {
	c := NewFreeFlyController()

	c.Update(testInput{pressed: map[Action]bool{ActionBoost: true}}, 0.016)
	assert.Equal(t, float32(10), c.MoveSpeed())
	assert.True(t, c.Boosted())

	c.Update(testInput{}, 0.016)
	assert.Equal(t, float32(10), c.MoveSpeed())

	c.Update(testInput{released: map[Action]bool{ActionBoost: true}}, 0.016)
	assert.Equal(t, float32(5), c.MoveSpeed())
	assert.False(t, c.Boosted())
}

func TestUpdateBoostAppliesAfterMovement(t *testing.T) {
	c := NewFreeFlyController()

	in := hold(ActionForward)
	in.pressed = map[Action]bool{ActionBoost: true}
	c.Update(in, 1.0)

	// Movement for this frame used the speed from before the edge.
	assert.Equal(t, mgl32.Vec3{0, 0, 4}, c.Position())
	assert.Equal(t, float32(10), c.MoveSpeed())
}

func TestUpdateBoostPressAndReleaseSameFrame(t *testing.T) {
	c := NewFreeFlyController(WithMoveSpeed(3))

	c.Update(testInput{
		pressed:  map[Action]bool{ActionBoost: true},
		released: map[Action]bool{ActionBoost: true},
	}, 0.016)

	assert.Equal(t, float32(3), c.MoveSpeed())
	assert.False(t, c.Boosted())
}

func TestUpdateBoostEdgeDriftOnMissedRelease(t *testing.T) {
	c := NewFreeFlyController()
	press := testInput{pressed: map[Action]bool{ActionBoost: true}}

	c.Update(press, 0.016)
	c.Update(press, 0.016)

	assert.Equal(t, float32(20), c.MoveSpeed())
}

func TestUpdateBoostHeldMode(t *testing.T) {
	c := NewFreeFlyController(WithSpeedMode(SpeedModeHeld))
	press := testInput{held: map[Action]bool{ActionBoost: true}, pressed: map[Action]bool{ActionBoost: true}}

	// Repeated press edges do not compound in held mode.
	c.Update(press, 0.016)
	c.Update(press, 0.016)
	assert.Equal(t, float32(10), c.MoveSpeed())
	assert.True(t, c.Boosted())

	// A missed release edge still restores the speed once boost is no longer held.
	c.Update(testInput{}, 0.016)
	assert.Equal(t, float32(5), c.MoveSpeed())
	assert.False(t, c.Boosted())
}

func TestRetune(t *testing.T) {
	for _, mode := range []SpeedMode{SpeedModeEdge, SpeedModeHeld} {
		t.Run(mode.String(), func(t *testing.T) {
			c := NewFreeFlyController(WithSpeedMode(mode))
			boost := testInput{
				held:    map[Action]bool{ActionBoost: true},
				pressed: map[Action]bool{ActionBoost: true},
			}
			c.Update(boost, 0.016)
			require.Equal(t, float32(10), c.MoveSpeed())

			c.Retune(8, 0.25)
			assert.Equal(t, float32(16), c.MoveSpeed())
			assert.Equal(t, float32(0.25), c.Sensitivity())

			c.Update(testInput{released: map[Action]bool{ActionBoost: true}}, 0.016)
			assert.Equal(t, float32(8), c.MoveSpeed())
		})
	}
}

func TestUpdateLookScenario(t *testing.T) {
	c := NewFreeFlyController()

	c.Update(look(CursorSample{X: 410, Y: 300}), 0.016)

	assert.InDelta(t, -89, c.Yaw(), tol)
	assert.Equal(t, float32(0), c.Pitch())
	assertVec3InDelta(t, common.DirectionFromAngles(-89, 0), c.Front())
}

func TestUpdateLookAdoptsLastSample(t *testing.T) {
	c := NewFreeFlyController()

	c.Update(look(
		CursorSample{X: 900, Y: 0},
		CursorSample{X: 100, Y: 700},
		CursorSample{X: 410, Y: 310},
	), 0.016)

	assert.InDelta(t, -89, c.Yaw(), tol)
	// y_offset = 300 - 310 = -10, pitch -= -1.
	assert.InDelta(t, 1, c.Pitch(), tol)
}

func TestUpdateLookDeltaOnlyOnNewSamples(t *testing.T) {
	c := NewFreeFlyController()

	c.Update(look(CursorSample{X: 410, Y: 300}), 0.016)
	c.Update(look(), 0.016)
	c.Update(testInput{}, 0.016)

	assert.InDelta(t, -89, c.Yaw(), tol)
}

func TestUpdateLookDisabledIgnoresSamples(t *testing.T) {
	c := NewFreeFlyController()
	in := testInput{cursor: []CursorSample{{X: 1000, Y: -500}, {X: 20, Y: 20}}}

	for i := 0; i < 5; i++ {
		c.Update(in, 0.016)
		assert.Equal(t, float32(-90), c.Yaw())
		assert.Equal(t, float32(0), c.Pitch())
	}
}

func TestUpdateLookResumesFromLastSeenCursor(t *testing.T) {
	c := NewFreeFlyController()

	c.Update(look(CursorSample{X: 410, Y: 300}), 0.016)
	// Cursor travels while look is released; those samples are dropped.
	c.Update(testInput{cursor: []CursorSample{{X: 600, Y: 300}}}, 0.016)
	// On re-enable the delta is measured from the last adopted sample.
	c.Update(look(CursorSample{X: 620, Y: 300}), 0.016)

	assert.InDelta(t, -90+1+21, c.Yaw(), tol)
}

func TestUpdatePitchClamped(t *testing.T) {
	tests := []struct {
		name     string
		y        float32
		expected float32
	}{
		{"looking far down screen", 300 + 1e6, MaxPitch},
		{"looking far up screen", 300 - 1e6, MinPitch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFreeFlyController()
			c.Update(look(CursorSample{X: 400, Y: tt.y}), 0.016)
			assert.Equal(t, tt.expected, c.Pitch())
			assert.InDelta(t, 1, c.Front().Len(), tol)
		})
	}
}

func TestUpdateInitialPitchClamped(t *testing.T) {
	c := NewFreeFlyController(WithPitch(500))
	c.Update(testInput{}, 0)

	assert.Equal(t, MaxPitch, c.Pitch())
}

func TestUpdateFrontUnitLength(t *testing.T) {
	c := NewFreeFlyController(WithSensitivity(0.37))
	x, y := float32(400), float32(300)

	for i := 0; i < 200; i++ {
		x += float32((i*37)%113) - 56
		y += float32((i*53)%97) - 48
		c.Update(look(CursorSample{X: x, Y: y}), 0.016)

		require.InDelta(t, 1, c.Front().Len(), tol, "iteration %d", i)
		require.GreaterOrEqual(t, c.Pitch(), MinPitch)
		require.LessOrEqual(t, c.Pitch(), MaxPitch)
	}
}

func TestUpdateLookAtTarget(t *testing.T) {
	c := NewFreeFlyController(WithPosition(3, 4, 5), WithUp(0, 0, 1))

	pose := c.Update(look(CursorSample{X: 450, Y: 280}), 0.016)

	assert.Equal(t, c.Position(), pose.Eye)
	assertVec3InDelta(t, pose.Eye.Add(c.Front()), pose.Target)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, pose.Up)
	assert.Equal(t, pose, c.LookAt())
}

func TestUpdateNaNPropagates(t *testing.T) {
	c := NewFreeFlyController()

	assert.NotPanics(t, func() {
		c.Update(look(CursorSample{X: math32.NaN(), Y: 300}), 0.016)
	})
	assert.True(t, math32.IsNaN(c.Yaw()))
	assert.True(t, math32.IsNaN(c.Front()[0]))

	c = NewFreeFlyController()
	assert.NotPanics(t, func() {
		c.Update(hold(ActionForward), math32.NaN())
	})
	assert.True(t, math32.IsNaN(c.Position()[2]))

	c = NewFreeFlyController()
	c.Update(look(CursorSample{X: 400, Y: math32.NaN()}), 0.016)
	assert.True(t, math32.IsNaN(c.Pitch()), "pitch clamp must not hide NaN")

	c = NewFreeFlyController(WithFront(0, 1, 0))
	c.Update(hold(ActionRight), 1)
	assert.True(t, math32.IsNaN(c.Position()[0]), "strafe along a front parallel to up has no direction")
}

func TestLookAtViewMatrix(t *testing.T) {
	pose := LookAt{
		Eye:    mgl32.Vec3{0, 0, 5},
		Target: mgl32.Vec3{0, 0, 4},
		Up:     mgl32.Vec3{0, 1, 0},
	}

	eye := pose.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 5, 1})
	target := pose.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})

	assert.InDelta(t, 0, eye.Vec3().Len(), tol)
	// The origin sits 5 units in front of the camera, which looks down -Z in view space.
	assert.InDelta(t, -5, target[2], tol)
}

func TestActionString(t *testing.T) {
	names := make([]string, 0, len(Actions()))
	for _, a := range Actions() {
		names = append(names, a.String())
	}
	assert.Equal(t, []string{"forward", "back", "left", "right", "boost", "look"}, names)
	assert.Equal(t, "unknown", Action(99).String())
}
