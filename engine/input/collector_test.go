package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
)

func TestCollectorHeldAndEdges(t *testing.T) {
	c := NewCollector()

	c.KeyDown(common.KeyW)
	f := c.Frame()
	assert.True(t, f.Pressed(camera.ActionForward))
	assert.True(t, f.JustPressed(camera.ActionForward))
	assert.False(t, f.JustReleased(camera.ActionForward))

	// Still held, no new edge; key repeat does not create one either.
	c.KeyDown(common.KeyW)
	f = c.Frame()
	assert.True(t, f.Pressed(camera.ActionForward))
	assert.False(t, f.JustPressed(camera.ActionForward))

	c.KeyUp(common.KeyW)
	f = c.Frame()
	assert.False(t, f.Pressed(camera.ActionForward))
	assert.True(t, f.JustReleased(camera.ActionForward))

	f = c.Frame()
	assert.False(t, f.JustReleased(camera.ActionForward))
}

func TestCollectorTapWithinOneFrame(t *testing.T) {
	c := NewCollector()

	c.KeyDown(common.KeyLeftShift)
	c.KeyUp(common.KeyLeftShift)
	f := c.Frame()

	assert.False(t, f.Pressed(camera.ActionBoost))
	assert.True(t, f.JustPressed(camera.ActionBoost))
	assert.True(t, f.JustReleased(camera.ActionBoost))
}

func TestCollectorReleaseWithoutPressIgnored(t *testing.T) {
	c := NewCollector()

	c.KeyUp(common.KeyLeftShift)
	f := c.Frame()

	assert.False(t, f.JustReleased(camera.ActionBoost))
}

func TestCollectorUnboundKeysIgnored(t *testing.T) {
	c := NewCollector()

	c.KeyDown(common.KeyQ)
	c.MouseButtonDown(common.MouseButtonLeft)
	f := c.Frame()

	for _, a := range camera.Actions() {
		assert.False(t, f.Pressed(a), a.String())
	}
}

func TestCollectorMouseLook(t *testing.T) {
	c := NewCollector()

	c.MouseButtonDown(common.MouseButtonRight)
	c.CursorMoved(401, 300)
	c.CursorMoved(402.5, 299)
	f := c.Frame()

	assert.True(t, f.Pressed(camera.ActionLook))
	assert.Equal(t, []camera.CursorSample{{X: 401, Y: 300}, {X: 402.5, Y: 299}}, f.CursorSamples())

	// The buffer was drained by the previous frame.
	assert.Empty(t, c.Frame().CursorSamples())
}

func TestCollectorSampleCapKeepsNewest(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := NewCollector(WithMaxBufferedSamples(3), WithLogger(zap.New(core)))

	for i := 0; i < 5; i++ {
		c.CursorMoved(float64(i), 0)
	}
	f := c.Frame()

	assert.Equal(t, []camera.CursorSample{{X: 2}, {X: 3}, {X: 4}}, f.CursorSamples())
	require.Equal(t, 1, logs.FilterMessage("cursor samples dropped").Len())
	assert.Equal(t, int64(2), logs.All()[0].ContextMap()["dropped"])
}

func TestCollectorCustomBindings(t *testing.T) {
	c := NewCollector(WithBindings(Bindings{
		camera.ActionForward: Key(common.KeyUp),
		camera.ActionLook:    MouseButton(common.MouseButtonMiddle),
	}))

	c.KeyDown(common.KeyUp)
	c.KeyDown(common.KeyW)
	c.MouseButtonDown(common.MouseButtonMiddle)
	f := c.Frame()

	assert.True(t, f.Pressed(camera.ActionForward))
	assert.True(t, f.Pressed(camera.ActionLook))
	assert.Len(t, c.Bindings(), 2)
}

func TestCollectorSetBindingsReleasesHeld(t *testing.T) {
	c := NewCollector()
	c.KeyDown(common.KeyW)
	c.Frame()

	c.SetBindings(Bindings{camera.ActionForward: Key(common.KeyUp)})
	f := c.Frame()

	assert.False(t, f.Pressed(camera.ActionForward))
	assert.True(t, f.JustReleased(camera.ActionForward))

	// The old key is now unbound.
	c.KeyUp(common.KeyW)
	assert.False(t, c.Frame().JustReleased(camera.ActionForward))
}

func TestCollectorFrameIsSnapshot(t *testing.T) {
	c := NewCollector()
	c.KeyDown(common.KeyW)
	f := c.Frame()

	c.KeyUp(common.KeyW)

	assert.True(t, f.Pressed(camera.ActionForward))
}

func TestCollectorDrivesController(t *testing.T) {
	c := NewCollector()
	ctrl := camera.NewFreeFlyController()

	c.KeyDown(common.KeyLeftShift)
	ctrl.Update(c.Frame(), 0.016)
	assert.Equal(t, float32(10), ctrl.MoveSpeed())

	c.KeyUp(common.KeyLeftShift)
	ctrl.Update(c.Frame(), 0.016)
	assert.Equal(t, float32(5), ctrl.MoveSpeed())

	// Cursor motion without the look button leaves orientation alone.
	c.CursorMoved(800, 300)
	ctrl.Update(c.Frame(), 0.016)
	assert.Equal(t, float32(-90), ctrl.Yaw())

	c.MouseButtonDown(common.MouseButtonRight)
	c.CursorMoved(410, 300)
	ctrl.Update(c.Frame(), 0.016)
	assert.InDelta(t, -89, ctrl.Yaw(), 1e-5)
}

func TestCollectorConcurrentUse(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			c.KeyDown(common.KeyW)
			c.CursorMoved(float64(i), float64(i))
			c.KeyUp(common.KeyW)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = c.Frame()
		}
	}()
	wg.Wait()

	assert.False(t, c.Frame().Pressed(camera.ActionForward))
}
