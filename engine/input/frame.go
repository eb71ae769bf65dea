package input

import "github.com/Carmen-Shannon/oxy-flycam/engine/camera"

// Frame is an immutable snapshot of one frame of input. It implements camera.InputState.
type Frame struct {
	held     map[camera.Action]bool
	pressed  map[camera.Action]bool
	released map[camera.Action]bool
	samples  []camera.CursorSample
}

var _ camera.InputState = Frame{}

func (f Frame) Pressed(action camera.Action) bool {
	return f.held[action]
}

func (f Frame) JustPressed(action camera.Action) bool {
	return f.pressed[action]
}

func (f Frame) JustReleased(action camera.Action) bool {
	return f.released[action]
}

func (f Frame) CursorSamples() []camera.CursorSample {
	return f.samples
}
