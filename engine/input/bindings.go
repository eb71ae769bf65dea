package input

import (
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
)

// Source distinguishes keyboard keys from mouse buttons in a Binding.
type Source int

const (
	// SourceKey is a keyboard key; Code is a GLFW key code (see common.Key*).
	SourceKey Source = iota
	// SourceMouseButton is a mouse button; Code is a GLFW button index (see common.MouseButton*).
	SourceMouseButton
)

// Binding is a physical control bound to an action.
type Binding struct {
	Source Source
	Code   uint32
}

// Key binds a keyboard key code.
func Key(code uint32) Binding {
	return Binding{Source: SourceKey, Code: code}
}

// MouseButton binds a mouse button code.
func MouseButton(code uint32) Binding {
	return Binding{Source: SourceMouseButton, Code: code}
}

// Bindings maps each camera action to one physical control.
type Bindings map[camera.Action]Binding

// DefaultBindings returns WASD movement, left shift boost and right mouse button look.
//
// Returns:
//   - Bindings: the default action map
func DefaultBindings() Bindings {
	return Bindings{
		camera.ActionForward: Key(common.KeyW),
		camera.ActionBack:    Key(common.KeyS),
		camera.ActionLeft:    Key(common.KeyA),
		camera.ActionRight:   Key(common.KeyD),
		camera.ActionBoost:   Key(common.KeyLeftShift),
		camera.ActionLook:    MouseButton(common.MouseButtonRight),
	}
}

// actionsFor returns the actions bound to a physical control.
func (b Bindings) actionsFor(binding Binding) []camera.Action {
	var out []camera.Action
	for action, bound := range b {
		if bound == binding {
			out = append(out, action)
		}
	}
	return out
}
