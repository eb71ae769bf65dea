package input

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
)

// DefaultMaxBufferedSamples bounds the cursor buffer between two frames.
const DefaultMaxBufferedSamples = 256

// Collector turns window callbacks into per-frame input snapshots.
// Callbacks may arrive on the window thread while Frame is called from the tick goroutine.
type Collector interface {
	// KeyDown records a key press. Repeats of an already held key are ignored.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	KeyDown(keyCode uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	KeyUp(keyCode uint32)

	// MouseButtonDown records a mouse button press.
	//
	// Parameters:
	//   - button: the mouse button code
	MouseButtonDown(button uint32)

	// MouseButtonUp records a mouse button release.
	//
	// Parameters:
	//   - button: the mouse button code
	MouseButtonUp(button uint32)

	// CursorMoved appends an absolute cursor position to the buffer for the next frame.
	//
	// Parameters:
	//   - x, y: cursor position in window pixels
	CursorMoved(x, y float64)

	// Frame returns the snapshot for the frame that just elapsed and starts a new one:
	// edges are cleared and the cursor buffer is drained.
	//
	// Returns:
	//   - Frame: the snapshot, usable as camera.InputState
	Frame() Frame

	// SetBindings replaces the action bindings. Held state is cleared since the old
	// physical controls no longer map to the same actions.
	//
	// Parameters:
	//   - bindings: the new action map
	SetBindings(bindings Bindings)

	// Bindings returns a copy of the current action bindings.
	Bindings() Bindings
}

type collectorImpl struct {
	mu *sync.Mutex

	bindings Bindings

	held     map[camera.Action]bool
	pressed  map[camera.Action]bool
	released map[camera.Action]bool

	samples    []camera.CursorSample
	maxSamples int
	dropped    int

	logger *zap.Logger
}

var _ Collector = &collectorImpl{}

// NewCollector creates a Collector with default bindings.
//
// Parameters:
//   - options: functional options to configure the collector
//
// Returns:
//   - Collector: the newly created collector
func NewCollector(options ...CollectorOption) Collector {
	ic := &collectorImpl{
		mu:         &sync.Mutex{},
		bindings:   DefaultBindings(),
		held:       make(map[camera.Action]bool),
		pressed:    make(map[camera.Action]bool),
		released:   make(map[camera.Action]bool),
		maxSamples: DefaultMaxBufferedSamples,
		logger:     zap.NewNop(),
	}
	for _, option := range options {
		option(ic)
	}
	return ic
}

func (ic *collectorImpl) KeyDown(keyCode uint32) {
	ic.press(Key(keyCode))
}

func (ic *collectorImpl) KeyUp(keyCode uint32) {
	ic.release(Key(keyCode))
}

func (ic *collectorImpl) MouseButtonDown(button uint32) {
	ic.press(MouseButton(button))
}

func (ic *collectorImpl) MouseButtonUp(button uint32) {
	ic.release(MouseButton(button))
}

func (ic *collectorImpl) press(binding Binding) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	for _, action := range ic.bindings.actionsFor(binding) {
		if ic.held[action] {
			continue
		}
		ic.held[action] = true
		ic.pressed[action] = true
	}
}

func (ic *collectorImpl) release(binding Binding) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	for _, action := range ic.bindings.actionsFor(binding) {
		if !ic.held[action] {
			continue
		}
		ic.held[action] = false
		ic.released[action] = true
	}
}

func (ic *collectorImpl) CursorMoved(x, y float64) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	// Only the last sample of a frame affects the camera, so the oldest can go.
	if ic.maxSamples > 0 && len(ic.samples) >= ic.maxSamples {
		copy(ic.samples, ic.samples[1:])
		ic.samples = ic.samples[:len(ic.samples)-1]
		ic.dropped++
	}
	ic.samples = append(ic.samples, camera.CursorSample{X: float32(x), Y: float32(y)})
}

func (ic *collectorImpl) Frame() Frame {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	f := Frame{
		held:     copyActions(ic.held),
		pressed:  ic.pressed,
		released: ic.released,
		samples:  ic.samples,
	}

	if ic.dropped > 0 {
		ic.logger.Debug("cursor samples dropped", zap.Int("dropped", ic.dropped))
		ic.dropped = 0
	}

	ic.pressed = make(map[camera.Action]bool)
	ic.released = make(map[camera.Action]bool)
	ic.samples = nil
	return f
}

func (ic *collectorImpl) SetBindings(bindings Bindings) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	for action, held := range ic.held {
		if held {
			ic.released[action] = true
		}
	}
	ic.held = make(map[camera.Action]bool)
	ic.bindings = copyBindings(bindings)
}

func (ic *collectorImpl) Bindings() Bindings {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return copyBindings(ic.bindings)
}

func copyActions(src map[camera.Action]bool) map[camera.Action]bool {
	dst := make(map[camera.Action]bool, len(src))
	for k, v := range src {
		if v {
			dst[k] = v
		}
	}
	return dst
}

func copyBindings(src Bindings) Bindings {
	dst := make(Bindings, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// CollectorOption is a functional option for configuring a Collector.
type CollectorOption func(*collectorImpl)

// WithBindings sets the initial action bindings.
//
// Parameters:
//   - bindings: the action map
//
// Returns:
//   - CollectorOption: option function to apply
func WithBindings(bindings Bindings) CollectorOption {
	return func(ic *collectorImpl) {
		ic.bindings = copyBindings(bindings)
	}
}

// WithMaxBufferedSamples caps the cursor samples kept between frames. Zero or less means unbounded.
//
// Parameters:
//   - n: maximum number of samples
//
// Returns:
//   - CollectorOption: option function to apply
func WithMaxBufferedSamples(n int) CollectorOption {
	return func(ic *collectorImpl) {
		ic.maxSamples = n
	}
}

// WithLogger sets the logger used for dropped-sample reports. A nil logger is ignored.
//
// Parameters:
//   - logger: the parent logger; the collector logs under the "input" name
//
// Returns:
//   - CollectorOption: option function to apply
func WithLogger(logger *zap.Logger) CollectorOption {
	return func(ic *collectorImpl) {
		if logger != nil {
			ic.logger = logger.Named("input")
		}
	}
}
