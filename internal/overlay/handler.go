package overlay

import (
	"sync"

	"github.com/1broseidon/overlay/internal/platform"
)

// State is the lifecycle state of an overlay window.
type State int

const (
	StateLive State = iota + 1
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateLive:
		return "live"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// EventHandler is the window callback shared by all overlays. Destroying a
// live window terminates it and asks the shared event loop to stop; every
// other notification falls through to default handling.
type EventHandler struct {
	mu     sync.Mutex
	states map[platform.WindowID]State
	quit   func()
}

var _ platform.EventHandler = (*EventHandler)(nil)

// NewEventHandler returns a handler that calls quit to stop the event loop.
func NewEventHandler(quit func()) *EventHandler {
	return &EventHandler{
		states: make(map[platform.WindowID]State),
		quit:   quit,
	}
}

// Track marks id live. Destroy notifications for untracked windows, such as
// a window torn down after a failed paint, are not consumed.
func (h *EventHandler) Track(id platform.WindowID) {
	h.mu.Lock()
	h.states[id] = StateLive
	h.mu.Unlock()
}

// State returns the state of id and whether it is tracked.
func (h *EventHandler) State(id platform.WindowID) (State, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, ok := h.states[id]
	return st, ok
}

// Handle implements platform.EventHandler.
func (h *EventHandler) Handle(ev platform.Event) bool {
	if ev.Kind != platform.EventDestroy {
		return false
	}

	h.mu.Lock()
	st, ok := h.states[ev.Window]
	if !ok || st != StateLive {
		h.mu.Unlock()
		return false
	}
	h.states[ev.Window] = StateTerminated
	h.mu.Unlock()

	if h.quit != nil {
		h.quit()
	}
	return true
}
