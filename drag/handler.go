package drag

import "time"

// FrameInterval is the move throttle budget (60 updates per second).
const FrameInterval = 16 * time.Millisecond

// HandlerCallbacks are invoked with normalized events. Any may be nil.
type HandlerCallbacks struct {
	OnDragStart func(NormalizedEvent)
	OnDragMove  func(NormalizedEvent)
	OnDragEnd   func(NormalizedEvent)
}

var (
	moveEvents = []EventType{EventMouseMove, EventTouchMove}
	endEvents  = []EventType{EventMouseUp, EventTouchEnd, EventTouchCancel}
)

// EventHandler bridges device events to drag callbacks. It throttles moves
// to one per frame and owns the move/end listener registrations.
type EventHandler struct {
	target    EventTarget
	scheduler FrameScheduler
	clock     Clock
	callbacks HandlerCallbacks

	active    bool
	listeners []ListenerHandle
	lastMove  time.Time
	frameID   FrameID
	pending   NormalizedEvent

	// touchID is the finger a touch session follows.
	touchID     int
	tracksTouch bool
}

func NewEventHandler(target EventTarget, scheduler FrameScheduler, clock Clock, callbacks HandlerCallbacks) *EventHandler {
	if clock == nil {
		clock = time.Now
	}
	return &EventHandler{
		target:    target,
		scheduler: scheduler,
		clock:     clock,
		callbacks: callbacks,
	}
}

// Active reports whether a drag session holds the handler.
func (h *EventHandler) Active() bool {
	return h.active
}

// HandleStart begins a session. A second start while active is ignored.
func (h *EventHandler) HandleStart(raw RawEvent) {
	if h.active {
		return
	}
	h.active = true
	h.lastMove = time.Time{}
	h.pending = NormalizedEvent{}
	h.touchID, h.tracksTouch = startingTouch(raw)
	ev := normalizeStart(raw)
	ev.PreventDefault()
	if h.callbacks.OnDragStart != nil {
		h.callbacks.OnDragStart(ev)
	}
	h.attach()
}

func (h *EventHandler) attach() {
	if h.target == nil {
		return
	}
	opts := ListenerOptions{Passive: false}
	for _, t := range moveEvents {
		h.listeners = append(h.listeners, h.target.AddEventListener(t, h.HandleMove, opts))
	}
	for _, t := range endEvents {
		h.listeners = append(h.listeners, h.target.AddEventListener(t, h.HandleEnd, opts))
	}
}

func (h *EventHandler) detach() {
	for _, l := range h.listeners {
		l.Remove()
	}
	h.listeners = nil
}

// HandleMove accepts at most one event per FrameInterval and defers it to the
// next frame. Events accepted before that frame replace the pending one.
func (h *EventHandler) HandleMove(raw RawEvent) {
	if !h.active {
		return
	}
	ev, ok := h.normalize(raw)
	if !ok {
		return
	}
	now := h.clock()
	if !h.lastMove.IsZero() && now.Sub(h.lastMove) < FrameInterval {
		return
	}
	h.lastMove = now

	ev.PreventDefault()
	h.pending = ev
	h.cancelFrame()
	if h.scheduler == nil {
		h.flush(now)
		return
	}
	h.frameID = h.scheduler.RequestFrame(h.flush)
}

func (h *EventHandler) flush(time.Time) {
	h.frameID = 0
	if !h.active {
		return
	}
	if h.callbacks.OnDragMove != nil {
		h.callbacks.OnDragMove(h.pending)
	}
}

// HandleEnd finishes the session. Ignored while inactive.
func (h *EventHandler) HandleEnd(raw RawEvent) {
	if !h.active {
		return
	}
	ev, ok := h.normalize(raw)
	if !ok {
		return
	}
	h.active = false
	h.detach()
	h.cancelFrame()
	ev.PreventDefault()
	if h.callbacks.OnDragEnd != nil {
		h.callbacks.OnDragEnd(ev)
	}
}

// normalize follows the session's finger. Touch events that do not move or
// lift that finger are not ours.
func (h *EventHandler) normalize(raw RawEvent) (NormalizedEvent, bool) {
	if e, ok := raw.(*TouchEvent); !h.tracksTouch || (ok && e != nil && len(e.ChangedTouches) == 0) {
		return Normalize(raw), true
	}
	return NormalizeChanged(raw, h.touchID)
}

// Cleanup forces the handler inactive without firing OnDragEnd. Safe to
// call repeatedly.
func (h *EventHandler) Cleanup() {
	h.active = false
	h.detach()
	h.cancelFrame()
	h.pending = NormalizedEvent{}
	h.lastMove = time.Time{}
	h.tracksTouch = false
}

func (h *EventHandler) cancelFrame() {
	if h.frameID != 0 && h.scheduler != nil {
		h.scheduler.CancelFrame(h.frameID)
	}
	h.frameID = 0
}
