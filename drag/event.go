package drag

// EventType names a raw device event, mirroring the DOM event names.
type EventType string

const (
	EventMouseDown   EventType = "mousedown"
	EventMouseMove   EventType = "mousemove"
	EventMouseUp     EventType = "mouseup"
	EventTouchStart  EventType = "touchstart"
	EventTouchMove   EventType = "touchmove"
	EventTouchEnd    EventType = "touchend"
	EventTouchCancel EventType = "touchcancel"
)

// PointerType tags the device family of a normalized event.
type PointerType string

const (
	PointerMouse PointerType = "mouse"
	PointerTouch PointerType = "touch"
)

// Element is anything under the pointer that can report its on-screen box.
type Element interface {
	BoundingRect() Rect
}

// Propagation carries the default/propagation flags of one raw event.
type Propagation struct {
	passive            bool
	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the event handled. It has no effect while a passive
// listener runs.
func (p *Propagation) PreventDefault() {
	if p == nil || p.passive {
		return
	}
	p.defaultPrevented = true
}

// StopPropagation stops delivery to the remaining listeners.
func (p *Propagation) StopPropagation() {
	if p == nil {
		return
	}
	p.propagationStopped = true
}

func (p *Propagation) DefaultPrevented() bool {
	return p != nil && p.defaultPrevented
}

func (p *Propagation) PropagationStopped() bool {
	return p != nil && p.propagationStopped
}

// RawEvent is a device event as delivered by the input layer. It is
// implemented only by *MouseEvent and *TouchEvent.
type RawEvent interface {
	EventType() EventType
	propagation() *Propagation
}

// MouseEvent is a mouse-family raw event.
type MouseEvent struct {
	Propagation
	Type             EventType
	ClientX, ClientY float64
	PageX, PageY     float64
	Target           Element
}

func (e *MouseEvent) EventType() EventType {
	if e == nil {
		return ""
	}
	return e.Type
}

func (e *MouseEvent) propagation() *Propagation {
	if e == nil {
		return nil
	}
	return &e.Propagation
}

// TouchPoint is one finger in a touch event.
type TouchPoint struct {
	Identifier       int
	ClientX, ClientY float64
	PageX, PageY     float64
	Target           Element
}

// TouchEvent is a touch-family raw event. Touches holds the fingers still
// down, ChangedTouches the ones that triggered this event.
type TouchEvent struct {
	Propagation
	Type           EventType
	Touches        []TouchPoint
	ChangedTouches []TouchPoint
	Target         Element
}

func (e *TouchEvent) EventType() EventType {
	if e == nil {
		return ""
	}
	return e.Type
}

func (e *TouchEvent) propagation() *Propagation {
	if e == nil {
		return nil
	}
	return &e.Propagation
}

// NormalizedEvent is the canonical shape every consumer of device input sees.
type NormalizedEvent struct {
	Type             PointerType
	ClientX, ClientY float64
	PageX, PageY     float64
	Target           Element
	Identifier       int
	HasIdentifier    bool

	prop *Propagation
}

// Client returns the viewport position of the event.
func (e NormalizedEvent) Client() Point {
	return Point{X: e.ClientX, Y: e.ClientY}
}

// hasPoint reports whether the coordinates came from a real pointer rather
// than zero defaults.
func (e NormalizedEvent) hasPoint() bool {
	if e.prop == nil {
		return false
	}
	return e.Type == PointerMouse || e.HasIdentifier
}

func (e NormalizedEvent) PreventDefault() {
	e.prop.PreventDefault()
}

func (e NormalizedEvent) StopPropagation() {
	e.prop.StopPropagation()
}

// Normalize folds a mouse or touch event into one NormalizedEvent. It never
// panics; missing data becomes zero values.
func Normalize(raw RawEvent) NormalizedEvent {
	switch e := raw.(type) {
	case *MouseEvent:
		if e == nil {
			return NormalizedEvent{Type: PointerMouse}
		}
		return NormalizedEvent{
			Type:    PointerMouse,
			ClientX: e.ClientX,
			ClientY: e.ClientY,
			PageX:   e.PageX,
			PageY:   e.PageY,
			Target:  e.Target,
			prop:    &e.Propagation,
		}
	case *TouchEvent:
		if e == nil {
			return NormalizedEvent{Type: PointerTouch}
		}
		var tp *TouchPoint
		if len(e.Touches) > 0 {
			tp = &e.Touches[0]
		} else if len(e.ChangedTouches) > 0 {
			tp = &e.ChangedTouches[0]
		}
		return normalizeTouch(e, tp)
	}
	return NormalizedEvent{Type: PointerMouse}
}

func normalizeTouch(e *TouchEvent, tp *TouchPoint) NormalizedEvent {
	n := NormalizedEvent{Type: PointerTouch, Target: e.Target, prop: &e.Propagation}
	if tp != nil {
		n.ClientX, n.ClientY = tp.ClientX, tp.ClientY
		n.PageX, n.PageY = tp.PageX, tp.PageY
		n.Identifier = tp.Identifier
		n.HasIdentifier = true
		if tp.Target != nil {
			n.Target = tp.Target
		}
	}
	return n
}

// NormalizeChanged normalizes the finger id of a touch event, looking only at
// the touches that changed. It reports false when that finger is not among
// them. Other events go through Normalize.
func NormalizeChanged(raw RawEvent, id int) (NormalizedEvent, bool) {
	e, ok := raw.(*TouchEvent)
	if !ok || e == nil {
		return Normalize(raw), true
	}
	for i := range e.ChangedTouches {
		if e.ChangedTouches[i].Identifier == id {
			return normalizeTouch(e, &e.ChangedTouches[i]), true
		}
	}
	return NormalizedEvent{}, false
}

// startingTouch returns the finger that triggered a touch start.
func startingTouch(raw RawEvent) (int, bool) {
	e, ok := raw.(*TouchEvent)
	if !ok || e == nil || len(e.ChangedTouches) == 0 {
		return 0, false
	}
	return e.ChangedTouches[0].Identifier, true
}

// normalizeStart normalizes a drag start. For touch it follows the finger
// that went down, not whichever finger happens to be listed first.
func normalizeStart(raw RawEvent) NormalizedEvent {
	if id, ok := startingTouch(raw); ok {
		ev, _ := NormalizeChanged(raw, id)
		return ev
	}
	return Normalize(raw)
}

// Listener receives raw events from an EventTarget.
type Listener func(RawEvent)

// ListenerOptions mirrors addEventListener options.
type ListenerOptions struct {
	Passive bool
}

// ListenerHandle removes a registered listener. Removing twice is a no-op.
type ListenerHandle struct {
	id uint32
	d  *Dispatcher
	t  EventType
}

// Remove unregisters the listener.
func (h ListenerHandle) Remove() {
	if h.d == nil {
		return
	}
	h.d.remove(h.t, h.id)
}

// EventTarget is the document the event handler subscribes to.
type EventTarget interface {
	AddEventListener(t EventType, fn Listener, opts ListenerOptions) ListenerHandle
}

type registration struct {
	id   uint32
	fn   Listener
	opts ListenerOptions
}

// Dispatcher is an in-process EventTarget. The input layer feeds it with
// Dispatch; listeners run synchronously in registration order.
type Dispatcher struct {
	listeners map[EventType][]registration
	nextID    uint32
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]registration)}
}

func (d *Dispatcher) AddEventListener(t EventType, fn Listener, opts ListenerOptions) ListenerHandle {
	if fn == nil {
		return ListenerHandle{}
	}
	d.nextID++
	d.listeners[t] = append(d.listeners[t], registration{id: d.nextID, fn: fn, opts: opts})
	return ListenerHandle{id: d.nextID, d: d, t: t}
}

func (d *Dispatcher) remove(t EventType, id uint32) {
	regs := d.listeners[t]
	for i := range regs {
		if regs[i].id == id {
			copy(regs[i:], regs[i+1:])
			regs[len(regs)-1] = registration{}
			d.listeners[t] = regs[:len(regs)-1]
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for t.
func (d *Dispatcher) ListenerCount(t EventType) int {
	return len(d.listeners[t])
}

// Dispatch delivers raw to the listeners registered for its type. Listeners
// added or removed during delivery take effect on the next event.
func (d *Dispatcher) Dispatch(raw RawEvent) {
	if raw == nil {
		return
	}
	regs := d.listeners[raw.EventType()]
	if len(regs) == 0 {
		return
	}
	snapshot := append([]registration(nil), regs...)
	prop := raw.propagation()
	for _, r := range snapshot {
		if prop != nil {
			prop.passive = r.opts.Passive
		}
		r.fn(raw)
		if prop != nil {
			prop.passive = false
			if prop.propagationStopped {
				return
			}
		}
	}
}
