package input

import (
	"canvas-builder/drag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Device is the slice of ebiten's input API the poller reads.
type Device interface {
	CursorPosition() (int, int)
	MouseButtonPressed(b ebiten.MouseButton) bool
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
	KeyJustPressed(k ebiten.Key) bool
	Wheel() (float64, float64)
}

// Host defines the callbacks the input system needs from the main game.
type Host interface {
	// TargetAt returns the element under a viewport point, or nil.
	TargetAt(x, y float64) drag.Element
	IsDragging() bool
	CancelDrag()
	ApplyPan(dx, dy float64)
	ApplyZoom(delta, x, y float64)
	ToggleDebug()
	RequestScreenshot()
}

// InputSystem turns polled ebiten state into pointer events on a dispatcher.
// ebiten has no event queue, so edges are derived by diffing each tick
// against the previous one.
type InputSystem struct {
	host   Host
	device Device
	target *drag.Dispatcher

	mouseDown bool
	lastMouse drag.Point
	hasMouse  bool

	touches map[ebiten.TouchID]drag.Point
	order   []ebiten.TouchID
	ids     []ebiten.TouchID

	isPanning bool
	panFrom   drag.Point
}

func NewInputSystem(h Host, device Device, target *drag.Dispatcher) *InputSystem {
	if device == nil {
		device = EbitenDevice{}
	}
	return &InputSystem{
		host:    h,
		device:  device,
		target:  target,
		touches: make(map[ebiten.TouchID]drag.Point),
	}
}

func (is *InputSystem) Update() {
	is.handleControlKeys()
	is.handleZoom()
	is.handleMouse()
	is.handleTouches()
	is.handlePanning()
}

func (is *InputSystem) handleControlKeys() {
	if is.device.KeyJustPressed(ebiten.KeyEscape) && is.host.IsDragging() {
		is.host.CancelDrag()
	}
	if is.device.KeyJustPressed(ebiten.KeyF3) {
		is.host.ToggleDebug()
	}
	if is.device.KeyJustPressed(ebiten.KeyF12) {
		is.host.RequestScreenshot()
	}
}

func (is *InputSystem) handleZoom() {
	if is.host.IsDragging() {
		return
	}
	_, dy := is.device.Wheel()
	if dy == 0 {
		return
	}
	mx, my := is.device.CursorPosition()
	is.host.ApplyZoom(dy, float64(mx), float64(my))
}

func (is *InputSystem) handleMouse() {
	mx, my := is.device.CursorPosition()
	p := drag.Point{X: float64(mx), Y: float64(my)}
	pressed := is.device.MouseButtonPressed(ebiten.MouseButtonLeft)

	moved := !is.hasMouse || p != is.lastMouse
	is.lastMouse, is.hasMouse = p, true

	switch {
	case pressed && !is.mouseDown:
		is.mouseDown = true
		is.dispatchMouse(drag.EventMouseDown, p)
	case !pressed && is.mouseDown:
		is.mouseDown = false
		if moved {
			is.dispatchMouse(drag.EventMouseMove, p)
		}
		is.dispatchMouse(drag.EventMouseUp, p)
	case moved:
		is.dispatchMouse(drag.EventMouseMove, p)
	}
}

func (is *InputSystem) dispatchMouse(t drag.EventType, p drag.Point) {
	is.target.Dispatch(&drag.MouseEvent{
		Type:    t,
		ClientX: p.X,
		ClientY: p.Y,
		PageX:   p.X,
		PageY:   p.Y,
		Target:  is.host.TargetAt(p.X, p.Y),
	})
}

func (is *InputSystem) handleTouches() {
	is.ids = is.device.AppendTouchIDs(is.ids[:0])

	current := make(map[ebiten.TouchID]drag.Point, len(is.ids))
	for _, id := range is.ids {
		x, y := is.device.TouchPosition(id)
		current[id] = drag.Point{X: float64(x), Y: float64(y)}
	}

	var started, moved, ended []ebiten.TouchID
	for _, id := range is.order {
		p, ok := current[id]
		if !ok {
			ended = append(ended, id)
			continue
		}
		if p != is.touches[id] {
			moved = append(moved, id)
		}
	}
	for _, id := range is.ids {
		if _, ok := is.touches[id]; !ok {
			started = append(started, id)
		}
	}

	// Released touches keep their last known position.
	last := is.touches
	is.touches = current
	is.order = append(is.order[:0], is.ids...)

	if len(ended) > 0 {
		is.dispatchTouch(drag.EventTouchEnd, ended, last)
	}
	if len(moved) > 0 {
		is.dispatchTouch(drag.EventTouchMove, moved, current)
	}
	if len(started) > 0 {
		is.dispatchTouch(drag.EventTouchStart, started, current)
	}
}

func (is *InputSystem) dispatchTouch(t drag.EventType, changed []ebiten.TouchID, positions map[ebiten.TouchID]drag.Point) {
	ev := &drag.TouchEvent{Type: t}
	for _, id := range is.order {
		ev.Touches = append(ev.Touches, is.touchPoint(id, is.touches[id]))
	}
	for _, id := range changed {
		ev.ChangedTouches = append(ev.ChangedTouches, is.touchPoint(id, positions[id]))
	}
	if len(ev.ChangedTouches) > 0 {
		ev.Target = ev.ChangedTouches[0].Target
	}
	is.target.Dispatch(ev)
}

func (is *InputSystem) touchPoint(id ebiten.TouchID, p drag.Point) drag.TouchPoint {
	return drag.TouchPoint{
		Identifier: int(id),
		ClientX:    p.X,
		ClientY:    p.Y,
		PageX:      p.X,
		PageY:      p.Y,
		Target:     is.host.TargetAt(p.X, p.Y),
	}
}

func (is *InputSystem) handlePanning() {
	// The view stays put while a drag is active.
	held := !is.host.IsDragging() &&
		(is.device.MouseButtonPressed(ebiten.MouseButtonMiddle) || is.device.MouseButtonPressed(ebiten.MouseButtonRight))

	if !is.isPanning {
		if held {
			is.isPanning = true
			is.panFrom = is.lastMouse
		}
		return
	}
	if !held {
		is.isPanning = false
		return
	}
	d := is.lastMouse.Sub(is.panFrom)
	if d.X != 0 || d.Y != 0 {
		is.host.ApplyPan(d.X, d.Y)
	}
	is.panFrom = is.lastMouse
}

// EbitenDevice reads the live ebiten input state.
type EbitenDevice struct{}

func (EbitenDevice) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (EbitenDevice) MouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}

func (EbitenDevice) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (EbitenDevice) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

func (EbitenDevice) KeyJustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

func (EbitenDevice) Wheel() (float64, float64) { return ebiten.Wheel() }
