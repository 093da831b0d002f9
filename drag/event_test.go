package drag

import "testing"

func TestNormalizeMouse(t *testing.T) {
	target := fixedRect{10, 10, 50, 50}
	raw := &MouseEvent{Type: EventMouseDown, ClientX: 12, ClientY: 34, PageX: 112, PageY: 134, Target: target}

	ev := Normalize(raw)
	if ev.Type != PointerMouse {
		t.Errorf("Expected mouse type, got %s", ev.Type)
	}
	if ev.ClientX != 12 || ev.ClientY != 34 || ev.PageX != 112 || ev.PageY != 134 {
		t.Errorf("Coordinates not passed through: %+v", ev)
	}
	if ev.Target != target {
		t.Errorf("Expected target to be passed through")
	}
	if ev.HasIdentifier {
		t.Errorf("Mouse events carry no identifier")
	}

	ev.PreventDefault()
	ev.StopPropagation()
	if !raw.DefaultPrevented() || !raw.PropagationStopped() {
		t.Errorf("Expected flags to reach the raw event")
	}
}

func TestNormalizeTouchUsesActiveTouches(t *testing.T) {
	raw := &TouchEvent{
		Type:           EventTouchMove,
		Touches:        []TouchPoint{{Identifier: 7, ClientX: 5, ClientY: 6, PageX: 15, PageY: 16}},
		ChangedTouches: []TouchPoint{{Identifier: 9, ClientX: 99, ClientY: 99}},
	}
	ev := Normalize(raw)
	if ev.Type != PointerTouch {
		t.Errorf("Expected touch type, got %s", ev.Type)
	}
	if ev.ClientX != 5 || ev.ClientY != 6 || ev.PageX != 15 || ev.PageY != 16 {
		t.Errorf("Expected first active touch, got %+v", ev)
	}
	if !ev.HasIdentifier || ev.Identifier != 7 {
		t.Errorf("Expected identifier 7, got %d (set=%v)", ev.Identifier, ev.HasIdentifier)
	}
}

func TestNormalizeTouchFallsBackToChanged(t *testing.T) {
	raw := &TouchEvent{
		Type:           EventTouchEnd,
		ChangedTouches: []TouchPoint{{Identifier: 3, ClientX: 40, ClientY: 41}},
	}
	ev := Normalize(raw)
	if ev.ClientX != 40 || ev.ClientY != 41 || ev.Identifier != 3 {
		t.Errorf("Expected ended touch to be used, got %+v", ev)
	}
}

func TestNormalizeMalformedInput(t *testing.T) {
	ev := Normalize(&TouchEvent{Type: EventTouchCancel})
	if ev.ClientX != 0 || ev.ClientY != 0 || ev.HasIdentifier {
		t.Errorf("Expected zero coordinates without identifier, got %+v", ev)
	}

	var nilMouse *MouseEvent
	ev = Normalize(nilMouse)
	if ev.Type != PointerMouse || ev.ClientX != 0 {
		t.Errorf("Expected zero mouse event, got %+v", ev)
	}
	ev.PreventDefault()
	ev.StopPropagation()

	ev = Normalize(nil)
	if ev.Type != PointerMouse {
		t.Errorf("Expected nil input to normalize as mouse, got %s", ev.Type)
	}
	ev.PreventDefault()
}

func TestNormalizeTouchMouseParity(t *testing.T) {
	points := []Point{{0, 0}, {150, 200}, {-3.5, 1024}}
	for _, p := range points {
		m := Normalize(&MouseEvent{Type: EventMouseMove, ClientX: p.X, ClientY: p.Y})
		tc := Normalize(&TouchEvent{Type: EventTouchMove, Touches: []TouchPoint{{ClientX: p.X, ClientY: p.Y}}})
		if m.ClientX != tc.ClientX || m.ClientY != tc.ClientY {
			t.Errorf("Parity broken at %v: mouse %v,%v touch %v,%v", p, m.ClientX, m.ClientY, tc.ClientX, tc.ClientY)
		}
	}
}

func TestDispatcherDeliversAndRemoves(t *testing.T) {
	d := NewDispatcher()
	var calls []string
	h1 := d.AddEventListener(EventMouseMove, func(RawEvent) { calls = append(calls, "a") }, ListenerOptions{})
	d.AddEventListener(EventMouseMove, func(RawEvent) { calls = append(calls, "b") }, ListenerOptions{})
	d.AddEventListener(EventMouseUp, func(RawEvent) { calls = append(calls, "up") }, ListenerOptions{})

	d.Dispatch(&MouseEvent{Type: EventMouseMove})
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("Expected [a b], got %v", calls)
	}

	h1.Remove()
	h1.Remove()
	calls = nil
	d.Dispatch(&MouseEvent{Type: EventMouseMove})
	if len(calls) != 1 || calls[0] != "b" {
		t.Errorf("Expected [b] after removal, got %v", calls)
	}
	if n := d.ListenerCount(EventMouseMove); n != 1 {
		t.Errorf("Expected 1 listener, got %d", n)
	}
}

func TestDispatcherStopPropagation(t *testing.T) {
	d := NewDispatcher()
	second := false
	d.AddEventListener(EventTouchStart, func(e RawEvent) { Normalize(e).StopPropagation() }, ListenerOptions{})
	d.AddEventListener(EventTouchStart, func(RawEvent) { second = true }, ListenerOptions{})

	d.Dispatch(&TouchEvent{Type: EventTouchStart})
	if second {
		t.Errorf("Expected propagation to stop after the first listener")
	}
}

func TestDispatcherPassiveCannotPreventDefault(t *testing.T) {
	d := NewDispatcher()
	d.AddEventListener(EventTouchMove, func(e RawEvent) { Normalize(e).PreventDefault() }, ListenerOptions{Passive: true})
	raw := &TouchEvent{Type: EventTouchMove}
	d.Dispatch(raw)
	if raw.DefaultPrevented() {
		t.Errorf("Passive listener should not prevent default")
	}

	d.AddEventListener(EventTouchMove, func(e RawEvent) { Normalize(e).PreventDefault() }, ListenerOptions{})
	d.Dispatch(raw)
	if !raw.DefaultPrevented() {
		t.Errorf("Active listener should prevent default")
	}
}

func TestDispatcherListenerAddedDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	late := 0
	d.AddEventListener(EventMouseMove, func(RawEvent) {
		d.AddEventListener(EventMouseMove, func(RawEvent) { late++ }, ListenerOptions{})
	}, ListenerOptions{})

	d.Dispatch(&MouseEvent{Type: EventMouseMove})
	if late != 0 {
		t.Errorf("Listener added during dispatch should wait for the next event, ran %d times", late)
	}
}
