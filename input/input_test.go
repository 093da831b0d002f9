package input

import (
	"testing"

	"canvas-builder/drag"

	"github.com/hajimehoshi/ebiten/v2"
)

type fakeDevice struct {
	x, y    int
	buttons map[ebiten.MouseButton]bool
	touches map[ebiten.TouchID][2]int
	keys    map[ebiten.Key]bool
	wheel   float64
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		buttons: map[ebiten.MouseButton]bool{},
		touches: map[ebiten.TouchID][2]int{},
		keys:    map[ebiten.Key]bool{},
	}
}

func (d *fakeDevice) CursorPosition() (int, int) { return d.x, d.y }

func (d *fakeDevice) MouseButtonPressed(b ebiten.MouseButton) bool { return d.buttons[b] }

func (d *fakeDevice) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	for id := ebiten.TouchID(0); id < 10; id++ {
		if _, ok := d.touches[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (d *fakeDevice) TouchPosition(id ebiten.TouchID) (int, int) {
	p := d.touches[id]
	return p[0], p[1]
}

func (d *fakeDevice) KeyJustPressed(k ebiten.Key) bool { return d.keys[k] }

func (d *fakeDevice) Wheel() (float64, float64) { return 0, d.wheel }

type box struct{ name string }

func (b *box) BoundingRect() drag.Rect { return drag.Rect{MaxX: 10, MaxY: 10} }

type fakeHost struct {
	dragging    bool
	cancelled   int
	pans        []drag.Point
	zooms       []float64
	debug       int
	screenshots int
	hit         drag.Element
}

func (h *fakeHost) TargetAt(x, y float64) drag.Element {
	if x < 10 && y < 10 {
		return h.hit
	}
	return nil
}
func (h *fakeHost) IsDragging() bool              { return h.dragging }
func (h *fakeHost) CancelDrag()                   { h.cancelled++ }
func (h *fakeHost) ApplyPan(dx, dy float64)       { h.pans = append(h.pans, drag.Point{X: dx, Y: dy}) }
func (h *fakeHost) ApplyZoom(delta, x, y float64) { h.zooms = append(h.zooms, delta) }
func (h *fakeHost) ToggleDebug()                  { h.debug++ }
func (h *fakeHost) RequestScreenshot()            { h.screenshots++ }

type recorded struct {
	typ    drag.EventType
	norm   drag.NormalizedEvent
	target drag.Element
}

func setup() (*InputSystem, *fakeDevice, *fakeHost, *[]recorded) {
	dev := newFakeDevice()
	host := &fakeHost{hit: &box{name: "palette"}}
	d := drag.NewDispatcher()
	var events []recorded
	for _, t := range []drag.EventType{
		drag.EventMouseDown, drag.EventMouseMove, drag.EventMouseUp,
		drag.EventTouchStart, drag.EventTouchMove, drag.EventTouchEnd,
	} {
		d.AddEventListener(t, func(raw drag.RawEvent) {
			n := drag.Normalize(raw)
			events = append(events, recorded{typ: raw.EventType(), norm: n, target: n.Target})
		}, drag.ListenerOptions{})
	}
	return NewInputSystem(host, dev, d), dev, host, &events
}

func types(events []recorded) []drag.EventType {
	out := make([]drag.EventType, len(events))
	for i, e := range events {
		out[i] = e.typ
	}
	return out
}

func equalTypes(a, b []drag.EventType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMouseEdgesBecomeEvents(t *testing.T) {
	is, dev, host, events := setup()

	dev.x, dev.y = 5, 5
	dev.buttons[ebiten.MouseButtonLeft] = true
	is.Update()

	dev.x, dev.y = 50, 60
	is.Update()
	is.Update() // no movement, no event

	dev.buttons[ebiten.MouseButtonLeft] = false
	is.Update()

	want := []drag.EventType{drag.EventMouseDown, drag.EventMouseMove, drag.EventMouseUp}
	if got := types(*events); !equalTypes(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	if (*events)[0].target != host.hit {
		t.Errorf("Expected mousedown to carry the hit target")
	}
	if p := (*events)[1].norm.Client(); p.X != 50 || p.Y != 60 {
		t.Errorf("Expected move at (50,60), got %v", p)
	}
	if (*events)[2].target != nil {
		t.Errorf("Expected no target off the element")
	}
}

func TestReleaseAfterMoveSendsMoveFirst(t *testing.T) {
	is, dev, _, events := setup()
	dev.buttons[ebiten.MouseButtonLeft] = true
	is.Update()

	dev.x, dev.y = 30, 30
	dev.buttons[ebiten.MouseButtonLeft] = false
	is.Update()

	want := []drag.EventType{drag.EventMouseDown, drag.EventMouseMove, drag.EventMouseUp}
	if got := types(*events); !equalTypes(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTouchLifecycle(t *testing.T) {
	is, dev, _, events := setup()
	is.Update() // initial cursor position
	*events = nil

	dev.touches[1] = [2]int{3, 4}
	is.Update()
	dev.touches[1] = [2]int{40, 50}
	is.Update()
	delete(dev.touches, 1)
	is.Update()

	want := []drag.EventType{drag.EventTouchStart, drag.EventTouchMove, drag.EventTouchEnd}
	if got := types(*events); !equalTypes(got, want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	start := (*events)[0].norm
	if !start.HasIdentifier || start.Identifier != 1 || start.ClientX != 3 || start.ClientY != 4 {
		t.Errorf("Unexpected touchstart: %+v", start)
	}
	if start.Target == nil {
		t.Errorf("Expected touchstart to carry the hit target")
	}
	end := (*events)[2].norm
	if end.ClientX != 40 || end.ClientY != 50 {
		t.Errorf("Expected touchend at last known position (40,50), got (%v,%v)", end.ClientX, end.ClientY)
	}
}

func TestSecondFingerKeepsFirstAsPrimary(t *testing.T) {
	is, dev, _, events := setup()
	is.Update()
	*events = nil

	dev.touches[1] = [2]int{1, 1}
	is.Update()
	dev.touches[2] = [2]int{90, 90}
	is.Update()

	if len(*events) != 2 {
		t.Fatalf("Expected 2 touchstart events, got %d", len(*events))
	}
	if n := (*events)[1].norm; n.Identifier != 1 {
		t.Errorf("Expected Touches[0] to stay finger 1, got %d", n.Identifier)
	}
}

func TestControlKeys(t *testing.T) {
	is, dev, host, _ := setup()
	dev.keys[ebiten.KeyEscape] = true
	is.Update()
	if host.cancelled != 0 {
		t.Errorf("Expected Escape to do nothing while idle")
	}

	host.dragging = true
	is.Update()
	if host.cancelled != 1 {
		t.Errorf("Expected Escape to cancel an active drag")
	}

	dev.keys = map[ebiten.Key]bool{ebiten.KeyF3: true, ebiten.KeyF12: true}
	is.Update()
	if host.debug != 1 || host.screenshots != 1 {
		t.Errorf("Expected debug toggle and screenshot, got %d/%d", host.debug, host.screenshots)
	}
}

func TestZoomSuppressedWhileDragging(t *testing.T) {
	is, dev, host, _ := setup()
	dev.wheel = 1
	is.Update()
	host.dragging = true
	is.Update()
	if len(host.zooms) != 1 {
		t.Errorf("Expected 1 zoom, got %d", len(host.zooms))
	}
}

func TestMiddleButtonPans(t *testing.T) {
	is, dev, host, _ := setup()
	dev.x, dev.y = 100, 100
	dev.buttons[ebiten.MouseButtonMiddle] = true
	is.Update()
	dev.x, dev.y = 110, 95
	is.Update()
	dev.buttons[ebiten.MouseButtonMiddle] = false
	is.Update()

	if len(host.pans) != 1 || host.pans[0] != (drag.Point{X: 10, Y: -5}) {
		t.Errorf("Expected one pan of (10,-5), got %v", host.pans)
	}
}

func TestNoPanWhileDragging(t *testing.T) {
	is, dev, host, _ := setup()
	host.dragging = true
	dev.x, dev.y = 100, 100
	dev.buttons[ebiten.MouseButtonMiddle] = true
	is.Update()
	dev.x, dev.y = 140, 120
	is.Update()

	if len(host.pans) != 0 {
		t.Errorf("Expected no pan during a drag, got %v", host.pans)
	}
}
