package drag

import (
	"io"
	"log/slog"
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingSurface struct {
	visible bool
	shows   int
	hides   int
	last    Ghost
	moves   []Point
}

func (s *recordingSurface) Show(g Ghost) {
	s.visible = true
	s.shows++
	s.last = g
}

func (s *recordingSurface) Move(center Point) {
	s.last.Center = center
	s.moves = append(s.moves, center)
}

func (s *recordingSurface) Hide() {
	s.visible = false
	s.hides++
}

type fixedRect Rect

func (r fixedRect) BoundingRect() Rect { return Rect(r) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testRig struct {
	sys     *System
	loop    *FrameLoop
	target  *Dispatcher
	clock   *fakeClock
	surface *recordingSurface
	states  []DragContext
	drops   []Drop
}

func newTestRig(cons DragConstraints) *testRig {
	r := &testRig{
		loop:    NewFrameLoop(),
		target:  NewDispatcher(),
		clock:   newFakeClock(),
		surface: &recordingSurface{},
	}
	r.sys = NewSystem(Options{
		Logger:        quietLogger(),
		Clock:         r.clock.Now,
		Scheduler:     r.loop,
		Target:        r.target,
		Surface:       r.surface,
		Memory:        func() (uint64, bool) { return 4096, true },
		Constraints:   func() DragConstraints { return cons },
		OnStateChange: func(ctx DragContext) { r.states = append(r.states, ctx) },
		OnDrop:        func(d Drop) { r.drops = append(r.drops, d) },
	})
	return r
}

// move dispatches a mouse move one frame later and runs that frame.
func (r *testRig) move(x, y float64) {
	r.clock.Advance(FrameInterval + time.Millisecond)
	r.target.Dispatch(&MouseEvent{Type: EventMouseMove, ClientX: x, ClientY: y, PageX: x, PageY: y})
	r.loop.Tick(r.clock.Now())
}

func (r *testRig) release(x, y float64) {
	r.clock.Advance(time.Millisecond)
	r.target.Dispatch(&MouseEvent{Type: EventMouseUp, ClientX: x, ClientY: y, PageX: x, PageY: y})
}

func mouseDown(x, y float64, target Element) *MouseEvent {
	return &MouseEvent{Type: EventMouseDown, ClientX: x, ClientY: y, PageX: x, PageY: y, Target: target}
}
