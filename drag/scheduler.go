package drag

import (
	"context"
	"time"
)

// FrameID identifies a scheduled frame callback. Zero is never issued.
type FrameID uint64

// FrameCallback runs once on the next frame with that frame's timestamp.
type FrameCallback func(now time.Time)

// FrameScheduler is the animation-frame analogue: callbacks requested now run
// on the next frame tick, and a cancelled callback never runs.
type FrameScheduler interface {
	RequestFrame(cb FrameCallback) FrameID
	CancelFrame(id FrameID)
}

type pendingFrame struct {
	id FrameID
	cb FrameCallback
}

// FrameLoop is a FrameScheduler driven by explicit Tick calls, one per
// rendered frame (ebiten's Update). It is not safe for concurrent use; tick it
// from the goroutine that dispatches input.
type FrameLoop struct {
	pending []pendingFrame
	running []pendingFrame
	nextID  FrameID
}

func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

func (l *FrameLoop) RequestFrame(cb FrameCallback) FrameID {
	if cb == nil {
		return 0
	}
	l.nextID++
	l.pending = append(l.pending, pendingFrame{id: l.nextID, cb: cb})
	return l.nextID
}

func (l *FrameLoop) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i := range l.running {
		if l.running[i].id == id {
			l.running[i] = pendingFrame{}
			return
		}
	}
	for i := range l.pending {
		if l.pending[i].id == id {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next tick.
func (l *FrameLoop) Pending() int {
	return len(l.pending)
}

// Tick runs every callback requested before this call. Callbacks requested
// while ticking wait for the following tick; callbacks cancelled while
// ticking are skipped.
func (l *FrameLoop) Tick(now time.Time) {
	l.running = l.pending
	l.pending = nil
	for i := 0; i < len(l.running); i++ {
		f := l.running[i]
		if f.id == 0 {
			continue
		}
		f.cb(now)
	}
	l.running = nil
}

// Run ticks l at the given interval on the calling goroutine until ctx is
// done. It suits headless hosts that have no render loop.
func (l *FrameLoop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Tick(now)
		}
	}
}
