package drag

import (
	"testing"
	"time"
)

func newTestMonitor() (*PerformanceMonitor, *FrameLoop, *fakeClock) {
	loop := NewFrameLoop()
	clock := newFakeClock()
	m := NewPerformanceMonitor(loop, clock.Now, quietLogger(), WithMemorySampler(func() (uint64, bool) { return 2048, true }))
	return m, loop, clock
}

func TestMonitorSamplesEveryFrame(t *testing.T) {
	m, loop, clock := newTestMonitor()
	m.Start()

	for i := 0; i < 4; i++ {
		clock.Advance(10 * time.Millisecond)
		loop.Tick(clock.Now())
	}
	m.End()

	got := m.Metrics()
	if got.FrameCount != 4 {
		t.Errorf("Expected 4 frames, got %d", got.FrameCount)
	}
	if got.AverageFrameTime != 10*time.Millisecond {
		t.Errorf("Expected 10ms average, got %v", got.AverageFrameTime)
	}
	if !got.LastFrameTime.Equal(clock.Now()) {
		t.Errorf("Expected last frame %v, got %v", clock.Now(), got.LastFrameTime)
	}
	if got.MemoryUsage != 2048 {
		t.Errorf("Expected memory 2048, got %d", got.MemoryUsage)
	}
	if got.Duration != 40*time.Millisecond {
		t.Errorf("Expected 40ms session, got %v", got.Duration)
	}
}

func TestMonitorEndStopsLoopButKeepsCounters(t *testing.T) {
	m, loop, clock := newTestMonitor()
	m.Start()
	clock.Advance(16 * time.Millisecond)
	loop.Tick(clock.Now())
	m.End()

	if loop.Pending() != 0 {
		t.Errorf("Expected no pending frame after End, got %d", loop.Pending())
	}
	clock.Advance(16 * time.Millisecond)
	loop.Tick(clock.Now())
	if got := m.Metrics().FrameCount; got != 1 {
		t.Errorf("Expected counters kept at 1 frame, got %d", got)
	}
}

func TestMonitorNoFramesAverageIsZero(t *testing.T) {
	m, _, _ := newTestMonitor()
	m.Start()
	if got := m.Metrics(); got.FrameCount != 0 || got.AverageFrameTime != 0 {
		t.Errorf("Expected empty metrics, got %+v", got)
	}
}

func TestMonitorRestartDoesNotStackLoops(t *testing.T) {
	m, loop, clock := newTestMonitor()
	m.Start()
	m.Start()
	m.Start()
	if loop.Pending() != 1 {
		t.Fatalf("Expected a single sampling loop, got %d pending frames", loop.Pending())
	}
	clock.Advance(16 * time.Millisecond)
	loop.Tick(clock.Now())
	if got := m.Metrics().FrameCount; got != 1 {
		t.Errorf("Expected 1 frame, got %d", got)
	}
}

func TestMonitorResetIdempotent(t *testing.T) {
	m, loop, clock := newTestMonitor()
	m.Reset()
	m.Start()
	clock.Advance(16 * time.Millisecond)
	loop.Tick(clock.Now())
	m.Reset()
	m.Reset()

	if loop.Pending() != 0 {
		t.Errorf("Expected reset to cancel the pending frame")
	}
	got := m.Metrics()
	if got.FrameCount != 0 || got.AverageFrameTime != 0 || !got.LastFrameTime.IsZero() {
		t.Errorf("Expected zeroed counters, got %+v", got)
	}
	if m.Running() {
		t.Errorf("Expected monitor stopped after reset")
	}
}

func TestMonitorWithoutMemoryCounter(t *testing.T) {
	loop := NewFrameLoop()
	m := NewPerformanceMonitor(loop, nil, quietLogger(), WithMemorySampler(nil))
	if got := m.Metrics().MemoryUsage; got != 0 {
		t.Errorf("Expected 0 memory without a sampler, got %d", got)
	}
	unavailable := NewPerformanceMonitor(loop, nil, quietLogger(), WithMemorySampler(func() (uint64, bool) { return 99, false }))
	if got := unavailable.Metrics().MemoryUsage; got != 0 {
		t.Errorf("Expected 0 memory when unavailable, got %d", got)
	}
}

func TestMarksMissingStartMeasuresZero(t *testing.T) {
	clock := newFakeClock()
	marks := NewMarks(clock.Now, quietLogger())
	if d := marks.Measure("never-marked"); d != 0 {
		t.Errorf("Expected 0 for missing mark, got %v", d)
	}

	marks.Mark("load")
	clock.Advance(25 * time.Millisecond)
	if d := marks.Measure("load"); d != 25*time.Millisecond {
		t.Errorf("Expected 25ms, got %v", d)
	}
	if d := marks.Measure("load"); d != 0 {
		t.Errorf("Expected mark consumed by Measure, got %v", d)
	}
}
