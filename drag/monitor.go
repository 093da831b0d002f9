package drag

import (
	"log/slog"
	"runtime"
	"time"
)

// Clock returns the current time. Tests substitute a manual clock.
type Clock func() time.Time

// MemorySampler reports current memory usage in bytes, or false when the
// platform has no counter.
type MemorySampler func() (uint64, bool)

// RuntimeMemory samples the Go heap.
func RuntimeMemory() (uint64, bool) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc, true
}

// Marks is a named start-time registry for ad hoc durations.
type Marks struct {
	clock  Clock
	logger *slog.Logger
	starts map[string]time.Time
}

func NewMarks(clock Clock, logger *slog.Logger) *Marks {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Marks{clock: clock, logger: logger, starts: make(map[string]time.Time)}
}

// Mark records the current time under name, replacing any earlier mark.
func (m *Marks) Mark(name string) {
	m.starts[name] = m.clock()
}

// Measure returns the time since Mark(name) and forgets the mark. A missing
// mark is a caller bug: it is logged and measures as zero.
func (m *Marks) Measure(name string) time.Duration {
	start, ok := m.starts[name]
	if !ok {
		m.logger.Warn("measure without start mark", "mark", name)
		return 0
	}
	delete(m.starts, name)
	return m.clock().Sub(start)
}

// Clear drops every mark.
func (m *Marks) Clear() {
	for k := range m.starts {
		delete(m.starts, k)
	}
}

const sessionMark = "drag-session"

// PerformanceMonitor samples frame pacing for one drag at a time. The
// sampling loop runs every frame whether or not the pointer moved.
type PerformanceMonitor struct {
	scheduler FrameScheduler
	clock     Clock
	memory    MemorySampler
	marks     *Marks
	metrics   *Metrics

	frameID     FrameID
	running     bool
	frameCount  int
	accumulated time.Duration
	lastFrame   time.Time
	duration    time.Duration
}

// MonitorOption configures a PerformanceMonitor.
type MonitorOption func(*PerformanceMonitor)

// WithMemorySampler overrides the memory counter. nil disables sampling.
func WithMemorySampler(s MemorySampler) MonitorOption {
	return func(m *PerformanceMonitor) { m.memory = s }
}

// WithMonitorMetrics records every sampled frame time.
func WithMonitorMetrics(metrics *Metrics) MonitorOption {
	return func(m *PerformanceMonitor) { m.metrics = metrics }
}

func NewPerformanceMonitor(scheduler FrameScheduler, clock Clock, logger *slog.Logger, opts ...MonitorOption) *PerformanceMonitor {
	if clock == nil {
		clock = time.Now
	}
	m := &PerformanceMonitor{
		scheduler: scheduler,
		clock:     clock,
		memory:    RuntimeMemory,
		marks:     NewMarks(clock, logger),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start resets the counters and begins sampling. Starting an already running
// monitor restarts it rather than stacking a second loop.
func (m *PerformanceMonitor) Start() {
	m.cancelFrame()
	m.frameCount = 0
	m.accumulated = 0
	m.duration = 0
	m.lastFrame = m.clock()
	m.running = true
	m.marks.Mark(sessionMark)
	m.schedule()
}

func (m *PerformanceMonitor) schedule() {
	if m.scheduler == nil {
		return
	}
	m.frameID = m.scheduler.RequestFrame(m.sample)
}

func (m *PerformanceMonitor) sample(now time.Time) {
	m.frameID = 0
	if !m.running {
		return
	}
	elapsed := now.Sub(m.lastFrame)
	if elapsed < 0 {
		elapsed = 0
	}
	m.frameCount++
	m.accumulated += elapsed
	m.lastFrame = now
	m.metrics.ObserveFrame(elapsed)
	m.schedule()
}

// End stops sampling but keeps the counters for Metrics.
func (m *PerformanceMonitor) End() {
	m.cancelFrame()
	if m.running {
		m.duration = m.marks.Measure(sessionMark)
	}
	m.running = false
}

// Running reports whether the sampling loop is active.
func (m *PerformanceMonitor) Running() bool {
	return m.running
}

// Metrics snapshots the counters. It is safe to call at any time.
func (m *PerformanceMonitor) Metrics() PerformanceData {
	d := PerformanceData{
		FrameCount:    m.frameCount,
		LastFrameTime: m.lastFrame,
		Duration:      m.duration,
	}
	if m.frameCount > 0 {
		d.AverageFrameTime = m.accumulated / time.Duration(m.frameCount)
	}
	if m.memory != nil {
		if used, ok := m.memory(); ok {
			d.MemoryUsage = used
		}
	}
	return d
}

// Reset cancels any pending sample and zeroes every counter. Idempotent.
func (m *PerformanceMonitor) Reset() {
	m.cancelFrame()
	m.running = false
	m.frameCount = 0
	m.accumulated = 0
	m.duration = 0
	m.lastFrame = time.Time{}
	m.marks.Clear()
}

func (m *PerformanceMonitor) cancelFrame() {
	if m.frameID != 0 && m.scheduler != nil {
		m.scheduler.CancelFrame(m.frameID)
	}
	m.frameID = 0
}
