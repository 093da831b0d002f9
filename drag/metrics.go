package drag

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts drag activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	SessionsStarted  *prometheus.CounterVec
	SessionsRejected prometheus.Counter
	SessionsEnded    *prometheus.CounterVec
	MoveUpdates      prometheus.Counter
	FrameSeconds     prometheus.Histogram
}

// NewMetrics registers the drag metrics with reg. Pass a fresh registry in
// tests; the CLI passes prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SessionsStarted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "canvas_drag_sessions_started_total",
			Help: "Drag sessions started, by source",
		}, []string{"source"}),
		SessionsRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "canvas_drag_sessions_rejected_total",
			Help: "Drag starts rejected because a drag was already active",
		}),
		SessionsEnded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "canvas_drag_sessions_ended_total",
			Help: "Drag sessions ended, by outcome",
		}, []string{"outcome"}),
		MoveUpdates: f.NewCounter(prometheus.CounterOpts{
			Name: "canvas_drag_move_updates_total",
			Help: "Throttled move updates applied to the drag context",
		}),
		FrameSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "canvas_drag_frame_seconds",
			Help:    "Frame interval sampled while a drag is active",
			Buckets: []float64{0.004, 0.008, 0.0167, 0.025, 0.033, 0.05, 0.1, 0.25},
		}),
	}
}

func (m *Metrics) SessionStarted(source string) {
	if m == nil || m.SessionsStarted == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(source).Inc()
}

func (m *Metrics) SessionRejected() {
	if m == nil || m.SessionsRejected == nil {
		return
	}
	m.SessionsRejected.Inc()
}

func (m *Metrics) SessionEnded(outcome string) {
	if m == nil || m.SessionsEnded == nil {
		return
	}
	m.SessionsEnded.WithLabelValues(outcome).Inc()
}

func (m *Metrics) MoveApplied() {
	if m == nil || m.MoveUpdates == nil {
		return
	}
	m.MoveUpdates.Inc()
}

func (m *Metrics) ObserveFrame(d time.Duration) {
	if m == nil || m.FrameSeconds == nil {
		return
	}
	m.FrameSeconds.Observe(d.Seconds())
}
