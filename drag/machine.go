package drag

import "log/slog"

var transitions = map[DragState][]DragState{
	StateIdle:                    {StateDraggingFromPalette, StateDraggingCanvasComponent},
	StateDraggingFromPalette:     {StateDragEnding, StateIdle},
	StateDraggingCanvasComponent: {StateDragEnding, StateIdle},
	StateDragEnding:              {StateIdle},
}

// StateMachine owns the authoritative DragContext. It is the only writer.
type StateMachine struct {
	ctx     DragContext
	monitor *PerformanceMonitor
	logger  *slog.Logger
}

// NewStateMachine returns a machine in IDLE. monitor may be nil.
func NewStateMachine(monitor *PerformanceMonitor, logger *slog.Logger) *StateMachine {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateMachine{
		ctx:     DragContext{State: StateIdle},
		monitor: monitor,
		logger:  logger,
	}
}

// State returns the current state.
func (m *StateMachine) State() DragState {
	return m.ctx.State
}

// Context returns a copy of the current context.
func (m *StateMachine) Context() DragContext {
	return m.ctx
}

// CanTransition checks the transition table only.
func (m *StateMachine) CanTransition(to DragState) bool {
	for _, s := range transitions[m.ctx.State] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves to state to and merges update into the context. An
// illegal transition is logged and leaves everything untouched.
func (m *StateMachine) Transition(to DragState, update ContextUpdate) bool {
	if !m.CanTransition(to) {
		m.logger.Warn("invalid drag transition", "from", m.ctx.State, "to", to)
		return false
	}
	from := m.ctx.State
	m.ctx.apply(update)
	m.ctx.State = to

	switch {
	case from == StateIdle && to.IsDragging():
		m.ctx.PerformanceData = nil
		if m.monitor != nil {
			m.monitor.Start()
		}
	case to == StateIdle:
		m.ctx.DraggedComponent = nil
		m.ctx.TargetElement = nil
		m.ctx.Constraints = nil
		m.ctx.IsDragValid = false
		if m.monitor != nil {
			m.monitor.End()
			perf := m.monitor.Metrics()
			m.ctx.PerformanceData = &perf
			m.monitor.Reset()
		}
	}
	m.logger.Debug("drag transition", "from", from, "to", to)
	return true
}

// Update merges update into the context without changing state. It is how
// an active drag reports movement, since self-transitions are not in the
// table. It fails while idle.
func (m *StateMachine) Update(update ContextUpdate) bool {
	if m.ctx.State == StateIdle {
		m.logger.Warn("drag context update while idle")
		return false
	}
	m.ctx.apply(update)
	return true
}
