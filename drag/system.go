package drag

import (
	"log/slog"
	"time"
)

// Drop is handed to the host when a valid drag is released. Position is the
// constrained current position: the top-left for canvas drags, the ghost
// centre for palette drags.
type Drop struct {
	Component *DraggedComponent
	Position  Point
	Offset    Point
	Footprint Rect
	// Constraints is the snapshot the drag was checked against.
	Constraints DragConstraints
}

// Options wires a System to its host. Zero values get working defaults.
type Options struct {
	Logger *slog.Logger
	Clock  Clock
	// Scheduler drives move coalescing and frame sampling. When nil the
	// System owns a FrameLoop that the host advances with Tick.
	Scheduler FrameScheduler
	// Target is where move/end listeners are attached. When nil the System
	// owns a Dispatcher, available from Dispatcher.
	Target  EventTarget
	Surface PreviewSurface
	Metrics *Metrics
	// Memory overrides the monitor's memory counter.
	Memory MemorySampler
	// Constraints is read once per drag start.
	Constraints func() DragConstraints
	Validator   DropValidator
	GhostSize   Size
	// SizeOf gives the footprint of a new component of a palette type. A
	// zero result falls back to GhostSize.
	SizeOf func(ComponentType) Size

	OnStateChange func(DragContext)
	OnDrop        func(Drop)
}

// System composes the normalizer, calculator, monitor, state machine and
// event handler into the drag façade the host talks to.
type System struct {
	logger      *slog.Logger
	loop        *FrameLoop
	dispatcher  *Dispatcher
	surface     PreviewSurface
	metrics     *Metrics
	constraints func() DragConstraints
	validator   DropValidator
	ghostSize   Size
	sizeOf      func(ComponentType) Size

	onStateChange func(DragContext)
	onDrop        func(Drop)

	monitor      *PerformanceMonitor
	machine      *StateMachine
	handler      *EventHandler
	ghostVisible bool
}

func NewSystem(opts Options) *System {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "drag")

	s := &System{
		logger:        logger,
		surface:       opts.Surface,
		metrics:       opts.Metrics,
		constraints:   opts.Constraints,
		validator:     opts.Validator,
		ghostSize:     opts.GhostSize,
		sizeOf:        opts.SizeOf,
		onStateChange: opts.OnStateChange,
		onDrop:        opts.OnDrop,
	}
	if s.surface == nil {
		s.surface = nopSurface{}
	}
	if s.validator == nil {
		s.validator = BoundsValidator
	}
	if s.ghostSize == (Size{}) {
		s.ghostSize = DefaultGhostSize
	}

	scheduler := opts.Scheduler
	if scheduler == nil {
		s.loop = NewFrameLoop()
		scheduler = s.loop
	}
	target := opts.Target
	if target == nil {
		s.dispatcher = NewDispatcher()
		target = s.dispatcher
	}

	monOpts := []MonitorOption{WithMonitorMetrics(opts.Metrics)}
	if opts.Memory != nil {
		monOpts = append(monOpts, WithMemorySampler(opts.Memory))
	}
	s.monitor = NewPerformanceMonitor(scheduler, opts.Clock, logger, monOpts...)
	s.machine = NewStateMachine(s.monitor, logger)
	s.handler = NewEventHandler(target, scheduler, opts.Clock, HandlerCallbacks{
		OnDragStart: s.onDragStart,
		OnDragMove:  s.onDragMove,
		OnDragEnd:   s.onDragEnd,
	})
	return s
}

// Tick advances the System's own frame loop. It does nothing when the host
// supplied a Scheduler.
func (s *System) Tick(now time.Time) {
	if s.loop != nil {
		s.loop.Tick(now)
	}
}

// Dispatcher returns the owned event target, or nil when the host supplied one.
func (s *System) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Context returns a copy of the drag context. Treat pointed-to values as read-only.
func (s *System) Context() DragContext {
	return s.machine.Context()
}

func (s *System) State() DragState {
	return s.machine.State()
}

// InitializePaletteDrag starts dragging a new component of type t. It
// returns false if a drag is already active.
func (s *System) InitializePaletteDrag(t ComponentType, start RawEvent) bool {
	ev := normalizeStart(start)
	p := ev.Client()
	c := s.snapshotConstraints()
	ok := s.machine.Transition(StateDraggingFromPalette, ContextUpdate{
		DraggedComponent: paletteComponent(t),
		StartPosition:    &p,
		CurrentPosition:  &p,
		DragOffset:       &Point{},
		TargetElement:    ev.Target,
		IsDragValid:      ptr(true),
		Constraints:      &c,
	})
	if !ok {
		s.metrics.SessionRejected()
		return false
	}
	s.metrics.SessionStarted("palette")
	s.handler.HandleStart(start)
	return true
}

// InitializeCanvasDrag starts moving an existing component. The offset
// between the pointer and the target's top-left is kept for the whole drag
// so the component stays anchored under the cursor.
func (s *System) InitializeCanvasDrag(c Component, start RawEvent) bool {
	ev := normalizeStart(start)
	var offset Point
	if ev.Target != nil {
		offset = ev.Client().Sub(ev.Target.BoundingRect().TopLeft())
	}
	p := c.Position
	cons := s.snapshotConstraints()
	ok := s.machine.Transition(StateDraggingCanvasComponent, ContextUpdate{
		DraggedComponent: canvasComponent(c),
		StartPosition:    &p,
		CurrentPosition:  &p,
		DragOffset:       &offset,
		TargetElement:    ev.Target,
		IsDragValid:      ptr(true),
		Constraints:      &cons,
	})
	if !ok {
		s.metrics.SessionRejected()
		return false
	}
	s.metrics.SessionStarted("canvas")
	s.handler.HandleStart(start)
	return true
}

// Cancel aborts an active drag without a drop. It reports whether a drag was
// aborted.
func (s *System) Cancel() bool {
	if s.machine.State() == StateIdle {
		return false
	}
	s.handler.Cleanup()
	s.hideGhost()
	if !s.machine.Transition(StateIdle, ContextUpdate{}) {
		return false
	}
	s.metrics.SessionEnded("cancelled")
	s.notify()
	return true
}

// Cleanup tears everything down: listeners, pending frames, the monitor and
// any visible ghost. Safe to call repeatedly.
func (s *System) Cleanup() {
	s.Cancel()
	s.handler.Cleanup()
	s.monitor.Reset()
	s.hideGhost()
}

func (s *System) snapshotConstraints() DragConstraints {
	if s.constraints == nil {
		return DragConstraints{}
	}
	return s.constraints()
}

func (s *System) onDragStart(ev NormalizedEvent) {
	ctx := s.machine.Context()
	g := Ghost{Size: s.ghostSize, Center: ev.Client()}
	if d := ctx.DraggedComponent; d != nil {
		g.Label = string(d.Type)
		if d.Component == nil {
			g.Size = s.paletteSize(d.Type)
		} else if d.Component.Size != (Size{}) {
			g.Size = d.Component.Size
		}
	}
	s.surface.Show(g)
	s.ghostVisible = true
	s.notify()
}

func (s *System) onDragMove(ev NormalizedEvent) {
	ctx := s.machine.Context()
	if !ctx.State.IsDragging() {
		return
	}
	pos, ok := s.candidate(ctx, ev.Client())
	if !ok {
		return
	}
	s.surface.Move(ev.Client())
	s.apply(ctx, pos)
	s.metrics.MoveApplied()
	s.notify()
}

func (s *System) onDragEnd(ev NormalizedEvent) {
	s.hideGhost()
	ctx := s.machine.Context()
	if !ctx.State.IsDragging() {
		return
	}
	if ev.hasPoint() {
		if pos, ok := s.candidate(ctx, ev.Client()); ok {
			s.apply(ctx, pos)
		}
	}

	if !s.machine.Transition(StateDragEnding, ContextUpdate{}) {
		return
	}
	ending := s.machine.Context()
	s.notify()

	outcome := "invalid"
	if ending.IsDragValid {
		outcome = "dropped"
		if s.onDrop != nil {
			d := Drop{
				Component: ending.DraggedComponent,
				Position:  ending.CurrentPosition,
				Offset:    ending.DragOffset,
				Footprint: s.footprint(ending, ending.CurrentPosition),
			}
			if ending.Constraints != nil {
				d.Constraints = *ending.Constraints
			}
			s.onDrop(d)
		}
	}

	s.machine.Transition(StateIdle, ContextUpdate{})
	s.metrics.SessionEnded(outcome)
	s.notify()
}

// candidate turns a pointer position into the constrained position of the
// dragged box. It reports false while the move is still within the minimum
// drag distance of the start position.
func (s *System) candidate(ctx DragContext, pointer Point) (Point, bool) {
	raw := pointer.Sub(ctx.DragOffset)
	var cons DragConstraints
	if ctx.Constraints != nil {
		cons = *ctx.Constraints
	}
	minDist := cons.MinDragDistance
	if minDist <= 0 {
		minDist = DefaultMinDragDistance
	}
	if Distance(ctx.StartPosition, raw) < minDist {
		return Point{}, false
	}
	var dims *Size
	if d := ctx.DraggedComponent; d != nil && d.Component != nil {
		dims = &d.Component.Size
	}
	return Constrain(raw, cons, dims), true
}

func (s *System) apply(ctx DragContext, pos Point) {
	valid := s.validator.ValidDrop(ctx, pos, s.footprint(ctx, pos))
	s.machine.Update(ContextUpdate{CurrentPosition: &pos, IsDragValid: &valid})
}

// footprint is the box the component would occupy at pos. Palette drops are
// centred on pos like the ghost.
func (s *System) footprint(ctx DragContext, pos Point) Rect {
	d := ctx.DraggedComponent
	if d != nil && d.Component != nil {
		return RectAt(pos, d.Component.Size)
	}
	g := Ghost{Size: s.ghostSize, Center: pos}
	if d != nil {
		g.Size = s.paletteSize(d.Type)
	}
	return RectAt(g.TopLeft(), g.Size)
}

func (s *System) paletteSize(t ComponentType) Size {
	if s.sizeOf != nil {
		if sz := s.sizeOf(t); sz != (Size{}) {
			return sz
		}
	}
	return s.ghostSize
}

func (s *System) hideGhost() {
	if !s.ghostVisible {
		return
	}
	s.surface.Hide()
	s.ghostVisible = false
}

func (s *System) notify() {
	if s.onStateChange != nil {
		s.onStateChange(s.machine.Context())
	}
}
