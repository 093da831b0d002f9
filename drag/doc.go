// Package drag is the drag-and-drop core of the canvas builder.
//
// A System composes five parts:
//
//   - Normalize folds mouse and touch events into one NormalizedEvent.
//   - Distance, Constrain and IsInDropZone are the pure position calculator.
//   - PerformanceMonitor samples frame pacing for the active drag.
//   - StateMachine owns the DragContext and the legal state transitions.
//   - EventHandler throttles moves to one per frame and manages listeners.
//
// Everything runs on the goroutine that dispatches input and ticks the
// FrameScheduler; there is no locking. Exactly one drag can be active, and a
// second start is rejected with a false return rather than queued.
package drag
