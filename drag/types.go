package drag

import (
	"fmt"
	"time"
)

// Point is a 2D coordinate in viewport space.
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle described by its edges.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// RectAt builds a Rect from a top-left corner and a size.
func RectAt(p Point, s Size) Rect {
	return Rect{MinX: p.X, MinY: p.Y, MaxX: p.X + s.Width, MaxY: p.Y + s.Height}
}

// IsZero reports whether all four edges are zero. A zero rect means "no bounds".
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// TopLeft returns the minimum corner.
func (r Rect) TopLeft() Point {
	return Point{X: r.MinX, Y: r.MinY}
}

// Size returns the rect dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.MaxX - r.MinX, Height: r.MaxY - r.MinY}
}

// Overlaps reports whether r and o share interior area. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.MinX < o.MaxX && o.MinX < r.MaxX &&
		r.MinY < o.MaxY && o.MinY < r.MaxY
}

// DragState is the phase of the drag lifecycle.
type DragState int

const (
	StateIdle DragState = iota
	StateDraggingFromPalette
	StateDraggingCanvasComponent
	StateDragEnding
)

func (s DragState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateDraggingFromPalette:
		return "DRAGGING_FROM_PALETTE"
	case StateDraggingCanvasComponent:
		return "DRAGGING_CANVAS_COMPONENT"
	case StateDragEnding:
		return "DRAG_ENDING"
	}
	return fmt.Sprintf("DragState(%d)", int(s))
}

// IsDragging reports whether s is one of the two active dragging states.
func (s DragState) IsDragging() bool {
	return s == StateDraggingFromPalette || s == StateDraggingCanvasComponent
}

// ComponentType tags a palette entry, e.g. "TEXT" or "BUTTON".
type ComponentType string

// Component is the core's view of a placed canvas component.
type Component struct {
	ID       string
	Type     ComponentType
	Position Point
	Size     Size
	Props    map[string]any
}

// DraggedComponent is either a palette type tag (Component == nil) or a
// snapshot of a component already on the canvas.
type DraggedComponent struct {
	Type      ComponentType
	Component *Component
}

// FromPalette reports whether the drag creates a new component.
func (d *DraggedComponent) FromPalette() bool {
	return d != nil && d.Component == nil
}

func paletteComponent(t ComponentType) *DraggedComponent {
	return &DraggedComponent{Type: t}
}

// canvasComponent snapshots c so later host mutations do not leak into the drag.
func canvasComponent(c Component) *DraggedComponent {
	snap := c
	if c.Props != nil {
		snap.Props = make(map[string]any, len(c.Props))
		for k, v := range c.Props {
			snap.Props[k] = v
		}
	}
	return &DraggedComponent{Type: c.Type, Component: &snap}
}

// GridConfig controls snapping.
type GridConfig struct {
	SnapToGrid bool
	Size       float64
	// Origin is a point on the grid. Lines fall at Origin + k*Size.
	Origin Point
}

// DragConstraints is the host-supplied snapshot held fixed for one drag.
type DragConstraints struct {
	Boundaries      Rect
	Grid            GridConfig
	MinDragDistance float64
	PreventOverlap  bool
}

// DefaultMinDragDistance is used when constraints leave MinDragDistance at zero.
const DefaultMinDragDistance = 3.0

// PerformanceData summarises one finished drag.
type PerformanceData struct {
	FrameCount       int
	AverageFrameTime time.Duration
	LastFrameTime    time.Time
	MemoryUsage      uint64
	Duration         time.Duration
}

// DragContext is the single record describing the in-flight (or idle) drag.
type DragContext struct {
	State            DragState
	DraggedComponent *DraggedComponent
	StartPosition    Point
	CurrentPosition  Point
	DragOffset       Point
	// TargetElement is looked up at drag start and never owned by the core.
	TargetElement   Element
	IsDragValid     bool
	Constraints     *DragConstraints
	PerformanceData *PerformanceData
}

// ContextUpdate is a shallow patch; nil fields keep their previous value.
type ContextUpdate struct {
	DraggedComponent *DraggedComponent
	StartPosition    *Point
	CurrentPosition  *Point
	DragOffset       *Point
	TargetElement    Element
	IsDragValid      *bool
	Constraints      *DragConstraints
}

func (c *DragContext) apply(u ContextUpdate) {
	if u.DraggedComponent != nil {
		c.DraggedComponent = u.DraggedComponent
	}
	if u.StartPosition != nil {
		c.StartPosition = *u.StartPosition
	}
	if u.CurrentPosition != nil {
		c.CurrentPosition = *u.CurrentPosition
	}
	if u.DragOffset != nil {
		c.DragOffset = *u.DragOffset
	}
	if u.TargetElement != nil {
		c.TargetElement = u.TargetElement
	}
	if u.IsDragValid != nil {
		c.IsDragValid = *u.IsDragValid
	}
	if u.Constraints != nil {
		snap := *u.Constraints
		c.Constraints = &snap
	}
}

func ptr[T any](v T) *T {
	return &v
}
