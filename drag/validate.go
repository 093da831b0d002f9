package drag

// DropValidator decides whether a drop is acceptable. pos is the constrained
// current position and box the footprint the component would occupy there.
type DropValidator interface {
	ValidDrop(ctx DragContext, pos Point, box Rect) bool
}

// ValidatorFunc adapts a function to DropValidator.
type ValidatorFunc func(ctx DragContext, pos Point, box Rect) bool

func (f ValidatorFunc) ValidDrop(ctx DragContext, pos Point, box Rect) bool {
	return f(ctx, pos, box)
}

// AllValidators accepts a drop only if every non-nil validator does.
func AllValidators(vs ...DropValidator) DropValidator {
	return ValidatorFunc(func(ctx DragContext, pos Point, box Rect) bool {
		for _, v := range vs {
			if v != nil && !v.ValidDrop(ctx, pos, box) {
				return false
			}
		}
		return true
	})
}

// BoundsValidator requires pos inside the constraint boundaries, edges
// included. Unbounded constraints accept everything.
var BoundsValidator = ValidatorFunc(func(ctx DragContext, pos Point, _ Rect) bool {
	if ctx.Constraints == nil || ctx.Constraints.Boundaries.IsZero() {
		return true
	}
	return IsInDropZone(pos, ctx.Constraints.Boundaries)
})

// OverlapValidator rejects a drop whose box overlaps any rectangle returned
// by occupied, but only when the constraints ask for it. occupied receives
// the id of the component being moved ("" for palette drags) so it can be
// left out.
func OverlapValidator(occupied func(excludeID string) []Rect) DropValidator {
	return ValidatorFunc(func(ctx DragContext, _ Point, box Rect) bool {
		if ctx.Constraints == nil || !ctx.Constraints.PreventOverlap || occupied == nil {
			return true
		}
		exclude := ""
		if ctx.DraggedComponent != nil && ctx.DraggedComponent.Component != nil {
			exclude = ctx.DraggedComponent.Component.ID
		}
		for _, r := range occupied(exclude) {
			if box.Overlaps(r) {
				return false
			}
		}
		return true
	})
}
