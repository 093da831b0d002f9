package drag

import "math"

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Constrain clamps p into the constraint boundaries and then snaps it to the
// grid anchored at Grid.Origin. With dims the clamp keeps the whole box
// inside the boundaries, otherwise only the point itself is clamped. Zero
// boundaries mean unbounded.
func Constrain(p Point, c DragConstraints, dims *Size) Point {
	out := p
	bounded := !c.Boundaries.IsZero()
	b := c.Boundaries
	maxX, maxY := b.MaxX, b.MaxY
	if dims != nil {
		maxX -= dims.Width
		maxY -= dims.Height
	}
	if bounded {
		out.X = clamp(out.X, b.MinX, maxX)
		out.Y = clamp(out.Y, b.MinY, maxY)
	}
	if c.Grid.SnapToGrid && c.Grid.Size > 0 {
		out.X = snap(out.X-c.Grid.Origin.X, c.Grid.Size) + c.Grid.Origin.X
		out.Y = snap(out.Y-c.Grid.Origin.Y, c.Grid.Size) + c.Grid.Origin.Y
		if bounded {
			out.X = pullInside(out.X, c.Grid.Size, b.MinX, maxX)
			out.Y = pullInside(out.Y, c.Grid.Size, b.MinY, maxY)
		}
	}
	return out
}

// IsInDropZone is an edge-inclusive containment test.
func IsInDropZone(p Point, zone Rect) bool {
	return p.X >= zone.MinX && p.X <= zone.MaxX &&
		p.Y >= zone.MinY && p.Y <= zone.MaxY
}

// clamp bounds v to [lo, hi]. If the box is larger than the boundaries
// (hi < lo) the minimum edge wins.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// pullInside moves a snapped value one grid step back inside [lo, hi] when
// rounding pushed it past an edge that is not a grid multiple. If no grid
// line fits the range the plain clamp is returned.
func pullInside(v, size, lo, hi float64) float64 {
	if v > hi {
		v -= size
	}
	if v < lo {
		v += size
	}
	if v < lo || v > hi {
		return clamp(v, lo, hi)
	}
	return v
}

// snap rounds half up to the nearest multiple of size.
func snap(v, size float64) float64 {
	return math.Floor(v/size+0.5) * size
}
