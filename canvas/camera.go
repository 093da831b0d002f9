package canvas

import (
	"math"

	"canvas-builder/drag"
)

const (
	ZoomMin   = 0.25
	ZoomMax   = 4.0
	ZoomSpeed = 0.1
	// WorldMin is how far the view may scroll past the world origin.
	WorldMin = -200.0
)

// Camera maps between the canvas viewport (screen pixels) and world units.
// X, Y is the world position shown at the centre of the viewport.
type Camera struct {
	X, Y     float64
	Zoom     float64
	Viewport drag.Rect
}

func NewCamera(viewport drag.Rect) *Camera {
	c := &Camera{Zoom: 1, Viewport: viewport}
	size := viewport.Size()
	c.X, c.Y = size.Width/2, size.Height/2
	return c
}

func (c *Camera) center() (float64, float64) {
	return (c.Viewport.MinX + c.Viewport.MaxX) / 2, (c.Viewport.MinY + c.Viewport.MaxY) / 2
}

func (c *Camera) WorldToScreen(p drag.Point) drag.Point {
	cw, ch := c.center()
	return drag.Point{X: (p.X-c.X)*c.Zoom + cw, Y: (p.Y-c.Y)*c.Zoom + ch}
}

func (c *Camera) ScreenToWorld(p drag.Point) drag.Point {
	cw, ch := c.center()
	return drag.Point{X: (p.X-cw)/c.Zoom + c.X, Y: (p.Y-ch)/c.Zoom + c.Y}
}

// WorldRectToScreen projects a world rectangle into the viewport.
func (c *Camera) WorldRectToScreen(r drag.Rect) drag.Rect {
	lo := c.WorldToScreen(drag.Point{X: r.MinX, Y: r.MinY})
	hi := c.WorldToScreen(drag.Point{X: r.MaxX, Y: r.MaxY})
	return drag.Rect{MinX: lo.X, MinY: lo.Y, MaxX: hi.X, MaxY: hi.Y}
}

// Pan moves the view by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.X -= dx / c.Zoom
	c.Y -= dy / c.Zoom
	c.clamp()
}

// ZoomAt changes zoom keeping the world point under (sx, sy) fixed.
func (c *Camera) ZoomAt(delta, sx, sy float64) {
	anchor := c.ScreenToWorld(drag.Point{X: sx, Y: sy})
	zoom := math.Max(ZoomMin, math.Min(ZoomMax, c.Zoom*(1+delta*ZoomSpeed)))
	if zoom == c.Zoom {
		return
	}
	c.Zoom = zoom
	after := c.ScreenToWorld(drag.Point{X: sx, Y: sy})
	c.X += anchor.X - after.X
	c.Y += anchor.Y - after.Y
	c.clamp()
}

// Resize updates the viewport; the centred world point stays put.
func (c *Camera) Resize(viewport drag.Rect) {
	c.Viewport = viewport
}

func (c *Camera) clamp() {
	size := c.Viewport.Size()
	minX := WorldMin + size.Width/2/c.Zoom
	minY := WorldMin + size.Height/2/c.Zoom
	if c.X < minX {
		c.X = minX
	}
	if c.Y < minY {
		c.Y = minY
	}
}

// SnapWorld rounds a world point to the nearest grid intersection.
func SnapWorld(p drag.Point, grid float64) drag.Point {
	if grid <= 0 {
		return p
	}
	return drag.Point{
		X: math.Floor(p.X/grid+0.5) * grid,
		Y: math.Floor(p.Y/grid+0.5) * grid,
	}
}
