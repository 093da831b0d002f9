package canvas

import (
	"image/color"
	"math"

	"canvas-builder/drag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GridStyle is the look of the background grid.
type GridStyle struct {
	Size        float64
	Major       int
	Line        color.Color
	MajorLine   color.Color
	Blocked     color.Color
	OriginCross color.Color
}

// GridLines returns the world coordinates of the grid lines visible in the
// viewport along one axis, starting at the world origin.
func GridLines(from, to, size float64) []float64 {
	if size <= 0 || to <= from {
		return nil
	}
	start := math.Ceil(from/size) * size
	if start < 0 {
		start = 0
	}
	var lines []float64
	for w := start; w <= to; w += size {
		lines = append(lines, w)
	}
	return lines
}

// DrawGrid renders the canvas grid inside the camera viewport. Lines shrink
// out at low zoom so the grid never gets denser than 4px.
func DrawGrid(screen *ebiten.Image, cam *Camera, style GridStyle) {
	vp := cam.Viewport
	size := style.Size
	for size > 0 && size*cam.Zoom < 4 {
		size *= 2
	}

	topLeft := cam.ScreenToWorld(drag.Point{X: vp.MinX, Y: vp.MinY})
	bottomRight := cam.ScreenToWorld(drag.Point{X: vp.MaxX, Y: vp.MaxY})

	for _, wx := range GridLines(topLeft.X, bottomRight.X, size) {
		sx := float32(cam.WorldToScreen(drag.Point{X: wx}).X)
		vector.StrokeLine(screen, sx, float32(vp.MinY), sx, float32(vp.MaxY), 1, lineColor(style, wx, size), false)
	}
	for _, wy := range GridLines(topLeft.Y, bottomRight.Y, size) {
		sy := float32(cam.WorldToScreen(drag.Point{Y: wy}).Y)
		vector.StrokeLine(screen, float32(vp.MinX), sy, float32(vp.MaxX), sy, 1, lineColor(style, wy, size), false)
	}

	origin := cam.WorldToScreen(drag.Point{})
	if origin.X > vp.MinX {
		vector.DrawFilledRect(screen, float32(vp.MinX), float32(vp.MinY), float32(math.Min(origin.X, vp.MaxX)-vp.MinX), float32(vp.MaxY-vp.MinY), style.Blocked, false)
	}
	if origin.Y > vp.MinY {
		left := math.Max(vp.MinX, origin.X)
		vector.DrawFilledRect(screen, float32(left), float32(vp.MinY), float32(vp.MaxX-left), float32(math.Min(origin.Y, vp.MaxY)-vp.MinY), style.Blocked, false)
	}

	if drag.IsInDropZone(origin, vp) {
		ox, oy := float32(origin.X), float32(origin.Y)
		vector.StrokeLine(screen, ox-15, oy, ox+15, oy, 2, style.OriginCross, false)
		vector.StrokeLine(screen, ox, oy-15, ox, oy+15, 2, style.OriginCross, false)
	}
}

func lineColor(style GridStyle, w, size float64) color.Color {
	if style.Major > 0 && style.MajorLine != nil {
		step := size * float64(style.Major)
		if math.Mod(w, step) == 0 {
			return style.MajorLine
		}
	}
	return style.Line
}
