package ui

import (
	"image/color"

	"canvas-builder/drag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	ColorGhost       = color.RGBA{0, 120, 255, 90}
	ColorGhostBorder = color.RGBA{0, 120, 255, 200}
	ColorGhostText   = color.RGBA{255, 255, 255, 200}
	ColorInvalid     = color.RGBA{220, 50, 50, 220}
)

// GhostLayer draws the drag preview above everything else. It is never
// returned by hit testing, so it cannot become a pointer target.
type GhostLayer struct {
	ghost   drag.Ghost
	visible bool
}

var _ drag.PreviewSurface = (*GhostLayer)(nil)

func NewGhostLayer() *GhostLayer {
	return &GhostLayer{}
}

func (l *GhostLayer) Show(g drag.Ghost) {
	l.ghost = g
	l.visible = true
}

func (l *GhostLayer) Move(center drag.Point) {
	l.ghost.Center = center
}

func (l *GhostLayer) Hide() {
	l.visible = false
	l.ghost = drag.Ghost{}
}

func (l *GhostLayer) Visible() bool { return l.visible }

// Rect is the ghost's screen rectangle, centred on the pointer.
func (l *GhostLayer) Rect() drag.Rect {
	return drag.RectAt(l.ghost.TopLeft(), l.ghost.Size)
}

// Draw renders the ghost. valid picks the border colour.
func (l *GhostLayer) Draw(screen *ebiten.Image, getFace func() font.Face, drawText TextDrawer, valid bool) {
	if !l.visible {
		return
	}
	r := l.Rect()
	x, y := float32(r.MinX), float32(r.MinY)
	w, h := float32(r.MaxX-r.MinX), float32(r.MaxY-r.MinY)
	vector.DrawFilledRect(screen, x, y, w, h, ColorGhost, false)

	border := color.Color(ColorGhostBorder)
	if !valid {
		border = ColorInvalid
	}
	vector.StrokeRect(screen, x, y, w, h, 2, border, false)

	if getFace == nil || drawText == nil {
		return
	}
	if face := getFace(); face != nil {
		drawText(screen, face, l.ghost.Label, int(x)+8, int(y)+8, ColorGhostText)
	}
}
