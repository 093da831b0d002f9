package ui

import (
	"image/color"

	"canvas-builder/drag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// TextDrawer draws s with its top-left corner at (x, y).
type TextDrawer func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

var (
	ColorButton      = color.RGBA{60, 60, 70, 200}
	ColorButtonHover = color.RGBA{80, 80, 95, 220}
)

type Button struct {
	Label   string
	X, Y    float32
	W, H    float32
	OnClick func()
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return float32(mx) >= b.X && float32(mx) <= b.X+b.W &&
		float32(my) >= b.Y && float32(my) <= b.Y+b.H
}

// BoundingRect lets a button be the target of a pointer event.
func (b *Button) BoundingRect() drag.Rect {
	return drag.Rect{MinX: float64(b.X), MinY: float64(b.Y), MaxX: float64(b.X + b.W), MaxY: float64(b.Y + b.H)}
}

// Click runs OnClick if set.
func (b *Button) Click() {
	if b != nil && b.OnClick != nil {
		b.OnClick()
	}
}

// Draw renders the button. It uses the provided font.Face via getter.
func (b *Button) Draw(screen *ebiten.Image, getFace func() font.Face, drawText TextDrawer, hover bool) {
	fill := ColorButton
	if hover {
		fill = ColorButtonHover
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, fill, false)
	if getFace == nil || drawText == nil {
		return
	}
	face := getFace()
	if face == nil {
		return
	}
	drawText(screen, face, b.Label, int(b.X)+10, int(b.Y)+8, color.White)
}
