package ui

import (
	"canvas-builder/drag"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

// UISystem groups the screen-space chrome: palette, zoom buttons, ghost
// layer and debug panel.
type UISystem struct {
	Palette *Palette
	Ghost   *GhostLayer
	Debug   *DebugPanel

	buttons       []*Button
	getFontFace   func() font.Face
	getScreenSize func() (int, int)
	drawText      TextDrawer
}

func NewUISystem(entries []PaletteEntry, getFontFace func() font.Face, getScreenSize func() (int, int), onZoomIn func(), onZoomOut func(), drawText TextDrawer) *UISystem {
	_, h := getScreenSize()
	ui := &UISystem{
		Palette:       NewPalette(entries, float64(h)),
		Ghost:         NewGhostLayer(),
		Debug:         &DebugPanel{},
		getFontFace:   getFontFace,
		getScreenSize: getScreenSize,
		drawText:      drawText,
	}
	ui.buttons = []*Button{
		{Label: "+", W: 30, H: 30, OnClick: onZoomIn},
		{Label: "-", W: 30, H: 30, OnClick: onZoomOut},
	}
	ui.Layout()
	return ui
}

// Layout positions the zoom buttons top-right and stretches the palette.
func (ui *UISystem) Layout() {
	w, h := ui.getScreenSize()
	ui.Palette.Height = float64(h)
	if len(ui.buttons) < 2 {
		return
	}
	ui.buttons[0].X = float32(w) - ui.buttons[0].W - 10
	ui.buttons[0].Y = 10
	ui.buttons[1].X = float32(w) - 2*ui.buttons[1].W - 20
	ui.buttons[1].Y = 10
}

// CanvasViewport is the screen area left for the canvas.
func (ui *UISystem) CanvasViewport() drag.Rect {
	w, h := ui.getScreenSize()
	return drag.Rect{MinX: PaletteWidth, MaxX: float64(w), MaxY: float64(h)}
}

// ElementAt returns the button or palette item under (x, y), or nil.
func (ui *UISystem) ElementAt(x, y float64) drag.Element {
	for _, b := range ui.buttons {
		if b.IsMouseOver(int(x), int(y)) {
			return b
		}
	}
	if it := ui.Palette.ItemAt(x, y); it != nil {
		return it
	}
	return nil
}

func (ui *UISystem) IsMouseOver(x, y float64) bool {
	if ui.ElementAt(x, y) != nil {
		return true
	}
	return drag.IsInDropZone(drag.Point{X: x, Y: y}, ui.Palette.Bounds())
}

// Draw renders palette and buttons. The ghost and debug panel go on top
// through DrawOverlay so they cover canvas components.
func (ui *UISystem) Draw(screen *ebiten.Image, mx, my int, dragging drag.ComponentType) {
	var hover drag.ComponentType
	if it := ui.Palette.ItemAt(float64(mx), float64(my)); it != nil {
		hover = it.Type
	}
	ui.Palette.Draw(screen, ui.getFontFace, ui.drawText, hover, dragging)
	for _, b := range ui.buttons {
		b.Draw(screen, ui.getFontFace, ui.drawText, b.IsMouseOver(mx, my))
	}
}

func (ui *UISystem) DrawOverlay(screen *ebiten.Image, valid bool) {
	ui.Ghost.Draw(screen, ui.getFontFace, ui.drawText, valid)
	ui.Debug.Draw(screen, ui.getScreenSize, ui.getFontFace, ui.drawText)
}
