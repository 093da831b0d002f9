package ui

import (
	"image/color"

	"canvas-builder/drag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	PaletteWidth      = 180.0
	PaletteItemHeight = 44.0
	PalettePadding    = 10.0
	PaletteHeader     = 36.0
)

var (
	ColorPanel        = color.RGBA{24, 24, 28, 255}
	ColorPanelBorder  = color.RGBA{0, 0, 0, 120}
	ColorItem         = color.RGBA{50, 50, 58, 255}
	ColorItemHover    = color.RGBA{0, 120, 255, 255}
	ColorItemDragging = color.RGBA{255, 140, 0, 255}
	ColorPanelText    = color.RGBA{220, 220, 220, 255}
)

// PaletteItem is one draggable component type in the palette.
type PaletteItem struct {
	Type  drag.ComponentType
	Label string
	// Size is the default footprint of a component created from this item.
	Size drag.Size
	Rect drag.Rect
}

func (it *PaletteItem) BoundingRect() drag.Rect { return it.Rect }

// Palette is the fixed panel on the left edge of the window.
type Palette struct {
	Items  []*PaletteItem
	Height float64
}

// PaletteEntry describes an item before layout.
type PaletteEntry struct {
	Type   string
	Label  string
	Width  float64
	Height float64
}

func NewPalette(entries []PaletteEntry, height float64) *Palette {
	p := &Palette{Height: height}
	p.SetEntries(entries)
	return p
}

// SetEntries replaces the items and lays them out top to bottom.
func (p *Palette) SetEntries(entries []PaletteEntry) {
	p.Items = p.Items[:0]
	y := PaletteHeader
	for _, e := range entries {
		label := e.Label
		if label == "" {
			label = e.Type
		}
		p.Items = append(p.Items, &PaletteItem{
			Type:  drag.ComponentType(e.Type),
			Label: label,
			Size:  drag.Size{Width: e.Width, Height: e.Height},
			Rect: drag.Rect{
				MinX: PalettePadding,
				MinY: y,
				MaxX: PaletteWidth - PalettePadding,
				MaxY: y + PaletteItemHeight,
			},
		})
		y += PaletteItemHeight + PalettePadding
	}
}

// Bounds is the panel area in screen space.
func (p *Palette) Bounds() drag.Rect {
	return drag.Rect{MaxX: PaletteWidth, MaxY: p.Height}
}

// ItemAt returns the item under (x, y), or nil.
func (p *Palette) ItemAt(x, y float64) *PaletteItem {
	pt := drag.Point{X: x, Y: y}
	for _, it := range p.Items {
		if drag.IsInDropZone(pt, it.Rect) {
			return it
		}
	}
	return nil
}

// Item returns the item for a component type, or nil.
func (p *Palette) Item(t drag.ComponentType) *PaletteItem {
	for _, it := range p.Items {
		if it.Type == t {
			return it
		}
	}
	return nil
}

// Draw renders the panel. hover and dragging highlight items by type.
func (p *Palette) Draw(screen *ebiten.Image, getFace func() font.Face, drawText TextDrawer, hover, dragging drag.ComponentType) {
	vector.DrawFilledRect(screen, 0, 0, PaletteWidth, float32(p.Height), ColorPanel, false)
	vector.StrokeLine(screen, PaletteWidth, 0, PaletteWidth, float32(p.Height), 2, ColorPanelBorder, false)

	var face font.Face
	if getFace != nil {
		face = getFace()
	}
	canText := face != nil && drawText != nil
	if canText {
		drawText(screen, face, "Components", PalettePadding, 10, ColorPanelText)
	}

	for _, it := range p.Items {
		fill := ColorItem
		switch it.Type {
		case dragging:
			fill = ColorItemDragging
		case hover:
			fill = ColorItemHover
		}
		r := it.Rect
		vector.DrawFilledRect(screen, float32(r.MinX), float32(r.MinY), float32(r.MaxX-r.MinX), float32(r.MaxY-r.MinY), fill, false)
		if canText {
			drawText(screen, face, it.Label, int(r.MinX)+10, int(r.MinY)+14, ColorPanelText)
		}
	}
}
