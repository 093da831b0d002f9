package main

import (
	"fmt"
	"image/color"
	"math"

	"canvas-builder/canvas"
	"canvas-builder/drag"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// ComponentStore holds the placed components in world space, bottom to top.
type ComponentStore struct {
	items []*drag.Component
}

func NewComponentStore() *ComponentStore {
	return &ComponentStore{}
}

// Add places a new component of type t with its top-left at pos.
func (s *ComponentStore) Add(t drag.ComponentType, pos drag.Point, size drag.Size) *drag.Component {
	c := &drag.Component{
		ID:       uuid.NewString(),
		Type:     t,
		Position: pos,
		Size:     size,
		Props:    defaultProps(t),
	}
	s.items = append(s.items, c)
	return c
}

func (s *ComponentStore) Get(id string) *drag.Component {
	if i := s.index(id); i >= 0 {
		return s.items[i]
	}
	return nil
}

// Move repositions a component and raises it to the top.
func (s *ComponentStore) Move(id string, pos drag.Point) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	c := s.items[i]
	c.Position = pos
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.items = append(s.items, c)
	return true
}

// At returns the topmost component containing the world point p.
func (s *ComponentStore) At(p drag.Point) *drag.Component {
	for i := len(s.items) - 1; i >= 0; i-- {
		c := s.items[i]
		if p.X >= c.Position.X && p.X < c.Position.X+c.Size.Width &&
			p.Y >= c.Position.Y && p.Y < c.Position.Y+c.Size.Height {
			return c
		}
	}
	return nil
}

// Rects returns world footprints of every component except excludeID.
func (s *ComponentStore) Rects(excludeID string) []drag.Rect {
	out := make([]drag.Rect, 0, len(s.items))
	for _, c := range s.items {
		if c.ID == excludeID {
			continue
		}
		out = append(out, drag.RectAt(c.Position, c.Size))
	}
	return out
}

func (s *ComponentStore) All() []*drag.Component {
	return s.items
}

func (s *ComponentStore) Len() int { return len(s.items) }

func (s *ComponentStore) index(id string) int {
	for i, c := range s.items {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func defaultProps(t drag.ComponentType) map[string]any {
	switch t {
	case "TEXT":
		return map[string]any{"text": "Text"}
	case "BUTTON":
		return map[string]any{"label": "Button"}
	case "IMAGE":
		return map[string]any{"src": ""}
	}
	return map[string]any{}
}

// componentTarget is the hit-test element for a placed component. Its
// bounding rect is in screen space so drag offsets match the pointer.
type componentTarget struct {
	c   *drag.Component
	cam *canvas.Camera
}

func (t componentTarget) BoundingRect() drag.Rect {
	return t.cam.WorldRectToScreen(drag.RectAt(t.c.Position, t.c.Size))
}

// screenComponent is c as seen through the camera, the space the drag
// system works in.
func screenComponent(c *drag.Component, cam *canvas.Camera) drag.Component {
	out := *c
	out.Position = cam.WorldToScreen(c.Position)
	out.Size = drag.Size{Width: c.Size.Width * cam.Zoom, Height: c.Size.Height * cam.Zoom}
	return out
}

func componentColor(t drag.ComponentType) color.Color {
	if clr, ok := ComponentColors[t]; ok {
		return clr
	}
	return ColorComponentDefault
}

// componentStyle selects how a component is drawn this frame.
type componentStyle int

const (
	styleNormal componentStyle = iota
	styleHover
	styleLifted
	styleDraggingValid
	styleDraggingInvalid
)

// drawComponent draws c with its screen top-left at (sx, sy).
func drawComponent(screen *ebiten.Image, c *drag.Component, sx, sy, zoom float64, style componentStyle, face font.Face) {
	sw := c.Size.Width * zoom
	sh := c.Size.Height * zoom
	fill := componentColor(c.Type)

	if style == styleLifted {
		fill = fade(fill, 90)
	} else {
		vector.DrawFilledRect(screen, float32(sx+ShadowOffset*zoom), float32(sy+ShadowOffset*zoom), float32(sw), float32(sh), ColorShadow, false)
	}
	if style == styleDraggingValid || style == styleDraggingInvalid {
		fill = fade(fill, 170)
	}
	vector.DrawFilledRect(screen, float32(sx), float32(sy), float32(sw), float32(sh), fill, false)

	var border color.Color
	switch style {
	case styleHover:
		border = ColorComponentHover
	case styleDraggingValid:
		border = ColorComponentActive
	case styleDraggingInvalid:
		border = ColorComponentInvalid
	}
	if border != nil {
		thickness := float32(BorderThickness * zoom)
		offset := float32(BorderOffset * zoom)
		vector.StrokeRect(screen,
			float32(sx)-offset-thickness/2,
			float32(sy)-offset-thickness/2,
			float32(sw)+2*(offset+thickness/2),
			float32(sh)+2*(offset+thickness/2),
			thickness, border, false)
	}

	DrawTextLines(screen, face, componentLabel(c), int(sx+ComponentPaddingX), int(sy+ComponentPaddingY), ColorComponentText)
}

func componentLabel(c *drag.Component) string {
	label := string(c.Type)
	for _, key := range []string{"text", "label"} {
		if v, ok := c.Props[key].(string); ok && v != "" {
			label = fmt.Sprintf("%s: %s", c.Type, v)
			break
		}
	}
	return fmt.Sprintf("%s\n(%.0f, %.0f)", label, c.Position.X, c.Position.Y)
}

func fade(c color.Color, alpha uint8) color.Color {
	r, g, b, _ := c.RGBA()
	a := float64(alpha) / 255
	return color.RGBA{
		R: uint8(math.Round(float64(r>>8) * a)),
		G: uint8(math.Round(float64(g>>8) * a)),
		B: uint8(math.Round(float64(b>>8) * a)),
		A: alpha,
	}
}
