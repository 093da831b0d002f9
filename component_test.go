package main

import (
	"testing"

	"canvas-builder/canvas"
	"canvas-builder/drag"
)

func TestComponentStoreAddAndGet(t *testing.T) {
	s := NewComponentStore()
	a := s.Add("TEXT", drag.Point{X: 10, Y: 20}, drag.Size{Width: 100, Height: 50})
	b := s.Add("BUTTON", drag.Point{X: 0, Y: 0}, drag.Size{Width: 40, Height: 20})

	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("Expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if s.Get(a.ID) != a {
		t.Errorf("Expected Get to return the added component")
	}
	if s.Get("missing") != nil {
		t.Errorf("Expected nil for an unknown id")
	}
	if a.Props["text"] != "Text" {
		t.Errorf("Expected default text prop, got %v", a.Props)
	}
}

func TestComponentStoreAtPrefersTopmost(t *testing.T) {
	s := NewComponentStore()
	bottom := s.Add("TEXT", drag.Point{X: 0, Y: 0}, drag.Size{Width: 100, Height: 100})
	top := s.Add("IMAGE", drag.Point{X: 50, Y: 50}, drag.Size{Width: 100, Height: 100})

	if got := s.At(drag.Point{X: 60, Y: 60}); got != top {
		t.Errorf("Expected topmost component, got %+v", got)
	}
	if got := s.At(drag.Point{X: 10, Y: 10}); got != bottom {
		t.Errorf("Expected bottom component, got %+v", got)
	}
	if got := s.At(drag.Point{X: 100, Y: 0}); got != nil {
		t.Errorf("Expected right edge to be exclusive, got %+v", got)
	}
}

func TestComponentStoreMoveRaises(t *testing.T) {
	s := NewComponentStore()
	a := s.Add("TEXT", drag.Point{}, drag.Size{Width: 10, Height: 10})
	b := s.Add("TEXT", drag.Point{}, drag.Size{Width: 10, Height: 10})

	if !s.Move(a.ID, drag.Point{X: 30, Y: 40}) {
		t.Fatal("Expected move to succeed")
	}
	all := s.All()
	if all[0] != b || all[1] != a {
		t.Errorf("Expected moved component on top")
	}
	if a.Position != (drag.Point{X: 30, Y: 40}) {
		t.Errorf("Expected (30,40), got %v", a.Position)
	}
	if s.Move("missing", drag.Point{}) {
		t.Errorf("Expected move of unknown id to fail")
	}
}

func TestComponentStoreRectsExclude(t *testing.T) {
	s := NewComponentStore()
	a := s.Add("TEXT", drag.Point{X: 1, Y: 2}, drag.Size{Width: 3, Height: 4})
	s.Add("TEXT", drag.Point{X: 10, Y: 20}, drag.Size{Width: 5, Height: 5})

	rects := s.Rects(a.ID)
	if len(rects) != 1 || rects[0] != (drag.Rect{MinX: 10, MinY: 20, MaxX: 15, MaxY: 25}) {
		t.Errorf("Unexpected rects %+v", rects)
	}
	if len(s.Rects("")) != 2 {
		t.Errorf("Expected all rects with no exclusion")
	}
}

func TestScreenComponentScalesWithZoom(t *testing.T) {
	cam := canvas.NewCamera(drag.Rect{MinX: 180, MinY: 0, MaxX: 1280, MaxY: 800})
	cam.Zoom = 2
	c := &drag.Component{ID: "c", Position: drag.Point{X: 10, Y: 10}, Size: drag.Size{Width: 50, Height: 20}}

	sc := screenComponent(c, cam)
	if sc.Size != (drag.Size{Width: 100, Height: 40}) {
		t.Errorf("Expected scaled size, got %v", sc.Size)
	}
	if sc.Position != cam.WorldToScreen(c.Position) {
		t.Errorf("Expected screen position %v, got %v", cam.WorldToScreen(c.Position), sc.Position)
	}
	if c.Size.Width != 50 {
		t.Errorf("Expected the stored component untouched")
	}
}

func TestComponentLabel(t *testing.T) {
	c := &drag.Component{Type: "BUTTON", Position: drag.Point{X: 20, Y: 30}, Props: map[string]any{"label": "Go"}}
	if got := componentLabel(c); got != "BUTTON: Go\n(20, 30)" {
		t.Errorf("Unexpected label %q", got)
	}
}
