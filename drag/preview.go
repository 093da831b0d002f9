package drag

// DefaultGhostSize is used for palette drags, before the component exists.
var DefaultGhostSize = Size{Width: 120, Height: 48}

// Ghost describes the preview marker. Center is the pointer position; the
// marker is drawn centred on it and never receives pointer input.
type Ghost struct {
	Label  string
	Size   Size
	Center Point
}

// TopLeft is the draw origin, the centre shifted by half the size.
func (g Ghost) TopLeft() Point {
	return Point{X: g.Center.X - g.Size.Width/2, Y: g.Center.Y - g.Size.Height/2}
}

// PreviewSurface shows one transient ghost at a time.
type PreviewSurface interface {
	Show(g Ghost)
	Move(center Point)
	Hide()
}

// nopSurface is used when the host does not render previews.
type nopSurface struct{}

func (nopSurface) Show(Ghost) {}
func (nopSurface) Move(Point) {}
func (nopSurface) Hide() {}
