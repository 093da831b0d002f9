package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"math"
	"os"
	"time"

	"canvas-builder/canvas"
	"canvas-builder/drag"
	"canvas-builder/input"
	"canvas-builder/rules"
	"canvas-builder/settings"
	"canvas-builder/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
)

// GameOptions configures NewGame. Zero values get working defaults.
type GameOptions struct {
	Settings settings.Settings
	// Store is shared with a settings watcher; built from Settings when nil.
	Store   *settings.Store
	Logger  *slog.Logger
	Metrics *drag.Metrics
	Clock   drag.Clock
	Device  input.Device
	Face    font.Face
}

type Game struct {
	logger   *slog.Logger
	settings *settings.Store
	clock    drag.Clock
	face     font.Face

	components *ComponentStore
	camera     *canvas.Camera
	ui         *ui.UISystem
	input      *input.InputSystem
	events     *drag.Dispatcher
	drag       *drag.System

	// view and dragSize are frozen when a drag starts so the drop is
	// checked and committed through the same mapping.
	view     canvas.Camera
	dragSize drag.Size

	rule       *rules.Rule
	ruleSource string
	lastPerf   *drag.PerformanceData
	pending    chan settings.Settings

	screenWidth  int
	screenHeight int

	screenshotRequested bool
}

var _ input.Host = (*Game)(nil)

func NewGame(opts GameOptions) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	store := opts.Store
	if store == nil {
		store = settings.NewStore(opts.Settings)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	s := store.Get()

	g := &Game{
		logger:       logger.With("component", "game"),
		settings:     store,
		clock:        clock,
		face:         opts.Face,
		components:   NewComponentStore(),
		events:       drag.NewDispatcher(),
		pending:      make(chan settings.Settings, 1),
		screenWidth:  s.Window.Width,
		screenHeight: s.Window.Height,
	}

	g.ui = ui.NewUISystem(paletteEntries(s), g.fontFace, g.screenSize,
		func() { g.zoomButton(ZoomButtonStep) },
		func() { g.zoomButton(-ZoomButtonStep) },
		DrawTextLines)
	g.camera = canvas.NewCamera(g.ui.CanvasViewport())
	g.view = *g.camera
	g.input = input.NewInputSystem(g, opts.Device, g.events)

	g.drag = drag.NewSystem(drag.Options{
		Logger:      logger,
		Clock:       clock,
		Target:      g.events,
		Surface:     g.ui.Ghost,
		Metrics:     opts.Metrics,
		Constraints: g.constraints,
		Validator: drag.AllValidators(
			drag.BoundsValidator,
			drag.OverlapValidator(g.occupied),
			drag.ValidatorFunc(g.validInWorld),
		),
		SizeOf:        g.paletteSize,
		OnStateChange: g.onDragState,
		OnDrop:        g.commitDrop,
	})

	g.events.AddEventListener(drag.EventMouseDown, g.onPointerDown, drag.ListenerOptions{})
	g.events.AddEventListener(drag.EventTouchStart, g.onPointerDown, drag.ListenerOptions{})

	g.setRule(s.DropRule)
	return g
}

func (g *Game) Update() error {
	g.applyPendingSettings()
	g.ui.Layout()
	g.camera.Resize(g.ui.CanvasViewport())
	g.input.Update()
	g.drag.Tick(g.clock())
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenWidth = outsideWidth
	g.screenHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// Close releases drag listeners and any pending frame work.
func (g *Game) Close() {
	g.drag.Cleanup()
}

func (g *Game) fontFace() font.Face { return g.face }

func (g *Game) screenSize() (int, int) { return g.screenWidth, g.screenHeight }

// --- input.Host ---

// TargetAt hit tests UI chrome first, then canvas components top-down.
func (g *Game) TargetAt(x, y float64) drag.Element {
	if el := g.ui.ElementAt(x, y); el != nil {
		return el
	}
	if g.ui.IsMouseOver(x, y) {
		return nil
	}
	if !drag.IsInDropZone(drag.Point{X: x, Y: y}, g.camera.Viewport) {
		return nil
	}
	if c := g.components.At(g.camera.ScreenToWorld(drag.Point{X: x, Y: y})); c != nil {
		return componentTarget{c: c, cam: g.camera}
	}
	return nil
}

func (g *Game) IsDragging() bool { return g.drag.State() != drag.StateIdle }

func (g *Game) CancelDrag() {
	if g.drag.Cancel() {
		g.logger.Debug("drag cancelled")
	}
}

func (g *Game) ApplyPan(dx, dy float64) {
	if g.IsDragging() {
		return
	}
	g.camera.Pan(dx, dy)
}

func (g *Game) ApplyZoom(delta, x, y float64) {
	if !drag.IsInDropZone(drag.Point{X: x, Y: y}, g.camera.Viewport) {
		return
	}
	g.camera.ZoomAt(delta, x, y)
}

func (g *Game) ToggleDebug() { g.ui.Debug.Toggle() }

func (g *Game) RequestScreenshot() { g.screenshotRequested = true }

func (g *Game) zoomButton(delta float64) {
	if g.IsDragging() {
		return
	}
	vp := g.camera.Viewport
	g.camera.ZoomAt(delta, (vp.MinX+vp.MaxX)/2, (vp.MinY+vp.MaxY)/2)
}

// --- drag wiring ---

func (g *Game) onPointerDown(raw drag.RawEvent) {
	ev := drag.Normalize(raw)
	switch t := ev.Target.(type) {
	case *ui.Button:
		t.Click()
	case *ui.PaletteItem:
		if g.IsDragging() {
			return
		}
		g.view = *g.camera
		g.dragSize = t.Size
		if g.dragSize == (drag.Size{}) {
			g.dragSize = drag.DefaultGhostSize
		}
		g.drag.InitializePaletteDrag(t.Type, raw)
	case componentTarget:
		if g.IsDragging() {
			return
		}
		g.view = *g.camera
		g.dragSize = t.c.Size
		g.drag.InitializeCanvasDrag(screenComponent(t.c, &g.view), raw)
	}
}

// constraints is read once per drag start, after onPointerDown froze the
// view. Screen grid lines are laid from the world origin so every snapped
// screen position is a world grid position.
func (g *Game) constraints() drag.DragConstraints {
	s := g.settings.Get()
	origin := g.view.WorldToScreen(drag.Point{})
	c := drag.DragConstraints{
		MinDragDistance: s.Drag.MinDistance,
		PreventOverlap:  s.Drag.PreventOverlap,
		Grid: drag.GridConfig{
			SnapToGrid: s.Grid.Snap,
			Size:       s.Grid.Size * g.view.Zoom,
			Origin:     origin,
		},
	}
	if s.Drag.Bounded {
		b := g.view.Viewport
		b.MinX = math.Max(b.MinX, origin.X)
		b.MinY = math.Max(b.MinY, origin.Y)
		c.Boundaries = b
	}
	return c
}

// occupied returns screen footprints of placed components.
func (g *Game) occupied(excludeID string) []drag.Rect {
	rects := g.components.Rects(excludeID)
	for i, r := range rects {
		rects[i] = g.view.WorldRectToScreen(r)
	}
	return rects
}

// validInWorld checks the world placement a drop would commit: it must stay
// in x, y >= 0 and pass the drop rule, which sees the placement's top-left.
func (g *Game) validInWorld(ctx drag.DragContext, pos drag.Point, _ drag.Rect) bool {
	if ctx.DraggedComponent == nil {
		return true
	}
	var grid drag.GridConfig
	if ctx.Constraints != nil {
		grid = ctx.Constraints.Grid
	}
	box := g.placement(ctx.DraggedComponent, pos, grid)
	if box.MinX < -worldEpsilon || box.MinY < -worldEpsilon {
		return false
	}
	if g.rule == nil {
		return true
	}
	return g.rule.ValidDrop(ctx, box.TopLeft(), box)
}

// paletteSize is the on-screen size of the palette item being dragged.
func (g *Game) paletteSize(drag.ComponentType) drag.Size {
	return drag.Size{Width: g.dragSize.Width * g.view.Zoom, Height: g.dragSize.Height * g.view.Zoom}
}

func (g *Game) onDragState(ctx drag.DragContext) {
	if ctx.State == drag.StateIdle && ctx.PerformanceData != nil {
		g.lastPerf = ctx.PerformanceData
		g.logger.Debug("drag finished",
			"frames", ctx.PerformanceData.FrameCount,
			"avg_frame", ctx.PerformanceData.AverageFrameTime,
			"duration", ctx.PerformanceData.Duration)
	}
	g.ui.Debug.SetDrag(ctx, g.lastPerf)
}

// commitDrop writes a valid drop into the world at the placement it was
// validated at: palette drops create a component centred on the drop point,
// canvas drops move the component's top-left.
func (g *Game) commitDrop(d drag.Drop) {
	if d.Component == nil {
		return
	}
	box := g.placement(d.Component, d.Position, d.Constraints.Grid)
	pos := drag.Point{X: math.Max(0, box.MinX), Y: math.Max(0, box.MinY)}
	if d.Component.FromPalette() {
		c := g.components.Add(d.Component.Type, pos, box.Size())
		g.logger.Info("component created", "id", c.ID, "type", c.Type, "x", pos.X, "y", pos.Y)
		return
	}
	id := d.Component.Component.ID
	if !g.components.Move(id, pos) {
		g.logger.Warn("dropped component no longer exists", "id", id)
		return
	}
	g.logger.Info("component moved", "id", id, "x", pos.X, "y", pos.Y)
}

// worldEpsilon absorbs float noise from mapping screen positions back to
// the world.
const worldEpsilon = 1e-6

// placement is the world box a drop at screen pos occupies, using the view
// and grid frozen at drag start.
func (g *Game) placement(d *drag.DraggedComponent, pos drag.Point, grid drag.GridConfig) drag.Rect {
	p := g.view.ScreenToWorld(pos)
	if grid.SnapToGrid && grid.Size > 0 {
		// Snapped screen positions already sit on world grid lines; this
		// only removes rounding noise.
		p = canvas.SnapWorld(p, grid.Size/g.view.Zoom)
	}
	size := g.dragSize
	if d.FromPalette() {
		p = drag.Point{X: p.X - size.Width/2, Y: p.Y - size.Height/2}
	}
	return drag.RectAt(p, size)
}

// --- settings ---

// OnSettingsChanged queues s for the game goroutine. Safe to call from any
// goroutine; only the newest pending value is kept.
func (g *Game) OnSettingsChanged(s settings.Settings) {
	select {
	case <-g.pending:
	default:
	}
	g.pending <- s
}

func (g *Game) applyPendingSettings() {
	select {
	case s := <-g.pending:
		g.applySettings(s)
	default:
	}
}

func (g *Game) applySettings(s settings.Settings) {
	g.ui.Palette.SetEntries(paletteEntries(s))
	g.setRule(s.DropRule)
}

func (g *Game) setRule(src string) {
	if src == g.ruleSource && (g.rule != nil || src == "") {
		return
	}
	g.ruleSource = src
	g.rule = nil
	g.ui.Debug.Clear()
	if src == "" {
		return
	}
	rule, err := rules.Compile("drop_rule", src, g.logger)
	if err != nil {
		g.logger.Warn("drop rule disabled", "error", err)
		g.ui.Debug.SetError(fmt.Sprintf("drop rule: %v", err))
		return
	}
	g.rule = rule
}

func paletteEntries(s settings.Settings) []ui.PaletteEntry {
	out := make([]ui.PaletteEntry, 0, len(s.Palette))
	for _, p := range s.Palette {
		out = append(out, ui.PaletteEntry{Type: p.Type, Label: p.Label, Width: p.Width, Height: p.Height})
	}
	return out
}

// --- drawing ---

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(ColorBackground)

	s := g.settings.Get()
	canvas.DrawGrid(screen, g.camera, canvas.GridStyle{
		Size:        gridDrawSize(s),
		Major:       GridMajorEvery,
		Line:        ColorGrid,
		MajorLine:   ColorGridMajor,
		Blocked:     ColorGridBlocked,
		OriginCross: ColorOriginCross,
	})

	ctx := g.drag.Context()
	mx, my := ebiten.CursorPosition()
	var hovered *drag.Component
	if t, ok := g.TargetAt(float64(mx), float64(my)).(componentTarget); ok && ctx.State == drag.StateIdle {
		hovered = t.c
	}

	var liftedID string
	var dragging drag.ComponentType
	if d := ctx.DraggedComponent; d != nil && ctx.State.IsDragging() {
		dragging = d.Type
		if !d.FromPalette() {
			liftedID = d.Component.ID
		}
	}

	for _, c := range g.components.All() {
		style := styleNormal
		switch {
		case c.ID == liftedID:
			style = styleLifted
		case c == hovered:
			style = styleHover
		}
		sp := g.camera.WorldToScreen(c.Position)
		drawComponent(screen, c, sp.X, sp.Y, g.camera.Zoom, style, g.face)
	}

	if liftedID != "" {
		if orig := g.components.Get(liftedID); orig != nil {
			preview := *orig
			preview.Position = g.camera.ScreenToWorld(ctx.CurrentPosition)
			style := styleDraggingValid
			if !ctx.IsDragValid {
				style = styleDraggingInvalid
			}
			drawComponent(screen, &preview, ctx.CurrentPosition.X, ctx.CurrentPosition.Y, g.camera.Zoom, style, g.face)
		}
	}

	world := g.camera.ScreenToWorld(drag.Point{X: float64(mx), Y: float64(my)})
	DrawTextLines(screen, g.face, fmt.Sprintf(
		"Zoom: %.2f  World: (%.0f, %.0f)  Components: %d\n"+
			"Drag from the palette or move components. Esc cancels, F3 debug.",
		g.camera.Zoom, world.X, world.Y, g.components.Len(),
	), int(ui.PaletteWidth)+10, 10, ColorComponentText)

	g.ui.Draw(screen, mx, my, dragging)
	g.ui.DrawOverlay(screen, ctx.IsDragValid)

	if g.screenshotRequested {
		g.screenshotRequested = false
		if err := saveScreenshot(screen, ScreenshotPath); err != nil {
			g.logger.Warn("screenshot failed", "error", err)
		} else {
			g.logger.Info("screenshot saved", "path", ScreenshotPath)
		}
	}
}

func gridDrawSize(s settings.Settings) float64 {
	if s.Grid.Size > 0 {
		return s.Grid.Size
	}
	return 10
}

func saveScreenshot(screen *ebiten.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, screen)
}
