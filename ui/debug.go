package ui

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"canvas-builder/drag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// DebugPanel shows the last error and, when toggled on, the live drag state.
type DebugPanel struct {
	Error   string
	Visible bool
	Lines   []string
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
}

func (d *DebugPanel) Clear() {
	d.Error = ""
}

func (d *DebugPanel) Toggle() {
	d.Visible = !d.Visible
}

// SetDrag refreshes the lines from a drag context snapshot. last is the
// performance record of the most recent finished drag, if any.
func (d *DebugPanel) SetDrag(ctx drag.DragContext, last *drag.PerformanceData) {
	d.Lines = DragLines(ctx, last)
}

// DragLines formats a drag context for display.
func DragLines(ctx drag.DragContext, last *drag.PerformanceData) []string {
	lines := []string{"state: " + ctx.State.String()}
	if ctx.State.IsDragging() || ctx.State == drag.StateDragEnding {
		what := "?"
		if d := ctx.DraggedComponent; d != nil {
			what = string(d.Type)
			if !d.FromPalette() {
				what += " #" + d.Component.ID
			}
		}
		lines = append(lines,
			"dragging: "+what,
			fmt.Sprintf("pos: %.0f,%.0f", ctx.CurrentPosition.X, ctx.CurrentPosition.Y),
			fmt.Sprintf("valid: %t", ctx.IsDragValid),
		)
	}
	if last != nil {
		lines = append(lines, fmt.Sprintf("last drag: %d frames, avg %s, took %s",
			last.FrameCount, last.AverageFrameTime.Round(time.Microsecond), last.Duration.Round(time.Millisecond)))
		if last.MemoryUsage > 0 {
			lines = append(lines, fmt.Sprintf("heap: %.1f MiB", float64(last.MemoryUsage)/(1<<20)))
		}
	}
	return lines
}

func (d *DebugPanel) Draw(screen *ebiten.Image, getScreenSize func() (int, int), getFace func() font.Face, drawText TextDrawer) {
	if d == nil || (d.Error == "" && !d.Visible) {
		return
	}
	var lines []string
	if d.Visible {
		lines = append(lines, d.Lines...)
	}
	if d.Error != "" {
		lines = append(lines, d.Error)
	}

	w, h := getScreenSize()
	pw, ph := 300, 16+18*len(lines)
	x := w - pw - 10
	y := h - ph - 10
	bg := color.RGBA{40, 40, 40, 220}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(pw), float32(ph), bg, false)
	if getFace == nil || drawText == nil {
		return
	}
	face := getFace()
	if face == nil {
		return
	}
	clr := color.Color(color.RGBA{220, 220, 220, 255})
	if d.Error != "" && !d.Visible {
		clr = color.RGBA{255, 200, 50, 255}
	}
	drawText(screen, face, strings.Join(lines, "\n"), x+8, y+8, clr)
}
