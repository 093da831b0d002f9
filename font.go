package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// LoadFontFace parses a TrueType/OpenType file into a face of the given size.
func LoadFontFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face %s: %w", path, err)
	}
	return face, nil
}

// LoadUIFont loads FontPath, falling back to basicfont.Face7x13.
func LoadUIFont(logger *slog.Logger) font.Face {
	face, err := LoadFontFace(FontPath, 14)
	if err != nil {
		logger.Info("using basic font", "error", err)
		return basicfont.Face7x13
	}
	return face
}

// DrawTextLines draws multiline text with the provided font.Face and color starting at (x,y).
func DrawTextLines(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	if face == nil {
		face = basicfont.Face7x13
	}
	ascent, lineHeight := lineMetrics(face)
	// Treat provided y as the top of the first line. text.Draw expects baseline y,
	// so shift by ascent.
	baseY := y + ascent
	for i, line := range strings.Split(s, "\n") {
		text.Draw(screen, line, face, x, baseY+(i*lineHeight), clr)
	}
}

func lineMetrics(face font.Face) (ascent, lineHeight int) {
	metrics := face.Metrics()
	ascent = int(metrics.Ascent >> 6)
	descent := int(metrics.Descent >> 6)
	lineHeight = ascent + descent
	if lineHeight <= 0 {
		lineHeight = 16
		ascent = 12
	}
	return ascent, lineHeight
}
