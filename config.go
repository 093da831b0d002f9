package main

import (
	"image/color"

	"canvas-builder/drag"
)

const (
	// --- Grid & Background ---
	GridMajorEvery = 5

	// --- Components ---
	ShadowOffset      = 5.0
	BorderThickness   = 3.0
	BorderOffset      = 2.0
	ComponentPaddingX = 10.0
	ComponentPaddingY = 8.0

	// --- UI ---
	ZoomButtonStep = 1.0
	FontPath       = "fonts/Roboto-Regular.ttf"
	ScreenshotPath = "screenshot.png"
)

var (
	// --- Colors ---
	ColorBackground       = color.RGBA{30, 30, 35, 255}
	ColorGrid             = color.RGBA{255, 255, 255, 12}
	ColorGridMajor        = color.RGBA{255, 255, 255, 28}
	ColorGridBlocked      = color.RGBA{20, 20, 25, 255}
	ColorOriginCross      = color.RGBA{255, 100, 100, 150}
	ColorShadow           = color.RGBA{0, 0, 0, 100}
	ColorComponentDefault = color.RGBA{45, 45, 50, 255}
	ColorComponentHover   = color.RGBA{0, 120, 255, 255}
	ColorComponentActive  = color.RGBA{50, 205, 50, 255}
	ColorComponentInvalid = color.RGBA{220, 50, 50, 255}
	ColorComponentText    = color.RGBA{235, 235, 235, 255}

	ComponentColors = map[drag.ComponentType]color.Color{
		"TEXT":      color.RGBA{100, 149, 237, 255},
		"IMAGE":     color.RGBA{60, 179, 113, 255},
		"BUTTON":    color.RGBA{255, 105, 180, 255},
		"CONTAINER": color.RGBA{90, 90, 110, 255},
	}
)
