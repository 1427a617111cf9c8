package terminal

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-classroom/render"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode resolves a flag value; "auto" and "" detect from the environment
func ParseColorMode(s string) ColorMode {
	switch s {
	case "256", "8":
		return ColorMode256
	case "truecolor", "true", "24bit", "24":
		return ColorModeTrueColor
	default:
		return DetectColorMode()
	}
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := os.Getenv("TERM")
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// Color cube values for 6x6x6 palette (indices 16-231)
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func cubeIndex(v uint8) int {
	best, bestDist := 0, abs(int(v))
	for j := 1; j < 6; j++ {
		if d := abs(int(v) - cubeValues[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// RGBTo256 finds the nearest 256-color palette index, preferring the
// grayscale ramp for near-neutral colours
func RGBTo256(c render.RGB) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)
	cr, cg, cb := cubeIndex(c.R), cubeIndex(c.G), cubeIndex(c.B)
	cubeIdx := uint8(16 + 36*cr + 6*cg + cb)

	gray := (r + g + b) / 3
	if max(abs(r-gray), abs(g-gray), abs(b-gray)) >= 10 {
		return cubeIdx
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}
	grayIdx := min(255, 232+(gray-8)/10)
	level := 8 + (grayIdx-232)*10
	grayDist := abs(r-level) + abs(g-level) + abs(b-level)
	cubeDist := abs(r-cubeValues[cr]) + abs(g-cubeValues[cg]) + abs(b-cubeValues[cb])
	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return cubeIdx
}

// toColor converts for the active color mode
func toColor(c render.RGB, mode ColorMode) tcell.Color {
	if mode == ColorModeTrueColor {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.PaletteColor(int(RGBTo256(c)))
}
