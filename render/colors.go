package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbHelpText   = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbPaused     = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbPhantom    = tcell.NewRGBColor(200, 50, 200)  // Magenta probe marker
	RgbTrailGray  = tcell.NewRGBColor(200, 200, 200) // Light gray base
)

// backgroundColorful mirrors RgbBackground for blending
var backgroundColorful = colorful.Color{R: 26.0 / 255, G: 27.0 / 255, B: 38.0 / 255}

// trailBlend is how far trails fade from the body color toward the background
const trailBlend = 0.55

// ParseColor parses a hex color, ok is false when hex is empty or malformed
func ParseColor(hex string) (colorful.Color, bool) {
	if hex == "" {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// ToTcell converts to a 24-bit terminal color
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// BodyColor is the terminal color of a body, white when none is defined
func BodyColor(hex string) tcell.Color {
	c, ok := ParseColor(hex)
	if !ok {
		return RgbStatusBar
	}
	return ToTcell(c)
}

// TrailColor is the body color faded toward the background in Lab space
func TrailColor(hex string) tcell.Color {
	c, ok := ParseColor(hex)
	if !ok {
		return RgbTrailGray
	}
	return ToTcell(c.BlendLab(backgroundColorful, trailBlend))
}
