package render

import (
	"image/color"
	"math"
)

// HSVToRGB converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func HSVToRGB(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8((r + m) * 255), uint8((g + m) * 255), uint8((b + m) * 255)
}

// BallColor gives each sprite a stable hue, shifted over time by phase.
func BallColor(id int, phase float64) color.RGBA {
	hue := (phase + float64(id)*0.137) * 360
	r, g, b := HSVToRGB(hue, 0.75, 0.95)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// BoundaryColor brightens the boundary with the sound level.
func BoundaryColor(level float64) color.RGBA {
	level = Clamp01(level)
	base := 120.0
	v := uint8(base + (255-base)*level)
	return color.RGBA{R: v, G: v, B: uint8(base + (255-base)*Clamp01(level*0.6)), A: 255}
}

func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
