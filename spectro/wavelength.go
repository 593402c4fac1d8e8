package spectro

import (
	"image/color"
	"math"
)

const (
	VISIBLE_MIN_NM = 380
	VISIBLE_MAX_NM = 780

	// Brightness tapers to FALLOFF_FLOOR outside [FULL_BRIGHTNESS_MIN_NM, FULL_BRIGHTNESS_MAX_NM]
	FULL_BRIGHTNESS_MIN_NM = 420
	FULL_BRIGHTNESS_MAX_NM = 700
	FALLOFF_FLOOR          = 0.3

	RGB_GAMMA         = 0.8
	RGB_MAX_INTENSITY = 255
)

// Segment boundaries, violet to red. Each segment starts at its value.
const (
	violetNm = 380
	blueNm   = 440
	cyanNm   = 490
	greenNm  = 510
	yellowNm = 580
	redNm    = 645
)

// WavelengthToRGB returns the color perceived for nm, black outside the
// visible range.
func WavelengthToRGB(nm int) color.RGBA {
	var r, g, b float64
	switch {
	case nm < violetNm || nm > VISIBLE_MAX_NM:
		return color.RGBA{A: 255}
	case nm < blueNm:
		r = -float64(nm-blueNm) / (blueNm - violetNm)
		b = 1
	case nm < cyanNm:
		g = float64(nm-blueNm) / (cyanNm - blueNm)
		b = 1
	case nm < greenNm:
		g = 1
		b = -float64(nm-greenNm) / (greenNm - cyanNm)
	case nm < yellowNm:
		r = float64(nm-greenNm) / (yellowNm - greenNm)
		g = 1
	case nm < redNm:
		r = 1
		g = -float64(nm-redNm) / (redNm - yellowNm)
	default:
		r = 1
	}

	factor := brightnessFactor(nm)
	return color.RGBA{
		R: gammaChannel(r, factor),
		G: gammaChannel(g, factor),
		B: gammaChannel(b, factor),
		A: 255,
	}
}

// brightnessFactor is 1 inside the full brightness band and ramps linearly
// down to FALLOFF_FLOOR at both edges of the visible range.
func brightnessFactor(nm int) float64 {
	switch {
	case nm < VISIBLE_MIN_NM || nm > VISIBLE_MAX_NM:
		return 0
	case nm < FULL_BRIGHTNESS_MIN_NM:
		return FALLOFF_FLOOR + (1-FALLOFF_FLOOR)*float64(nm-VISIBLE_MIN_NM)/(FULL_BRIGHTNESS_MIN_NM-VISIBLE_MIN_NM)
	case nm <= FULL_BRIGHTNESS_MAX_NM:
		return 1
	default:
		return FALLOFF_FLOOR + (1-FALLOFF_FLOOR)*float64(VISIBLE_MAX_NM-nm)/(VISIBLE_MAX_NM-FULL_BRIGHTNESS_MAX_NM)
	}
}

func gammaChannel(fraction, factor float64) uint8 {
	if fraction <= 0 {
		return 0
	}
	return uint8(math.Round(RGB_MAX_INTENSITY * math.Pow(fraction*factor, RGB_GAMMA)))
}
