package spectro

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWavelengthToRGBOutsideVisible(t *testing.T) {
	black := color.RGBA{A: 255}
	for _, nm := range []int{-1000, 0, 315, 379, 781, 900, 100000} {
		assert.Equal(t, black, WavelengthToRGB(nm), "%dnm", nm)
	}
}

func TestWavelengthToRGB(t *testing.T) {
	tests := []struct {
		nm   int
		want color.RGBA
	}{
		// 255 * 0.3^0.8 rounds to 97
		{380, color.RGBA{R: 97, G: 0, B: 97, A: 255}},
		{440, color.RGBA{R: 0, G: 0, B: 255, A: 255}},
		{490, color.RGBA{R: 0, G: 255, B: 255, A: 255}},
		{510, color.RGBA{R: 0, G: 255, B: 0, A: 255}},
		{580, color.RGBA{R: 255, G: 255, B: 0, A: 255}},
		{645, color.RGBA{R: 255, G: 0, B: 0, A: 255}},
		{700, color.RGBA{R: 255, G: 0, B: 0, A: 255}},
		{780, color.RGBA{R: 97, G: 0, B: 0, A: 255}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WavelengthToRGB(tt.nm), "%dnm", tt.nm)
	}
}

func TestWavelengthToRGBInterpolates(t *testing.T) {
	// green rises through the blue segment
	prev := WavelengthToRGB(440).G
	for nm := 441; nm < 490; nm++ {
		g := WavelengthToRGB(nm).G
		assert.Greater(t, g, prev, "%dnm", nm)
		assert.Equal(t, uint8(255), WavelengthToRGB(nm).B)
		prev = g
	}
}

func TestBrightnessFactor(t *testing.T) {
	assert.InDelta(t, FALLOFF_FLOOR, brightnessFactor(VISIBLE_MIN_NM), 1e-12)
	assert.InDelta(t, FALLOFF_FLOOR, brightnessFactor(VISIBLE_MAX_NM), 1e-12)
	for nm := FULL_BRIGHTNESS_MIN_NM; nm <= FULL_BRIGHTNESS_MAX_NM; nm++ {
		assert.Equal(t, 1.0, brightnessFactor(nm))
	}

	// non-decreasing toward the full brightness band from both edges
	for nm := VISIBLE_MIN_NM; nm < FULL_BRIGHTNESS_MIN_NM; nm++ {
		assert.LessOrEqual(t, brightnessFactor(nm), brightnessFactor(nm+1), "%dnm", nm)
	}
	for nm := VISIBLE_MAX_NM; nm > FULL_BRIGHTNESS_MAX_NM; nm-- {
		assert.LessOrEqual(t, brightnessFactor(nm), brightnessFactor(nm-1), "%dnm", nm)
	}
}

func TestWavelengthToRGBRedFalloff(t *testing.T) {
	prev := WavelengthToRGB(VISIBLE_MAX_NM).R
	for nm := VISIBLE_MAX_NM - 1; nm >= FULL_BRIGHTNESS_MAX_NM; nm-- {
		r := WavelengthToRGB(nm).R
		assert.GreaterOrEqual(t, r, prev, "%dnm", nm)
		prev = r
	}
}
