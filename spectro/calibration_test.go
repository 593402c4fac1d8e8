package spectro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCalibration(t *testing.T) {
	cal := DefaultCalibration

	assert.InDelta(t, 1.805084745762712, cal.PixelsPerNm, 1e-12)
	assert.InDelta(t, 0.5539906103286385, cal.NmPerPixel, 1e-12)
	assert.InDelta(t, 1, cal.PixelsPerNm*cal.NmPerPixel, 1e-12)

	assert.InDelta(t, 315.3896, cal.Wavelength(0), 1e-9)
	assert.InDelta(t, 315.3896+212/1.805084746, cal.Wavelength(212), 1e-6)
	assert.InDelta(t, 532, cal.Wavelength(391), 0.05)
	assert.InDelta(t, 650, cal.Wavelength(604), 0.05)
}

func TestCalibrationRoundTrip(t *testing.T) {
	cal := DefaultCalibration
	for p := 0; p < SENSOR_WIDTH; p++ {
		assert.InDelta(t, float64(p), cal.Pixel(cal.Wavelength(float64(p))), 1e-6, "pixel %d", p)
	}
	for w := 300.0; w <= 800; w += 0.7 {
		assert.InDelta(t, w, cal.Wavelength(cal.Pixel(w)), 1e-6, "wavelength %v", w)
	}
}

func TestNewCalibration(t *testing.T) {
	cal, err := NewCalibration(RED_LASER, GREEN_LASER)
	require.NoError(t, err)

	assert.InDelta(t, DefaultCalibration.PixelsPerNm, cal.PixelsPerNm, 1e-12)
	assert.InDelta(t, DefaultCalibration.NmPerPixel, cal.NmPerPixel, 1e-12)
	assert.InDelta(t, DefaultCalibration.ZeroNm, cal.ZeroNm, 1e-4)

	swapped, err := NewCalibration(GREEN_LASER, RED_LASER)
	require.NoError(t, err)
	assert.InDelta(t, cal.ZeroNm, swapped.ZeroNm, 1e-9)
}

func TestNewCalibrationRejectsDegeneratePoints(t *testing.T) {
	tests := []struct {
		name string
		a, b ReferencePoint
	}{
		{"same pixel", ReferencePoint{100, 500}, ReferencePoint{100, 600}},
		{"same wavelength", ReferencePoint{100, 500}, ReferencePoint{200, 500}},
		{"inverted", ReferencePoint{100, 600}, ReferencePoint{200, 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCalibration(tt.a, tt.b)
			assert.Error(t, err)
		})
	}
}

func TestCalibrationWavelengths(t *testing.T) {
	wavelengths := DefaultCalibration.Wavelengths(SENSOR_WIDTH)
	require.Len(t, wavelengths, SENSOR_WIDTH)
	for i := 1; i < len(wavelengths); i++ {
		assert.Greater(t, wavelengths[i], wavelengths[i-1])
	}
}
