package spectro

import (
	"fmt"
	"math"
)

// Reference laser lines: 532nm at column 391 and 650nm at column 604.
const (
	CALIBRATION_PX_RANGE = 213
	CALIBRATION_NM_RANGE = 118
	CALIBRATION_ZERO_NM  = 315.3896
)

var (
	GREEN_LASER = ReferencePoint{PixelIndex: 391, WavelengthNm: 532}
	RED_LASER   = ReferencePoint{PixelIndex: 604, WavelengthNm: 650}
)

// DefaultCalibration is the fixed mapping of the reference setup.
var DefaultCalibration = Calibration{
	PixelsPerNm: float64(CALIBRATION_PX_RANGE) / CALIBRATION_NM_RANGE,
	NmPerPixel:  float64(CALIBRATION_NM_RANGE) / CALIBRATION_PX_RANGE,
	ZeroNm:      CALIBRATION_ZERO_NM,
}

type ReferencePoint struct {
	PixelIndex   int
	WavelengthNm float64
}

// Calibration is a linear pixel column <-> wavelength mapping:
// wavelength(px) = ZeroNm + px/PixelsPerNm.
type Calibration struct {
	PixelsPerNm float64
	NmPerPixel  float64
	ZeroNm      float64 // wavelength of column 0
}

// NewCalibration derives the mapping from two known lines.
func NewCalibration(a, b ReferencePoint) (Calibration, error) {
	pxRange := math.Abs(float64(a.PixelIndex - b.PixelIndex))
	nmRange := math.Abs(a.WavelengthNm - b.WavelengthNm)
	if pxRange == 0 || nmRange == 0 {
		return Calibration{}, fmt.Errorf("degenerate calibration points %v and %v", a, b)
	}
	if (a.PixelIndex < b.PixelIndex) != (a.WavelengthNm < b.WavelengthNm) {
		return Calibration{}, fmt.Errorf("calibration points %v and %v are not increasing together", a, b)
	}
	pxPerNm := pxRange / nmRange
	return Calibration{
		PixelsPerNm: pxPerNm,
		NmPerPixel:  nmRange / pxRange,
		ZeroNm:      a.WavelengthNm - float64(a.PixelIndex)/pxPerNm,
	}, nil
}

func (c Calibration) Wavelength(px float64) float64 {
	return c.ZeroNm + px/c.PixelsPerNm
}

func (c Calibration) Pixel(nm float64) float64 {
	return (nm - c.ZeroNm) * c.PixelsPerNm
}

// Wavelengths maps columns 0..n-1.
func (c Calibration) Wavelengths(n int) []float64 {
	wavelengths := make([]float64, n)
	for i := range wavelengths {
		wavelengths[i] = c.Wavelength(float64(i))
	}
	return wavelengths
}
