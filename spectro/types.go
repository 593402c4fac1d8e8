package spectro

import (
	"time"

	"gocv.io/x/gocv"
)

// IntensitySeries holds one gray value (0-255) per pixel column of the scanline.
// The index is the pixel column; it is never reordered.
type IntensitySeries []int

type IntensitySample struct {
	PixelIndex int
	RawValue   int
}

// Samples returns the series as (column, value) pairs in column order.
func (s IntensitySeries) Samples() []IntensitySample {
	samples := make([]IntensitySample, len(s))
	for i, v := range s {
		samples[i] = IntensitySample{PixelIndex: i, RawValue: v}
	}
	return samples
}

// Max returns the highest value of the series, 0 for an empty one.
func (s IntensitySeries) Max() int {
	var max int
	for _, v := range s {
		if v > max {
			max = v
		}
	}
	return max
}

type Peak struct {
	PixelIndex   int
	WavelengthNm int
	Intensity    int
}

// SpectralFrame is the result of one capture cycle. Wavelengths[i] and
// Intensities[i] describe the same pixel column.
type SpectralFrame struct {
	Image       gocv.Mat
	Wavelengths []float64
	Intensities IntensitySeries
	Peaks       []Peak
	CapturedAt  time.Time
}

// Close releases the rendered graph.
func (f *SpectralFrame) Close() error {
	return f.Image.Close()
}

type SpectrumMessage struct {
	Timestamp   int64
	Wavelengths []float64
	Intensities []int
	Peaks       []Peak
}
