package spectro

import (
	"fmt"
	"image"
	"math"
	"sort"

	"gocv.io/x/gocv"
)

const (
	PEAK_LABEL_TOP    = 245 // callout baseline for a zero intensity peak
	PEAK_LABEL_WIDTH  = 47
	PEAK_LABEL_HEIGHT = 14
)

// FindPeaks returns the columns of the local maxima of series whose value
// exceeds threshPercent percent of the series maximum. Of several maxima
// closer than minDist, the highest is kept, the earliest on equal heights.
// An all zero series has no peaks.
func FindPeaks(series IntensitySeries, minDist, threshPercent int) []int {
	max := series.Max()
	if max == 0 {
		DEBUGLogger.Printf("No peaks: %v", ErrDegenerateSeries)
		return nil
	}
	if len(series) < 3 {
		return nil
	}
	thresh := float64(threshPercent) / 100 * float64(max)

	dy := slopes(series)
	if dy == nil {
		return nil
	}

	var peaks []int
	for i := 1; i < len(series)-1; i++ {
		if dy[i-1] > 0 && dy[i] < 0 && float64(series[i]) > thresh {
			peaks = append(peaks, i)
		}
	}
	if len(peaks) < 2 || minDist <= 1 {
		return peaks
	}
	return suppressNeighbours(series, peaks, minDist)
}

// slopes returns the first difference of series with every flat run
// replaced by the slope of its neighbours, so that the middle of a plateau
// reads as a maximum. A completely flat series yields nil.
func slopes(series IntensitySeries) []int {
	dy := make([]int, len(series)-1)
	flat := 0
	for i := range dy {
		dy[i] = series[i+1] - series[i]
		if dy[i] == 0 {
			flat++
		}
	}
	if flat == len(dy) {
		return nil
	}

	for start := 0; start < len(dy); {
		if dy[start] != 0 {
			start++
			continue
		}
		end := start
		for end+1 < len(dy) && dy[end+1] == 0 {
			end++
		}
		switch {
		case start == 0:
			fill(dy[start:end+1], dy[end+1])
		case end == len(dy)-1:
			fill(dy[start:end+1], dy[start-1])
		default:
			median := float64(start+end) / 2
			for j := start; j <= end; j++ {
				if float64(j) < median {
					dy[j] = dy[start-1]
				} else {
					dy[j] = dy[end+1]
				}
			}
		}
		start = end + 1
	}
	return dy
}

func fill(s []int, v int) {
	for i := range s {
		s[i] = v
	}
}

func suppressNeighbours(series IntensitySeries, peaks []int, minDist int) []int {
	highest := make([]int, len(peaks))
	copy(highest, peaks)
	sort.SliceStable(highest, func(i, j int) bool {
		return series[highest[i]] > series[highest[j]]
	})

	removed := make([]bool, len(series))
	isPeak := make([]bool, len(series))
	for _, p := range peaks {
		isPeak[p] = true
	}
	for _, p := range highest {
		if removed[p] {
			continue
		}
		lo := p - minDist
		if lo < 0 {
			lo = 0
		}
		hi := p + minDist
		if hi > len(series)-1 {
			hi = len(series) - 1
		}
		for j := lo; j <= hi; j++ {
			if j != p {
				removed[j] = true
			}
		}
	}

	var kept []int
	for i := range series {
		if isPeak[i] && !removed[i] {
			kept = append(kept, i)
		}
	}
	return kept
}

// DetectPeaks finds the peaks of series and resolves their wavelengths,
// rounded to the nearest nm.
func DetectPeaks(series IntensitySeries, cal Calibration, minDist, threshPercent int) []Peak {
	indexes := FindPeaks(series, minDist, threshPercent)
	peaks := make([]Peak, 0, len(indexes))
	for _, i := range indexes {
		peaks = append(peaks, Peak{
			PixelIndex:   i,
			WavelengthNm: int(math.Round(cal.Wavelength(float64(i)))),
			Intensity:    series[i],
		})
	}
	return peaks
}

// LabelPeaks draws a "<wavelength>nm" callout above every peak.
func LabelPeaks(graph *gocv.Mat, peaks []Peak) {
	for _, p := range peaks {
		height := PEAK_LABEL_TOP - p.Intensity
		left := p.PixelIndex - LABEL_OFFSET
		box := image.Rect(left-2, height-PEAK_LABEL_HEIGHT+3, left-2+PEAK_LABEL_WIDTH, height+3)
		gocv.Rectangle(graph, box, Yellow, -1)
		gocv.Rectangle(graph, box, Black, 1)
		putLabel(graph, fmt.Sprintf("%dnm", p.WavelengthNm), image.Pt(left, height))
	}
}
