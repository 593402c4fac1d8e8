package spectro

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

const (
	GRAPH_HEIGHT = 255

	GRID_MINOR_NM    = 10
	GRID_MAJOR_NM    = 50
	GRID_TOP         = 15 // vertical gridlines leave room for the labels
	GRID_ROW_SPACING = 51

	LABEL_BASELINE   = 12
	LABEL_OFFSET     = 12
	LABEL_FONT_SCALE = 0.4
)

var (
	Black     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	LightGray = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	MidGray   = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	Yellow    = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// Gridline is a vertical calibration line at a whole multiple of GRID_MINOR_NM.
// Major lines fall on multiples of GRID_MAJOR_NM and carry a label.
type Gridline struct {
	Column       int
	WavelengthNm int
	Major        bool
}

// Gridlines returns the vertical gridlines of a graph width columns wide.
// Rounding maps several neighbouring columns to the same wavelength, only
// the first of them gets the line.
func Gridlines(cal Calibration, width int) []Gridline {
	var lines []Gridline
	prev := 0
	for i := 0; i < width; i++ {
		position := int(math.Round(cal.Wavelength(float64(i))))
		if position != prev && position%GRID_MINOR_NM == 0 {
			lines = append(lines, Gridline{
				Column:       i,
				WavelengthNm: position,
				Major:        position%GRID_MAJOR_NM == 0,
			})
		}
		prev = position
	}
	return lines
}

// RenderGraph draws the calibrated, false colored spectrum of series on a
// new GRAPH_HEIGHT x len(series) canvas. The caller owns the returned Mat.
func RenderGraph(series IntensitySeries, cal Calibration) gocv.Mat {
	width := len(series)
	graph := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), GRAPH_HEIGHT, width, gocv.MatTypeCV8UC3)

	for _, line := range Gridlines(cal, width) {
		c := LightGray
		if line.Major {
			c = Black
		}
		gocv.Line(&graph, image.Pt(line.Column, GRID_TOP), image.Pt(line.Column, GRAPH_HEIGHT), c, 1)
		if line.Major {
			putLabel(&graph, fmt.Sprintf("%dnm", line.WavelengthNm), image.Pt(line.Column-LABEL_OFFSET, LABEL_BASELINE))
		}
	}

	for y := GRID_ROW_SPACING; y < GRAPH_HEIGHT; y += GRID_ROW_SPACING {
		gocv.Line(&graph, image.Pt(0, y), image.Pt(width, y), MidGray, 1)
	}

	for i, v := range series {
		wavelength := int(math.Round(cal.Wavelength(float64(i))))
		gocv.Line(&graph, image.Pt(i, GRAPH_HEIGHT), image.Pt(i, GRAPH_HEIGHT-v), WavelengthToRGB(wavelength), 1)
		// outline of the trace
		gocv.Line(&graph, image.Pt(i, GRAPH_HEIGHT-1-v), image.Pt(i, GRAPH_HEIGHT-v), Black, 1)
	}
	return graph
}

func putLabel(img *gocv.Mat, text string, org image.Point) {
	gocv.PutTextWithParams(img, text, org, gocv.FontHersheySimplex, LABEL_FONT_SCALE, Black, 1, gocv.LineAA, false)
}
