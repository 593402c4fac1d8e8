package spectro

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	CHART_WIDTH  = 8 * vg.Inch
	CHART_HEIGHT = 4 * vg.Inch
)

// PlotSpectrum writes an intensity over wavelength line chart to path. The
// image format follows the file extension (png, svg, pdf, ...).
func PlotSpectrum(path, title string, wavelengths []float64, intensities IntensitySeries) error {
	if len(wavelengths) != len(intensities) {
		return fmt.Errorf("%d wavelengths for %d intensities", len(wavelengths), len(intensities))
	}
	if len(wavelengths) == 0 {
		return fmt.Errorf("nothing to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Wavelength (nm)"
	p.Y.Label.Text = "Intensity"
	p.Y.Min = 0
	p.Y.Max = 255

	pts := make(plotter.XYs, len(wavelengths))
	for i, wl := range wavelengths {
		pts[i].X = wl
		pts[i].Y = float64(intensities[i])
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building spectrum line: %w", err)
	}
	line.Color = Black
	p.Add(plotter.NewGrid(), line)

	if err := p.Save(CHART_WIDTH, CHART_HEIGHT, path); err != nil {
		return fmt.Errorf("saving chart %s: %w", path, err)
	}
	return nil
}
