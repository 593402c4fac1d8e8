package spectro

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	SAVGOL_DEFAULT_WINDOW = 17
	SAVGOL_DEFAULT_ORDER  = 7
)

// SavitzkyGolay smooths a series with a least-squares polynomial fitted over
// a sliding window. Edge samples are taken from the polynomial fitted to the
// first and last full window.
// Build it with NewSavitzkyGolay; the zero value leaves series unchanged.
type SavitzkyGolay struct {
	window int
	order  int

	design *mat.Dense // Vandermonde matrix of the scaled window offsets
	coeffs []float64  // convolution kernel for the window center
}

func NewSavitzkyGolay(window, order int) (*SavitzkyGolay, error) {
	if window < 1 || window%2 == 0 {
		return nil, fmt.Errorf("savitzky-golay window must be odd and positive, got %d", window)
	}
	if order < 0 || order >= window {
		return nil, fmt.Errorf("savitzky-golay order %d must be less than window %d", order, window)
	}

	// Offsets are scaled to [-1, 1], the fitted values do not depend on the scale.
	half := window / 2
	scale := math.Max(float64(half), 1)
	design := mat.NewDense(window, order+1, nil)
	for i := 0; i < window; i++ {
		x := float64(i-half) / scale
		for j := 0; j <= order; j++ {
			design.Set(i, j, math.Pow(x, float64(j)))
		}
	}

	// The smoothed center value is the constant term of the fit, so the
	// kernel is A (A^T A)^-1 e0.
	var normal mat.Dense
	normal.Mul(design.T(), design)
	e0 := mat.NewVecDense(order+1, nil)
	e0.SetVec(0, 1)
	var c mat.VecDense
	if err := c.SolveVec(&normal, e0); err != nil {
		return nil, fmt.Errorf("savitzky-golay normal equations: %w", err)
	}
	var kernel mat.VecDense
	kernel.MulVec(design, &c)

	return &SavitzkyGolay{
		window: window,
		order:  order,
		design: design,
		coeffs: mat.Col(nil, 0, &kernel),
	}, nil
}

func (f *SavitzkyGolay) Window() int {
	return f.window
}

func (f *SavitzkyGolay) Order() int {
	return f.order
}

// Smooth returns a new series; values are rounded and clamped to 0-255.
// Series shorter than the window are returned unchanged.
func (f *SavitzkyGolay) Smooth(series IntensitySeries) IntensitySeries {
	n := len(series)
	out := make(IntensitySeries, n)
	if f.coeffs == nil {
		WARNINGLogger.Println("Savitzky-Golay filter not initialized, not smoothing")
		copy(out, series)
		return out
	}
	if n < f.window {
		WARNINGLogger.Printf("Series of %d samples is shorter than the smoothing window (%d), not smoothing", n, f.window)
		copy(out, series)
		return out
	}

	y := make([]float64, n)
	for i, v := range series {
		y[i] = float64(v)
	}

	half := f.window / 2
	product := make([]float64, f.window)
	for k := half; k < n-half; k++ {
		vecmath.MulBlock(product, y[k-half:k+half+1], f.coeffs)
		out[k] = clampIntensity(floats.Sum(product))
	}

	head, err := f.fitWindow(y[:f.window])
	if err != nil {
		WARNINGLogger.Printf("Edge fit failed, keeping raw edge samples: %v", err)
		copy(out[:half], series[:half])
		copy(out[n-half:], series[n-half:])
		return out
	}
	tail, err := f.fitWindow(y[n-f.window:])
	if err != nil {
		WARNINGLogger.Printf("Edge fit failed, keeping raw edge samples: %v", err)
		copy(out[:half], series[:half])
		copy(out[n-half:], series[n-half:])
		return out
	}
	for i := 0; i < half; i++ {
		out[i] = clampIntensity(head[i])
		out[n-half+i] = clampIntensity(tail[f.window-half+i])
	}
	return out
}

// fitWindow evaluates the least-squares polynomial of window at every
// window offset.
func (f *SavitzkyGolay) fitWindow(window []float64) ([]float64, error) {
	var poly mat.VecDense
	if err := poly.SolveVec(f.design, mat.NewVecDense(len(window), window)); err != nil {
		return nil, err
	}
	var fitted mat.VecDense
	fitted.MulVec(f.design, &poly)
	return mat.Col(nil, 0, &fitted), nil
}

func clampIntensity(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return int(math.Round(v))
}

// PeakHold keeps the highest value seen per column across frames.
type PeakHold struct {
	held IntensitySeries
}

// Update folds series into the held maxima and returns a copy of them.
// A series of a different length restarts the hold.
func (h *PeakHold) Update(series IntensitySeries) IntensitySeries {
	if len(h.held) != len(series) {
		h.held = make(IntensitySeries, len(series))
	}
	for i, v := range series {
		if v > h.held[i] {
			h.held[i] = v
		}
	}
	out := make(IntensitySeries, len(h.held))
	copy(out, h.held)
	return out
}

func (h *PeakHold) Reset() {
	h.held = nil
}
