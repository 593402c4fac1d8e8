package spectro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotSpectrum(t *testing.T) {
	series := triangle(SENSOR_WIDTH, 300, 200, 10)
	path := filepath.Join(t.TempDir(), "spectrum.png")

	require.NoError(t, PlotSpectrum(path, "test", DefaultCalibration.Wavelengths(len(series)), series))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}

func TestPlotSpectrumInvalidInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.png")
	assert.Error(t, PlotSpectrum(path, "", []float64{400}, IntensitySeries{1, 2}))
	assert.Error(t, PlotSpectrum(path, "", nil, nil))
	assert.NoFileExists(t, path)
}
